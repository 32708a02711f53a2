package service

import (
	"context"
	"io"

	"github.com/crediario/credit-engine/internal/domain"
	"github.com/crediario/credit-engine/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type MockInstallmentRepository struct {
	mock.Mock
}

func (m *MockInstallmentRepository) GetByID(ctx context.Context, id int64) (*domain.Installment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) List(ctx context.Context, filter repository.InstallmentFilter) ([]*domain.Installment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) UpdateStatus(ctx context.Context, id int64, statusID int64) error {
	args := m.Called(ctx, id, statusID)
	return args.Error(0)
}

func (m *MockInstallmentRepository) ApplyPayment(ctx context.Context, installment *domain.Installment, sale *domain.Sale) error {
	args := m.Called(ctx, installment, sale)
	return args.Error(0)
}

type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) GetWithInstallments(ctx context.Context, saleID int64) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) UpdateStatus(ctx context.Context, saleID int64, statusID int64) error {
	args := m.Called(ctx, saleID, statusID)
	return args.Error(0)
}

type MockStatusRepository struct {
	mock.Mock
}

func (m *MockStatusRepository) GetByID(ctx context.Context, id int64) (*domain.PaymentStatus, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentStatus), args.Error(1)
}

func (m *MockStatusRepository) List(ctx context.Context) ([]*domain.PaymentStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PaymentStatus), args.Error(1)
}
