package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crediario/credit-engine/internal/domain"
	customError "github.com/crediario/credit-engine/pkg/errors"
	"github.com/crediario/credit-engine/pkg/money"
)

func newPaymentService(
	installmentRepo *MockInstallmentRepository,
	saleRepo *MockSaleRepository,
	statusRepo *MockStatusRepository,
) *PaymentService {
	catalog := NewStatusCatalog(statusRepo, nil, time.Minute, testLogger())
	return NewPaymentService(installmentRepo, saleRepo, catalog, testLogger())
}

func mustMoney(t *testing.T, s string) money.Money {
	t.Helper()
	m, err := money.FromString(s)
	require.NoError(t, err)
	return m
}

func TestApplyPayment_RejectsFutureDate(t *testing.T) {
	mockInstallmentRepo := &MockInstallmentRepository{}
	mockSaleRepo := &MockSaleRepository{}
	mockStatusRepo := &MockStatusRepository{}
	svc := newPaymentService(mockInstallmentRepo, mockSaleRepo, mockStatusRepo)

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	msg, err := svc.ApplyPayment(context.Background(), &domain.ApplyPaymentRequest{
		InstallmentID: 1,
		StatusID:      domain.StatusPaid,
		PaymentDate:   tomorrow,
		Interest:      "10.50",
	})

	assert.Empty(t, msg)
	assert.ErrorIs(t, err, customError.ErrInvalidPaymentDate)

	// Nothing is read or written when the date check fails.
	mockInstallmentRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	mockInstallmentRepo.AssertNotCalled(t, "ApplyPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyPayment_InstallmentNotFound(t *testing.T) {
	mockInstallmentRepo := &MockInstallmentRepository{}
	mockSaleRepo := &MockSaleRepository{}
	mockStatusRepo := &MockStatusRepository{}
	svc := newPaymentService(mockInstallmentRepo, mockSaleRepo, mockStatusRepo)

	mockInstallmentRepo.On("GetByID", mock.Anything, int64(42)).Return(nil, sql.ErrNoRows)

	_, err := svc.ApplyPayment(context.Background(), &domain.ApplyPaymentRequest{
		InstallmentID: 42,
		StatusID:      domain.StatusPaid,
		PaymentDate:   "2024-06-14",
	})

	assert.ErrorIs(t, err, customError.ErrInstallmentNotFound)
}

func TestApplyPayment_StatusNotFound(t *testing.T) {
	mockInstallmentRepo := &MockInstallmentRepository{}
	mockSaleRepo := &MockSaleRepository{}
	mockStatusRepo := &MockStatusRepository{}
	svc := newPaymentService(mockInstallmentRepo, mockSaleRepo, mockStatusRepo)

	installment := &domain.Installment{ID: 1, SaleID: 10, Amount: mustMoney(t, "100.00"), StatusID: domain.StatusPending}
	mockInstallmentRepo.On("GetByID", mock.Anything, int64(1)).Return(installment, nil)
	mockStatusRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, sql.ErrNoRows)

	_, err := svc.ApplyPayment(context.Background(), &domain.ApplyPaymentRequest{
		InstallmentID: 1,
		StatusID:      99,
		PaymentDate:   "2024-06-14",
	})

	assert.ErrorIs(t, err, customError.ErrStatusNotFound)
	mockInstallmentRepo.AssertNotCalled(t, "ApplyPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyPayment_RejectsUnparseableInterest(t *testing.T) {
	mockInstallmentRepo := &MockInstallmentRepository{}
	mockSaleRepo := &MockSaleRepository{}
	mockStatusRepo := &MockStatusRepository{}
	svc := newPaymentService(mockInstallmentRepo, mockSaleRepo, mockStatusRepo)

	installment := &domain.Installment{ID: 1, SaleID: 10, Amount: mustMoney(t, "100.00"), StatusID: domain.StatusPending}
	mockInstallmentRepo.On("GetByID", mock.Anything, int64(1)).Return(installment, nil)
	mockStatusRepo.On("GetByID", mock.Anything, domain.StatusPaid).
		Return(&domain.PaymentStatus{ID: domain.StatusPaid, Name: "Paid"}, nil)

	_, err := svc.ApplyPayment(context.Background(), &domain.ApplyPaymentRequest{
		InstallmentID: 1,
		StatusID:      domain.StatusPaid,
		PaymentDate:   "2024-06-14",
		Interest:      "ten bucks",
	})

	assert.ErrorIs(t, err, customError.ErrInvalidAmount)
	mockInstallmentRepo.AssertNotCalled(t, "ApplyPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyPayment_AppliesInterestToInstallmentAndSale(t *testing.T) {
	mockInstallmentRepo := &MockInstallmentRepository{}
	mockSaleRepo := &MockSaleRepository{}
	mockStatusRepo := &MockStatusRepository{}
	svc := newPaymentService(mockInstallmentRepo, mockSaleRepo, mockStatusRepo)

	installment := &domain.Installment{
		ID:       1,
		SaleID:   10,
		Number:   2,
		Amount:   mustMoney(t, "100.00"),
		StatusID: domain.StatusPending,
		Sale:     &domain.Sale{ID: 10},
	}
	sibling := &domain.Installment{ID: 2, SaleID: 10, Number: 1, StatusID: domain.StatusPaid}

	mockInstallmentRepo.On("GetByID", mock.Anything, int64(1)).Return(installment, nil)
	mockStatusRepo.On("GetByID", mock.Anything, domain.StatusPaid).
		Return(&domain.PaymentStatus{ID: domain.StatusPaid, Name: "Paid"}, nil)
	mockSaleRepo.On("GetWithInstallments", mock.Anything, int64(10)).Return(&domain.Sale{
		ID:           10,
		Code:         "S-0010",
		FinalValue:   mustMoney(t, "500.00"),
		StatusID:     domain.StatusPending,
		Installments: []*domain.Installment{sibling, {ID: 1, SaleID: 10, Number: 2, StatusID: domain.StatusPending}},
	}, nil)

	mockInstallmentRepo.On("ApplyPayment", mock.Anything,
		mock.MatchedBy(func(inst *domain.Installment) bool {
			return inst.ID == 1 &&
				inst.Amount.Equal(mustMoney(t, "110.50")) &&
				inst.Interest.Valid && inst.Interest.Money.Equal(mustMoney(t, "10.50")) &&
				inst.PaymentDate.Valid &&
				inst.StatusID == domain.StatusPaid &&
				inst.UpdatedBy.String == "maria.souza"
		}),
		mock.MatchedBy(func(sale *domain.Sale) bool {
			// Sale gains exactly the interest and rolls up to Paid now that
			// every installment is paid.
			return sale.ID == 10 &&
				sale.FinalValue.Equal(mustMoney(t, "510.50")) &&
				sale.StatusID == domain.StatusPaid
		}),
	).Return(nil)

	msg, err := svc.ApplyPayment(context.Background(), &domain.ApplyPaymentRequest{
		InstallmentID: 1,
		StatusID:      domain.StatusPaid,
		PaymentDate:   "2024-06-14",
		Interest:      "10.50",
		Actor:         "maria.souza",
	})

	require.NoError(t, err)
	assert.Contains(t, msg, "Installment 1")
	assert.Contains(t, msg, "Paid")
	assert.Contains(t, msg, "10.50")

	mockInstallmentRepo.AssertExpectations(t)
	mockSaleRepo.AssertExpectations(t)
	mockStatusRepo.AssertExpectations(t)
}

func TestApplyPayment_MissingInterestIsZero(t *testing.T) {
	mockInstallmentRepo := &MockInstallmentRepository{}
	mockSaleRepo := &MockSaleRepository{}
	mockStatusRepo := &MockStatusRepository{}
	svc := newPaymentService(mockInstallmentRepo, mockSaleRepo, mockStatusRepo)

	installment := &domain.Installment{
		ID:       1,
		SaleID:   10,
		Amount:   mustMoney(t, "100.00"),
		StatusID: domain.StatusPending,
		Sale:     &domain.Sale{ID: 10},
	}

	mockInstallmentRepo.On("GetByID", mock.Anything, int64(1)).Return(installment, nil)
	mockStatusRepo.On("GetByID", mock.Anything, domain.StatusPaid).
		Return(&domain.PaymentStatus{ID: domain.StatusPaid, Name: "Paid"}, nil)
	mockSaleRepo.On("GetWithInstallments", mock.Anything, int64(10)).Return(&domain.Sale{
		ID:           10,
		FinalValue:   mustMoney(t, "300.00"),
		StatusID:     domain.StatusPending,
		Installments: []*domain.Installment{{ID: 1, SaleID: 10, StatusID: domain.StatusPending}},
	}, nil)

	mockInstallmentRepo.On("ApplyPayment", mock.Anything,
		mock.MatchedBy(func(inst *domain.Installment) bool {
			return inst.Amount.Equal(mustMoney(t, "100.00")) && inst.Interest.Money.IsZero()
		}),
		mock.MatchedBy(func(sale *domain.Sale) bool {
			return sale.FinalValue.Equal(mustMoney(t, "300.00"))
		}),
	).Return(nil)

	msg, err := svc.ApplyPayment(context.Background(), &domain.ApplyPaymentRequest{
		InstallmentID: 1,
		StatusID:      domain.StatusPaid,
		PaymentDate:   "2024-06-14",
	})

	require.NoError(t, err)
	assert.Contains(t, msg, "0.00")
	mockInstallmentRepo.AssertExpectations(t)
}
