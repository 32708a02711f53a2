package repository

import (
	"context"
	"time"

	"github.com/crediario/credit-engine/internal/domain"
)

// InstallmentFilter narrows an installment listing by due date. Either
// bound may be nil; bounds are inclusive.
type InstallmentFilter struct {
	From *time.Time
	To   *time.Time
}

// InstallmentRepository defines the interface for installment data operations
type InstallmentRepository interface {
	// GetByID retrieves an installment with its parent sale hydrated
	GetByID(ctx context.Context, id int64) (*domain.Installment, error)

	// List retrieves installments matching the filter, ordered by sale and number
	List(ctx context.Context, filter InstallmentFilter) ([]*domain.Installment, error)

	// UpdateStatus updates the status of a single installment
	UpdateStatus(ctx context.Context, id int64, statusID int64) error

	// ApplyPayment persists a recorded payment: the installment's amount,
	// payment date, interest, status and actor together with the parent
	// sale's final value and aggregate status, in one transaction
	ApplyPayment(ctx context.Context, installment *domain.Installment, sale *domain.Sale) error
}

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	// GetWithInstallments retrieves a sale with its installments ordered by number
	GetWithInstallments(ctx context.Context, saleID int64) (*domain.Sale, error)

	// UpdateStatus updates a sale's aggregate payment status
	UpdateStatus(ctx context.Context, saleID int64, statusID int64) error
}

// StatusRepository defines the interface for status catalog lookups
type StatusRepository interface {
	// GetByID retrieves a status catalog entry
	GetByID(ctx context.Context, id int64) (*domain.PaymentStatus, error)

	// List retrieves all status catalog entries
	List(ctx context.Context) ([]*domain.PaymentStatus, error)
}
