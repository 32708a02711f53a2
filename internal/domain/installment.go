package domain

import (
	"database/sql"
	"time"

	"github.com/crediario/credit-engine/pkg/money"
)

// Installment is one scheduled partial payment of a credit sale.
type Installment struct {
	ID          int64           `json:"id" db:"id"`
	SaleID      int64           `json:"sale_id" db:"sale_id"`
	Number      int             `json:"number" db:"number"`
	Amount      money.Money     `json:"amount" db:"amount"`
	Interest    money.NullMoney `json:"interest" db:"interest"`
	CreatedDate time.Time       `json:"created_date" db:"created_date"`
	DueDate     time.Time       `json:"due_date" db:"due_date"`
	PaymentDate sql.NullTime    `json:"payment_date" db:"payment_date"`
	UpdatedBy   sql.NullString  `json:"updated_by" db:"updated_by"`
	StatusID    int64           `json:"status_id" db:"status_id"`
	Sale        *Sale           `json:"sale,omitempty" db:"-"`
}

// IsOverdue reports whether the installment should be promoted to Overdue:
// its due date has passed, no payment has been recorded, and it is still
// Pending. Installments already Paid or Overdue are never touched, which
// makes repeated sweeps idempotent.
func (i *Installment) IsOverdue(today time.Time) bool {
	return i.DueDate.Before(today) && !i.PaymentDate.Valid && i.StatusID == StatusPending
}

// DTOs for requests and responses

type ApplyPaymentRequest struct {
	InstallmentID int64  `json:"installment_id" validate:"required,gt=0"`
	StatusID      int64  `json:"status_id" validate:"required,gt=0"`
	PaymentDate   string `json:"payment_date" validate:"required,datetime=2006-01-02"`
	Interest      string `json:"interest" validate:"omitempty"`
	Actor         string `json:"actor" validate:"omitempty,max=180"`
}

type ApplyPaymentResponse struct {
	Message string `json:"message"`
}

type ReconcileResult struct {
	RunID        string         `json:"run_id"`
	Installments []*Installment `json:"installments"`
	Updated      int            `json:"updated"`
}
