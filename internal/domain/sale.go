package domain

import (
	"github.com/crediario/credit-engine/pkg/money"
)

// Sale is the aggregate root for its installments. FinalValue and StatusID
// are only ever mutated as side effects of reconciliation or a recorded
// payment; identity and code never change.
type Sale struct {
	ID           int64          `json:"id" db:"id"`
	Code         string         `json:"code" db:"code"`
	FinalValue   money.Money    `json:"final_value" db:"final_value"`
	StatusID     int64          `json:"status_id" db:"status_id"`
	Installments []*Installment `json:"installments,omitempty" db:"-"`
}

// InstallmentStatusIDs snapshots the statuses of the sale's installments,
// in sequence order, for the rollup rule.
func (s *Sale) InstallmentStatusIDs() []int64 {
	ids := make([]int64, 0, len(s.Installments))
	for _, inst := range s.Installments {
		ids = append(ids, inst.StatusID)
	}
	return ids
}
