package domain

// Semantic payment status identifiers. Deployments seed the status catalog
// with these three rows; callers address them by id for storage stability.
const (
	StatusPending int64 = 1
	StatusPaid    int64 = 2
	StatusOverdue int64 = 3
)

// PaymentStatus is a status catalog entry
type PaymentStatus struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// RollupStatus derives a sale's aggregate status from the statuses of its
// installments. It is a pure function of the snapshot: unanimous Paid wins,
// unanimous Overdue wins, any mixed set resolves to Pending. It carries no
// memory of the previous aggregate, so a missed update cannot go stale.
func RollupStatus(statusIDs []int64) int64 {
	if len(statusIDs) == 0 {
		return StatusPending
	}

	allPaid := true
	allOverdue := true
	for _, id := range statusIDs {
		if id != StatusPaid {
			allPaid = false
		}
		if id != StatusOverdue {
			allOverdue = false
		}
	}

	switch {
	case allPaid:
		return StatusPaid
	case allOverdue:
		return StatusOverdue
	default:
		return StatusPending
	}
}
