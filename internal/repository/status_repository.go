package repository

import (
	"context"

	"github.com/crediario/credit-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type statusRepository struct {
	db *sqlx.DB
}

func NewStatusRepository(db *sqlx.DB) StatusRepository {
	return &statusRepository{db: db}
}

func (r *statusRepository) GetByID(ctx context.Context, id int64) (*domain.PaymentStatus, error) {
	query := `
		SELECT id, name
		FROM payment_statuses
		WHERE id = $1
	`

	var status domain.PaymentStatus
	err := r.db.GetContext(ctx, &status, query, id)
	if err != nil {
		return nil, err
	}

	return &status, nil
}

func (r *statusRepository) List(ctx context.Context) ([]*domain.PaymentStatus, error) {
	query := `
		SELECT id, name
		FROM payment_statuses
		ORDER BY id
	`

	var statuses []*domain.PaymentStatus
	err := r.db.SelectContext(ctx, &statuses, query)
	if err != nil {
		return nil, err
	}

	return statuses, nil
}
