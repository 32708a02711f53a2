package repository

import (
	"context"

	"github.com/crediario/credit-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type saleRepository struct {
	db *sqlx.DB
}

func NewSaleRepository(db *sqlx.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) GetWithInstallments(ctx context.Context, saleID int64) (*domain.Sale, error) {
	query := `
		SELECT id, code, final_value, status_id
		FROM sales
		WHERE id = $1
	`

	var sale domain.Sale
	err := r.db.GetContext(ctx, &sale, query, saleID)
	if err != nil {
		return nil, err
	}

	installmentQuery := `
		SELECT ` + installmentColumns + `
		FROM installments
		WHERE sale_id = $1
		ORDER BY number
	`

	var installments []*domain.Installment
	if err := r.db.SelectContext(ctx, &installments, installmentQuery, saleID); err != nil {
		return nil, err
	}
	sale.Installments = installments

	return &sale, nil
}

func (r *saleRepository) UpdateStatus(ctx context.Context, saleID int64, statusID int64) error {
	query := `
		UPDATE sales
		SET status_id = $2
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, saleID, statusID)
	return err
}
