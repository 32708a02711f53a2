package repository

import (
	"context"
	"strconv"

	"github.com/crediario/credit-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type installmentRepository struct {
	db *sqlx.DB
}

func NewInstallmentRepository(db *sqlx.DB) InstallmentRepository {
	return &installmentRepository{db: db}
}

const installmentColumns = `id, sale_id, number, amount, interest, created_date, due_date, payment_date, updated_by, status_id`

func (r *installmentRepository) GetByID(ctx context.Context, id int64) (*domain.Installment, error) {
	query := `
		SELECT ` + installmentColumns + `
		FROM installments
		WHERE id = $1
	`

	var installment domain.Installment
	err := r.db.GetContext(ctx, &installment, query, id)
	if err != nil {
		return nil, err
	}

	saleQuery := `
		SELECT id, code, final_value, status_id
		FROM sales
		WHERE id = $1
	`

	var sale domain.Sale
	if err := r.db.GetContext(ctx, &sale, saleQuery, installment.SaleID); err != nil {
		return nil, err
	}
	installment.Sale = &sale

	return &installment, nil
}

func (r *installmentRepository) List(ctx context.Context, filter InstallmentFilter) ([]*domain.Installment, error) {
	query := `
		SELECT ` + installmentColumns + `
		FROM installments
	`

	var args []interface{}
	where := ""
	if filter.From != nil {
		args = append(args, *filter.From)
		where += " WHERE due_date >= $" + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		if where == "" {
			where += " WHERE"
		} else {
			where += " AND"
		}
		where += " due_date <= $" + strconv.Itoa(len(args))
	}
	query += where + " ORDER BY sale_id, number"

	var installments []*domain.Installment
	err := r.db.SelectContext(ctx, &installments, query, args...)
	if err != nil {
		return nil, err
	}

	return installments, nil
}

func (r *installmentRepository) UpdateStatus(ctx context.Context, id int64, statusID int64) error {
	query := `
		UPDATE installments
		SET status_id = $2
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, statusID)
	return err
}

// ApplyPayment writes the installment and its parent sale in a single
// transaction so no reader can observe the interest posted to one side
// but not the other.
func (r *installmentRepository) ApplyPayment(ctx context.Context, installment *domain.Installment, sale *domain.Sale) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	installmentQuery := `
		UPDATE installments
		SET amount = $2, interest = $3, payment_date = $4, status_id = $5, updated_by = $6
		WHERE id = $1
	`

	_, err = tx.ExecContext(ctx, installmentQuery,
		installment.ID,
		installment.Amount,
		installment.Interest,
		installment.PaymentDate,
		installment.StatusID,
		installment.UpdatedBy,
	)
	if err != nil {
		return err
	}

	if sale != nil {
		saleQuery := `
			UPDATE sales
			SET final_value = $2, status_id = $3
			WHERE id = $1
		`

		_, err = tx.ExecContext(ctx, saleQuery, sale.ID, sale.FinalValue, sale.StatusID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
