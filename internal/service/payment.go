package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/crediario/credit-engine/internal/domain"
	"github.com/crediario/credit-engine/internal/repository"
	customError "github.com/crediario/credit-engine/pkg/errors"
	"github.com/crediario/credit-engine/pkg/money"

	"github.com/sirupsen/logrus"
)

const paymentDateLayout = "2006-01-02"

// PaymentService applies a recorded payment to an installment and
// propagates the monetary and status effects to the parent sale.
type PaymentService struct {
	installmentRepo repository.InstallmentRepository
	saleRepo        repository.SaleRepository
	catalog         *StatusCatalog
	log             *logrus.Logger
}

func NewPaymentService(
	installmentRepo repository.InstallmentRepository,
	saleRepo repository.SaleRepository,
	catalog *StatusCatalog,
	log *logrus.Logger,
) *PaymentService {
	return &PaymentService{
		installmentRepo: installmentRepo,
		saleRepo:        saleRepo,
		catalog:         catalog,
		log:             log,
	}
}

// ApplyPayment records a payment against an installment. The interest, when
// present, is added to both the installment's amount and the parent sale's
// final value, and both rows are written in one transaction. Preconditions
// are checked in order; the first failure wins.
func (s *PaymentService) ApplyPayment(ctx context.Context, req *domain.ApplyPaymentRequest) (string, error) {
	paymentDate, err := time.Parse(paymentDateLayout, req.PaymentDate)
	if err != nil {
		return "", customError.WrapInvalidPaymentDate(req.PaymentDate)
	}
	if paymentDate.After(time.Now()) {
		return "", customError.WrapInvalidPaymentDate(req.PaymentDate)
	}

	installment, err := s.installmentRepo.GetByID(ctx, req.InstallmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", customError.WrapInstallmentNotFound(req.InstallmentID)
		}
		return "", customError.WrapDatabaseError(err)
	}

	status, err := s.catalog.GetByID(ctx, req.StatusID)
	if err != nil {
		return "", err
	}

	interest := money.Zero()
	if req.Interest != "" {
		interest, err = money.FromString(req.Interest)
		if err != nil {
			return "", customError.WrapInvalidAmount(req.Interest, err)
		}
	}

	installment.Amount = installment.Amount.Add(interest)
	installment.Interest = money.NewNull(interest)
	installment.PaymentDate = sql.NullTime{Time: paymentDate, Valid: true}
	installment.StatusID = status.ID
	if req.Actor != "" {
		installment.UpdatedBy = sql.NullString{String: req.Actor, Valid: true}
	}

	sale := installment.Sale
	if sale != nil {
		// Reload with installments so the aggregate status is recomputed
		// from the full set, with this installment's new status applied.
		sale, err = s.saleRepo.GetWithInstallments(ctx, sale.ID)
		if err != nil {
			return "", customError.WrapDatabaseError(err)
		}

		statusIDs := make([]int64, 0, len(sale.Installments))
		for _, inst := range sale.Installments {
			if inst.ID == installment.ID {
				statusIDs = append(statusIDs, installment.StatusID)
				continue
			}
			statusIDs = append(statusIDs, inst.StatusID)
		}

		sale.FinalValue = sale.FinalValue.Add(interest)
		sale.StatusID = domain.RollupStatus(statusIDs)
	}

	if err := s.installmentRepo.ApplyPayment(ctx, installment, sale); err != nil {
		return "", customError.WrapDatabaseError(err)
	}

	s.log.WithFields(logrus.Fields{
		"installment_id": installment.ID,
		"status":         status.Name,
		"interest":       interest.String(),
		"actor":          req.Actor,
	}).Info("payment applied")

	return fmt.Sprintf("Installment %d updated to status %s. Interest applied: %s.",
		installment.ID, status.Name, interest.String()), nil
}
