package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/crediario/credit-engine/internal/domain"
	"github.com/crediario/credit-engine/internal/repository"
	customError "github.com/crediario/credit-engine/pkg/errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ReconciliationService detects overdue installments and keeps each sale's
// aggregate status consistent with its installment set.
type ReconciliationService struct {
	installmentRepo repository.InstallmentRepository
	saleRepo        repository.SaleRepository
	log             *logrus.Logger
}

func NewReconciliationService(
	installmentRepo repository.InstallmentRepository,
	saleRepo repository.SaleRepository,
	log *logrus.Logger,
) *ReconciliationService {
	return &ReconciliationService{
		installmentRepo: installmentRepo,
		saleRepo:        saleRepo,
		log:             log,
	}
}

// ReconcileAll sweeps every installment.
func (s *ReconciliationService) ReconcileAll(ctx context.Context, today time.Time) (*domain.ReconcileResult, error) {
	return s.reconcile(ctx, repository.InstallmentFilter{}, today)
}

// ReconcileRange sweeps installments whose due date falls within the given
// bounds. Either bound may be nil; bounds are inclusive.
func (s *ReconciliationService) ReconcileRange(ctx context.Context, from, to *time.Time, today time.Time) (*domain.ReconcileResult, error) {
	return s.reconcile(ctx, repository.InstallmentFilter{From: from, To: to}, today)
}

func (s *ReconciliationService) reconcile(ctx context.Context, filter repository.InstallmentFilter, today time.Time) (*domain.ReconcileResult, error) {
	runID := uuid.New().String()
	log := s.log.WithField("run_id", runID)

	installments, err := s.installmentRepo.List(ctx, filter)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	updated := 0
	for _, installment := range installments {
		if !installment.IsOverdue(today) {
			continue
		}

		// A failed row is logged and skipped so the sweep keeps moving.
		if err := s.installmentRepo.UpdateStatus(ctx, installment.ID, domain.StatusOverdue); err != nil {
			log.WithError(err).
				WithField("installment_id", installment.ID).
				Error("failed to persist overdue status, skipping")
			continue
		}
		installment.StatusID = domain.StatusOverdue
		updated++

		log.WithFields(logrus.Fields{
			"installment_id": installment.ID,
			"sale_id":        installment.SaleID,
		}).Info("installment promoted to overdue")

		// Roll up strictly after the status write it responds to.
		if err := s.rollupSale(ctx, installment.SaleID); err != nil {
			log.WithError(err).
				WithField("sale_id", installment.SaleID).
				Error("failed to roll up sale status")
		}
	}

	log.WithFields(logrus.Fields{
		"considered": len(installments),
		"updated":    updated,
	}).Info("reconciliation sweep finished")

	return &domain.ReconcileResult{
		RunID:        runID,
		Installments: installments,
		Updated:      updated,
	}, nil
}

// rollupSale recomputes a sale's aggregate status from the current persisted
// statuses of all its installments and saves it only when it changed. The
// rule is pure and memoryless, so concurrent or repeated rollups for the
// same sale converge to the same answer.
func (s *ReconciliationService) rollupSale(ctx context.Context, saleID int64) error {
	sale, err := s.saleRepo.GetWithInstallments(ctx, saleID)
	if err != nil {
		return err
	}

	newStatus := domain.RollupStatus(sale.InstallmentStatusIDs())
	if newStatus == sale.StatusID {
		return nil
	}

	return s.saleRepo.UpdateStatus(ctx, sale.ID, newStatus)
}

// GetInstallment fetches a single installment with its parent sale.
func (s *ReconciliationService) GetInstallment(ctx context.Context, id int64) (*domain.Installment, error) {
	installment, err := s.installmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapInstallmentNotFound(id)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	return installment, nil
}
