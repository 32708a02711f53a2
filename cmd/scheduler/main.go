package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/crediario/credit-engine/internal/config"
	"github.com/crediario/credit-engine/internal/repository"
	"github.com/crediario/credit-engine/internal/service"
	"github.com/crediario/credit-engine/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("Starting reconciliation scheduler...")

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	installmentRepo := repository.NewInstallmentRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	reconciler := service.NewReconciliationService(installmentRepo, saleRepo, log)

	// Initialize cron scheduler in the configured timezone
	c := cron.New(cron.WithSeconds(), cron.WithLocation(cfg.SchedulerLocation()))

	if err := setupCronJobs(c, cfg, reconciler, log); err != nil {
		log.Fatalf("Failed to schedule jobs: %v", err)
	}

	c.Start()
	log.Info("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down scheduler...")
	<-c.Stop().Done()
	log.Info("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, reconciler *service.ReconciliationService, log *logrus.Logger) error {
	// Daily sweep promoting overdue installments and rolling up sale statuses
	_, err := c.AddFunc(cfg.Scheduler.CronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Scheduler.RunTimeout)
		defer cancel()

		result, err := reconciler.ReconcileAll(ctx, time.Now().In(cfg.SchedulerLocation()))
		if err != nil {
			log.WithError(err).Error("overdue reconciliation sweep failed")
			return
		}

		log.WithFields(logrus.Fields{
			"run_id":     result.RunID,
			"considered": len(result.Installments),
			"updated":    result.Updated,
		}).Info("overdue reconciliation sweep completed")
	})
	return err
}
