package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/crediario/credit-engine/internal/config"
	"github.com/crediario/credit-engine/internal/handler"
	"github.com/crediario/credit-engine/internal/repository"
	"github.com/crediario/credit-engine/internal/service"
	"github.com/crediario/credit-engine/pkg/logger"
	"github.com/crediario/credit-engine/pkg/response"
)

func main() {
	// Load .env before config so viper sees the variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	installmentRepo := repository.NewInstallmentRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	statusRepo := repository.NewStatusRepository(db)

	// Initialize services
	catalog := service.NewStatusCatalog(statusRepo, redisClient, cfg.Catalog.CacheTTL, log)
	reconciler := service.NewReconciliationService(installmentRepo, saleRepo, log)
	payments := service.NewPaymentService(installmentRepo, saleRepo, catalog, log)

	creditHandler := handler.NewCreditHandler(reconciler, payments)
	healthHandler := handler.NewHealthHandler(db, redisClient, cfg.Health.Timeout)

	// Setup routes
	router := setupRoutes(creditHandler, healthHandler, log)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Infof("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(creditHandler *handler.CreditHandler, healthHandler *handler.HealthHandler, log *logrus.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware(log))
	router.Use(response.CORSMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/installments", creditHandler.ListInstallments).Methods("GET")
	api.HandleFunc("/installments/payment", creditHandler.ApplyPayment).Methods("PATCH")
	api.HandleFunc("/installments/{id:[0-9]+}", creditHandler.GetInstallment).Methods("GET")

	return router
}
