package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "dealerdesk-backend/internal/api/http"
	"dealerdesk-backend/internal/config"
	"dealerdesk-backend/internal/logger"
	"dealerdesk-backend/internal/payment"
	"dealerdesk-backend/internal/repository/postgres"
	"dealerdesk-backend/internal/security"
	"dealerdesk-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting DealerDesk Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Payment Provider
	var provider payment.Provider
	switch cfg.Payment.Provider {
	case "", "mock":
		logger.Info("Using mock payment provider")
		provider = payment.NewMockProvider(fmt.Sprintf("http://%s", cfg.GetServerAddress()))
	default:
		logger.Error("Unsupported payment provider", "provider", cfg.Payment.Provider)
		log.Fatalf("Payment provider '%s' not yet implemented", cfg.Payment.Provider)
	}

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)

	// Initialize Services
	authSvc := service.NewAuthService(store.ProfileRepository, store.DealershipRepository, tokenManager)
	dealershipSvc := service.NewDealershipService(store.DealershipRepository, store.ProfileRepository, emailSvc)
	vehicleSvc := service.NewVehicleService(
		store.VehicleRepository,
		store.DealershipRepository,
		store.ProfileRepository,
		store.ProfitRuleRepository,
		store.BonusRepository,
	)
	ruleSvc := service.NewProfitRuleService(store.ProfitRuleRepository, store.ProfileRepository)
	membershipSvc := service.NewMembershipService(
		store.MembershipRepository,
		store.VehicleRepository,
		store.ProfileRepository,
		provider,
		emailSvc,
	)
	feedbackSvc := service.NewFeedbackService(store.FeedbackRepository, store.ProfileRepository, emailSvc)
	expenseSvc := service.NewExpenseService(store.ExpenseRepository, store.ProfileRepository)
	bonusSvc := service.NewBonusService(store.BonusRepository, store.ProfileRepository)

	// Initialize HTTP handlers
	handlers := httpapi.Handlers{
		Auth:       httpapi.NewAuthHandler(authSvc),
		Dealership: httpapi.NewDealershipHandler(dealershipSvc),
		Vehicle:    httpapi.NewVehicleHandler(vehicleSvc),
		ProfitRule: httpapi.NewProfitRuleHandler(ruleSvc),
		Membership: httpapi.NewMembershipHandler(membershipSvc, provider),
		Feedback:   httpapi.NewFeedbackHandler(feedbackSvc),
		Expense:    httpapi.NewExpenseHandler(expenseSvc),
		Bonus:      httpapi.NewBonusHandler(bonusSvc),
	}

	router := httpapi.NewRouter(handlers, tokenManager)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start HTTP server
	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
