package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"dealerdesk-backend/internal/config"
	"dealerdesk-backend/internal/jobs"
	"dealerdesk-backend/internal/logger"
	"dealerdesk-backend/internal/payment"
	"dealerdesk-backend/internal/repository/postgres"
	"dealerdesk-backend/internal/scheduler"
	"dealerdesk-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'expire-memberships', 'all-nightly', 'all-monthly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting DealerDesk Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	// Initialize Payment Provider
	var provider payment.Provider
	switch cfg.Payment.Provider {
	case "", "mock":
		provider = payment.NewMockProvider(fmt.Sprintf("http://%s", cfg.GetServerAddress()))
	default:
		logger.Error("Unsupported payment provider", "provider", cfg.Payment.Provider)
		log.Fatalf("Payment provider '%s' not yet implemented", cfg.Payment.Provider)
	}

	// Initialize Services
	emailService := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	membershipService := service.NewMembershipService(
		store.MembershipRepository,
		store.VehicleRepository,
		store.ProfileRepository,
		provider,
		emailService,
	)

	jobServices := &jobs.Services{
		Email:      emailService,
		Membership: membershipService,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(db, store, jobServices, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "expire-memberships":
		jobRunner.ExpireMemberships()
	case "send-expiry-reminders":
		jobRunner.SendExpiryReminders()
	case "cancel-stale-payments":
		jobRunner.CancelStalePaymentOrders()
	case "accrue-monthly-bonus-pools":
		jobRunner.AccrueMonthlyBonusPools()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	case "all-hourly":
		jobRunner.RunAllHourlyJobs()
	case "all-monthly":
		jobRunner.RunAllMonthlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - expire-memberships\n")
		fmt.Printf("  - send-expiry-reminders\n")
		fmt.Printf("  - cancel-stale-payments\n")
		fmt.Printf("  - accrue-monthly-bonus-pools\n")
		fmt.Printf("  - all-nightly\n")
		fmt.Printf("  - all-hourly\n")
		fmt.Printf("  - all-monthly\n")
		os.Exit(1)
	}
}
