package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/murithi/rentledger/internal/config"
	"github.com/murithi/rentledger/internal/repository"
	"github.com/murithi/rentledger/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

func main() {
	log.Println("Starting rent ledger scheduler...")

	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	houseRepo := repository.NewHouseRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	occupancyRepo := repository.NewOccupancyRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// No Redis here: scheduler jobs write through to the database only
	txManager := repository.NewTxManager(db)
	ledgerService := service.NewLedgerService(txManager, houseRepo, tenantRepo, occupancyRepo, invoiceRepo, paymentRepo, notificationRepo, nil, cfg)

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatalf("Invalid scheduler timezone: %v", err)
	}

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds(), cron.WithLocation(location))

	// Schedule tasks
	setupCronJobs(c, ledgerService)

	// Start the scheduler
	c.Start()
	log.Println("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	c.Stop()
	log.Println("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, ledger *service.LedgerService) {
	// Monthly job to create the new month's invoices (1st at 00:05)
	_, err := c.AddFunc("0 5 0 1 * *", func() {
		log.Println("Running monthly invoice generation job...")
		generateMonthlyInvoices(ledger)
	})
	if err != nil {
		log.Printf("Error scheduling invoice generation job: %v", err)
	}

	// Daily job to notify tenants of overdue invoices (9 AM)
	_, err = c.AddFunc("0 0 9 * * *", func() {
		log.Println("Running daily overdue notice job...")
		sendOverdueNotices(ledger)
	})
	if err != nil {
		log.Printf("Error scheduling overdue notice job: %v", err)
	}

	log.Println("Cron jobs scheduled successfully")
}

func generateMonthlyInvoices(ledger *service.LedgerService) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := time.Now()
	created, err := ledger.GenerateMonthlyInvoices(ctx, now.Year(), int(now.Month()))
	if err != nil {
		log.Printf("Invoice generation failed: %v", err)
		return
	}
	log.Printf("Created %d new invoices for occupied houses", created)
}

func sendOverdueNotices(ledger *service.LedgerService) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	sent, err := ledger.SendOverdueNotices(ctx)
	if err != nil {
		log.Printf("Overdue notice job failed: %v", err)
		return
	}
	log.Printf("Sent %d overdue notices", sent)
}
