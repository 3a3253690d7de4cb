package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/murithi/rentledger/internal/config"
	"github.com/murithi/rentledger/internal/handler"
	"github.com/murithi/rentledger/internal/metrics"
	"github.com/murithi/rentledger/internal/repository"
	"github.com/murithi/rentledger/internal/service"
	"github.com/murithi/rentledger/pkg/response"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
)

func main() {
	// .env is optional; viper reads the environment either way
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

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
	houseRepo := repository.NewHouseRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	occupancyRepo := repository.NewOccupancyRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Initialize services
	txManager := repository.NewTxManager(db)
	ledgerService := service.NewLedgerService(txManager, houseRepo, tenantRepo, occupancyRepo, invoiceRepo, paymentRepo, notificationRepo, redisClient, cfg)
	statsService := service.NewStatsService(houseRepo, invoiceRepo, paymentRepo, redisClient, cfg)
	reportService := service.NewReportService(paymentRepo)
	registryService := service.NewRegistryService(houseRepo, tenantRepo, occupancyRepo)

	// Initialize handlers
	paymentHandler := handler.NewPaymentHandler(ledgerService, reportService)
	houseHandler := handler.NewHouseHandler(registryService, ledgerService)
	tenantHandler := handler.NewTenantHandler(registryService)
	statsHandler := handler.NewStatsHandler(statsService, reportService)
	healthHandler := handler.NewHealthHandler(db, redisClient, cfg.GetHealthTimeout())

	// Setup routes
	router := setupRoutes(paymentHandler, houseHandler, tenantHandler, statsHandler, healthHandler)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.GetAllowedOrigins(),
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(router)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      corsHandler,
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.GetConnMaxLifetime())

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(
	paymentHandler *handler.PaymentHandler,
	houseHandler *handler.HouseHandler,
	tenantHandler *handler.TenantHandler,
	statsHandler *handler.StatsHandler,
	healthHandler *handler.HealthHandler,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware)
	router.Use(metrics.Middleware)

	// Health check and metrics
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/payments", paymentHandler.Record).Methods("POST")
	api.HandleFunc("/payments", paymentHandler.List).Methods("GET")
	api.HandleFunc("/payments/{id}/receipt", paymentHandler.Receipt).Methods("GET")

	api.HandleFunc("/houses", houseHandler.Create).Methods("POST")
	api.HandleFunc("/houses", houseHandler.List).Methods("GET")
	api.HandleFunc("/houses/{id}/ledger/{year}", houseHandler.Ledger).Methods("GET")
	api.HandleFunc("/houses/{id}/tenants", houseHandler.AssignTenant).Methods("POST")
	api.HandleFunc("/houses/{id}/tenants/{tenantId}", houseHandler.EndAssignment).Methods("DELETE")

	api.HandleFunc("/tenants", tenantHandler.Create).Methods("POST")
	api.HandleFunc("/tenants", tenantHandler.List).Methods("GET")
	api.HandleFunc("/tenants/{id}", tenantHandler.Remove).Methods("DELETE")

	api.HandleFunc("/stats", statsHandler.Stats).Methods("GET")
	api.HandleFunc("/reports/{granularity}", statsHandler.Report).Methods("GET")

	return router
}
