package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"jewel-backend/internal/auth"
	"jewel-backend/internal/billing"
	"jewel-backend/internal/cache"
	"jewel-backend/internal/config"
	"jewel-backend/internal/database"
	"jewel-backend/internal/db"
	"jewel-backend/internal/handlers"
	"jewel-backend/internal/health"
	h "jewel-backend/internal/http"
	"jewel-backend/internal/middleware"
	"jewel-backend/internal/repositories"
	"jewel-backend/internal/services"
	"jewel-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(cfg); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (rates served from database)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations
	// Uses embedded migrations for standalone binary operation
	log.Println("Running database migrations...")
	migrator := database.NewMigratorWithFS(pool, migrations.FS, ".")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	rateRepo := repositories.NewRateRepository(pool)
	billRepo := repositories.NewBillRepository(pool)
	exchangeRepo := repositories.NewExchangeRepository(pool)

	// Initialize the valuation engine with shop policy from config
	engine := billing.NewEngine(billing.Config{
		ShopDeductionPercent: cfg.Shop.ShopDeductionPercent,
		GSTOnMetalPercent:    cfg.Shop.GSTOnMetalPercent,
		GSTOnMakingPercent:   cfg.Shop.GSTOnMakingPercent,
		IntraStateDefault:    cfg.Shop.IntraState,
	})

	shop := services.ShopIdentity{
		Name:    cfg.Shop.Name,
		Prefix:  cfg.Shop.Prefix,
		GSTIN:   cfg.Shop.GSTIN,
		Address: cfg.Shop.Address,
		Phone:   cfg.Shop.Phone,
	}

	// Initialize services
	userService := services.NewUserService(userRepo, jwtManager)
	userService.ShopName = cfg.Shop.Name
	userService.ShopGSTIN = cfg.Shop.GSTIN
	rateService := services.NewRateService(rateRepo)
	billService := services.NewBillService(billRepo, customerRepo, exchangeRepo, rateService, engine, shop)
	exchangeService := services.NewExchangeService(exchangeRepo, customerRepo, rateService, engine, cfg.Shop.Prefix)
	reportService := services.NewReportService(pool)
	pdfService := services.NewPDFService(shop)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	rateHandler := handlers.NewRateHandler(rateService)
	billHandler := handlers.NewBillHandler(billService, pdfService)
	exchangeHandler := handlers.NewExchangeHandler(exchangeService)
	customerHandler := handlers.NewCustomerHandler(customerRepo)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	// Create router
	router := h.NewRouter(
		authHandler,
		rateHandler,
		billHandler,
		exchangeHandler,
		customerHandler,
		reportHandler,
		healthHandler,
		authMiddleware,
	)

	// Wrap with panic recovery and metrics middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s (shop: %s)", addr, cfg.Shop.Name)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
