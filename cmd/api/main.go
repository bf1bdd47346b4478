package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wekesa/tillpoint-api/internal/application/service"
	"github.com/wekesa/tillpoint-api/internal/config"
	"github.com/wekesa/tillpoint-api/internal/domain/entity"
	"github.com/wekesa/tillpoint-api/internal/infrastructure/database"
	"github.com/wekesa/tillpoint-api/internal/infrastructure/repository"
	"github.com/wekesa/tillpoint-api/internal/presentation/http/handler"
	"github.com/wekesa/tillpoint-api/internal/presentation/http/routes"
	"github.com/wekesa/tillpoint-api/pkg/email"
	"github.com/wekesa/tillpoint-api/pkg/printer"
	"github.com/wekesa/tillpoint-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	employeeRepo := repository.NewEmployeeRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	cartStore := repository.NewMemoryCartStore(time.Duration(cfg.App.CartTTLHours) * time.Hour)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUser,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromAddress,
	})

	// Receipt header printed on every receipt
	header := entity.ReceiptHeader{
		StoreName:  cfg.App.StoreName,
		Address:    cfg.App.StoreAddress,
		Phone:      cfg.App.StorePhone,
		FooterNote: cfg.App.ReceiptNote,
	}

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	authService := service.NewAuthService(employeeRepo, jwtManager)
	catalogService := service.NewCatalogService(productRepo)
	cartService := service.NewCartService(cartStore, productRepo)
	checkoutService := service.NewCheckoutService(
		cartStore,
		productRepo,
		customerRepo,
		documentRepo,
		transactionRepo,
		header,
		cfg.App.Currency,
	)
	receiptService := service.NewReceiptService(thermalPrinter, emailService, documentRepo, header, cfg.Printer.Type)
	customerService := service.NewCustomerService(customerRepo)
	salesService := service.NewSalesService(documentRepo, transactionRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Product:  handler.NewProductHandler(catalogService),
		Cart:     handler.NewCartHandler(cartService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Receipt:  handler.NewReceiptHandler(receiptService),
		Customer: handler.NewCustomerHandler(customerService),
		Sales:    handler.NewSalesHandler(salesService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
