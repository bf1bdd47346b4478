package database

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wekesa/tillpoint-api/internal/config"
	"github.com/wekesa/tillpoint-api/internal/domain/entity"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.Employee{},
		&entity.Product{},
		&entity.Customer{},
		&entity.Document{},
		&entity.DocumentItem{},
		&entity.Transaction{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with a default admin cashier and a few
// sample products so a fresh install has something to sell.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	var employeeCount int64
	if err := db.Model(&entity.Employee{}).Count(&employeeCount).Error; err != nil {
		return err
	}

	if employeeCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		admin := &entity.Employee{
			Name:         "Admin",
			Email:        "admin@tillpoint.local",
			PasswordHash: string(hash),
			Permissions:  []string{"pos.sell", "pos.discount", "pos.refund", "pos.manage-products"},
			IsActive:     true,
		}
		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin employee: %w", err)
		}
		log.Println("Seeded default admin employee (admin@tillpoint.local)")
	}

	var productCount int64
	if err := db.Model(&entity.Product{}).Count(&productCount).Error; err != nil {
		return err
	}

	if productCount == 0 {
		samples := []entity.Product{
			{Name: "Drinking Water 500ml", Code: "PROD-WTR500", Category: "Beverages", SellingPrice: 5000, Quantity: 100, IsActive: true},
			{Name: "White Bread", Code: "PROD-BRD001", Category: "Bakery", SellingPrice: 6500, Quantity: 40, IsActive: true},
			{Name: "Milk 1L", Code: "PROD-MLK001", Category: "Dairy", SellingPrice: 12000, Quantity: 60, IsActive: true},
		}
		if err := db.Create(&samples).Error; err != nil {
			return fmt.Errorf("failed to seed sample products: %w", err)
		}
		log.Println("Seeded sample products")
	}

	return nil
}
