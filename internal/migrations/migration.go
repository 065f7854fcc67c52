package migrations

import (
	"fmt"
	"log"

	"restaurant_pos/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunMigrations migrates the schema and seeds default data. When reset
// is set, all tables are dropped first (development only).
func RunMigrations(db *gorm.DB, reset bool) error {
	log.Println("Running database migrations...")

	allModels := []interface{}{
		&models.Employee{},
		&models.Customer{},
		&models.CustomerLedgerEntry{},
		&models.Product{},
		&models.Combo{},
		&models.ComboItem{},
		&models.Table{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemAdjustment{},
		&models.Payment{},
		&models.Shift{},
	}

	if reset {
		log.Println("Dropping existing tables...")
		if err := db.Migrator().DropTable(allModels...); err != nil {
			log.Printf("Warning: Error dropping tables: %v", err)
		}
	}

	if err := db.AutoMigrate(allModels...); err != nil {
		return err
	}

	if err := createDefaultData(db); err != nil {
		log.Printf("Warning: Failed to create default data: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

// createDefaultData seeds the admin account and the dining floor.
func createDefaultData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Employee{}).Where("username = ?", "admin").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Admin employee already exists")
		return nil
	}

	log.Println("Creating admin employee...")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.Employee{
		Username:     "admin",
		PasswordHash: string(hashedPassword),
		FullName:     "Administrator",
		Role:         string(models.RoleAdmin),
		IsActive:     true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	log.Println("Admin employee created (username: admin, password: admin123)")

	log.Println("Creating dining tables...")
	for i := 1; i <= 10; i++ {
		table := &models.Table{
			TableNumber: fmt.Sprintf("T%d", i),
			Capacity:    4,
			Section:     "main",
			Status:      string(models.TableAvailable),
		}
		if err := db.Create(table).Error; err != nil {
			return err
		}
	}

	log.Println("Default data created successfully!")
	return nil
}
