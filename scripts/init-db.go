package main

import (
	"log"

	"restaurant_pos/internal/config"
	"restaurant_pos/internal/database"
	"restaurant_pos/internal/migrations"
	"restaurant_pos/internal/models"

	"gorm.io/gorm"
)

// Standalone seeder: migrates the schema and loads a starter catalog so
// a fresh install has something to sell.
func main() {
	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := migrations.RunMigrations(db, cfg.DBReset); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	if err := seedCatalog(db); err != nil {
		log.Fatal("Failed to seed catalog:", err)
	}

	log.Println("Database initialized successfully!")
}

func seedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Catalog already seeded")
		return nil
	}

	log.Println("Seeding starter catalog...")

	products := []models.Product{
		{Name: "Burger", Category: "mains", Price: 150, StockQuantity: 100, IsActive: true},
		{Name: "Fries", Category: "sides", Price: 60, StockQuantity: 200, IsActive: true},
		{Name: "Fried Chicken", Category: "mains", Price: 120, StockQuantity: 150, IsActive: true},
		{Name: "Iced Tea", Category: "drinks", Size: "regular", Price: 45, StockQuantity: 300, IsActive: true},
		{Name: "Soda", Category: "drinks", Size: "regular", Price: 50, StockQuantity: 300, IsActive: true},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			return err
		}
	}

	combo := &models.Combo{
		Name:     "Burger Meal",
		Price:    230,
		IsActive: true,
		Items: []models.ComboItem{
			{ProductID: products[0].ID, Quantity: 1},
			{ProductID: products[1].ID, Quantity: 1},
			{ProductID: products[4].ID, Quantity: 1},
		},
	}
	if err := db.Create(combo).Error; err != nil {
		return err
	}

	log.Printf("Seeded %d products and 1 combo", len(products))
	return nil
}
