package services

import (
	"math"
	"testing"

	"restaurant_pos/internal/migrations"
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the services against an in-memory SQLite database.
// MaxOpenConns(1) keeps every connection on the same memory store.
type testEnv struct {
	db           *gorm.DB
	tableService TableService
	orderService OrderService
	shiftService ShiftService

	burger *models.Product
	fries  *models.Product
	soda   *models.Product
	combo  *models.Combo
	table  *models.Table
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(db, false); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	env := &testEnv{db: db}

	env.burger = &models.Product{Name: "Burger", Price: 150, StockQuantity: 100, IsActive: true}
	env.fries = &models.Product{Name: "Fries", Price: 60, StockQuantity: 50, IsActive: true}
	env.soda = &models.Product{Name: "Soda", Price: 50, StockQuantity: 80, IsActive: true}
	for _, p := range []*models.Product{env.burger, env.fries, env.soda} {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("failed to seed product: %v", err)
		}
	}

	env.combo = &models.Combo{
		Name:     "Burger Meal",
		Price:    230,
		IsActive: true,
		Items: []models.ComboItem{
			{ProductID: env.burger.ID, Quantity: 1},
			{ProductID: env.fries.ID, Quantity: 1},
			{ProductID: env.soda.ID, Quantity: 1},
		},
	}
	if err := db.Create(env.combo).Error; err != nil {
		t.Fatalf("failed to seed combo: %v", err)
	}

	// The migrations seed the dining floor; pick T5 out of it.
	env.table = &models.Table{}
	if err := db.Where("table_number = ?", "T5").First(env.table).Error; err != nil {
		t.Fatalf("failed to load seeded table: %v", err)
	}

	tableRepo := repository.NewTableRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	shiftRepo := repository.NewShiftRepository(db)

	env.orderService = NewOrderService(db, orderRepo, orderItemRepo, productRepo, customerRepo, 0.08, nil)
	env.tableService = NewTableService(db, tableRepo, orderRepo, orderItemRepo, productRepo, customerRepo, 0.08, nil)
	env.shiftService = NewShiftService(db, shiftRepo, orderRepo, orderItemRepo, nil, 0)

	return env
}

func (e *testEnv) productStock(t *testing.T, id uint) int {
	t.Helper()
	var product models.Product
	if err := e.db.First(&product, id).Error; err != nil {
		t.Fatalf("failed to reload product %d: %v", id, err)
	}
	return product.StockQuantity
}

func (e *testEnv) reloadTable(t *testing.T) *models.Table {
	t.Helper()
	var table models.Table
	if err := e.db.First(&table, e.table.ID).Error; err != nil {
		t.Fatalf("failed to reload table: %v", err)
	}
	return &table
}

func productRef(id uint) models.ItemRef {
	return models.ItemRef{Kind: string(models.RefProduct), ID: id}
}

func comboRef(id uint) models.ItemRef {
	return models.ItemRef{Kind: string(models.RefCombo), ID: id}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}
