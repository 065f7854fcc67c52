package main

import (
	"log"
	"time"

	"restaurant_pos/internal/config"
	"restaurant_pos/internal/database"
	"restaurant_pos/internal/handlers"
	"restaurant_pos/internal/migrations"
	"restaurant_pos/internal/redis"
	"restaurant_pos/internal/repository"
	"restaurant_pos/internal/services"
	"restaurant_pos/pkg/push"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := migrations.RunMigrations(db, cfg.DBReset); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize push client
	pushClient := push.NewClient(cfg.PushAPIURL, cfg.PushUsername, cfg.PushPassword)

	// Initialize repositories
	employeeRepo := repository.NewEmployeeRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	tableRepo := repository.NewTableRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	shiftRepo := repository.NewShiftRepository(db)

	// Initialize services
	employeeService := services.NewEmployeeService(employeeRepo, redisClient, time.Duration(cfg.SessionTimeout)*time.Second)
	customerService := services.NewCustomerService(customerRepo)
	notificationService := services.NewNotificationService(pushClient, customerRepo)
	orderService := services.NewOrderService(db, orderRepo, orderItemRepo, productRepo, customerRepo, cfg.TaxRate, notificationService)
	tableService := services.NewTableService(db, tableRepo, orderRepo, orderItemRepo, productRepo, customerRepo, cfg.TaxRate, notificationService)
	shiftService := services.NewShiftService(db, shiftRepo, orderRepo, orderItemRepo, redisClient, time.Duration(cfg.CacheTTL)*time.Second)

	// Initialize handlers
	posHandler := handlers.NewPOSHandler(tableService, orderService, shiftService)
	apiHandler := handlers.NewAPIHandler(employeeService, customerService, orderService, productRepo, tableRepo)

	// Setup routes
	router := gin.Default()

	router.POST("/api/login", apiHandler.Login)

	api := router.Group("/api")
	api.Use(handlers.AuthRequired(employeeService))
	{
		api.POST("/logout", apiHandler.Logout)

		// Table-check engine
		api.POST("/tables/:id/open-check", posHandler.OpenCheck)
		api.POST("/tables/:id/add-items", posHandler.AddItems)
		api.POST("/tables/:id/split-check", posHandler.SplitCheck)
		api.POST("/tables/:id/bill-out", posHandler.BillOut)
		api.PUT("/tables/:id/status", posHandler.UpdateTableStatus)
		api.POST("/orders/:id/items/:item_id/adjust", posHandler.AdjustItem)

		// Shifts
		api.POST("/shifts/start", posHandler.StartShift)
		api.POST("/shifts/end", posHandler.EndShift)
		api.GET("/shifts/:id/report", posHandler.ShiftReport)

		// Tables
		api.POST("/tables", apiHandler.CreateTable)
		api.GET("/tables", apiHandler.GetTables)
		api.GET("/tables/:id", apiHandler.GetTable)
		api.DELETE("/tables/:id", apiHandler.DeleteTable)

		// Catalog
		api.POST("/products", apiHandler.CreateProduct)
		api.GET("/products", apiHandler.GetProducts)
		api.GET("/products/:id", apiHandler.GetProduct)
		api.PUT("/products/:id", apiHandler.UpdateProduct)
		api.DELETE("/products/:id", apiHandler.DeleteProduct)
		api.POST("/combos", apiHandler.CreateCombo)
		api.GET("/combos", apiHandler.GetCombos)
		api.GET("/combos/:id", apiHandler.GetCombo)
		api.DELETE("/combos/:id", apiHandler.DeleteCombo)

		// Customers
		api.POST("/customers", apiHandler.CreateCustomer)
		api.GET("/customers", apiHandler.GetCustomers)
		api.GET("/customers/:id", apiHandler.GetCustomer)
		api.GET("/customers/:id/ledger", apiHandler.GetCustomerLedger)

		// Employees
		api.POST("/employees", apiHandler.CreateEmployee)
		api.GET("/employees", apiHandler.GetEmployees)
		api.GET("/employees/:id", apiHandler.GetEmployee)

		// Orders
		api.POST("/orders", apiHandler.CreateOrder)
		api.GET("/orders", apiHandler.GetOrders)
		api.GET("/orders/:id", apiHandler.GetOrder)
		api.GET("/orders/:id/payments", apiHandler.GetOrderPayments)
		api.GET("/orders/:id/adjustments", apiHandler.GetOrderAdjustments)
		api.PUT("/orders/:id/status", apiHandler.UpdateOrderStatus)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
