package services

import (
	"errors"
	"testing"

	"restaurant_pos/internal/apperrors"
	"restaurant_pos/internal/models"
)

func TestCreateOrderWithCombo(t *testing.T) {
	env := setupTestEnv(t)

	order, err := env.orderService.CreateOrder(CreateOrderParams{
		Items:       []models.CartItem{{Ref: comboRef(env.combo.ID), Quantity: 2}},
		ServiceType: string(models.ServicePickUp),
		OrderType:   string(models.OrderTypeOnline),
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}

	if len(order.Items) != 1 {
		t.Fatalf("order has %d items, want 1 combo line", len(order.Items))
	}
	line := order.Items[0]
	if line.ComboID == nil || *line.ComboID != env.combo.ID {
		t.Errorf("line combo_id = %v, want %d", line.ComboID, env.combo.ID)
	}
	if line.ProductID != nil {
		t.Errorf("combo line product_id = %v, want nil", *line.ProductID)
	}
	if line.ProductName != "Burger Meal" || !almostEqual(line.UnitPrice, 230) {
		t.Errorf("line = %s @%v, want Burger Meal @230", line.ProductName, line.UnitPrice)
	}
	if !almostEqual(order.Subtotal, 460) || !almostEqual(order.Tax, 36.80) || !almostEqual(order.Total, 496.80) {
		t.Errorf("totals = %v/%v/%v, want 460/36.80/496.80", order.Subtotal, order.Tax, order.Total)
	}

	// Each combo deducts every constituent once.
	if got := env.productStock(t, env.burger.ID); got != 98 {
		t.Errorf("burger stock = %d, want 98", got)
	}
	if got := env.productStock(t, env.fries.ID); got != 48 {
		t.Errorf("fries stock = %d, want 48", got)
	}
	if got := env.productStock(t, env.soda.ID); got != 78 {
		t.Errorf("soda stock = %d, want 78", got)
	}
}

func TestCreateOrderUnknownItem(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.orderService.CreateOrder(CreateOrderParams{
		Items: []models.CartItem{{Ref: productRef(99999), Quantity: 1}},
	})
	var notFound *apperrors.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("CreateOrder() error = %v, want NotFoundError", err)
	}
}

func TestCreateOrderPriceOverride(t *testing.T) {
	env := setupTestEnv(t)

	order, err := env.orderService.CreateOrder(CreateOrderParams{
		Items: []models.CartItem{{Ref: productRef(env.burger.ID), Quantity: 1, UnitPrice: 100}},
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	if !almostEqual(order.Items[0].UnitPrice, 100) || !almostEqual(order.Subtotal, 100) {
		t.Errorf("unit price/subtotal = %v/%v, want 100/100", order.Items[0].UnitPrice, order.Subtotal)
	}
}

func TestCreateOrderDeliveryFeeInTotal(t *testing.T) {
	env := setupTestEnv(t)

	order, err := env.orderService.CreateOrder(CreateOrderParams{
		Items:       []models.CartItem{{Ref: productRef(env.burger.ID), Quantity: 1}},
		ServiceType: string(models.ServiceDelivery),
		DeliveryFee: 49,
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	// 150 + 12 tax + 49 fee
	if !almostEqual(order.Total, 211) {
		t.Errorf("total = %v, want 211", order.Total)
	}
}

func TestCreateOrderCustomerUpsertByContact(t *testing.T) {
	env := setupTestEnv(t)

	first, err := env.orderService.CreateOrder(CreateOrderParams{
		Items:    []models.CartItem{{Ref: productRef(env.burger.ID), Quantity: 1}},
		Customer: &CustomerContact{FullName: "Miguel Reyes", PhoneNumber: "0917123456"},
	})
	if err != nil {
		t.Fatalf("first CreateOrder() error = %v", err)
	}
	if first.CustomerID == nil {
		t.Fatal("first order has no customer")
	}

	// Same phone with an added email updates the same customer row.
	second, err := env.orderService.CreateOrder(CreateOrderParams{
		Items:    []models.CartItem{{Ref: productRef(env.fries.ID), Quantity: 1}},
		Customer: &CustomerContact{FullName: "Miguel Reyes", PhoneNumber: "0917123456", Email: "miguel@example.com"},
	})
	if err != nil {
		t.Fatalf("second CreateOrder() error = %v", err)
	}
	if second.CustomerID == nil || *second.CustomerID != *first.CustomerID {
		t.Errorf("second order customer = %v, want %v (reused)", second.CustomerID, first.CustomerID)
	}

	var customer models.Customer
	if err := env.db.First(&customer, *first.CustomerID).Error; err != nil {
		t.Fatalf("failed to reload customer: %v", err)
	}
	if customer.Email != "miguel@example.com" {
		t.Errorf("customer email = %q, want miguel@example.com", customer.Email)
	}

	var count int64
	if err := env.db.Model(&models.Customer{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count customers: %v", err)
	}
	if count != 1 {
		t.Errorf("customer rows = %d, want 1", count)
	}
}

func TestCreateOrderUnknownCustomerID(t *testing.T) {
	env := setupTestEnv(t)

	missing := uint(99999)
	_, err := env.orderService.CreateOrder(CreateOrderParams{
		Items:      []models.CartItem{{Ref: productRef(env.burger.ID), Quantity: 1}},
		CustomerID: &missing,
	})
	var notFound *apperrors.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("CreateOrder() error = %v, want NotFoundError", err)
	}
}

func TestStockClampsAtZero(t *testing.T) {
	env := setupTestEnv(t)

	order, err := env.orderService.CreateOrder(CreateOrderParams{
		Items: []models.CartItem{{Ref: productRef(env.fries.ID), Quantity: 75}},
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	// Seeded with 50; overselling floors the counter instead of going negative.
	if got := env.productStock(t, env.fries.ID); got != 0 {
		t.Errorf("fries stock = %d, want 0", got)
	}
	if !almostEqual(order.Subtotal, 4500) {
		t.Errorf("subtotal = %v, want 4500 (sale still recorded in full)", order.Subtotal)
	}
}

func TestAdjustItemValidation(t *testing.T) {
	env := setupTestEnv(t)

	order, err := env.orderService.CreateOrder(CreateOrderParams{
		Items: []models.CartItem{{Ref: productRef(env.burger.ID), Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	itemID := order.Items[0].ID

	tests := []struct {
		name           string
		adjustmentType string
		reason         string
	}{
		{name: "empty reason", adjustmentType: string(models.AdjustVoid), reason: ""},
		{name: "unknown type", adjustmentType: "discount", reason: "manager said so"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.orderService.AdjustItem(order.ID, itemID, tt.adjustmentType, tt.reason, 1)
			var validation *apperrors.ValidationError
			if !errors.As(err, &validation) {
				t.Errorf("AdjustItem() error = %v, want ValidationError", err)
			}
		})
	}

	_, err = env.orderService.AdjustItem(order.ID, 99999, string(models.AdjustVoid), "typo", 1)
	var notFound *apperrors.NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("AdjustItem(missing item) error = %v, want NotFoundError", err)
	}

	// An item id from another order must not be reachable through this one.
	other, err := env.orderService.CreateOrder(CreateOrderParams{
		Items: []models.CartItem{{Ref: productRef(env.soda.ID), Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder(other) error = %v", err)
	}
	_, err = env.orderService.AdjustItem(order.ID, other.Items[0].ID, string(models.AdjustVoid), "typo", 1)
	if !errors.As(err, &notFound) {
		t.Errorf("AdjustItem(foreign item) error = %v, want NotFoundError", err)
	}
}

func TestAdjustItemDoubleAdjustConflicts(t *testing.T) {
	env := setupTestEnv(t)

	order, err := env.orderService.CreateOrder(CreateOrderParams{
		Items: []models.CartItem{{Ref: productRef(env.burger.ID), Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	itemID := order.Items[0].ID

	if _, err := env.orderService.AdjustItem(order.ID, itemID, string(models.AdjustVoid), "wrong order", 1); err != nil {
		t.Fatalf("first AdjustItem() error = %v", err)
	}

	_, err = env.orderService.AdjustItem(order.ID, itemID, string(models.AdjustComp), "regular", 1)
	var conflict *apperrors.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("second AdjustItem() error = %v, want ConflictError", err)
	}
}

func TestCompKeepsStockAndWritesAudit(t *testing.T) {
	env := setupTestEnv(t)

	order, err := env.orderService.CreateOrder(CreateOrderParams{
		Items: []models.CartItem{
			{Ref: productRef(env.burger.ID), Quantity: 1},
			{Ref: productRef(env.soda.ID), Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	var burgerItem models.OrderItem
	for _, item := range order.Items {
		if item.ProductName == "Burger" {
			burgerItem = item
		}
	}

	adjusted, err := env.orderService.AdjustItem(order.ID, burgerItem.ID, string(models.AdjustComp), "spilled drink apology", 1)
	if err != nil {
		t.Fatalf("AdjustItem() error = %v", err)
	}

	// The dish was still made and served: stock stays deducted.
	if got := env.productStock(t, env.burger.ID); got != 99 {
		t.Errorf("burger stock = %d, want 99 (not restored on comp)", got)
	}
	if !almostEqual(adjusted.Subtotal, 50) {
		t.Errorf("subtotal after comp = %v, want 50 (soda only)", adjusted.Subtotal)
	}

	adjustments, err := env.orderService.GetOrderAdjustments(order.ID)
	if err != nil {
		t.Fatalf("GetOrderAdjustments() error = %v", err)
	}
	if len(adjustments) != 1 {
		t.Fatalf("adjustments = %d, want 1", len(adjustments))
	}
	audit := adjustments[0]
	if audit.AdjustmentType != string(models.AdjustComp) || audit.Reason != "spilled drink apology" {
		t.Errorf("audit = %s/%q", audit.AdjustmentType, audit.Reason)
	}
	if !almostEqual(audit.OriginalAmount, 150) || audit.AdjustedBy != 1 {
		t.Errorf("audit amount/actor = %v/%d, want 150/1", audit.OriginalAmount, audit.AdjustedBy)
	}
}

func TestVoidComboLineDoesNotRestock(t *testing.T) {
	env := setupTestEnv(t)

	order, err := env.orderService.CreateOrder(CreateOrderParams{
		Items: []models.CartItem{{Ref: comboRef(env.combo.ID), Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}

	if _, err := env.orderService.AdjustItem(order.ID, order.Items[0].ID, string(models.AdjustVoid), "wrong order", 1); err != nil {
		t.Fatalf("AdjustItem() error = %v", err)
	}

	// Constituents stay deducted: the catalog may have changed since the
	// sale, so a combo void never re-expands.
	if got := env.productStock(t, env.burger.ID); got != 99 {
		t.Errorf("burger stock = %d, want 99", got)
	}
	if got := env.productStock(t, env.fries.ID); got != 49 {
		t.Errorf("fries stock = %d, want 49", got)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	env := setupTestEnv(t)

	order, err := env.orderService.CreateOrder(CreateOrderParams{
		Items: []models.CartItem{{Ref: productRef(env.burger.ID), Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}

	updated, err := env.orderService.UpdateStatus(order.ID, string(models.OrderPreparing))
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if updated.Status != string(models.OrderPreparing) {
		t.Errorf("status = %s, want preparing", updated.Status)
	}

	_, err = env.orderService.UpdateStatus(order.ID, "lost")
	var validation *apperrors.ValidationError
	if !errors.As(err, &validation) {
		t.Errorf("UpdateStatus(lost) error = %v, want ValidationError", err)
	}
}
