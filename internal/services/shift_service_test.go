package services

import (
	"errors"
	"testing"

	"restaurant_pos/internal/apperrors"
	"restaurant_pos/internal/models"
)

func seedEmployee(t *testing.T, env *testEnv, username string) uint {
	t.Helper()
	employee := &models.Employee{
		Username:     username,
		PasswordHash: "x",
		FullName:     username,
		Role:         string(models.RoleCashier),
		IsActive:     true,
	}
	if err := env.db.Create(employee).Error; err != nil {
		t.Fatalf("failed to seed employee: %v", err)
	}
	return employee.ID
}

func TestStartShift(t *testing.T) {
	env := setupTestEnv(t)

	shift, err := env.shiftService.StartShift(1, 1000)
	if err != nil {
		t.Fatalf("StartShift() error = %v", err)
	}
	if shift.Status != string(models.ShiftActive) || !almostEqual(shift.OpeningCash, 1000) {
		t.Errorf("shift = %s/%v, want active/1000", shift.Status, shift.OpeningCash)
	}

	_, err = env.shiftService.StartShift(1, 500)
	var conflict *apperrors.ConflictError
	if !errors.As(err, &conflict) {
		t.Errorf("second StartShift() error = %v, want ConflictError", err)
	}

	// A different employee can run their own drawer concurrently.
	other := seedEmployee(t, env, "cashier2")
	if _, err := env.shiftService.StartShift(other, 800); err != nil {
		t.Errorf("StartShift(other employee) error = %v", err)
	}

	third := seedEmployee(t, env, "cashier3")
	_, err = env.shiftService.StartShift(third, -50)
	var validation *apperrors.ValidationError
	if !errors.As(err, &validation) {
		t.Errorf("StartShift(negative) error = %v, want ValidationError", err)
	}
}

func TestEndShiftWithoutActive(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.shiftService.EndShift(1, 500)
	var conflict *apperrors.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("EndShift() error = %v, want ConflictError", err)
	}
}

// billOutCheck opens a check on the test table, settles it with one
// payment line, and returns the settled order.
func billOutCheck(t *testing.T, env *testEnv, shiftID uint, items []models.CartItem, method string, amount float64) *models.Order {
	t.Helper()

	if _, _, err := env.tableService.OpenCheck(env.table.ID, CreateOrderParams{
		Items:   items,
		ShiftID: &shiftID,
	}); err != nil {
		t.Fatalf("OpenCheck() error = %v", err)
	}
	result, err := env.tableService.BillOut(env.table.ID, BillOutParams{
		Payments:       []PaymentLine{{Method: method, Amount: amount}},
		AmountReceived: amount,
	})
	if err != nil {
		t.Fatalf("BillOut() error = %v", err)
	}
	return result.Order
}

func TestEndShiftReconciliation(t *testing.T) {
	env := setupTestEnv(t)

	shift, err := env.shiftService.StartShift(1, 1000)
	if err != nil {
		t.Fatalf("StartShift() error = %v", err)
	}

	// 2x Burger cash (total 324), 1x Soda card (total 54).
	billOutCheck(t, env, shift.ID, []models.CartItem{{Ref: productRef(env.burger.ID), Quantity: 2}}, string(models.PaymentCash), 400)
	billOutCheck(t, env, shift.ID, []models.CartItem{{Ref: productRef(env.soda.ID), Quantity: 1}}, string(models.PaymentCard), 54)

	closed, err := env.shiftService.EndShift(1, 1320)
	if err != nil {
		t.Fatalf("EndShift() error = %v", err)
	}
	if closed.Status != string(models.ShiftClosed) || closed.EndedAt == nil {
		t.Errorf("shift = %s/ended=%v, want closed with end time", closed.Status, closed.EndedAt)
	}
	// Card sales never touch the drawer.
	if closed.ExpectedCash == nil || !almostEqual(*closed.ExpectedCash, 1324) {
		t.Errorf("expected cash = %v, want 1324", closed.ExpectedCash)
	}
	if closed.Variance == nil || !almostEqual(*closed.Variance, -4) {
		t.Errorf("variance = %v, want -4", closed.Variance)
	}
}

func TestEndShiftCountsCashLinesOfSplitPayments(t *testing.T) {
	env := setupTestEnv(t)

	shift, err := env.shiftService.StartShift(1, 500)
	if err != nil {
		t.Fatalf("StartShift() error = %v", err)
	}

	// 2x Burger (total 324) settled 200 cash + 124 card.
	if _, _, err := env.tableService.OpenCheck(env.table.ID, CreateOrderParams{
		Items:   []models.CartItem{{Ref: productRef(env.burger.ID), Quantity: 2}},
		ShiftID: &shift.ID,
	}); err != nil {
		t.Fatalf("OpenCheck() error = %v", err)
	}
	if _, err := env.tableService.BillOut(env.table.ID, BillOutParams{
		Payments: []PaymentLine{
			{Method: string(models.PaymentCash), Amount: 200},
			{Method: string(models.PaymentCard), Amount: 124},
		},
		AmountReceived: 200,
	}); err != nil {
		t.Fatalf("BillOut() error = %v", err)
	}

	closed, err := env.shiftService.EndShift(1, 700)
	if err != nil {
		t.Fatalf("EndShift() error = %v", err)
	}
	if closed.ExpectedCash == nil || !almostEqual(*closed.ExpectedCash, 700) {
		t.Errorf("expected cash = %v, want 700 (500 opening + 200 cash line)", closed.ExpectedCash)
	}
	if closed.Variance == nil || !almostEqual(*closed.Variance, 0) {
		t.Errorf("variance = %v, want 0", closed.Variance)
	}
}

func TestShiftReport(t *testing.T) {
	env := setupTestEnv(t)

	shift, err := env.shiftService.StartShift(1, 1000)
	if err != nil {
		t.Fatalf("StartShift() error = %v", err)
	}

	billOutCheck(t, env, shift.ID, []models.CartItem{{Ref: productRef(env.burger.ID), Quantity: 2}}, string(models.PaymentCash), 400)
	billOutCheck(t, env, shift.ID, []models.CartItem{{Ref: productRef(env.soda.ID), Quantity: 1}}, string(models.PaymentCard), 54)

	report, err := env.shiftService.GetReport(shift.ID)
	if err != nil {
		t.Fatalf("GetReport() error = %v", err)
	}

	if report.OrderCount != 2 {
		t.Errorf("order count = %d, want 2", report.OrderCount)
	}
	if !almostEqual(report.TotalSales, 378) {
		t.Errorf("total sales = %v, want 378", report.TotalSales)
	}
	if !almostEqual(report.CashSales, 324) {
		t.Errorf("cash sales = %v, want 324", report.CashSales)
	}
	if !almostEqual(report.SalesByMethod[string(models.PaymentCash)], 324) ||
		!almostEqual(report.SalesByMethod[string(models.PaymentCard)], 54) {
		t.Errorf("sales by method = %v", report.SalesByMethod)
	}
	if !almostEqual(report.SalesByServiceType[string(models.ServiceDineIn)], 378) {
		t.Errorf("sales by service type = %v", report.SalesByServiceType)
	}

	if len(report.TopItems) != 2 {
		t.Fatalf("top items = %v, want 2 entries", report.TopItems)
	}
	if report.TopItems[0].Name != "Burger" || report.TopItems[0].Quantity != 2 {
		t.Errorf("top item = %+v, want Burger x2", report.TopItems[0])
	}
}

func TestShiftReportExcludesVoidedItems(t *testing.T) {
	env := setupTestEnv(t)

	shift, err := env.shiftService.StartShift(1, 0)
	if err != nil {
		t.Fatalf("StartShift() error = %v", err)
	}

	order, _, err := env.tableService.OpenCheck(env.table.ID, CreateOrderParams{
		Items: []models.CartItem{
			{Ref: productRef(env.burger.ID), Quantity: 1},
			{Ref: productRef(env.fries.ID), Quantity: 3},
		},
		ShiftID: &shift.ID,
	})
	if err != nil {
		t.Fatalf("OpenCheck() error = %v", err)
	}

	full, err := env.orderService.GetOrder(order.ID)
	if err != nil {
		t.Fatalf("GetOrder() error = %v", err)
	}
	for _, item := range full.Items {
		if item.ProductName == "Fries" {
			if _, err := env.orderService.AdjustItem(order.ID, item.ID, string(models.AdjustVoid), "wrong order", 1); err != nil {
				t.Fatalf("AdjustItem() error = %v", err)
			}
		}
	}
	if _, err := env.tableService.BillOut(env.table.ID, BillOutParams{
		Payments:       []PaymentLine{{Method: string(models.PaymentCash), Amount: 324}},
		AmountReceived: 324,
	}); err != nil {
		t.Fatalf("BillOut() error = %v", err)
	}

	report, err := env.shiftService.GetReport(shift.ID)
	if err != nil {
		t.Fatalf("GetReport() error = %v", err)
	}
	for _, item := range report.TopItems {
		if item.Name == "Fries" {
			t.Errorf("voided line leaked into top items: %+v", report.TopItems)
		}
	}
}

func TestShiftReportUnknownShift(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.shiftService.GetReport(99999)
	var notFound *apperrors.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("GetReport() error = %v, want NotFoundError", err)
	}
}
