package services

import (
	"errors"

	"restaurant_pos/internal/apperrors"
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/repository"

	"gorm.io/gorm"
)

// PaymentLine is one canonical settlement line. The handler resolves the
// single-method and split-payment request shapes into this before the
// service sees them.
type PaymentLine struct {
	Method    string  `json:"method"`
	Amount    float64 `json:"amount"`
	Reference string  `json:"reference"`
}

type BillOutParams struct {
	OrderID        *uint         `json:"order_id"`
	Payments       []PaymentLine `json:"payments"`
	AmountReceived float64       `json:"amount_received"`
	Discount       float64       `json:"discount"`
	CustomerID     *uint         `json:"customer_id"`
}

type BillOutResult struct {
	OrderNumber string        `json:"order_number"`
	Total       float64       `json:"total"`
	Change      float64       `json:"change"`
	Order       *models.Order `json:"order"`
	Table       *models.Table `json:"table"`
}

type TableService interface {
	OpenCheck(tableID uint, params CreateOrderParams) (*models.Order, *models.Table, error)
	AddItems(tableID uint, items []models.CartItem) (*models.Order, error)
	SplitCheck(tableID uint, itemIDs []uint) (*models.Order, *models.Order, error)
	BillOut(tableID uint, params BillOutParams) (*BillOutResult, error)
	UpdateStatus(tableID uint, status string) (*models.Table, error)
	GetTable(id uint) (*models.Table, error)
	GetAllTables() ([]models.Table, error)
}

type tableService struct {
	db           *gorm.DB
	tableRepo    repository.TableRepository
	builder      *orderBuilder
	notification NotificationService
}

func NewTableService(
	db *gorm.DB,
	tableRepo repository.TableRepository,
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	taxRate float64,
	notification NotificationService,
) TableService {
	return &tableService{
		db:        db,
		tableRepo: tableRepo,
		builder: &orderBuilder{
			orderRepo:     orderRepo,
			orderItemRepo: orderItemRepo,
			productRepo:   productRepo,
			customerRepo:  customerRepo,
			taxRate:       taxRate,
		},
		notification: notification,
	}
}

// OpenCheck starts a dine-in check: locks the table row, builds the
// order, and marks the table occupied. Two terminals racing on the same
// table serialize on the row lock; the loser sees it occupied.
func (s *tableService) OpenCheck(tableID uint, params CreateOrderParams) (*models.Order, *models.Table, error) {
	var order *models.Order
	var table *models.Table
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		table, err = s.tableRepo.WithTx(tx).GetByIDForUpdate(tableID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("table")
			}
			return err
		}
		if table.Status == string(models.TableOccupied) {
			return apperrors.NewConflict("table %s is occupied", table.TableNumber)
		}

		params.TableID = &table.ID
		params.ServiceType = string(models.ServiceDineIn)
		params.OrderType = string(models.OrderTypePOS)

		order, err = s.builder.buildOrder(tx, params)
		if err != nil {
			return err
		}

		table.Status = string(models.TableOccupied)
		table.CurrentOrderID = &order.ID
		return s.tableRepo.WithTx(tx).Update(table)
	})
	if err != nil {
		return nil, nil, err
	}
	return order, table, nil
}

// AddItems appends cart lines to the table's current open check and
// recomputes totals from the full active item set.
func (s *tableService) AddItems(tableID uint, items []models.CartItem) (*models.Order, error) {
	if err := validateCart(items); err != nil {
		return nil, err
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		table, err := s.tableRepo.WithTx(tx).GetByID(tableID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("table")
			}
			return err
		}
		if table.CurrentOrderID == nil {
			return apperrors.NewConflict("table %s has no open check", table.TableNumber)
		}

		order, err = s.builder.orderRepo.WithTx(tx).GetByID(*table.CurrentOrderID)
		if err != nil {
			return err
		}
		if order.Status != string(models.OrderOpen) {
			return apperrors.NewConflict("check %s is %s, not open", order.OrderNumber, order.Status)
		}

		if err := s.builder.appendItems(tx, order.ID, items); err != nil {
			return err
		}
		order, err = s.builder.recalcTotals(tx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// SplitCheck moves the selected items from the table's current check to
// a new child order. The table keeps pointing at the original check.
func (s *tableService) SplitCheck(tableID uint, itemIDs []uint) (*models.Order, *models.Order, error) {
	var original, split *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		table, err := s.tableRepo.WithTx(tx).GetByID(tableID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("table")
			}
			return err
		}
		if table.CurrentOrderID == nil {
			return apperrors.NewConflict("table %s has no open check", table.TableNumber)
		}

		order, err := s.builder.orderRepo.WithTx(tx).GetByID(*table.CurrentOrderID)
		if err != nil {
			return err
		}
		if order.Status != string(models.OrderOpen) {
			return apperrors.NewConflict("check %s is %s, not open", order.OrderNumber, order.Status)
		}

		original, split, err = s.builder.splitOrder(tx, order, itemIDs)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return original, split, nil
}

// BillOut settles an open check: applies the discount, records the
// settlement lines, handles credit purchases into the customer ledger,
// and frees the table or re-points it at a remaining open check.
func (s *tableService) BillOut(tableID uint, params BillOutParams) (*BillOutResult, error) {
	if len(params.Payments) == 0 {
		return nil, apperrors.NewValidation("at least one payment line is required")
	}
	if params.Discount < 0 {
		return nil, apperrors.NewValidation("discount cannot be negative")
	}

	var result *BillOutResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		tableRepo := s.tableRepo.WithTx(tx)
		orderRepo := s.builder.orderRepo.WithTx(tx)

		table, err := tableRepo.GetByIDForUpdate(tableID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("table")
			}
			return err
		}

		orderID := params.OrderID
		if orderID == nil {
			orderID = table.CurrentOrderID
		}
		if orderID == nil {
			return apperrors.NewConflict("table %s has no open check", table.TableNumber)
		}

		order, err := orderRepo.GetByID(*orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("order")
			}
			return err
		}
		if order.TableID == nil || *order.TableID != table.ID {
			return apperrors.NewNotFound("order")
		}
		if order.Status != string(models.OrderOpen) {
			return apperrors.NewConflict("check %s is %s, not open", order.OrderNumber, order.Status)
		}

		if params.CustomerID != nil && order.CustomerID == nil {
			order.CustomerID = params.CustomerID
		}
		order.Discount = params.Discount
		if err := orderRepo.Update(order); err != nil {
			return err
		}
		order, err = s.builder.recalcTotals(tx, order.ID)
		if err != nil {
			return err
		}

		if err := s.recordPayments(tx, order, params.Payments); err != nil {
			return err
		}

		order.Status = string(models.OrderReceived)
		order.PaymentStatus = "paid"
		if err := orderRepo.Update(order); err != nil {
			return err
		}

		change := 0.0
		for _, line := range params.Payments {
			if line.Method == string(models.PaymentCash) {
				// Change is amount received minus amount due. A negative
				// value means the caller tendered short; the terminal
				// owns that validation.
				change = round2(params.AmountReceived - order.Total)
				break
			}
		}

		if err := s.releaseOrRepointTable(tx, table, order.ID); err != nil {
			return err
		}

		result = &BillOutResult{
			OrderNumber: order.OrderNumber,
			Total:       order.Total,
			Change:      change,
			Order:       order,
			Table:       table,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notification != nil {
		s.notification.OrderBilledOut(result.Order)
	}
	return result, nil
}

// recordPayments writes one Payment row per settlement line and sets the
// order's effective method ("split" when more than one line). Credit
// lines top up the customer's balance and append a ledger entry.
func (s *tableService) recordPayments(tx *gorm.DB, order *models.Order, lines []PaymentLine) error {
	orderRepo := s.builder.orderRepo.WithTx(tx)

	if len(lines) == 1 {
		order.PaymentMethod = lines[0].Method
		order.PaymentRef = lines[0].Reference
	} else {
		order.PaymentMethod = string(models.PaymentSplit)
	}

	for _, line := range lines {
		if line.Amount <= 0 {
			return apperrors.NewValidation("payment amount must be positive")
		}
		payment := &models.Payment{
			OrderID:   order.ID,
			Method:    line.Method,
			Amount:    line.Amount,
			Reference: line.Reference,
		}
		if err := orderRepo.CreatePayment(payment); err != nil {
			return err
		}

		if line.Method == string(models.PaymentCredit) {
			if err := s.applyCreditPurchase(tx, order, line.Amount); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *tableService) applyCreditPurchase(tx *gorm.DB, order *models.Order, amount float64) error {
	if order.CustomerID == nil {
		return apperrors.NewValidation("credit payment requires a customer")
	}

	customerRepo := s.builder.customerRepo.WithTx(tx)
	customer, err := customerRepo.GetByID(*order.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("customer")
		}
		return err
	}

	customer.CreditBalance = round2(customer.CreditBalance + amount)
	if err := customerRepo.Update(customer); err != nil {
		return err
	}

	orderID := order.ID
	entry := &models.CustomerLedgerEntry{
		CustomerID:   customer.ID,
		OrderID:      &orderID,
		EntryType:    string(models.LedgerCreditPurchase),
		Amount:       amount,
		BalanceAfter: customer.CreditBalance,
	}
	return customerRepo.CreateLedgerEntry(entry)
}

// releaseOrRepointTable frees the table when the billed order was its
// last open check, otherwise moves the current pointer to one of the
// remaining open checks from an earlier split.
func (s *tableService) releaseOrRepointTable(tx *gorm.DB, table *models.Table, billedOrderID uint) error {
	remaining, err := s.builder.orderRepo.WithTx(tx).GetOpenByTableID(table.ID)
	if err != nil {
		return err
	}

	open := remaining[:0]
	for _, o := range remaining {
		if o.ID != billedOrderID {
			open = append(open, o)
		}
	}

	if len(open) == 0 {
		table.Status = string(models.TableAvailable)
		table.CurrentOrderID = nil
	} else {
		table.Status = string(models.TableOccupied)
		nextID := open[0].ID
		table.CurrentOrderID = &nextID
	}
	return s.tableRepo.WithTx(tx).Update(table)
}

// UpdateStatus is the ungated manual transition used by the cleaning and
// reservation workflows.
func (s *tableService) UpdateStatus(tableID uint, status string) (*models.Table, error) {
	if !models.ValidTableStatus(status) {
		return nil, apperrors.NewValidation("unknown table status: %s", status)
	}

	table, err := s.tableRepo.GetByID(tableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("table")
		}
		return nil, err
	}
	table.Status = status
	if err := s.tableRepo.Update(table); err != nil {
		return nil, err
	}
	return table, nil
}

func (s *tableService) GetTable(id uint) (*models.Table, error) {
	table, err := s.tableRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("table")
		}
		return nil, err
	}
	return table, nil
}

func (s *tableService) GetAllTables() ([]models.Table, error) {
	return s.tableRepo.GetAll()
}
