package services

import (
	"errors"
	"math"

	"restaurant_pos/internal/apperrors"
	"restaurant_pos/internal/catalog"
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/repository"
	"restaurant_pos/pkg/ordernum"

	"gorm.io/gorm"
)

// How many times a colliding order number is regenerated before the
// create is surfaced as a failure.
const orderNumberAttempts = 3

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CustomerContact is the optional walk-in contact info on an order
// request. When no customer id is given, it drives upsert-by-contact.
type CustomerContact struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

type CreateOrderParams struct {
	Items       []models.CartItem `json:"items"`
	ServiceType string            `json:"service_type"`
	OrderType   string            `json:"order_type"`
	DeliveryFee float64           `json:"delivery_fee"`
	CustomerID  *uint             `json:"customer_id"`
	Customer    *CustomerContact  `json:"customer"`
	TableID     *uint             `json:"table_id"`
	ShiftID     *uint             `json:"shift_id"`
	Notes       string            `json:"notes"`
}

// orderBuilder holds the transactional order-construction logic shared
// by the order and table services. Every method takes the caller's
// transaction so multi-record mutations commit or roll back as one unit.
type orderBuilder struct {
	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
	productRepo   repository.ProductRepository
	customerRepo  repository.CustomerRepository
	taxRate       float64
}

func validateCart(items []models.CartItem) error {
	if len(items) == 0 {
		return apperrors.NewValidation("cart is empty")
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return apperrors.NewValidation("item quantity must be positive")
		}
	}
	return nil
}

// buildOrder creates an order header plus its items from a cart, deducts
// stock, resolves the customer, and computes the initial totals. Must be
// called inside a transaction.
func (b *orderBuilder) buildOrder(tx *gorm.DB, params CreateOrderParams) (*models.Order, error) {
	if err := validateCart(params.Items); err != nil {
		return nil, err
	}

	customerID, err := b.resolveCustomer(tx, params)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		CustomerID:  customerID,
		DeliveryFee: params.DeliveryFee,
		Status:      string(models.OrderOpen),
		OrderType:   params.OrderType,
		ServiceType: params.ServiceType,
		TableID:     params.TableID,
		ShiftID:     params.ShiftID,
		Notes:       params.Notes,
	}
	if order.OrderType == "" {
		order.OrderType = string(models.OrderTypePOS)
	}
	if order.ServiceType == "" {
		order.ServiceType = string(models.ServiceDineIn)
	}

	if err := b.createWithOrderNumber(tx, order); err != nil {
		return nil, err
	}

	if err := b.appendItems(tx, order.ID, params.Items); err != nil {
		return nil, err
	}

	return b.recalcTotals(tx, order.ID)
}

// createWithOrderNumber persists the order, regenerating the display
// token when the unique constraint rejects a collision.
func (b *orderBuilder) createWithOrderNumber(tx *gorm.DB, order *models.Order) error {
	orderRepo := b.orderRepo.WithTx(tx)
	var err error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order.OrderNumber = ordernum.Generate()
		err = orderRepo.Create(order)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return err
}

// appendItems resolves each cart line, writes the order items, and
// deducts stock for every constituent product.
func (b *orderBuilder) appendItems(tx *gorm.DB, orderID uint, items []models.CartItem) error {
	resolver := catalog.NewResolver(b.productRepo.WithTx(tx))
	orderItemRepo := b.orderItemRepo.WithTx(tx)
	productRepo := b.productRepo.WithTx(tx)

	for _, cartItem := range items {
		resolved, err := resolver.Resolve(cartItem.Ref)
		if err != nil {
			return err
		}

		unitPrice := cartItem.UnitPrice
		if unitPrice == 0 {
			unitPrice = resolved.UnitPrice
		}

		orderItem := &models.OrderItem{
			OrderID:     orderID,
			ProductID:   resolved.ProductID,
			ComboID:     resolved.ComboID,
			ProductName: resolved.Name,
			Size:        resolved.Size,
			Quantity:    cartItem.Quantity,
			UnitPrice:   unitPrice,
			Subtotal:    round2(unitPrice * float64(cartItem.Quantity)),
			Notes:       cartItem.Notes,
			Status:      string(models.ItemActive),
		}
		if err := orderItemRepo.Create(orderItem); err != nil {
			return err
		}

		for _, constituent := range resolved.Constituents {
			if err := productRepo.DeductStock(constituent.ProductID, constituent.Quantity*cartItem.Quantity); err != nil {
				return err
			}
		}
	}
	return nil
}

// recalcTotals recomputes subtotal/tax/total from the current active
// item set. Always a full recompute, never a delta: the operation is
// idempotent and self-healing against prior drift.
func (b *orderBuilder) recalcTotals(tx *gorm.DB, orderID uint) (*models.Order, error) {
	orderRepo := b.orderRepo.WithTx(tx)
	order, err := orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("order")
		}
		return nil, err
	}

	activeItems, err := b.orderItemRepo.WithTx(tx).GetActiveByOrderID(orderID)
	if err != nil {
		return nil, err
	}

	subtotal := 0.0
	for _, item := range activeItems {
		subtotal += item.Subtotal
	}

	order.Subtotal = round2(subtotal)
	order.Tax = round2(subtotal * b.taxRate)
	order.Total = round2(order.Subtotal + order.Tax + order.DeliveryFee - order.Discount)
	if order.Total < 0 {
		order.Total = 0
	}

	if err := orderRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

// restoreStockForItem puts back the stock a voided line deducted.
// Only direct product lines restock: a combo line is a register
// correction, and re-expanding it against a catalog that may have
// changed since sale time could restock the wrong products.
func (b *orderBuilder) restoreStockForItem(tx *gorm.DB, item *models.OrderItem) error {
	if item.ProductID == nil {
		return nil
	}
	return b.productRepo.WithTx(tx).RestoreStock(*item.ProductID, item.Quantity)
}

// splitOrder moves the given items off an open order onto a new child
// order and recomputes both. Partial id matches are rejected outright.
func (b *orderBuilder) splitOrder(tx *gorm.DB, order *models.Order, itemIDs []uint) (*models.Order, *models.Order, error) {
	if len(itemIDs) == 0 {
		return nil, nil, apperrors.NewValidation("no items selected for split")
	}

	items, err := b.orderItemRepo.WithTx(tx).GetByOrderID(order.ID)
	if err != nil {
		return nil, nil, err
	}
	owned := make(map[uint]bool, len(items))
	for _, item := range items {
		owned[item.ID] = true
	}
	for _, id := range itemIDs {
		if !owned[id] {
			return nil, nil, apperrors.NewValidation("item %d does not belong to order %s", id, order.OrderNumber)
		}
	}

	parentID := order.ID
	splitOrder := &models.Order{
		CustomerID:    order.CustomerID,
		Status:        string(models.OrderOpen),
		OrderType:     order.OrderType,
		ServiceType:   order.ServiceType,
		TableID:       order.TableID,
		ShiftID:       order.ShiftID,
		ParentOrderID: &parentID,
	}
	if err := b.createWithOrderNumber(tx, splitOrder); err != nil {
		return nil, nil, err
	}

	if err := b.orderItemRepo.WithTx(tx).ReassignOrder(itemIDs, splitOrder.ID); err != nil {
		return nil, nil, err
	}

	original, err := b.recalcTotals(tx, order.ID)
	if err != nil {
		return nil, nil, err
	}
	split, err := b.recalcTotals(tx, splitOrder.ID)
	if err != nil {
		return nil, nil, err
	}
	return original, split, nil
}

// resolveCustomer returns the customer id for an order: the explicit id
// when given, otherwise upsert-by-contact (email first, then phone).
func (b *orderBuilder) resolveCustomer(tx *gorm.DB, params CreateOrderParams) (*uint, error) {
	customerRepo := b.customerRepo.WithTx(tx)

	if params.CustomerID != nil {
		customer, err := customerRepo.GetByID(*params.CustomerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NewNotFound("customer")
			}
			return nil, err
		}
		return &customer.ID, nil
	}

	contact := params.Customer
	if contact == nil || (contact.Email == "" && contact.PhoneNumber == "") {
		return nil, nil
	}

	var existing *models.Customer
	var err error
	if contact.Email != "" {
		existing, err = customerRepo.GetByEmail(contact.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if existing == nil && contact.PhoneNumber != "" {
		existing, err = customerRepo.GetByPhone(contact.PhoneNumber)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if existing != nil {
		if contact.FullName != "" {
			existing.FullName = contact.FullName
		}
		if contact.Email != "" {
			existing.Email = contact.Email
		}
		if contact.PhoneNumber != "" {
			existing.PhoneNumber = contact.PhoneNumber
		}
		if contact.Address != "" {
			existing.Address = contact.Address
		}
		if err := customerRepo.Update(existing); err != nil {
			return nil, err
		}
		return &existing.ID, nil
	}

	customer := &models.Customer{
		FullName:    contact.FullName,
		Email:       contact.Email,
		PhoneNumber: contact.PhoneNumber,
		Address:     contact.Address,
	}
	if err := customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return &customer.ID, nil
}
