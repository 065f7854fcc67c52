package services

import (
	"errors"

	"restaurant_pos/internal/apperrors"
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/repository"

	"gorm.io/gorm"
)

type OrderService interface {
	CreateOrder(params CreateOrderParams) (*models.Order, error)
	GetOrder(id uint) (*models.Order, error)
	GetAllOrders() ([]models.Order, error)
	GetOrderPayments(orderID uint) ([]models.Payment, error)
	GetOrderAdjustments(orderID uint) ([]models.OrderItemAdjustment, error)
	AdjustItem(orderID, itemID uint, adjustmentType, reason string, adjustedBy uint) (*models.Order, error)
	UpdateStatus(orderID uint, status string) (*models.Order, error)
}

type orderService struct {
	db           *gorm.DB
	builder      *orderBuilder
	notification NotificationService
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	taxRate float64,
	notification NotificationService,
) OrderService {
	return &orderService{
		db: db,
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

// CreateOrder builds a standalone (online / pick-up / delivery) order.
// Dine-in checks go through the table service instead.
func (s *orderService) CreateOrder(params CreateOrderParams) (*models.Order, error) {
	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.builder.buildOrder(tx, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.GetOrder(order.ID)
}

func (s *orderService) GetOrder(id uint) (*models.Order, error) {
	order, err := s.builder.orderRepo.GetWithItems(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("order")
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetAllOrders() ([]models.Order, error) {
	return s.builder.orderRepo.GetAll()
}

func (s *orderService) GetOrderPayments(orderID uint) ([]models.Payment, error) {
	return s.builder.orderRepo.GetPaymentsByOrderID(orderID)
}

func (s *orderService) GetOrderAdjustments(orderID uint) ([]models.OrderItemAdjustment, error) {
	return s.builder.orderItemRepo.GetAdjustmentsByOrderID(orderID)
}

// AdjustItem transitions one active line to voided or comped, writes the
// append-only audit record, restores stock on void, and recomputes the
// order from its remaining active items.
func (s *orderService) AdjustItem(orderID, itemID uint, adjustmentType, reason string, adjustedBy uint) (*models.Order, error) {
	if reason == "" {
		return nil, apperrors.NewValidation("adjustment reason is required")
	}
	switch models.AdjustmentType(adjustmentType) {
	case models.AdjustVoid, models.AdjustComp:
	default:
		return nil, apperrors.NewValidation("adjustment type must be void or comp")
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		orderItemRepo := s.builder.orderItemRepo.WithTx(tx)

		item, err := orderItemRepo.GetByID(itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("order item")
			}
			return err
		}
		if item.OrderID != orderID {
			return apperrors.NewNotFound("order item")
		}
		if item.Status != string(models.ItemActive) {
			return apperrors.NewConflict("item is already %s", item.Status)
		}

		adjustment := &models.OrderItemAdjustment{
			OrderID:        orderID,
			OrderItemID:    item.ID,
			AdjustmentType: adjustmentType,
			Reason:         reason,
			OriginalAmount: item.Subtotal,
			AdjustedBy:     adjustedBy,
		}
		if err := orderItemRepo.CreateAdjustment(adjustment); err != nil {
			return err
		}

		if adjustmentType == string(models.AdjustVoid) {
			item.Status = string(models.ItemVoided)
			if err := s.builder.restoreStockForItem(tx, item); err != nil {
				return err
			}
		} else {
			item.Status = string(models.ItemComped)
		}
		if err := orderItemRepo.Update(item); err != nil {
			return err
		}

		order, err = s.builder.recalcTotals(tx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.GetOrder(order.ID)
}

// UpdateStatus moves an order through the kitchen lifecycle
// (received/preparing/completed and so on). No table involvement.
func (s *orderService) UpdateStatus(orderID uint, status string) (*models.Order, error) {
	switch models.OrderStatus(status) {
	case models.OrderOpen, models.OrderReceived, models.OrderPreparing,
		models.OrderCompleted, models.OrderRefunded, models.OrderVoided:
	default:
		return nil, apperrors.NewValidation("unknown order status: %s", status)
	}

	order, err := s.builder.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("order")
		}
		return nil, err
	}
	order.Status = status
	if err := s.builder.orderRepo.Update(order); err != nil {
		return nil, err
	}

	if status == string(models.OrderCompleted) && s.notification != nil {
		s.notification.OrderReady(order)
	}
	return s.GetOrder(order.ID)
}
