package repository

import (
	"restaurant_pos/internal/models"

	"gorm.io/gorm"
)

type OrderItemRepository interface {
	WithTx(tx *gorm.DB) OrderItemRepository
	Create(item *models.OrderItem) error
	GetByID(id uint) (*models.OrderItem, error)
	GetByOrderID(orderID uint) ([]models.OrderItem, error)
	GetActiveByOrderID(orderID uint) ([]models.OrderItem, error)
	Update(item *models.OrderItem) error
	ReassignOrder(itemIDs []uint, newOrderID uint) error
	CreateAdjustment(adjustment *models.OrderItemAdjustment) error
	GetAdjustmentsByOrderID(orderID uint) ([]models.OrderItemAdjustment, error)
}

type orderItemRepository struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &orderItemRepository{db: db}
}

func (r *orderItemRepository) WithTx(tx *gorm.DB) OrderItemRepository {
	return &orderItemRepository{db: tx}
}

func (r *orderItemRepository) Create(item *models.OrderItem) error {
	return r.db.Create(item).Error
}

func (r *orderItemRepository) GetByID(id uint) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *orderItemRepository) GetByOrderID(orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.Where("order_id = ?", orderID).Order("id asc").Find(&items).Error
	return items, err
}

func (r *orderItemRepository) GetActiveByOrderID(orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.Where("order_id = ? AND status = ?", orderID, string(models.ItemActive)).
		Order("id asc").Find(&items).Error
	return items, err
}

func (r *orderItemRepository) Update(item *models.OrderItem) error {
	return r.db.Save(item).Error
}

// ReassignOrder moves ownership of the given items to another order.
// Items are moved, never copied.
func (r *orderItemRepository) ReassignOrder(itemIDs []uint, newOrderID uint) error {
	return r.db.Model(&models.OrderItem{}).
		Where("id IN ?", itemIDs).
		Update("order_id", newOrderID).Error
}

func (r *orderItemRepository) CreateAdjustment(adjustment *models.OrderItemAdjustment) error {
	return r.db.Create(adjustment).Error
}

func (r *orderItemRepository) GetAdjustmentsByOrderID(orderID uint) ([]models.OrderItemAdjustment, error) {
	var adjustments []models.OrderItemAdjustment
	err := r.db.Where("order_id = ?", orderID).Order("id asc").Find(&adjustments).Error
	return adjustments, err
}
