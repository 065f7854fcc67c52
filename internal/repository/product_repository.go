package repository

import (
	"restaurant_pos/internal/models"

	"gorm.io/gorm"
)

type ProductRepository interface {
	WithTx(tx *gorm.DB) ProductRepository
	Create(product *models.Product) error
	GetByID(id uint) (*models.Product, error)
	GetAll() ([]models.Product, error)
	Update(product *models.Product) error
	Delete(id uint) error
	DeductStock(productID uint, quantity int) error
	RestoreStock(productID uint, quantity int) error
	CreateCombo(combo *models.Combo) error
	GetComboByID(id uint) (*models.Combo, error)
	GetAllCombos() ([]models.Combo, error)
	UpdateCombo(combo *models.Combo) error
	DeleteCombo(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepository{db: tx}
}

func (r *productRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Find(&products).Error
	return products, err
}

func (r *productRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// DeductStock applies a clamped decrement in a single statement so
// concurrent deductions can never drive stock below zero.
func (r *productRepository) DeductStock(productID uint, quantity int) error {
	return r.db.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock_quantity",
			gorm.Expr("CASE WHEN stock_quantity >= ? THEN stock_quantity - ? ELSE 0 END", quantity, quantity)).
		Error
}

func (r *productRepository) RestoreStock(productID uint, quantity int) error {
	return r.db.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", quantity)).
		Error
}

func (r *productRepository) CreateCombo(combo *models.Combo) error {
	return r.db.Create(combo).Error
}

func (r *productRepository) GetComboByID(id uint) (*models.Combo, error) {
	var combo models.Combo
	err := r.db.Preload("Items").First(&combo, id).Error
	if err != nil {
		return nil, err
	}
	return &combo, nil
}

func (r *productRepository) GetAllCombos() ([]models.Combo, error) {
	var combos []models.Combo
	err := r.db.Preload("Items").Find(&combos).Error
	return combos, err
}

func (r *productRepository) UpdateCombo(combo *models.Combo) error {
	return r.db.Save(combo).Error
}

func (r *productRepository) DeleteCombo(id uint) error {
	return r.db.Delete(&models.Combo{}, id).Error
}
