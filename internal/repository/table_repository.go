package repository

import (
	"restaurant_pos/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TableRepository interface {
	WithTx(tx *gorm.DB) TableRepository
	Create(table *models.Table) error
	GetByID(id uint) (*models.Table, error)
	GetByIDForUpdate(id uint) (*models.Table, error)
	GetAll() ([]models.Table, error)
	Update(table *models.Table) error
	Delete(id uint) error
}

type tableRepository struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) WithTx(tx *gorm.DB) TableRepository {
	return &tableRepository{db: tx}
}

func (r *tableRepository) Create(table *models.Table) error {
	return r.db.Create(table).Error
}

func (r *tableRepository) GetByID(id uint) (*models.Table, error) {
	var table models.Table
	err := r.db.First(&table, id).Error
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// GetByIDForUpdate takes a row-level exclusive lock on the table so
// concurrent open-check/bill-out calls on the same table serialize.
// SQLite has no FOR UPDATE; its single-writer model already serializes
// those paths there.
func (r *tableRepository) GetByIDForUpdate(id uint) (*models.Table, error) {
	q := r.db
	if q.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var table models.Table
	err := q.First(&table, id).Error
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *tableRepository) GetAll() ([]models.Table, error) {
	var tables []models.Table
	err := r.db.Order("table_number asc").Find(&tables).Error
	return tables, err
}

func (r *tableRepository) Update(table *models.Table) error {
	return r.db.Save(table).Error
}

func (r *tableRepository) Delete(id uint) error {
	return r.db.Delete(&models.Table{}, id).Error
}
