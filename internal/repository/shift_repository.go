package repository

import (
	"restaurant_pos/internal/models"

	"gorm.io/gorm"
)

type ShiftRepository interface {
	WithTx(tx *gorm.DB) ShiftRepository
	Create(shift *models.Shift) error
	GetByID(id uint) (*models.Shift, error)
	GetActiveByEmployeeID(employeeID uint) (*models.Shift, error)
	GetAll() ([]models.Shift, error)
	Update(shift *models.Shift) error
}

type shiftRepository struct {
	db *gorm.DB
}

func NewShiftRepository(db *gorm.DB) ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) WithTx(tx *gorm.DB) ShiftRepository {
	return &shiftRepository{db: tx}
}

func (r *shiftRepository) Create(shift *models.Shift) error {
	return r.db.Create(shift).Error
}

func (r *shiftRepository) GetByID(id uint) (*models.Shift, error) {
	var shift models.Shift
	err := r.db.First(&shift, id).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) GetActiveByEmployeeID(employeeID uint) (*models.Shift, error) {
	var shift models.Shift
	err := r.db.Where("employee_id = ? AND status = ?", employeeID, string(models.ShiftActive)).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) GetAll() ([]models.Shift, error) {
	var shifts []models.Shift
	err := r.db.Order("id desc").Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepository) Update(shift *models.Shift) error {
	return r.db.Save(shift).Error
}
