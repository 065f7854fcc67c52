package services

import (
	"errors"
	"log"
	"sort"
	"time"

	"restaurant_pos/internal/apperrors"
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/redis"
	"restaurant_pos/internal/repository"

	"gorm.io/gorm"
)

type ShiftReportItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type ShiftReport struct {
	ShiftID            uint               `json:"shift_id"`
	EmployeeID         uint               `json:"employee_id"`
	Status             string             `json:"status"`
	OpeningCash        float64            `json:"opening_cash"`
	ClosingCash        *float64           `json:"closing_cash"`
	ExpectedCash       *float64           `json:"expected_cash"`
	Variance           *float64           `json:"variance"`
	TotalSales         float64            `json:"total_sales"`
	CashSales          float64            `json:"cash_sales"`
	OrderCount         int                `json:"order_count"`
	SalesByMethod      map[string]float64 `json:"sales_by_method"`
	SalesByServiceType map[string]float64 `json:"sales_by_service_type"`
	TopItems           []ShiftReportItem  `json:"top_items"`
	Orders             []models.Order     `json:"orders"`
}

type ShiftService interface {
	StartShift(employeeID uint, openingCash float64) (*models.Shift, error)
	EndShift(employeeID uint, closingCash float64) (*models.Shift, error)
	GetShift(id uint) (*models.Shift, error)
	GetActiveShift(employeeID uint) (*models.Shift, error)
	GetAllShifts() ([]models.Shift, error)
	GetReport(shiftID uint) (*ShiftReport, error)
}

type shiftService struct {
	db            *gorm.DB
	shiftRepo     repository.ShiftRepository
	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
	cache         *redis.Client
	cacheTTL      time.Duration
}

func NewShiftService(
	db *gorm.DB,
	shiftRepo repository.ShiftRepository,
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
) ShiftService {
	return &shiftService{
		db:            db,
		shiftRepo:     shiftRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		cache:         cache,
		cacheTTL:      cacheTTL,
	}
}

// StartShift opens cash-drawer custody for an employee. One active shift
// per employee at a time.
func (s *shiftService) StartShift(employeeID uint, openingCash float64) (*models.Shift, error) {
	if openingCash < 0 {
		return nil, apperrors.NewValidation("opening cash cannot be negative")
	}

	var shift *models.Shift
	err := s.db.Transaction(func(tx *gorm.DB) error {
		shiftRepo := s.shiftRepo.WithTx(tx)

		existing, err := shiftRepo.GetActiveByEmployeeID(employeeID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if existing != nil {
			return apperrors.NewConflict("employee already has an active shift")
		}

		shift = &models.Shift{
			EmployeeID:  employeeID,
			OpeningCash: openingCash,
			Status:      string(models.ShiftActive),
			StartedAt:   time.Now(),
		}
		return shiftRepo.Create(shift)
	})
	if err != nil {
		return nil, err
	}
	return shift, nil
}

// EndShift reconciles the drawer: expected cash is opening cash plus the
// shift's cash-method sales, variance is what the employee counted minus
// that expectation.
func (s *shiftService) EndShift(employeeID uint, closingCash float64) (*models.Shift, error) {
	var shift *models.Shift
	err := s.db.Transaction(func(tx *gorm.DB) error {
		shiftRepo := s.shiftRepo.WithTx(tx)

		var err error
		shift, err = shiftRepo.GetActiveByEmployeeID(employeeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewConflict("employee has no active shift")
			}
			return err
		}

		orders, err := s.orderRepo.WithTx(tx).GetByShiftID(shift.ID)
		if err != nil {
			return err
		}
		cashSales, err := s.cashSales(tx, orders)
		if err != nil {
			return err
		}

		expected := round2(shift.OpeningCash + cashSales)
		variance := round2(closingCash - expected)
		now := time.Now()

		shift.ClosingCash = &closingCash
		shift.ExpectedCash = &expected
		shift.Variance = &variance
		shift.Status = string(models.ShiftClosed)
		shift.EndedAt = &now
		return shiftRepo.Update(shift)
	})
	if err != nil {
		return nil, err
	}
	return shift, nil
}

// cashSales sums the cash takings across a shift's orders. Split
// settlements contribute only their cash lines.
func (s *shiftService) cashSales(tx *gorm.DB, orders []models.Order) (float64, error) {
	orderRepo := s.orderRepo.WithTx(tx)

	total := 0.0
	for _, order := range orders {
		switch order.PaymentMethod {
		case string(models.PaymentCash):
			total += order.Total
		case string(models.PaymentSplit):
			payments, err := orderRepo.GetPaymentsByOrderID(order.ID)
			if err != nil {
				return 0, err
			}
			for _, p := range payments {
				if p.Method == string(models.PaymentCash) {
					total += p.Amount
				}
			}
		}
	}
	return round2(total), nil
}

func (s *shiftService) GetShift(id uint) (*models.Shift, error) {
	shift, err := s.shiftRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("shift")
		}
		return nil, err
	}
	return shift, nil
}

func (s *shiftService) GetActiveShift(employeeID uint) (*models.Shift, error) {
	shift, err := s.shiftRepo.GetActiveByEmployeeID(employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("active shift")
		}
		return nil, err
	}
	return shift, nil
}

func (s *shiftService) GetAllShifts() ([]models.Shift, error) {
	return s.shiftRepo.GetAll()
}

// GetReport is the read-only shift view: totals by method and service
// type, the top sellers, and the full order listing. Closed-shift
// reports are cached briefly.
func (s *shiftService) GetReport(shiftID uint) (*ShiftReport, error) {
	if s.cache != nil {
		var cached ShiftReport
		if err := s.cache.GetShiftReport(shiftID, &cached); err == nil {
			return &cached, nil
		}
	}

	shift, err := s.GetShift(shiftID)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.GetByShiftID(shift.ID)
	if err != nil {
		return nil, err
	}

	report := &ShiftReport{
		ShiftID:            shift.ID,
		EmployeeID:         shift.EmployeeID,
		Status:             shift.Status,
		OpeningCash:        shift.OpeningCash,
		ClosingCash:        shift.ClosingCash,
		ExpectedCash:       shift.ExpectedCash,
		Variance:           shift.Variance,
		OrderCount:         len(orders),
		SalesByMethod:      make(map[string]float64),
		SalesByServiceType: make(map[string]float64),
		Orders:             orders,
	}

	itemQuantities := make(map[string]int)
	for _, order := range orders {
		report.TotalSales = round2(report.TotalSales + order.Total)
		if order.PaymentMethod != "" {
			report.SalesByMethod[order.PaymentMethod] = round2(report.SalesByMethod[order.PaymentMethod] + order.Total)
		}
		report.SalesByServiceType[order.ServiceType] = round2(report.SalesByServiceType[order.ServiceType] + order.Total)

		items, err := s.orderItemRepo.GetByOrderID(order.ID)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			// Voided lines were never served; comped lines were.
			if item.Status == string(models.ItemVoided) {
				continue
			}
			itemQuantities[item.ProductName] += item.Quantity
		}
	}

	cashSales, err := s.cashSales(s.db, orders)
	if err != nil {
		return nil, err
	}
	report.CashSales = cashSales

	for name, qty := range itemQuantities {
		report.TopItems = append(report.TopItems, ShiftReportItem{Name: name, Quantity: qty})
	}
	sort.Slice(report.TopItems, func(i, j int) bool {
		if report.TopItems[i].Quantity != report.TopItems[j].Quantity {
			return report.TopItems[i].Quantity > report.TopItems[j].Quantity
		}
		return report.TopItems[i].Name < report.TopItems[j].Name
	})
	if len(report.TopItems) > 10 {
		report.TopItems = report.TopItems[:10]
	}

	if s.cache != nil && shift.Status == string(models.ShiftClosed) {
		// Cache failures never block the report.
		if err := s.cache.SetShiftReport(shiftID, report, s.cacheTTL); err != nil {
			log.Printf("Warning: failed to cache shift report: %v", err)
		}
	}

	return report, nil
}
