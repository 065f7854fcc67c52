package services

import (
	"errors"

	"restaurant_pos/internal/apperrors"
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/repository"

	"gorm.io/gorm"
)

type CustomerService interface {
	CreateCustomer(customer *models.Customer) error
	GetCustomerByID(id uint) (*models.Customer, error)
	GetAllCustomers() ([]models.Customer, error)
	UpdateCustomer(customer *models.Customer) error
	DeleteCustomer(id uint) error
	GetLedger(customerID uint) ([]models.CustomerLedgerEntry, error)
	VerifyLedgerBalance(customerID uint) (bool, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) CreateCustomer(customer *models.Customer) error {
	if customer.FullName == "" {
		return apperrors.NewValidation("customer name is required")
	}
	return s.customerRepo.Create(customer)
}

func (s *customerService) GetCustomerByID(id uint) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("customer")
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) GetAllCustomers() ([]models.Customer, error) {
	return s.customerRepo.GetAll()
}

func (s *customerService) UpdateCustomer(customer *models.Customer) error {
	return s.customerRepo.Update(customer)
}

func (s *customerService) DeleteCustomer(id uint) error {
	return s.customerRepo.Delete(id)
}

func (s *customerService) GetLedger(customerID uint) ([]models.CustomerLedgerEntry, error) {
	return s.customerRepo.GetLedgerEntries(customerID)
}

// VerifyLedgerBalance asserts the running credit balance equals the sum
// of all ledger deltas for the customer.
func (s *customerService) VerifyLedgerBalance(customerID uint) (bool, error) {
	customer, err := s.GetCustomerByID(customerID)
	if err != nil {
		return false, err
	}
	sum, err := s.customerRepo.SumLedgerAmounts(customerID)
	if err != nil {
		return false, err
	}
	return round2(sum) == round2(customer.CreditBalance), nil
}
