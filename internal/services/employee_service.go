package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"restaurant_pos/internal/apperrors"
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/redis"
	"restaurant_pos/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type EmployeeService interface {
	CreateEmployee(employee *models.Employee, password string) error
	GetEmployeeByID(id uint) (*models.Employee, error)
	GetAllEmployees() ([]models.Employee, error)
	UpdateEmployee(employee *models.Employee) error
	DeleteEmployee(id uint) error
	Login(username, password string) (string, *models.Employee, error)
	Logout(token string) error
	ResolveSession(token string) (*redis.SessionData, error)
}

type employeeService struct {
	employeeRepo   repository.EmployeeRepository
	sessions       *redis.Client
	sessionTimeout time.Duration
}

func NewEmployeeService(employeeRepo repository.EmployeeRepository, sessions *redis.Client, sessionTimeout time.Duration) EmployeeService {
	return &employeeService{
		employeeRepo:   employeeRepo,
		sessions:       sessions,
		sessionTimeout: sessionTimeout,
	}
}

func (s *employeeService) CreateEmployee(employee *models.Employee, password string) error {
	if employee.Username == "" || password == "" {
		return apperrors.NewValidation("username and password are required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	employee.PasswordHash = string(hashedPassword)

	return s.employeeRepo.Create(employee)
}

func (s *employeeService) GetEmployeeByID(id uint) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("employee")
		}
		return nil, err
	}
	return employee, nil
}

func (s *employeeService) GetAllEmployees() ([]models.Employee, error) {
	return s.employeeRepo.GetAll()
}

func (s *employeeService) UpdateEmployee(employee *models.Employee) error {
	return s.employeeRepo.Update(employee)
}

func (s *employeeService) DeleteEmployee(id uint) error {
	return s.employeeRepo.Delete(id)
}

// Login verifies credentials and issues a redis-backed bearer token.
func (s *employeeService) Login(username, password string) (string, *models.Employee, error) {
	employee, err := s.employeeRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return "", nil, err
	}
	if !employee.IsActive {
		return "", nil, apperrors.NewUnauthorized("employee account is inactive")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, err := generateToken()
	if err != nil {
		return "", nil, err
	}

	session := &redis.SessionData{
		EmployeeID: employee.ID,
		Username:   employee.Username,
		Role:       employee.Role,
		CreatedAt:  time.Now(),
	}
	if err := s.sessions.SetSession(token, session, s.sessionTimeout); err != nil {
		return "", nil, fmt.Errorf("failed to store session: %w", err)
	}

	return token, employee, nil
}

func (s *employeeService) Logout(token string) error {
	return s.sessions.DeleteSession(token)
}

func (s *employeeService) ResolveSession(token string) (*redis.SessionData, error) {
	session, err := s.sessions.GetSession(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid or expired session")
	}
	return session, nil
}

func generateToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
