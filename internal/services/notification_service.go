package services

import (
	"errors"
	"fmt"
	"log"

	"restaurant_pos/internal/models"
	"restaurant_pos/internal/repository"
	"restaurant_pos/pkg/push"

	"gorm.io/gorm"
)

// NotificationService sends best-effort pushes. Nothing here is part of
// any transactional contract: failures are logged and swallowed.
type NotificationService interface {
	OrderBilledOut(order *models.Order)
	OrderReady(order *models.Order)
}

type notificationService struct {
	client       *push.Client
	customerRepo repository.CustomerRepository
}

func NewNotificationService(client *push.Client, customerRepo repository.CustomerRepository) NotificationService {
	return &notificationService{client: client, customerRepo: customerRepo}
}

func (s *notificationService) OrderBilledOut(order *models.Order) {
	message := fmt.Sprintf("Thanks for dining with us! Order %s settled, total %.2f.", order.OrderNumber, order.Total)
	go s.send(order, "Receipt", message)
}

func (s *notificationService) OrderReady(order *models.Order) {
	message := fmt.Sprintf("Order %s is ready for pick-up.", order.OrderNumber)
	go s.send(order, "Order ready", message)
}

func (s *notificationService) send(order *models.Order, title, message string) {
	if order.CustomerID == nil {
		return
	}
	customer, err := s.customerRepo.GetByID(*order.CustomerID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Warning: failed to load customer for push: %v", err)
		}
		return
	}
	if customer.PhoneNumber == "" {
		return
	}

	if _, err := s.client.Send(customer.PhoneNumber, title, message); err != nil {
		log.Printf("Warning: push for order %s failed: %v", order.OrderNumber, err)
	}
}
