package services

import (
	"fmt"
	"log"

	"kirana/internal/models"
	"kirana/internal/repositories"
	"kirana/pkg/rabbitmq"
)

// OrderService handles reading, deleting and confirming placed orders.
// Every admin-gated operation re-checks the actor's admin flag here, at the
// point of execution; the route middleware is not the only guard.
type OrderService struct {
	orderRepo repositories.OrderRepository
	events    EventPublisher
}

// NewOrderService creates a new OrderService. events may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, events EventPublisher) *OrderService {
	return &OrderService{orderRepo: orderRepo, events: events}
}

// ListByUser retrieves the caller's own orders, newest first.
func (s *OrderService) ListByUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// ListAll retrieves every order for the admin dashboard.
func (s *OrderService) ListAll(actor *models.User) ([]models.Order, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}
	return s.orderRepo.GetAll()
}

// Delete removes an order. Allowed for the owning user and for admins.
func (s *OrderService) Delete(actor *models.User, orderID string) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order.UserID != actor.ID && !actor.IsAdmin {
		return fmt.Errorf("order %s belongs to another user: %w", orderID, ErrForbidden)
	}
	if err := s.orderRepo.Delete(orderID); err != nil {
		return err
	}
	s.publish(rabbitmq.EventOrderDeleted, order)
	return nil
}

// Confirm transitions an order from Pending to confirmed. Admin only.
// Confirming an already-confirmed order is a no-op that returns the stored
// order unchanged, so a double-click never surfaces a spurious error.
func (s *OrderService) Confirm(actor *models.User, orderID string) (*models.Order, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == models.OrderStatusConfirmed {
		return order, nil
	}

	order.Status = models.OrderStatusConfirmed
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	s.publish(rabbitmq.EventOrderConfirmed, order)
	return order, nil
}

func (s *OrderService) publish(eventType string, order *models.Order) {
	if s.events == nil {
		return
	}
	err := s.events.PublishOrderEvent(rabbitmq.OrderEvent{
		Type:       eventType,
		OrderID:    order.OrderID,
		UserID:     order.UserID,
		Status:     order.Status,
		GrandTotal: order.GrandTotal,
	})
	if err != nil {
		log.Printf("Warning: failed to publish %s for order %s: %v", eventType, order.OrderID, err)
	}
}
