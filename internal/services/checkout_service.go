package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"kirana/internal/models"
	"kirana/internal/pricing"
	"kirana/internal/repositories"
	"kirana/pkg/rabbitmq"
)

// EditSession marks a checkout that rewrites an existing order in place
// instead of creating a new one. It is passed in explicitly; there is no
// ambient edit-mode state.
type EditSession struct {
	OrderID string
}

// CheckoutInput carries one checkout attempt. PhoneNumber and HomeAddress
// are the values supplied when the workflow prompted for missing contact
// info; they are empty otherwise.
type CheckoutInput struct {
	Items       []models.LineItem
	PhoneNumber string
	HomeAddress string
	Edit        *EditSession
}

// CheckoutService turns a draft bill into a persisted order, or rewrites an
// order under an edit session. The step order is load-bearing: the profile
// update commits before the order write so an order is never created
// against a stale profile, and the cart is cleared only after the order
// write succeeds.
type CheckoutService struct {
	orderRepo repositories.OrderRepository
	carts     *CartService
	users     *UserService
	events    EventPublisher
}

// NewCheckoutService creates a new CheckoutService. events may be nil.
func NewCheckoutService(orderRepo repositories.OrderRepository, carts *CartService, users *UserService, events EventPublisher) *CheckoutService {
	return &CheckoutService{
		orderRepo: orderRepo,
		carts:     carts,
		users:     users,
		events:    events,
	}
}

// Checkout runs the checkout state machine for user. Any failure before the
// order write leaves the cart and all orders untouched.
func (s *CheckoutService) Checkout(user *models.User, in CheckoutInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyCart
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item %q: %w", item.ItemName, ErrInvalidQuantity)
		}
	}

	// Contact info gate. Supplied values are validated and persisted before
	// anything else is written; if nothing was supplied and the profile is
	// incomplete, the workflow suspends and asks the caller for both values.
	supplied := strings.TrimSpace(in.PhoneNumber) != "" || strings.TrimSpace(in.HomeAddress) != ""
	if supplied {
		updated, err := s.users.UpdateContact(user.ID, in.PhoneNumber, in.HomeAddress)
		if err != nil {
			return nil, err
		}
		user = updated
	} else if !user.HasContactInfo() {
		return nil, ErrProfileIncomplete
	}

	items, grandTotal := pricing.Normalize(in.Items)

	var order *models.Order
	var eventType string
	if in.Edit != nil {
		existing, err := s.orderRepo.GetByID(in.Edit.OrderID)
		if err != nil {
			return nil, err
		}
		if existing.UserID != user.ID {
			return nil, fmt.Errorf("order %s belongs to another user: %w", in.Edit.OrderID, ErrForbidden)
		}
		// Only the bill changes. Status, customer snapshot and created_at
		// survive the edit.
		existing.Items = items
		existing.GrandTotal = grandTotal
		if err := s.orderRepo.Update(existing); err != nil {
			return nil, err
		}
		order = existing
		eventType = rabbitmq.EventOrderUpdated
	} else {
		order = &models.Order{
			OrderID:     models.NewID("order"),
			UserID:      user.ID,
			Items:       items,
			GrandTotal:  grandTotal,
			Status:      models.OrderStatusPending,
			UserName:    user.Name,
			UserEmail:   user.Email,
			UserPhone:   user.PhoneNumber,
			UserAddress: user.HomeAddress,
			CreatedAt:   time.Now().UTC(),
		}
		if err := s.orderRepo.Create(order); err != nil {
			return nil, err
		}
		eventType = rabbitmq.EventOrderCreated
	}

	// The order is committed; clearing the cart is always safe because edit
	// sessions source their items from the order, not the cart. A failed
	// clear is logged and absorbed: the next cart PUT overwrites it anyway.
	if err := s.carts.Clear(user.ID); err != nil {
		log.Printf("Failed to clear cart for user %s after checkout: %v", user.ID, err)
	}

	s.publish(eventType, order)
	return order, nil
}

func (s *CheckoutService) publish(eventType string, order *models.Order) {
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
