package repositories

import (
	"fmt"
	"sync"

	"kirana/internal/models"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	carts map[string]models.Cart
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{carts: make(map[string]models.Cart)}
}

// Get returns the cart for a user or ErrNotFound.
func (r *MockCartRepository) Get(userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil, fmt.Errorf("cart for user %s: %w", userID, ErrNotFound)
	}
	return &cart, nil
}

// Put upserts the whole cart document.
func (r *MockCartRepository) Put(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[cart.UserID] = *cart
	return nil
}

// Delete removes a user's cart, idempotently.
func (r *MockCartRepository) Delete(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, userID)
	return nil
}
