package repositories

import (
	"kirana/internal/models"
)

// CartRepository defines the interface for draft cart data access. It is a
// whole-document contract: Put replaces the stored cart, Delete drops it.
// The cart store never reads or writes orders.
type CartRepository interface {
	Get(userID string) (*models.Cart, error)
	Put(cart *models.Cart) error
	Delete(userID string) error
}
