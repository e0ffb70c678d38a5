package services

import (
	"errors"
	"time"

	"kirana/internal/models"
	"kirana/internal/pricing"
	"kirana/internal/repositories"
)

// CartService manages the per-user draft cart. Saves are synchronous: every
// PUT is a full idempotent overwrite, so a client-side debounce stays a pure
// optimization and the last write before navigating away cannot be lost to
// a pending timer. The cart store never touches orders.
type CartService struct {
	repo repositories.CartRepository
}

// NewCartService creates a new CartService.
func NewCartService(repo repositories.CartRepository) *CartService {
	return &CartService{repo: repo}
}

// Get returns the user's cart, or an empty one if none exists yet. Absence
// is not an error.
func (s *CartService) Get(userID string) (*models.Cart, error) {
	cart, err := s.repo.Get(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &models.Cart{UserID: userID, Items: []models.LineItem{}}, nil
		}
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []models.LineItem{}
	}
	return cart, nil
}

// Put replaces the user's cart wholesale with the given line items. Line
// totals are recomputed before the write; client totals are ignored.
func (s *CartService) Put(userID string, items []models.LineItem) (*models.Cart, error) {
	normalized, _ := pricing.Normalize(items)
	cart := &models.Cart{
		UserID:    userID,
		Items:     normalized,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.repo.Put(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear removes all items from the user's cart. Clearing an already-empty
// cart is a no-op.
func (s *CartService) Clear(userID string) error {
	return s.repo.Delete(userID)
}
