package repositories

import (
	"errors"
	"fmt"

	"kirana/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

// Get retrieves the cart for a user. Returns ErrNotFound when the user has
// no cart yet.
func (r *GORMCartRepository) Get(userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.First(&cart, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return &cart, nil
}

// Put upserts the whole cart document for its user.
func (r *GORMCartRepository) Put(cart *models.Cart) error {
	if err := r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(cart).Error; err != nil {
		return fmt.Errorf("failed to put cart for user %s: %w", cart.UserID, err)
	}
	return nil
}

// Delete removes a user's cart. Deleting an absent cart is a no-op.
func (r *GORMCartRepository) Delete(userID string) error {
	if err := r.db.Delete(&models.Cart{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to delete cart for user %s: %w", userID, err)
	}
	return nil
}
