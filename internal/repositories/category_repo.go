package repositories

import (
	"kirana/internal/models"
)

// CategoryRepository defines the interface for catalog category data access.
type CategoryRepository interface {
	GetAll() ([]models.Category, error)
	GetByID(id string) (*models.Category, error)
	GetByName(name string) (*models.Category, error)
	Create(category *models.Category) error
	Delete(id string) error
}
