package services

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"kirana/internal/models"
	"kirana/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// ItemInput is the admin payload for creating or updating a catalog item.
// All fields are mandatory and the rate must be positive.
type ItemInput struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Rate     float64 `json:"rate" validate:"required,gt=0"`
	ImageURL string  `json:"image_url" validate:"required"`
	Category string  `json:"category" validate:"required,max=100"`
}

// CatalogService handles catalog items and categories, including the
// admin-only mutations.
type CatalogService struct {
	itemRepo     repositories.ItemRepository
	categoryRepo repositories.CategoryRepository
	validate     *validator.Validate
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(itemRepo repositories.ItemRepository, categoryRepo repositories.CategoryRepository) *CatalogService {
	return &CatalogService{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		validate:     validator.New(),
	}
}

// ListItems retrieves the whole catalog.
func (s *CatalogService) ListItems() ([]models.Item, error) {
	return s.itemRepo.GetAll()
}

// GetItem retrieves a single catalog item.
func (s *CatalogService) GetItem(id string) (*models.Item, error) {
	return s.itemRepo.GetByID(id)
}

// ListCategories retrieves the full category records for the admin view.
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

// ListCategoryNames returns the public category filter list: "All" followed
// by the category names in sorted order.
func (s *CatalogService) ListCategoryNames() ([]string, error) {
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(categories)+1)
	names = append(names, "All")
	for _, c := range categories {
		names = append(names, c.Name)
	}
	sort.Strings(names[1:])
	return names, nil
}

// checkCategory verifies the category is in the known set. The match is
// exact and case-sensitive.
func (s *CatalogService) checkCategory(name string) error {
	if _, err := s.categoryRepo.GetByName(name); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("category %q: %w", name, ErrUnknownCategory)
		}
		return err
	}
	return nil
}

// CreateItem validates and inserts a new catalog item.
func (s *CatalogService) CreateItem(in ItemInput) (*models.Item, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if err := s.checkCategory(in.Category); err != nil {
		return nil, err
	}

	item := &models.Item{
		ItemID:    models.NewID("item"),
		Name:      in.Name,
		Rate:      in.Rate,
		ImageURL:  in.ImageURL,
		Category:  in.Category,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem validates and overwrites an existing item's fields. ItemID and
// CreatedAt are immutable. Carts and orders keep their own snapshots, so
// the change has no effect on them.
func (s *CatalogService) UpdateItem(id string, in ItemInput) (*models.Item, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if err := s.checkCategory(in.Category); err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	item.Name = in.Name
	item.Rate = in.Rate
	item.ImageURL = in.ImageURL
	item.Category = in.Category
	if err := s.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes an item from the catalog. Past orders and carts hold
// snapshots, not references, so they are untouched.
func (s *CatalogService) DeleteItem(id string) error {
	return s.itemRepo.Delete(id)
}

// CreateCategory adds a new non-default category. Duplicate names are
// rejected.
func (s *CatalogService) CreateCategory(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryName
	}
	if _, err := s.categoryRepo.GetByName(name); err == nil {
		return nil, fmt.Errorf("category %q: %w", name, ErrDuplicateCategory)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	category := &models.Category{
		CategoryID: models.NewID("cat"),
		Name:       name,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a custom category. Default categories cannot be
// deleted.
func (s *CatalogService) DeleteCategory(id string) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category.IsDefault {
		return fmt.Errorf("category %q: %w", category.Name, ErrDefaultCategory)
	}
	return s.categoryRepo.Delete(id)
}

var defaultCategories = []string{
	"Vegetables", "Fruits", "Dairy", "Household", "Pulses", "Rice", "Spices",
}

var seedItems = []models.Item{
	{Name: "Tomato", Rate: 40.00, ImageURL: "https://images.pexels.com/photos/35594805/pexels-photo-35594805.jpeg", Category: "Vegetables"},
	{Name: "Onion", Rate: 30.00, ImageURL: "https://images.pexels.com/photos/3978830/pexels-photo-3978830.jpeg", Category: "Vegetables"},
	{Name: "Potato", Rate: 25.00, ImageURL: "https://images.pexels.com/photos/144248/potatoes-vegetables-erdfrucht-bio-144248.jpeg", Category: "Vegetables"},
	{Name: "Carrot", Rate: 35.00, ImageURL: "https://images.pexels.com/photos/3650647/pexels-photo-3650647.jpeg", Category: "Vegetables"},
	{Name: "Capsicum", Rate: 50.00, ImageURL: "https://images.pexels.com/photos/1437318/pexels-photo-1437318.jpeg", Category: "Vegetables"},
	{Name: "Apple", Rate: 120.00, ImageURL: "https://images.pexels.com/photos/102104/pexels-photo-102104.jpeg", Category: "Fruits"},
	{Name: "Banana", Rate: 50.00, ImageURL: "https://images.pexels.com/photos/2872755/pexels-photo-2872755.jpeg", Category: "Fruits"},
	{Name: "Milk", Rate: 28.00, ImageURL: "https://images.pexels.com/photos/248412/pexels-photo-248412.jpeg", Category: "Dairy"},
	{Name: "Basmati Rice", Rate: 90.00, ImageURL: "https://images.pexels.com/photos/723198/pexels-photo-723198.jpeg", Category: "Rice"},
	{Name: "Toor Dal", Rate: 140.00, ImageURL: "https://images.pexels.com/photos/4110251/pexels-photo-4110251.jpeg", Category: "Pulses"},
	{Name: "Turmeric Powder", Rate: 60.00, ImageURL: "https://images.pexels.com/photos/4198714/pexels-photo-4198714.jpeg", Category: "Spices"},
	{Name: "Dish Soap", Rate: 45.00, ImageURL: "https://images.pexels.com/photos/4239013/pexels-photo-4239013.jpeg", Category: "Household"},
}

// EnsureDefaultCategories creates any missing default categories. Safe to
// run on every startup.
func (s *CatalogService) EnsureDefaultCategories() error {
	for _, name := range defaultCategories {
		_, err := s.categoryRepo.GetByName(name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		category := &models.Category{
			CategoryID: models.NewID("cat"),
			Name:       name,
			IsDefault:  true,
		}
		if err := s.categoryRepo.Create(category); err != nil {
			return err
		}
		log.Printf("Seeded default category: %s", name)
	}
	return nil
}

// SeedItems populates an empty catalog with the starter grocery items and
// returns how many were created. A non-empty catalog is left untouched, so
// the endpoint behind this is idempotent.
func (s *CatalogService) SeedItems() (int, error) {
	existing, err := s.itemRepo.GetAll()
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	if err := s.EnsureDefaultCategories(); err != nil {
		return 0, err
	}
	created := 0
	for _, seed := range seedItems {
		item := seed
		item.ItemID = models.NewID("item")
		item.CreatedAt = time.Now().UTC()
		if err := s.itemRepo.Create(&item); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
