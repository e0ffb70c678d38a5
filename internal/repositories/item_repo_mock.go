package repositories

import (
	"fmt"
	"sort"
	"sync"

	"kirana/internal/models"
)

// MockItemRepository is an in-memory implementation of ItemRepository.
type MockItemRepository struct {
	items map[string]models.Item
	mu    sync.RWMutex
}

// NewMockItemRepository creates a new instance of MockItemRepository.
func NewMockItemRepository() *MockItemRepository {
	return &MockItemRepository{items: make(map[string]models.Item)}
}

// GetAll returns all items sorted by name.
func (r *MockItemRepository) GetAll() ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Item, 0, len(r.items))
	for _, item := range r.items {
		list = append(list, item)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// GetByID returns an item by its ID.
func (r *MockItemRepository) GetByID(id string) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	return &item, nil
}

// Create adds a new item.
func (r *MockItemRepository) Create(item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ItemID == "" {
		item.ItemID = models.NewID("item")
	}
	r.items[item.ItemID] = *item
	return nil
}

// Update overwrites an existing item.
func (r *MockItemRepository) Update(item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ItemID]; !ok {
		return fmt.Errorf("item %s: %w", item.ItemID, ErrNotFound)
	}
	r.items[item.ItemID] = *item
	return nil
}

// Delete removes an item by its ID.
func (r *MockItemRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	delete(r.items, id)
	return nil
}
