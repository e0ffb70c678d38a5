package models

// Category is an admin-managed catalog category. Default categories are
// seeded at startup and cannot be deleted.
type Category struct {
	CategoryID string `json:"category_id" gorm:"primaryKey;type:varchar(36)"`
	Name       string `json:"name" gorm:"uniqueIndex;not null;type:varchar(100)"`
	IsDefault  bool   `json:"is_default"`
}
