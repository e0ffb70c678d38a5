package models

import "time"

// Item is a catalog entry. Carts and orders copy name and rate into their
// own line items at add time, so editing or deleting an Item never rewrites
// history.
type Item struct {
	ItemID    string    `json:"item_id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"not null;type:varchar(200)"`
	Rate      float64   `json:"rate" gorm:"not null"`
	ImageURL  string    `json:"image_url"`
	Category  string    `json:"category" gorm:"type:varchar(100)"`
	CreatedAt time.Time `json:"created_at"`
}
