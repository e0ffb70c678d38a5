package models

import "time"

// Cart is the per-user draft bill. The user ID is the primary key, so a
// second cart for the same user cannot exist by construction. PUTs replace
// the item list wholesale.
type Cart struct {
	UserID    string     `json:"user_id" gorm:"primaryKey;type:varchar(36)"`
	Items     []LineItem `json:"items" gorm:"serializer:json"`
	UpdatedAt time.Time  `json:"updated_at"`
}
