package models

import "time"

// LineItem is a snapshot of a catalog item at the moment it was added to a
// cart or order. It exists only embedded in a Cart or an Order. Total is
// always recomputed server-side (see internal/pricing), never trusted from
// the client.
type LineItem struct {
	ItemID   string  `json:"item_id"`
	ItemName string  `json:"item_name"`
	Rate     float64 `json:"rate"`
	Quantity float64 `json:"quantity"`
	Total    float64 `json:"total"`
}

// Order statuses. An order starts Pending and moves to confirmed only
// through an admin action.
const (
	OrderStatusPending   = "Pending"
	OrderStatusConfirmed = "Order Confirmed"
)

// Order is a placed purchase. OrderID, UserID, CreatedAt and the customer
// snapshot fields are immutable after creation; Items and GrandTotal may be
// overwritten wholesale by an owner edit.
type Order struct {
	OrderID     string     `json:"order_id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string     `json:"user_id" gorm:"index;type:varchar(36)"`
	Items       []LineItem `json:"items" gorm:"serializer:json"`
	GrandTotal  float64    `json:"grand_total"`
	Status      string     `json:"status" gorm:"type:varchar(20)"`
	UserName    string     `json:"user_name"`
	UserEmail   string     `json:"user_email"`
	UserPhone   string     `json:"user_phone"`
	UserAddress string     `json:"user_address"`
	CreatedAt   time.Time  `json:"created_at"`
}
