package handlers

import (
	"encoding/json"

	"kirana/internal/models"
	"kirana/internal/pricing"
)

// Quantity accepts either a JSON number or the raw text of a quantity input
// box. Text goes through the forgiving parse; numbers are clamped the same
// way.
type Quantity float64

func (q *Quantity) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		if f > pricing.MaxQuantity {
			f = pricing.MaxQuantity
		}
		*q = Quantity(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*q = Quantity(pricing.ParseQuantity(s))
	return nil
}

// LineItemRequest is the wire form of a cart or order line. The client may
// send a total but it is recomputed server-side regardless.
type LineItemRequest struct {
	ItemID   string   `json:"item_id"`
	ItemName string   `json:"item_name"`
	Rate     float64  `json:"rate"`
	Quantity Quantity `json:"quantity"`
	Total    float64  `json:"total"`
}

func toLineItems(reqs []LineItemRequest) []models.LineItem {
	items := make([]models.LineItem, len(reqs))
	for i, r := range reqs {
		items[i] = models.LineItem{
			ItemID:   r.ItemID,
			ItemName: r.ItemName,
			Rate:     r.Rate,
			Quantity: float64(r.Quantity),
			Total:    r.Total,
		}
	}
	return items
}
