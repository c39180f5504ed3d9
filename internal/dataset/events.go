package dataset

import (
	"encoding/json"
	"time"
)

const EventOrderGenerated = "OrderGenerated"

type Envelope struct {
	EventID      string          `json:"event_id"`      // uuid
	EventType    string          `json:"event_type"`    // EventOrderGenerated
	EventVersion int             `json:"event_version"` // 1
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"` // e.g. "datagen"
	RunID        string          `json:"run_id"`
	Payload      json.RawMessage `json:"payload"`
}

// OrderGeneratedPayload mirrors one orders.csv row; amounts keep their 2dp text form.
type OrderGeneratedPayload struct {
	OrderID    int    `json:"order_id"`
	CustomerID int    `json:"customer_id"`
	Status     Status `json:"status"`
	Total      string `json:"total"`
	Country    string `json:"country"`
	OrderYear  int    `json:"order_year"`
}

func NewOrderGeneratedPayload(o Order) OrderGeneratedPayload {
	return OrderGeneratedPayload{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Status:     o.Status,
		Total:      o.Total.StringFixed(2),
		Country:    o.Country,
		OrderYear:  o.OrderYear,
	}
}
