package entity

import "time"

// Event represents a domain event published to the message bus.
type Event interface {
	EventType() string
}

// OrderPlaced is emitted once an order row has been committed at checkout.
type OrderPlaced struct {
	OrderID       string    `json:"order_id"`
	CustomerEmail string    `json:"customer_email"`
	TotalAmount   float64   `json:"total_amount"`
	ItemCount     int       `json:"item_count"`
	PlacedAt      time.Time `json:"placed_at"`
}

func (e OrderPlaced) EventType() string { return "OrderPlaced" }

// OrderStatusChanged is emitted when the back office moves an order through
// its lifecycle.
type OrderStatusChanged struct {
	OrderID   string      `json:"order_id"`
	Status    OrderStatus `json:"status"`
	ChangedAt time.Time   `json:"changed_at"`
}

func (e OrderStatusChanged) EventType() string { return "OrderStatusChanged" }
