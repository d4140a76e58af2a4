package models

import "time"

// OrderStatusPending is the status every order is created with.
const OrderStatusPending = "pending"

// Order represents a checked-out cart.
type Order struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string     `json:"userId" gorm:"index;type:varchar(36)"`
	Items     []LineItem `json:"items" gorm:"serializer:json"`
	Total     float64    `json:"total"`
	Status    string     `json:"status" gorm:"type:varchar(20)"`
	CreatedAt time.Time  `json:"createdAt" gorm:"index"`
}

// OrderSummary is the short form of an order returned by listings.
type OrderSummary struct {
	ID        string     `json:"id"`
	Total     float64    `json:"total"`
	Status    string     `json:"status"`
	ItemCount int        `json:"itemCount"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// Summary returns the summary of o without its creation time.
func (o *Order) Summary() OrderSummary {
	return OrderSummary{
		ID:        o.ID,
		Total:     o.Total,
		Status:    o.Status,
		ItemCount: len(o.Items),
	}
}

// ListSummary returns the summary of o including its creation time.
func (o *Order) ListSummary() OrderSummary {
	s := o.Summary()
	createdAt := o.CreatedAt
	s.CreatedAt = &createdAt
	return s
}

// OrderCreatedEvent is published after an order is stored.
type OrderCreatedEvent struct {
	OrderID   string    `json:"orderId"`
	UserID    string    `json:"userId"`
	Status    string    `json:"status"`
	Total     float64   `json:"total"`
	ItemCount int       `json:"itemCount"`
	CreatedAt time.Time `json:"createdAt"`
}
