package models

import "time"

// CartItem is a product reference stored in a user's cart.
type CartItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"-" gorm:"index;type:varchar(36)"`
	ProductID string    `json:"productId" gorm:"type:varchar(36)"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
	Position  int       `json:"-"`
}

// LineItem is a cart item with its product resolved.
// Orders keep LineItems as a point-in-time copy of the cart.
type LineItem struct {
	CartItem
	Product Product `json:"product"`
}

// Cart is the resolved view of a user's cart.
type Cart struct {
	Items     []LineItem `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"itemCount"`
}
