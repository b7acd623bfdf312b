package models

import "time"

// CartItem is one line of a user's cart. Lines are keyed by
// (user, product, size): the same product in two sizes is two lines.
// Title and UnitPrice are snapshots taken when the line is created.
type CartItem struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string  `json:"user_id" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"product_id" gorm:"type:varchar(36)"`
	Size      string  `json:"size" gorm:"type:varchar(10)"`
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"` // always >= 1; zero-quantity lines are deleted

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Cart is the view returned to clients: the lines plus the recomputed total.
type Cart struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}
