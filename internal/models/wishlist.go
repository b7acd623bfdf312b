package models

import "time"

// WishlistItem marks a product saved by a user. Adding an already
// saved product is a no-op.
type WishlistItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex:idx_wishlist_user_product;type:varchar(36)"`
	ProductID string    `json:"product_id" gorm:"uniqueIndex:idx_wishlist_user_product;type:varchar(36)"`
	CreatedAt time.Time `json:"created_at"`
}
