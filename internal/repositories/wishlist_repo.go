package repositories

import "zoru/internal/models"

// WishlistRepository defines the interface for wishlist data access.
type WishlistRepository interface {
	Add(item *models.WishlistItem) error
	Remove(userID, productID string) error
	GetByUser(userID string) ([]models.WishlistItem, error)
	Has(userID, productID string) (bool, error)
}
