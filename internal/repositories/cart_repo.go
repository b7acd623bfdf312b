package repositories

import "zoru/internal/models"

// CartRepository defines the interface for cart line data access.
// Lines are keyed by (user, product, size).
type CartRepository interface {
	GetByUser(userID string) ([]models.CartItem, error)
	GetLine(userID, productID, size string) (*models.CartItem, error)
	Create(item *models.CartItem) error
	Update(item *models.CartItem) error
	Delete(userID, productID, size string) error
	Clear(userID string) error
}
