package repositories

import "zoru/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	GetByPreferenceID(preferenceID string) (*models.Order, error)
	UpdateStatus(id string, status string) error
}
