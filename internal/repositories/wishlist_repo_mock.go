package repositories

import (
	"sync"

	"github.com/google/uuid"

	"zoru/internal/models"
)

// MockWishlistRepository is an in-memory implementation of WishlistRepository.
type MockWishlistRepository struct {
	items map[string]models.WishlistItem // keyed by userID + "|" + productID
	mu    sync.RWMutex
}

// NewMockWishlistRepository creates a new instance of MockWishlistRepository.
func NewMockWishlistRepository() *MockWishlistRepository {
	return &MockWishlistRepository{
		items: make(map[string]models.WishlistItem),
	}
}

// Add inserts a wishlist item.
func (r *MockWishlistRepository) Add(item *models.WishlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.items[item.UserID+"|"+item.ProductID] = *item
	return nil
}

// Remove deletes a wishlist item.
func (r *MockWishlistRepository) Remove(userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := userID + "|" + productID
	if _, ok := r.items[key]; !ok {
		return ErrNotFound
	}
	delete(r.items, key)
	return nil
}

// GetByUser returns all wishlist items of a user.
func (r *MockWishlistRepository) GetByUser(userID string) ([]models.WishlistItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.WishlistItem, 0)
	for _, it := range r.items {
		if it.UserID == userID {
			items = append(items, it)
		}
	}
	return items, nil
}

// Has reports whether a product is already on the user's wishlist.
func (r *MockWishlistRepository) Has(userID, productID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[userID+"|"+productID]
	return ok, nil
}
