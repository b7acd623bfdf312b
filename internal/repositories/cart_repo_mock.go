package repositories

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"zoru/internal/models"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	items map[string]models.CartItem // keyed by userID + "|" + productID + "|" + size
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		items: make(map[string]models.CartItem),
	}
}

func cartKey(userID, productID, size string) string {
	return userID + "|" + productID + "|" + size
}

// GetByUser returns all cart lines for a user, oldest first.
func (r *MockCartRepository) GetByUser(userID string) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.CartItem, 0)
	for _, it := range r.items {
		if it.UserID == userID {
			items = append(items, it)
		}
	}
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if items[j].CreatedAt.Before(items[i].CreatedAt) {
				items[i], items[j] = items[j], items[i]
			}
		}
	}
	return items, nil
}

// GetLine returns a single cart line by its merge key.
func (r *MockCartRepository) GetLine(userID, productID, size string) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[cartKey(userID, productID, size)]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

// Create inserts a new cart line.
func (r *MockCartRepository) Create(item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	item.UpdatedAt = time.Now()
	r.items[cartKey(item.UserID, item.ProductID, item.Size)] = *item
	return nil
}

// Update saves an existing cart line.
func (r *MockCartRepository) Update(item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := cartKey(item.UserID, item.ProductID, item.Size)
	if _, ok := r.items[key]; !ok {
		return ErrNotFound
	}
	item.UpdatedAt = time.Now()
	r.items[key] = *item
	return nil
}

// Delete removes a cart line regardless of its quantity.
func (r *MockCartRepository) Delete(userID, productID, size string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := cartKey(userID, productID, size)
	if _, ok := r.items[key]; !ok {
		return ErrNotFound
	}
	delete(r.items, key)
	return nil
}

// Clear removes all cart lines for a user.
func (r *MockCartRepository) Clear(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, it := range r.items {
		if it.UserID == userID {
			delete(r.items, key)
		}
	}
	return nil
}
