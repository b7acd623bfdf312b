package repositories

import (
	"sync"

	"github.com/google/uuid"

	"zoru/internal/models"
)

// MockRaffleRepository is an in-memory implementation of RaffleRepository.
type MockRaffleRepository struct {
	entries map[string]models.RaffleEntry // keyed by email + "|" + dropSlug
	signups map[string]models.DropSignup  // keyed by email + "|" + productID
	mu      sync.RWMutex
}

// NewMockRaffleRepository creates a new instance of MockRaffleRepository.
func NewMockRaffleRepository() *MockRaffleRepository {
	return &MockRaffleRepository{
		entries: make(map[string]models.RaffleEntry),
		signups: make(map[string]models.DropSignup),
	}
}

// CreateEntry inserts a raffle entry.
func (r *MockRaffleRepository) CreateEntry(entry *models.RaffleEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	r.entries[entry.Email+"|"+entry.DropSlug] = *entry
	return nil
}

// HasEntry reports whether an email already entered the raffle for a drop.
func (r *MockRaffleRepository) HasEntry(email, dropSlug string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[email+"|"+dropSlug]
	return ok, nil
}

// CreateSignup inserts a drop-notification signup.
func (r *MockRaffleRepository) CreateSignup(signup *models.DropSignup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if signup.ID == "" {
		signup.ID = uuid.New().String()
	}
	r.signups[signup.Email+"|"+signup.ProductID] = *signup
	return nil
}

// HasSignup reports whether an email already signed up for a drop notification.
func (r *MockRaffleRepository) HasSignup(email, productID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.signups[email+"|"+productID]
	return ok, nil
}
