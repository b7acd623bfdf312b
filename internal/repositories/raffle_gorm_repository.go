package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"zoru/internal/models"
)

// GORMRaffleRepository is a GORM implementation of RaffleRepository.
type GORMRaffleRepository struct {
	db *gorm.DB
}

// NewGORMRaffleRepository creates a new instance of GORMRaffleRepository.
func NewGORMRaffleRepository(db *gorm.DB) *GORMRaffleRepository {
	return &GORMRaffleRepository{db: db}
}

// CreateEntry inserts a raffle entry.
func (r *GORMRaffleRepository) CreateEntry(entry *models.RaffleEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create raffle entry: %w", err)
	}
	return nil
}

// HasEntry reports whether an email already entered the raffle for a drop.
func (r *GORMRaffleRepository) HasEntry(email, dropSlug string) (bool, error) {
	var n int64
	err := r.db.Model(&models.RaffleEntry{}).
		Where("email = ? AND drop_slug = ?", email, dropSlug).Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("failed to check raffle entry: %w", err)
	}
	return n > 0, nil
}

// CreateSignup inserts a drop-notification signup.
func (r *GORMRaffleRepository) CreateSignup(signup *models.DropSignup) error {
	if signup.ID == "" {
		signup.ID = uuid.New().String()
	}
	if err := r.db.Create(signup).Error; err != nil {
		return fmt.Errorf("failed to create drop signup: %w", err)
	}
	return nil
}

// HasSignup reports whether an email already signed up for a drop notification.
func (r *GORMRaffleRepository) HasSignup(email, productID string) (bool, error) {
	var n int64
	err := r.db.Model(&models.DropSignup{}).
		Where("email = ? AND product_id = ?", email, productID).Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("failed to check drop signup: %w", err)
	}
	return n > 0, nil
}
