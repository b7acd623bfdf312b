package repositories

import "zoru/internal/models"

// RaffleRepository defines the interface for raffle entries and
// drop-notification signups.
type RaffleRepository interface {
	CreateEntry(entry *models.RaffleEntry) error
	HasEntry(email, dropSlug string) (bool, error)
	CreateSignup(signup *models.DropSignup) error
	HasSignup(email, productID string) (bool, error)
}
