package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"zoru/internal/models"
)

// GORMResetTokenRepository is a GORM implementation of ResetTokenRepository.
type GORMResetTokenRepository struct {
	db *gorm.DB
}

// NewGORMResetTokenRepository creates a new instance of GORMResetTokenRepository.
func NewGORMResetTokenRepository(db *gorm.DB) *GORMResetTokenRepository {
	return &GORMResetTokenRepository{db: db}
}

// Create inserts a new reset token row.
func (r *GORMResetTokenRepository) Create(token *models.PasswordResetToken) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	if err := r.db.Create(token).Error; err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}
	return nil
}

// GetByToken retrieves a reset token row by its opaque token value.
func (r *GORMResetTokenRepository) GetByToken(token string) (*models.PasswordResetToken, error) {
	var row models.PasswordResetToken
	if err := r.db.First(&row, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}
	return &row, nil
}

// DeleteByEmail removes all reset tokens for an email. Deleting nothing
// is not an error: this runs before every insert to keep at most one
// token per email.
func (r *GORMResetTokenRepository) DeleteByEmail(email string) error {
	if err := r.db.Delete(&models.PasswordResetToken{}, "email = ?", email).Error; err != nil {
		return fmt.Errorf("failed to delete reset tokens for %s: %w", email, err)
	}
	return nil
}

// Delete removes a single reset token row by its token value.
func (r *GORMResetTokenRepository) Delete(token string) error {
	if err := r.db.Delete(&models.PasswordResetToken{}, "token = ?", token).Error; err != nil {
		return fmt.Errorf("failed to delete reset token: %w", err)
	}
	return nil
}
