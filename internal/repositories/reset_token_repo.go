package repositories

import "zoru/internal/models"

// ResetTokenRepository defines the interface for password reset token storage.
type ResetTokenRepository interface {
	Create(token *models.PasswordResetToken) error
	GetByToken(token string) (*models.PasswordResetToken, error)
	DeleteByEmail(email string) error
	Delete(token string) error
}
