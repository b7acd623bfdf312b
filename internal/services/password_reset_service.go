package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"zoru/internal/models"
	"zoru/internal/repositories"
	"zoru/pkg/email"
)

// GenericResetMessage is returned for every forgot-password request,
// whether or not the email exists, to resist account enumeration.
const GenericResetMessage = "Si el correo existe, recibirás un enlace para restablecer tu contraseña."

const resetTokenTTL = time.Hour

// PasswordResetService owns the reset token lifecycle:
// NoToken -> TokenIssued -> (Consumed | Expired).
type PasswordResetService struct {
	userRepo      repositories.UserRepository
	tokenRepo     repositories.ResetTokenRepository
	sender        email.Sender
	publicBaseURL string
}

// NewPasswordResetService creates a new PasswordResetService.
func NewPasswordResetService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.ResetTokenRepository,
	sender email.Sender,
	publicBaseURL string,
) *PasswordResetService {
	return &PasswordResetService{
		userRepo:      userRepo,
		tokenRepo:     tokenRepo,
		sender:        sender,
		publicBaseURL: publicBaseURL,
	}
}

// RequestReset issues a fresh token for a known email and emails the
// reset link. Unknown emails return nil without creating anything, so
// the handler's response is identical either way. Any prior token for
// the email is deleted before the new one is inserted, keeping at most
// one valid token per email.
func (s *PasswordResetService) RequestReset(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(emailAddr)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}

	if err := s.tokenRepo.DeleteByEmail(user.Email); err != nil {
		return err
	}

	token, err := newResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	row := &models.PasswordResetToken{
		Token:     token,
		Email:     user.Email,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.tokenRepo.Create(row); err != nil {
		return err
	}

	link := s.publicBaseURL + "/reset-password?token=" + token
	body := fmt.Sprintf(
		"<p>Hola %s,</p><p>Para restablecer tu contraseña haz clic en el siguiente enlace (válido por 1 hora):</p><p><a href=%q>%s</a></p>",
		user.Name, link, link,
	)
	if err := s.sender.Send(ctx, user.Email, "Restablece tu contraseña — ZORU", body); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

// ResetPassword consumes a token: validates it, hashes and stores the
// new password, and deletes the token row so it cannot be reused.
// Expiry is detected here, lazily: an expired token is deleted on its
// first attempted use.
func (s *PasswordResetService) ResetPassword(token, password string) error {
	if len(password) < 6 {
		return ErrPasswordTooShort
	}

	row, err := s.tokenRepo.GetByToken(token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTokenInvalid
		}
		return err
	}

	if row.Expired(time.Now()) {
		if delErr := s.tokenRepo.Delete(token); delErr != nil {
			return delErr
		}
		return ErrTokenExpired
	}

	user, err := s.userRepo.GetByEmail(row.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Orphaned token: the account is gone, so the token is useless.
			if delErr := s.tokenRepo.Delete(token); delErr != nil {
				return delErr
			}
			return ErrUserNotFound
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(user.Email, string(hashed)); err != nil {
		return err
	}

	return s.tokenRepo.Delete(token)
}

// newResetToken returns 32 random bytes hex-encoded.
func newResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
