package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"zoru/internal/models"
	"zoru/internal/repositories"
)

type resetFixture struct {
	service   *PasswordResetService
	userRepo  *repositories.MockUserRepository
	tokenRepo *repositories.MockResetTokenRepository
	sender    *fakeSender
	user      *models.User
}

func newResetFixture(t *testing.T) *resetFixture {
	t.Helper()

	f := &resetFixture{
		userRepo:  repositories.NewMockUserRepository(),
		tokenRepo: repositories.NewMockResetTokenRepository(),
		sender:    &fakeSender{},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.DefaultCost)
	require.NoError(t, err)
	f.user = &models.User{Name: "Lucía Torres", Email: "lucia@example.com", Password: string(hash)}
	require.NoError(t, f.userRepo.Create(f.user))

	f.service = NewPasswordResetService(f.userRepo, f.tokenRepo, f.sender, "http://localhost:8080")
	return f
}

// tokenFromEmail pulls the 64-char hex token out of the reset link.
func tokenFromEmail(t *testing.T, html string) string {
	t.Helper()
	idx := strings.Index(html, "token=")
	require.NotEqual(t, -1, idx, "reset email should contain a token link")
	rest := html[idx+len("token="):]
	require.GreaterOrEqual(t, len(rest), 64)
	return rest[:64]
}

func TestRequestResetUnknownEmailIsSilent(t *testing.T) {
	f := newResetFixture(t)

	err := f.service.RequestReset(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, f.sender.emails)
}

func TestRequestResetEmailsUsableToken(t *testing.T) {
	f := newResetFixture(t)

	require.NoError(t, f.service.RequestReset(context.Background(), f.user.Email))
	require.Len(t, f.sender.emails, 1)
	assert.Equal(t, f.user.Email, f.sender.emails[0].to)

	token := tokenFromEmail(t, f.sender.emails[0].html)
	require.NoError(t, f.service.ResetPassword(token, "new-password"))

	updated, err := f.userRepo.GetByEmail(f.user.Email)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("new-password")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("old-password")))
}

func TestResetTokenIsSingleUse(t *testing.T) {
	f := newResetFixture(t)

	require.NoError(t, f.service.RequestReset(context.Background(), f.user.Email))
	token := tokenFromEmail(t, f.sender.emails[0].html)

	require.NoError(t, f.service.ResetPassword(token, "new-password"))
	err := f.service.ResetPassword(token, "another-password")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRequestResetReplacesPriorToken(t *testing.T) {
	f := newResetFixture(t)

	require.NoError(t, f.service.RequestReset(context.Background(), f.user.Email))
	require.NoError(t, f.service.RequestReset(context.Background(), f.user.Email))
	require.Len(t, f.sender.emails, 2)

	first := tokenFromEmail(t, f.sender.emails[0].html)
	second := tokenFromEmail(t, f.sender.emails[1].html)
	require.NotEqual(t, first, second)

	assert.ErrorIs(t, f.service.ResetPassword(first, "new-password"), ErrTokenInvalid)
	assert.NoError(t, f.service.ResetPassword(second, "new-password"))
}

func TestResetPasswordExpiredTokenIsDeletedLazily(t *testing.T) {
	f := newResetFixture(t)

	require.NoError(t, f.tokenRepo.Create(&models.PasswordResetToken{
		Token:     "expired-token",
		Email:     f.user.Email,
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	err := f.service.ResetPassword("expired-token", "new-password")
	assert.ErrorIs(t, err, ErrTokenExpired)

	// The row is gone: the second attempt no longer finds it.
	err = f.service.ResetPassword("expired-token", "new-password")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestResetPasswordTooShort(t *testing.T) {
	f := newResetFixture(t)

	err := f.service.ResetPassword("whatever", "abc")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestResetPasswordOrphanedToken(t *testing.T) {
	f := newResetFixture(t)

	require.NoError(t, f.tokenRepo.Create(&models.PasswordResetToken{
		Token:     "orphan-token",
		Email:     "deleted-account@example.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	err := f.service.ResetPassword("orphan-token", "new-password")
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = f.service.ResetPassword("orphan-token", "new-password")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRequestResetEmailFailureSurfaces(t *testing.T) {
	f := newResetFixture(t)
	f.sender.fail = true

	err := f.service.RequestReset(context.Background(), f.user.Email)
	assert.Error(t, err)
}
