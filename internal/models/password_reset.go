package models

import "time"

// PasswordResetToken is a single-use credential authorizing one password
// change within its expiry window. At most one row exists per email:
// issuing a new token deletes any prior one first.
type PasswordResetToken struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Token     string    `json:"-" gorm:"uniqueIndex;type:varchar(64)"`
	Email     string    `json:"email" gorm:"index;type:varchar(255)"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the token's expiry is in the past. Expiry is
// only ever checked lazily, when someone attempts to use the token.
func (t *PasswordResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
