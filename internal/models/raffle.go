package models

import "time"

// RaffleEntry is a sweepstakes signup for early purchase access to a drop.
// One entry per (email, drop).
type RaffleEntry struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" validate:"required,min=2,max=100"`
	Email     string    `json:"email" gorm:"uniqueIndex:idx_raffle_email_drop;type:varchar(255)" validate:"required,email"`
	DropSlug  string    `json:"drop_slug" gorm:"uniqueIndex:idx_raffle_email_drop;type:varchar(120)" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
}

// DropSignup is a request to be notified when a drop goes live.
type DropSignup struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email     string    `json:"email" gorm:"uniqueIndex:idx_signup_email_product;type:varchar(255)" validate:"required,email"`
	ProductID string    `json:"product_id" gorm:"uniqueIndex:idx_signup_email_product;type:varchar(36)"`
	CreatedAt time.Time `json:"created_at"`
}
