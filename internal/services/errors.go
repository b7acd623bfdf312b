package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these to
// HTTP statuses with errors.Is.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")

	ErrProductNotFound = errors.New("product not found")
	ErrDropNotFound    = errors.New("drop not found")

	ErrQuantityInvalid = errors.New("quantity must be at least 1")
	ErrCartEmpty       = errors.New("cart is empty")
	ErrLineNotFound    = errors.New("cart line not found")

	ErrPaymentMethodInvalid = errors.New("unsupported payment method")

	ErrTokenInvalid     = errors.New("invalid reset token")
	ErrTokenExpired     = errors.New("reset token expired")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")

	ErrAlreadyEntered = errors.New("already entered this raffle")
)
