package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"zoru/internal/services"
)

// PasswordHandler handles the forgot/reset password endpoints.
type PasswordHandler struct {
	resetService *services.PasswordResetService
	validate     *validator.Validate
}

// NewPasswordHandler creates a new PasswordHandler.
func NewPasswordHandler(resetService *services.PasswordResetService) *PasswordHandler {
	return &PasswordHandler{
		resetService: resetService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the password reset routes with the Fiber app.
func (h *PasswordHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/forgot-password", h.HandleForgotPassword)
	authRoutes.Post("/reset-password", h.HandleResetPassword)
}

// ForgotPasswordRequest represents the request body for a reset request.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleForgotPassword issues a reset token and emails the link. The
// response body is the same whether or not the account exists.
func (h *PasswordHandler) HandleForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	if err := h.resetService.RequestReset(c.UserContext(), req.Email); err != nil {
		log.Printf("Error requesting password reset: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not process the request",
		})
	}

	return c.JSON(fiber.Map{
		"message": services.GenericResetMessage,
	})
}

// ResetPasswordRequest represents the request body for consuming a token.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleResetPassword consumes a reset token and sets the new password.
func (h *PasswordHandler) HandleResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	if err := h.resetService.ResetPassword(req.Token, req.Password); err != nil {
		switch {
		case errors.Is(err, services.ErrTokenExpired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "El enlace ha expirado. Solicita uno nuevo.",
			})
		case errors.Is(err, services.ErrTokenInvalid),
			errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "El enlace no es válido.",
			})
		case errors.Is(err, services.ErrPasswordTooShort):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "La contraseña debe tener al menos 6 caracteres.",
			})
		}
		log.Printf("Error resetting password: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not reset the password",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Contraseña actualizada correctamente.",
	})
}
