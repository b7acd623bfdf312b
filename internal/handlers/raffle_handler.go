package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"zoru/internal/models"
	"zoru/internal/services"
)

// RaffleHandler handles raffle entries and drop-notification signups.
type RaffleHandler struct {
	service  *services.RaffleService
	validate *validator.Validate
}

// NewRaffleHandler creates a new RaffleHandler.
func NewRaffleHandler(service *services.RaffleService) *RaffleHandler {
	return &RaffleHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the raffle routes with the Fiber app.
func (h *RaffleHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/raffle/entries", h.HandleEnterRaffle)
	router.Post("/drops/:slug/notify", h.HandleDropNotify)
}

// HandleEnterRaffle records a sweepstakes entry for a drop.
func (h *RaffleHandler) HandleEnterRaffle(c *fiber.Ctx) error {
	var entry models.RaffleEntry
	if err := c.BodyParser(&entry); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(entry); err != nil {
		return validationError(c, err)
	}

	if err := h.service.EnterRaffle(&entry); err != nil {
		switch {
		case errors.Is(err, services.ErrDropNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Drop not found",
			})
		case errors.Is(err, services.ErrAlreadyEntered):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Ya estás participando en este sorteo.",
			})
		}
		log.Printf("Error entering raffle: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not enter the raffle",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "¡Estás participando! Te avisaremos si ganas acceso anticipado.",
	})
}

// DropNotifyRequest represents the request body for a drop signup.
type DropNotifyRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleDropNotify records a drop-notification signup. Duplicate
// signups get the same success response.
func (h *RaffleHandler) HandleDropNotify(c *fiber.Ctx) error {
	var req DropNotifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	if err := h.service.SubscribeDrop(req.Email, c.Params("slug")); err != nil {
		if errors.Is(err, services.ErrDropNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Drop not found",
			})
		}
		log.Printf("Error subscribing to drop: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not subscribe",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Te avisaremos cuando el drop esté disponible.",
	})
}
