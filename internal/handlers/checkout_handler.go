package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"zoru/internal/models"
	"zoru/internal/services"
)

// CheckoutHandler handles checkout, order history and the payment
// gateway webhook.
type CheckoutHandler struct {
	service  *services.CheckoutService
	validate *validator.Validate
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
// The webhook stays public: the gateway calls it without a session.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	router.Post("/checkout", authRequired, h.HandleCheckout)
	router.Get("/orders", authRequired, h.HandleGetOrders)
	router.Post("/payments/webhook", h.HandlePaymentWebhook)
}

// CheckoutRequest represents the request body for checkout.
type CheckoutRequest struct {
	services.ShippingInfo
	PaymentMethod string `json:"payment_method" validate:"required,oneof=mercadopago cod transfer"`
}

// HandleCheckout dispatches by payment method: the hosted gateway
// returns redirect URLs, manual methods return the persisted order.
func (h *CheckoutHandler) HandleCheckout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	userID := currentUserID(c)

	if req.PaymentMethod == models.PaymentMethodGateway {
		checkout, err := h.service.CheckoutHosted(c.UserContext(), userID, req.ShippingInfo)
		if err != nil {
			if errors.Is(err, services.ErrCartEmpty) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"message": "Cart is empty",
				})
			}
			log.Printf("Error creating hosted checkout: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not start the payment",
			})
		}
		return c.JSON(checkout)
	}

	order, err := h.service.CheckoutManual(c.UserContext(), userID, req.ShippingInfo, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCartEmpty):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Cart is empty",
			})
		case errors.Is(err, services.ErrPaymentMethodInvalid):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		log.Printf("Error creating manual order: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not place the order",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Recibimos tu pedido. Coordinaremos el pago contigo.",
		"order":   order,
	})
}

// HandleGetOrders returns the session user's order history.
func (h *CheckoutHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetOrdersByUser(currentUserID(c))
	if err != nil {
		log.Printf("Error getting orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
		})
	}
	return c.JSON(orders)
}

// HandlePaymentWebhook receives the gateway callback. The notification
// is resolved best-effort; the gateway always gets its acknowledgement.
func (h *CheckoutHandler) HandlePaymentWebhook(c *fiber.Ctx) error {
	var notif services.WebhookNotification
	if err := c.BodyParser(&notif); err != nil {
		log.Printf("Error parsing webhook body: %v", err)
	} else {
		h.service.HandlePaymentNotification(c.UserContext(), notif)
	}
	return c.JSON(fiber.Map{
		"received": true,
	})
}
