package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"zoru/internal/services"
)

// WishlistHandler handles the session user's wishlist.
type WishlistHandler struct {
	service  *services.ProfileService
	validate *validator.Validate
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(service *services.ProfileService) *WishlistHandler {
	return &WishlistHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the wishlist routes with the Fiber app.
func (h *WishlistHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	wishlistRoutes := router.Group("/wishlist", authRequired)
	wishlistRoutes.Get("/", h.HandleGetWishlist)
	wishlistRoutes.Post("/", h.HandleAddToWishlist)
	wishlistRoutes.Delete("/:productId", h.HandleRemoveFromWishlist)
}

// HandleGetWishlist returns the user's saved products.
func (h *WishlistHandler) HandleGetWishlist(c *fiber.Ctx) error {
	products, err := h.service.GetWishlist(currentUserID(c))
	if err != nil {
		log.Printf("Error getting wishlist: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve wishlist",
		})
	}
	return c.JSON(products)
}

// WishlistRequest represents the request body for saving a product.
type WishlistRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// HandleAddToWishlist saves a product; saving it twice is a no-op.
func (h *WishlistHandler) HandleAddToWishlist(c *fiber.Ctx) error {
	var req WishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	if err := h.service.AddToWishlist(currentUserID(c), req.ProductID); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error adding to wishlist: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add to wishlist",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Saved",
	})
}

// HandleRemoveFromWishlist drops a product from the wishlist.
func (h *WishlistHandler) HandleRemoveFromWishlist(c *fiber.Ctx) error {
	if err := h.service.RemoveFromWishlist(currentUserID(c), c.Params("productId")); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found in wishlist",
			})
		}
		log.Printf("Error removing from wishlist: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove from wishlist",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Removed",
	})
}
