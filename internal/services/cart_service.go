package services

import (
	"errors"

	"zoru/internal/models"
	"zoru/internal/repositories"
)

// CartService handles business logic for the server-side cart.
// Lines merge by (product, size): adding the same product and size
// twice increments the existing line, while a different size opens a
// new line.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Add inserts a new line or increments an existing one by qty, and
// returns the updated cart. The title and unit price are snapshotted
// from the product when the line is first created.
func (s *CartService) Add(userID, productID, size string, qty int) (*models.Cart, error) {
	if qty < 1 {
		return nil, ErrQuantityInvalid
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	line, err := s.cartRepo.GetLine(userID, productID, size)
	switch {
	case err == nil:
		line.Quantity += qty
		if err := s.cartRepo.Update(line); err != nil {
			return nil, err
		}
	case errors.Is(err, repositories.ErrNotFound):
		line = &models.CartItem{
			UserID:    userID,
			ProductID: product.ID,
			Size:      size,
			Title:     product.Title,
			UnitPrice: product.Price,
			Quantity:  qty,
		}
		if err := s.cartRepo.Create(line); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.Get(userID)
}

// Remove deletes a line entirely, regardless of its quantity.
func (s *CartService) Remove(userID, productID, size string) (*models.Cart, error) {
	if err := s.cartRepo.Delete(userID, productID, size); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrLineNotFound
		}
		return nil, err
	}
	return s.Get(userID)
}

// Clear empties the user's cart.
func (s *CartService) Clear(userID string) error {
	return s.cartRepo.Clear(userID)
}

// Get returns the cart with its total recomputed as the sum of
// unit price times quantity over all lines.
func (s *CartService) Get(userID string) (*models.Cart, error) {
	items, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, it := range items {
		total += it.UnitPrice * float64(it.Quantity)
	}
	return &models.Cart{Items: items, Total: total}, nil
}
