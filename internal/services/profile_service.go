package services

import (
	"errors"
	"log"

	"zoru/internal/models"
	"zoru/internal/repositories"
)

// ProfileService handles the wishlist.
type ProfileService struct {
	wishlistRepo repositories.WishlistRepository
	productRepo  repositories.ProductRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(wishlistRepo repositories.WishlistRepository, productRepo repositories.ProductRepository) *ProfileService {
	return &ProfileService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// AddToWishlist saves a product for the user. Saving an already saved
// product is a no-op.
func (s *ProfileService) AddToWishlist(userID, productID string) error {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	saved, err := s.wishlistRepo.Has(userID, productID)
	if err != nil {
		return err
	}
	if saved {
		return nil
	}

	return s.wishlistRepo.Add(&models.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	})
}

// RemoveFromWishlist drops a product from the user's wishlist.
func (s *ProfileService) RemoveFromWishlist(userID, productID string) error {
	if err := s.wishlistRepo.Remove(userID, productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

// GetWishlist returns the user's saved products, hydrated from the
// catalog. Products removed from the catalog are skipped.
func (s *ProfileService) GetWishlist(userID string) ([]models.Product, error) {
	items, err := s.wishlistRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(items))
	for _, it := range items {
		product, err := s.productRepo.GetByID(it.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			log.Printf("Warning: failed to hydrate wishlist product %s: %v", it.ProductID, err)
			continue
		}
		products = append(products, *product)
	}
	return products, nil
}
