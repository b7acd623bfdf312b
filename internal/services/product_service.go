package services

import (
	"errors"
	"sort"
	"strings"

	"zoru/internal/models"
	"zoru/internal/repositories"
)

// Sort orders accepted by ListOptions.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// ListOptions filters and sorts the catalog listing. The catalog is
// small by design (limited-edition drops), so filtering happens in
// memory over the full product list.
type ListOptions struct {
	Category  string
	Size      string
	MaxPrice  float64
	DropsOnly bool
	Sort      string
}

// ProductService handles business logic related to the catalog.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// GetAllProducts retrieves the catalog, filtered and sorted per opts.
func (s *ProductService) GetAllProducts(opts ListOptions) ([]models.Product, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if opts.Category != "" && !strings.EqualFold(p.Category, opts.Category) {
			continue
		}
		if opts.MaxPrice > 0 && p.Price > opts.MaxPrice {
			continue
		}
		if opts.DropsOnly && !p.IsDrop {
			continue
		}
		if opts.Size != "" && !hasSize(p.Sizes, opts.Size) {
			continue
		}
		filtered = append(filtered, p)
	}

	switch opts.Sort {
	case SortPriceAsc:
		sort.Slice(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case SortPriceDesc:
		sort.Slice(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	default: // SortNewest
		sort.Slice(filtered, func(i, j int) bool { return filtered[i].CreatedAt.After(filtered[j].CreatedAt) })
	}

	return filtered, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// GetProductBySlug retrieves a single product by its slug.
func (s *ProductService) GetProductBySlug(slug string) (*models.Product, error) {
	product, err := s.repo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func hasSize(sizes []string, want string) bool {
	for _, s := range sizes {
		if strings.EqualFold(s, want) {
			return true
		}
	}
	return false
}
