package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/wekesa/tillpoint-api/internal/domain/entity"
	"github.com/wekesa/tillpoint-api/internal/domain/repository"
	"github.com/wekesa/tillpoint-api/pkg/apperror"
	"github.com/wekesa/tillpoint-api/pkg/pagination"
	"github.com/wekesa/tillpoint-api/pkg/utils"
)

// CatalogService handles product catalog operations for the POS screen
type CatalogService struct {
	productRepo repository.ProductRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(productRepo repository.ProductRepository) *CatalogService {
	return &CatalogService{productRepo: productRepo}
}

// FilterSellable selects the products that may be sold right now: active and
// in stock, matched case-insensitively against the query on name or category,
// and restricted to an exact category when one is selected. An empty result
// is valid.
func FilterSellable(products []entity.Product, query, category string) []entity.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	result := make([]entity.Product, 0, len(products))

	for _, p := range products {
		if !p.IsSellable() {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Category), query) {
			continue
		}
		result = append(result, p)
	}

	return result
}

// ListSellable returns the sellable subset of the catalog for the POS
// screen. The filter runs over every active product; only the management
// List endpoint paginates.
func (s *CatalogService) ListSellable(ctx context.Context, query, category string) ([]entity.Product, error) {
	products, err := s.productRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	return FilterSellable(products, query, category), nil
}

// ListProducts lists products with filtering and pagination (management view)
func (s *CatalogService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// GetProduct retrieves a product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name         string
	Code         string
	Category     string
	SellingPrice float64
	Quantity     int
	IsActive     bool
}

// CreateProduct creates a new catalog product
func (s *CatalogService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Product name is required")
	}

	code := input.Code
	if code == "" {
		code = utils.GenerateProductCode()
	} else {
		existing, err := s.productRepo.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Product code already exists")
		}
	}

	product := &entity.Product{
		Name:     input.Name,
		Code:     code,
		Category: input.Category,
		Quantity: input.Quantity,
		IsActive: input.IsActive,
	}
	product.SetSellingPriceFromDecimal(input.SellingPrice)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}
