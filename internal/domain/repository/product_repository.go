package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/wekesa/tillpoint-api/internal/domain/entity"
	"github.com/wekesa/tillpoint-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations.
// The checkout engine reads products and requests quantity updates; it does
// not own the catalog.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	CreateBatch(ctx context.Context, products []entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	// ListActive returns every active product with no pagination. The POS
	// sell screen filters over the whole catalog, not a page of it.
	ListActive(ctx context.Context) ([]entity.Product, error)
	// UpdateQuantity sets a product's stock on hand to an absolute value.
	// Checkout issues one of these per cart line, sequentially; there is no
	// conditional check and no rollback of earlier updates on later failure.
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	ActiveOnly bool
	SortBy     string
	SortOrder  string
}
