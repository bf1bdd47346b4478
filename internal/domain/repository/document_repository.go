package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wekesa/tillpoint-api/internal/domain/entity"
	"github.com/wekesa/tillpoint-api/internal/domain/enum"
	"github.com/wekesa/tillpoint-api/pkg/pagination"
)

// DocumentRepository defines the interface for sale document data operations.
// Create persists the document together with its items and assigns the
// generated document number.
type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	GetByDocumentNo(ctx context.Context, documentNo string) (*entity.Document, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	List(ctx context.Context, params *DocumentFilterParams) ([]entity.Document, int64, error)
}

// DocumentFilterParams contains filtering parameters for document queries
type DocumentFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Type       *enum.DocumentType
	Status     *enum.DocumentStatus
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}
