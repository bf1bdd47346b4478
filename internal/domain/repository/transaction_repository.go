package repository

import (
	"context"
	"time"

	"github.com/wekesa/tillpoint-api/internal/domain/entity"
	"github.com/wekesa/tillpoint-api/internal/domain/enum"
	"github.com/wekesa/tillpoint-api/pkg/pagination"
)

// TransactionRepository defines the interface for the financial transaction
// log. Checkout writes sale entries here best-effort.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *entity.Transaction) error
	List(ctx context.Context, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
}

// TransactionFilterParams contains filtering parameters for transaction queries
type TransactionFilterParams struct {
	Pagination *pagination.PaginationParams
	Type       *enum.TransactionType
	Category   string
	StartDate  *time.Time
	EndDate    *time.Time
}
