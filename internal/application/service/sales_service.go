package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/wekesa/tillpoint-api/internal/domain/entity"
	"github.com/wekesa/tillpoint-api/internal/domain/repository"
	"github.com/wekesa/tillpoint-api/pkg/apperror"
	"github.com/wekesa/tillpoint-api/pkg/pagination"
)

// SalesService provides read access to completed sales and the transaction log
type SalesService struct {
	documentRepo    repository.DocumentRepository
	transactionRepo repository.TransactionRepository
}

// NewSalesService creates a new sales service
func NewSalesService(documentRepo repository.DocumentRepository, transactionRepo repository.TransactionRepository) *SalesService {
	return &SalesService{
		documentRepo:    documentRepo,
		transactionRepo: transactionRepo,
	}
}

// GetDocument retrieves a sale document with its line items
func (s *SalesService) GetDocument(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	document, err := s.documentRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, apperror.NewNotFoundError("Document")
	}
	return document, nil
}

// ListDocuments lists sale documents with filtering
func (s *SalesService) ListDocuments(ctx context.Context, params *repository.DocumentFilterParams) (*pagination.PaginatedResult[entity.Document], error) {
	documents, total, err := s.documentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(documents, pag), nil
}

// ListTransactions lists ledger entries with filtering
func (s *SalesService) ListTransactions(ctx context.Context, params *repository.TransactionFilterParams) (*pagination.PaginatedResult[entity.Transaction], error) {
	transactions, total, err := s.transactionRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(transactions, pag), nil
}
