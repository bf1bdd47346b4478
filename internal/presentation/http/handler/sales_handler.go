package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wekesa/tillpoint-api/internal/application/service"
	"github.com/wekesa/tillpoint-api/internal/domain/enum"
	"github.com/wekesa/tillpoint-api/internal/domain/repository"
	"github.com/wekesa/tillpoint-api/internal/presentation/http/dto/response"
	"github.com/wekesa/tillpoint-api/pkg/pagination"
)

// SalesHandler handles read access to completed sales and the transaction log
type SalesHandler struct {
	salesService *service.SalesService
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(salesService *service.SalesService) *SalesHandler {
	return &SalesHandler{salesService: salesService}
}

// parseDate parses a yyyy-mm-dd query parameter; nil when absent or invalid
func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}

// ListDocuments lists sale documents with filtering
func (h *SalesHandler) ListDocuments(c *gin.Context) {
	var p pagination.PaginationParams
	if err := c.ShouldBindQuery(&p); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	p.Validate()

	params := &repository.DocumentFilterParams{
		Pagination: &p,
		Search:     c.Query("search"),
		StartDate:  parseDate(c.Query("start_date")),
		EndDate:    parseDate(c.Query("end_date")),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if status := c.Query("status"); status != "" {
		s := enum.DocumentStatus(status)
		params.Status = &s
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		id, err := uuid.Parse(customerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		params.CustomerID = &id
	}

	result, err := h.salesService.ListDocuments(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Documents retrieved successfully", result)
}

// GetDocument retrieves a sale document with its line items
func (h *SalesHandler) GetDocument(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid document ID")
		return
	}

	document, err := h.salesService.GetDocument(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Document retrieved successfully", document)
}

// ListTransactions lists ledger entries with filtering
func (h *SalesHandler) ListTransactions(c *gin.Context) {
	var p pagination.PaginationParams
	if err := c.ShouldBindQuery(&p); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	p.Validate()

	params := &repository.TransactionFilterParams{
		Pagination: &p,
		Category:   c.Query("category"),
		StartDate:  parseDate(c.Query("start_date")),
		EndDate:    parseDate(c.Query("end_date")),
	}

	if txType := c.Query("type"); txType != "" {
		t := enum.TransactionType(txType)
		params.Type = &t
	}

	result, err := h.salesService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}
