package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/wekesa/tillpoint-api/internal/application/service"
	"github.com/wekesa/tillpoint-api/internal/presentation/http/dto/request"
	"github.com/wekesa/tillpoint-api/internal/presentation/http/dto/response"
)

// ReceiptHandler handles receipt post-action HTTP requests: printing,
// emailing and share-text rendering for persisted sales.
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// GetStatus returns the current printer connection status
func (h *ReceiptHandler) GetStatus(c *gin.Context) {
	status := h.receiptService.GetStatus()
	response.OK(c, "Printer status retrieved", status)
}

// TestPrint sends a test page to the printer
func (h *ReceiptHandler) TestPrint(c *gin.Context) {
	receipt, err := h.receiptService.TestPrint()
	if err != nil {
		// Return the receipt data anyway (useful when printer type is "none")
		response.OK(c, "Test print completed (printer may be disabled)", gin.H{
			"receipt": receipt,
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Test page sent to printer", gin.H{
		"receipt": receipt,
	})
}

// Print reprints the receipt for a persisted sale
func (h *ReceiptHandler) Print(c *gin.Context) {
	documentNo := c.Param("document_no")
	if documentNo == "" {
		response.BadRequest(c, "Receipt number is required")
		return
	}

	receipt, err := h.receiptService.PrintByDocumentNo(c.Request.Context(), documentNo)
	if err != nil {
		// If the receipt was built but printing failed, return it with a warning
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", gin.H{
		"receipt": receipt,
	})
}

// Email sends the receipt for a persisted sale to the given address
func (h *ReceiptHandler) Email(c *gin.Context) {
	documentNo := c.Param("document_no")
	if documentNo == "" {
		response.BadRequest(c, "Receipt number is required")
		return
	}

	var req request.EmailReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	receipt, err := h.receiptService.EmailByDocumentNo(c.Request.Context(), documentNo, req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt emailed successfully", gin.H{
		"receipt": receipt,
	})
}

// Share renders the receipt as plain text for the till's share sheet
func (h *ReceiptHandler) Share(c *gin.Context) {
	documentNo := c.Param("document_no")
	if documentNo == "" {
		response.BadRequest(c, "Receipt number is required")
		return
	}

	text, err := h.receiptService.ShareText(c.Request.Context(), documentNo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt rendered", gin.H{
		"text": text,
	})
}
