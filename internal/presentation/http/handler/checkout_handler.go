package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wekesa/tillpoint-api/internal/application/service"
	"github.com/wekesa/tillpoint-api/internal/domain/enum"
	"github.com/wekesa/tillpoint-api/internal/presentation/http/dto/request"
	"github.com/wekesa/tillpoint-api/internal/presentation/http/dto/response"
)

// CheckoutHandler handles the "Complete Payment" HTTP request
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Checkout converts the session's cart into a persisted sale and returns the
// finished receipt. The cart is left intact; POST /cart/new-sale discards it.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	sessionID := GetSessionID(c)
	if sessionID == "" {
		response.BadRequest(c, "X-POS-Session header is required")
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.CheckoutInput{
		SessionID:     sessionID,
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		EmployeeName:  GetEmployeeName(c),
		HasPermission: func(capability string) bool {
			return HasPermission(c, capability)
		},
	}

	if req.AmountReceived != nil {
		received := decimal.NewFromFloat(*req.AmountReceived)
		input.AmountReceived = &received
	}

	if req.Discount != nil {
		input.Discount = &service.DiscountSpec{
			Type:  enum.DiscountType(req.Discount.Type),
			Value: decimal.NewFromFloat(req.Discount.Value),
		}
	}

	if req.CustomerID != "" {
		customerID, err := uuid.Parse(req.CustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		input.CustomerID = &customerID
	} else if req.Customer != nil {
		input.CustomerName = req.Customer.Name
		input.CustomerPhone = req.Customer.Phone
	}

	receipt, err := h.checkoutService.Checkout(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Checkout completed", gin.H{
		"receipt": receipt,
	})
}
