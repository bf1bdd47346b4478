package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wekesa/tillpoint-api/internal/application/service"
	"github.com/wekesa/tillpoint-api/internal/presentation/http/dto/request"
	"github.com/wekesa/tillpoint-api/internal/presentation/http/dto/response"
)

// CartHandler handles sale-in-progress HTTP requests. Every endpoint is
// scoped to the till identified by the X-POS-Session header.
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// sessionID extracts and validates the POS session header
func (h *CartHandler) sessionID(c *gin.Context) (string, bool) {
	sessionID := GetSessionID(c)
	if sessionID == "" {
		response.BadRequest(c, "X-POS-Session header is required")
		return "", false
	}
	return sessionID, true
}

// Get returns the session's cart, creating an empty one if needed
func (h *CartHandler) Get(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	cart := h.cartService.GetCart(sessionID)
	response.OK(c, "Cart retrieved successfully", cart)
}

// AddItem adds one unit of a product to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req request.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	cart, err := h.cartService.AddToCart(c.Request.Context(), sessionID, productID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product added to cart", cart)
}

// UpdateQuantity adjusts a cart line's quantity by a signed delta
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req request.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	cart, err := h.cartService.UpdateQuantity(c.Request.Context(), sessionID, productID, req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart updated", cart)
}

// RemoveItem removes a product's line from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	cart := h.cartService.RemoveFromCart(sessionID, productID)
	response.OK(c, "Product removed from cart", cart)
}

// Clear empties the session's cart
func (h *CartHandler) Clear(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	cart := h.cartService.ClearCart(sessionID)
	response.OK(c, "Cart cleared", cart)
}

// NewSale discards the session's cart after a completed checkout
func (h *CartHandler) NewSale(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	h.cartService.NewSale(sessionID)
	response.NoContent(c)
}
