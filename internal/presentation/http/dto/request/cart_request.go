package request

// AddToCartRequest adds one unit of a product to the session's cart
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
}

// UpdateQuantityRequest adjusts a cart line's quantity by a signed delta
type UpdateQuantityRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Delta     int    `json:"delta" binding:"required"`
}
