package request

// EmailReceiptRequest is the request body for emailing a receipt
type EmailReceiptRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name    string  `json:"name" binding:"required,min=1,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address" binding:"omitempty,max=500"`
}
