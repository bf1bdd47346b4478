package request

// CheckoutDiscount is the optional discount entered at checkout
type CheckoutDiscount struct {
	Type  string  `json:"type" binding:"required,oneof=percent fixed"`
	Value float64 `json:"value" binding:"min=0"`
}

// CheckoutCustomer creates an ad-hoc customer at checkout when no existing
// customer is selected
type CheckoutCustomer struct {
	Name  string `json:"name" binding:"required,min=1,max=255"`
	Phone string `json:"phone" binding:"omitempty,max=50"`
}

// CheckoutRequest represents one "Complete Payment" press
type CheckoutRequest struct {
	PaymentMethod  string            `json:"payment_method" binding:"required"`
	AmountReceived *float64          `json:"amount_received" binding:"omitempty,min=0"`
	Discount       *CheckoutDiscount `json:"discount"`
	CustomerID     string            `json:"customer_id" binding:"omitempty,uuid"`
	Customer       *CheckoutCustomer `json:"customer"`
}
