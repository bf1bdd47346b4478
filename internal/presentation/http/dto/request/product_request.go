package request

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name         string  `json:"name" binding:"required,min=2,max=255"`
	Code         string  `json:"code" binding:"omitempty,max=100"`
	Category     string  `json:"category" binding:"omitempty,max=100"`
	SellingPrice float64 `json:"selling_price" binding:"min=0"`
	Quantity     int     `json:"quantity" binding:"min=0"`
	IsActive     bool    `json:"is_active"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	Category   string `form:"category"`
	ActiveOnly bool   `form:"active_only"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
