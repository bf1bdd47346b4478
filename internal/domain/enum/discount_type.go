package enum

// DiscountType represents how a discount value is interpreted
type DiscountType string

const (
	// DiscountPercent treats the value as a percentage of the subtotal
	DiscountPercent DiscountType = "percent"
	// DiscountFixed treats the value as an absolute amount
	DiscountFixed DiscountType = "fixed"
)

// Valid reports whether the discount type is one of the supported values
func (t DiscountType) Valid() bool {
	return t == DiscountPercent || t == DiscountFixed
}

func (t DiscountType) String() string {
	return string(t)
}
