package service

import (
	"github.com/shopspring/decimal"
	"github.com/wekesa/tillpoint-api/internal/domain/entity"
	"github.com/wekesa/tillpoint-api/internal/domain/enum"
)

var oneHundred = decimal.NewFromInt(100)

// DiscountSpec describes a discount to apply against the cart subtotal
type DiscountSpec struct {
	Type  enum.DiscountType `json:"type"`
	Value decimal.Decimal   `json:"value"`
}

// Totals holds the derived monetary values for a cart. All amounts carry
// full decimal precision; rounding to 2dp happens only at presentation time.
type Totals struct {
	SubTotal       decimal.Decimal `json:"sub_total"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`
}

// SubTotalCents returns the subtotal in cents for persistence
func (t Totals) SubTotalCents() int64 {
	return t.SubTotal.Shift(2).Round(0).IntPart()
}

// TaxCents returns the tax amount in cents for persistence
func (t Totals) TaxCents() int64 {
	return t.TaxAmount.Shift(2).Round(0).IntPart()
}

// TotalCents returns the total in cents for persistence
func (t Totals) TotalCents() int64 {
	return t.Total.Shift(2).Round(0).IntPart()
}

// DiscountCents returns the discount amount in cents for persistence
func (t Totals) DiscountCents() int64 {
	return t.DiscountAmount.Shift(2).Round(0).IntPart()
}

// ComputeTotals derives subtotal, discount, tax, and total from the cart and
// an optional discount spec. It is recomputed from scratch on every cart or
// discount change; nothing is cached.
//
// The discount amount is clamped to [0, subtotal] for both discount types.
// A percent value over 100 therefore discounts at most the full subtotal,
// the same ceiling the fixed type has always had.
//
// Tax is currently always zero: the tax-rate integration is an external
// collaborator that is not wired in. The field exists so totals already
// carry it when it is.
func ComputeTotals(cart *entity.Cart, discount *DiscountSpec) Totals {
	subTotal := decimal.New(cart.SubTotalCents(), -2)

	discountAmount := decimal.Zero
	if discount != nil && discount.Value.IsPositive() {
		switch discount.Type {
		case enum.DiscountPercent:
			discountAmount = subTotal.Mul(discount.Value.Div(oneHundred))
		case enum.DiscountFixed:
			discountAmount = discount.Value
		}
	}
	if discountAmount.IsNegative() {
		discountAmount = decimal.Zero
	}
	if discountAmount.GreaterThan(subTotal) {
		discountAmount = subTotal
	}

	taxAmount := decimal.Zero

	return Totals{
		SubTotal:       subTotal,
		DiscountAmount: discountAmount,
		TaxAmount:      taxAmount,
		Total:          subTotal.Sub(discountAmount).Add(taxAmount),
	}
}

// ChangeAmount returns the change due for a payment: max(0, received - total)
// for cash, and zero for every other method. Callers pass decimal.Zero when
// the received amount is absent or unparseable.
func ChangeAmount(method enum.PaymentMethod, amountReceived, total decimal.Decimal) decimal.Decimal {
	if !method.IsCash() {
		return decimal.Zero
	}
	change := amountReceived.Sub(total)
	if change.IsNegative() {
		return decimal.Zero
	}
	return change
}
