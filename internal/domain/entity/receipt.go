package entity

import "github.com/wekesa/tillpoint-api/internal/domain/enum"

// ReceiptHeader holds the store/business header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName  string `json:"store_name"`
	Address    string `json:"address,omitempty"`
	Phone      string `json:"phone,omitempty"`
	TaxID      string `json:"tax_id,omitempty"`
	FooterNote string `json:"footer_note,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

// Receipt is an immutable value object snapshot of a completed sale. It is
// NOT a database entity: it is composed once, at the end of a successful
// checkout, from the persisted document plus the display-only payment
// annotations (discount amount/type, amount received, change).
type Receipt struct {
	Header         ReceiptHeader      `json:"header"`
	DocumentNo     string             `json:"document_no"`
	Date           string             `json:"date"`
	Cashier        string             `json:"cashier,omitempty"`
	Customer       string             `json:"customer,omitempty"`
	Currency       string             `json:"currency"`
	PaymentMethod  enum.PaymentMethod `json:"payment_method"`
	Items          []ReceiptItem      `json:"items"`
	SubTotal       float64            `json:"sub_total"`
	DiscountAmount float64            `json:"discount_amount"`
	DiscountType   enum.DiscountType  `json:"discount_type,omitempty"`
	TaxAmount      float64            `json:"tax_amount"`
	Total          float64            `json:"total"`
	AmountReceived float64            `json:"amount_received"`
	ChangeAmount   float64            `json:"change_amount"`
}
