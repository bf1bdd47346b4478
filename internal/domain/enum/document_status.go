package enum

// DocumentType distinguishes the kinds of sale documents the system persists
type DocumentType string

const (
	DocumentTypeReceipt DocumentType = "receipt"
	DocumentTypeInvoice DocumentType = "invoice"
)

func (t DocumentType) String() string {
	return string(t)
}

// DocumentStatus represents the payment status of a sale document
type DocumentStatus string

const (
	DocumentStatusDraft DocumentStatus = "draft"
	DocumentStatusPaid  DocumentStatus = "paid"
	DocumentStatusVoid  DocumentStatus = "void"
)

func (s DocumentStatus) String() string {
	return string(s)
}
