package enum

// TransactionType classifies entries in the financial transaction log
type TransactionType string

const (
	TransactionTypeSale    TransactionType = "sale"
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeRefund  TransactionType = "refund"
)

func (t TransactionType) String() string {
	return string(t)
}
