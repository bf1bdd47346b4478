package enum

// PaymentMethod represents how a sale was paid for
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
	PaymentMobileMoney  PaymentMethod = "mobile_money"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// Valid reports whether the payment method is one of the supported values
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMobileMoney, PaymentBankTransfer:
		return true
	}
	return false
}

// IsCash reports whether the method carries an amount-received/change concept.
// Only cash payments do.
func (m PaymentMethod) IsCash() bool {
	return m == PaymentCash
}

func (m PaymentMethod) String() string {
	return string(m)
}
