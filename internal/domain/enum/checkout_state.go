package enum

// CheckoutState represents a step in the checkout sequence. The sequence
// advances Idle -> Validating -> ReservingStock -> PersistingSale ->
// RecordingLedgerEntry -> Completed. Failed is reachable from Validating,
// ReservingStock, and PersistingSale.
type CheckoutState int

const (
	CheckoutIdle CheckoutState = iota
	CheckoutValidating
	CheckoutReservingStock
	CheckoutPersistingSale
	CheckoutRecordingLedgerEntry
	CheckoutCompleted
	CheckoutFailed
)

func (s CheckoutState) String() string {
	names := [...]string{
		"Idle",
		"Validating",
		"ReservingStock",
		"PersistingSale",
		"RecordingLedgerEntry",
		"Completed",
		"Failed",
	}
	if int(s) < 0 || int(s) >= len(names) {
		return "Idle"
	}
	return names[s]
}

// CanTransition reports whether moving from s to next is a legal step in
// the checkout sequence.
func (s CheckoutState) CanTransition(next CheckoutState) bool {
	switch s {
	case CheckoutIdle:
		return next == CheckoutValidating
	case CheckoutValidating:
		return next == CheckoutReservingStock || next == CheckoutFailed || next == CheckoutIdle
	case CheckoutReservingStock:
		return next == CheckoutPersistingSale || next == CheckoutFailed
	case CheckoutPersistingSale:
		return next == CheckoutRecordingLedgerEntry || next == CheckoutFailed
	case CheckoutRecordingLedgerEntry:
		return next == CheckoutCompleted
	}
	return false
}
