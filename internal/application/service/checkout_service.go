package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wekesa/tillpoint-api/internal/domain/entity"
	"github.com/wekesa/tillpoint-api/internal/domain/enum"
	"github.com/wekesa/tillpoint-api/internal/domain/repository"
	"github.com/wekesa/tillpoint-api/pkg/apperror"
)

// PermissionApplyDiscount gates applying a discount at checkout
const PermissionApplyDiscount = "pos.discount"

// PermissionChecker reports whether the acting employee holds a capability
type PermissionChecker func(capability string) bool

// CheckoutService converts a session's cart into a persisted sale document.
//
// The sequence is best-effort and non-atomic by contract: stock is
// decremented one product at a time before the document is created, with no
// rollback of earlier decrements if a later step fails. The ledger entry
// after the document is best-effort and never fails the checkout.
type CheckoutService struct {
	carts           repository.CartStore
	productRepo     repository.ProductRepository
	customerRepo    repository.CustomerRepository
	documentRepo    repository.DocumentRepository
	transactionRepo repository.TransactionRepository
	header          entity.ReceiptHeader
	currency        string
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	carts repository.CartStore,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	documentRepo repository.DocumentRepository,
	transactionRepo repository.TransactionRepository,
	header entity.ReceiptHeader,
	currency string,
) *CheckoutService {
	return &CheckoutService{
		carts:           carts,
		productRepo:     productRepo,
		customerRepo:    customerRepo,
		documentRepo:    documentRepo,
		transactionRepo: transactionRepo,
		header:          header,
		currency:        currency,
	}
}

// CheckoutInput represents one "Complete Payment" press
type CheckoutInput struct {
	SessionID      string
	PaymentMethod  enum.PaymentMethod
	AmountReceived *decimal.Decimal // cash only; nil when absent
	Discount       *DiscountSpec
	CustomerID     *uuid.UUID
	CustomerName   string // ad-hoc customer when no CustomerID is given
	CustomerPhone  string
	EmployeeName   string // acting employee's display name; blank is acceptable
	HasPermission  PermissionChecker
}

// checkoutRun tracks where a single checkout is in its sequence
type checkoutRun struct {
	state enum.CheckoutState
}

func (r *checkoutRun) to(next enum.CheckoutState) {
	if !r.state.CanTransition(next) {
		// A wiring bug, not a user error. Fail loudly in development.
		log.Printf("checkout: illegal transition %s -> %s", r.state, next)
	}
	r.state = next
}

// Checkout validates the session's cart and payment, reserves stock,
// persists the sale document, records the ledger entry best-effort, and
// returns the finished receipt. The cart is NOT cleared on success; starting
// a new sale is an explicit separate action.
func (s *CheckoutService) Checkout(ctx context.Context, input *CheckoutInput) (*entity.Receipt, error) {
	run := &checkoutRun{state: enum.CheckoutIdle}
	run.to(enum.CheckoutValidating)

	cart, lines, err := s.snapshotCart(input.SessionID)
	if err != nil {
		run.to(enum.CheckoutIdle)
		return nil, err
	}

	if !input.PaymentMethod.Valid() {
		run.to(enum.CheckoutIdle)
		return nil, apperror.NewBadRequestError("Invalid payment method")
	}

	// Validation must be free of side effects: a selected customer is only
	// looked up, and an ad-hoc customer is only checked for a non-empty name.
	// Nothing is written until every precondition has passed.
	customer, err := s.validateCustomer(ctx, input)
	if err != nil {
		run.to(enum.CheckoutIdle)
		return nil, err
	}

	// Discount application is gated by capability; without it the discount
	// input is ignored rather than rejected.
	discount := input.Discount
	if discount != nil && (input.HasPermission == nil || !input.HasPermission(PermissionApplyDiscount)) {
		discount = nil
	}

	totals := ComputeTotals(cart, discount)

	received := decimal.Zero
	if input.PaymentMethod.IsCash() {
		if input.AmountReceived == nil {
			run.to(enum.CheckoutIdle)
			return nil, apperror.NewBadRequestError("Amount received is required for cash payments")
		}
		received = *input.AmountReceived
		if received.LessThan(totals.Total) {
			shortfall := totals.Total.Sub(received)
			run.to(enum.CheckoutIdle)
			return nil, apperror.NewBadRequestError(
				fmt.Sprintf("Insufficient payment, need %s more", shortfall.StringFixed(2)))
		}
	}

	// Stock is decremented strictly before the document is persisted, one
	// product at a time against the cart's stock snapshot. There is no
	// rollback: decrements that succeeded before a later failure stay
	// applied. Accepted limitation of the checkout contract.
	run.to(enum.CheckoutReservingStock)
	for _, line := range lines {
		newQuantity := line.Product.Quantity - line.Quantity
		if err := s.productRepo.UpdateQuantity(ctx, line.Product.ID, newQuantity); err != nil {
			run.to(enum.CheckoutFailed)
			return nil, apperror.NewAppError(500,
				fmt.Sprintf("Failed to update stock for %s", line.Product.Name))
		}
	}

	run.to(enum.CheckoutPersistingSale)
	if customer == nil {
		customer, err = s.createAdHocCustomer(ctx, input)
		if err != nil {
			// Decremented stock stays applied, same as the document path below.
			run.to(enum.CheckoutFailed)
			return nil, apperror.NewAppError(500, "Failed to save the customer record")
		}
	}
	document := s.buildDocument(input, customer, lines, totals)
	if err := s.documentRepo.Create(ctx, document); err != nil {
		// Stock has already been decremented and is not reverted here.
		run.to(enum.CheckoutFailed)
		return nil, apperror.NewAppError(500, "Failed to save the sale record")
	}

	// Annotate the persisted document with the display-only payment fields
	// the receipt needs. These are append-only and never written back.
	document.DiscountAmount = totals.DiscountAmount.Round(2).InexactFloat64()
	if discount != nil {
		document.DiscountType = discount.Type
	}
	document.AmountReceived = received.Round(2).InexactFloat64()
	document.ChangeAmount = ChangeAmount(input.PaymentMethod, received, totals.Total).Round(2).InexactFloat64()

	run.to(enum.CheckoutRecordingLedgerEntry)
	s.recordLedgerEntry(ctx, document, customer)

	run.to(enum.CheckoutCompleted)
	return s.buildReceipt(document, customer, lines, totals, discount, input.PaymentMethod, received), nil
}

// snapshotCart copies the session's cart lines so the checkout works on a
// stable view even if the till keeps mutating the cart.
func (s *CheckoutService) snapshotCart(sessionID string) (*entity.Cart, []entity.CartLine, error) {
	cart, ok := s.carts.Get(sessionID)
	if !ok || cart.IsEmpty() {
		return nil, nil, apperror.NewBadRequestError("Cart is empty")
	}

	lines := make([]entity.CartLine, len(cart.Lines))
	copy(lines, cart.Lines)
	snapshot := &entity.Cart{SessionID: sessionID, Lines: lines}
	return snapshot, lines, nil
}

// validateCustomer checks the customer selection without writing anything.
// A selected customer must exist; an ad-hoc checkout needs only a non-empty
// name. Returns nil for the ad-hoc case: the row is created later, once the
// checkout is past its preconditions, so a declined payment leaves no trace.
func (s *CheckoutService) validateCustomer(ctx context.Context, input *CheckoutInput) (*entity.Customer, error) {
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		return customer, nil
	}

	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, apperror.NewBadRequestError("Customer is required")
	}
	return nil, nil
}

// createAdHocCustomer persists the walk-in customer entered at the till
func (s *CheckoutService) createAdHocCustomer(ctx context.Context, input *CheckoutInput) (*entity.Customer, error) {
	customer := &entity.Customer{Name: strings.TrimSpace(input.CustomerName)}
	if phone := strings.TrimSpace(input.CustomerPhone); phone != "" {
		customer.Phone = &phone
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CheckoutService) buildDocument(input *CheckoutInput, customer *entity.Customer, lines []entity.CartLine, totals Totals) *entity.Document {
	items := make([]entity.DocumentItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, entity.DocumentItem{
			ProductID:   line.Product.ID,
			Description: line.Product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.Product.SellingPrice,
			LineTotal:   line.LineTotal(),
		})
	}

	return &entity.Document{
		CustomerID:    &customer.ID,
		Type:          enum.DocumentTypeReceipt,
		Status:        enum.DocumentStatusPaid,
		DocumentDate:  time.Now(),
		Currency:      s.currency,
		SubTotal:      totals.SubTotalCents(),
		TaxAmount:     totals.TaxCents(),
		Total:         totals.TotalCents(),
		PaymentMethod: input.PaymentMethod,
		SoldBy:        input.EmployeeName,
		Items:         items,
	}
}

// recordLedgerEntry writes the sale into the transaction log. Failure is
// logged and swallowed: the sale is complete once the document exists.
func (s *CheckoutService) recordLedgerEntry(ctx context.Context, document *entity.Document, customer *entity.Customer) {
	transaction := &entity.Transaction{
		DocumentID:      &document.ID,
		Type:            enum.TransactionTypeSale,
		Amount:          document.Total,
		Category:        "sales",
		Description:     fmt.Sprintf("Sale to %s (%s)", customer.Name, document.DocumentNo),
		TransactionDate: document.DocumentDate,
	}
	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		log.Printf("checkout: failed to record ledger entry for %s: %v", document.DocumentNo, err)
	}
}

func (s *CheckoutService) buildReceipt(document *entity.Document, customer *entity.Customer, lines []entity.CartLine, totals Totals, discount *DiscountSpec, method enum.PaymentMethod, received decimal.Decimal) *entity.Receipt {
	items := make([]entity.ReceiptItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, entity.ReceiptItem{
			Description: line.Product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.Product.GetSellingPriceDecimal(),
			LineTotal:   float64(line.LineTotal()) / 100,
		})
	}

	receipt := &entity.Receipt{
		Header:         s.header,
		DocumentNo:     document.DocumentNo,
		Date:           document.DocumentDate.Format("2006-01-02 15:04"),
		Cashier:        document.SoldBy,
		Currency:       document.Currency,
		PaymentMethod:  method,
		Items:          items,
		SubTotal:       totals.SubTotal.Round(2).InexactFloat64(),
		DiscountAmount: totals.DiscountAmount.Round(2).InexactFloat64(),
		TaxAmount:      totals.TaxAmount.Round(2).InexactFloat64(),
		Total:          totals.Total.Round(2).InexactFloat64(),
		AmountReceived: received.Round(2).InexactFloat64(),
		ChangeAmount:   ChangeAmount(method, received, totals.Total).Round(2).InexactFloat64(),
	}
	if discount != nil {
		receipt.DiscountType = discount.Type
	}
	if customer != nil {
		receipt.Customer = customer.Name
	}
	return receipt
}
