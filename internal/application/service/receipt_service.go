package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/wekesa/tillpoint-api/internal/domain/entity"
	"github.com/wekesa/tillpoint-api/internal/domain/repository"
	"github.com/wekesa/tillpoint-api/pkg/apperror"
	"github.com/wekesa/tillpoint-api/pkg/email"
	"github.com/wekesa/tillpoint-api/pkg/printer"
)

// ReceiptService handles what happens to a receipt after checkout: thermal
// printing, email delivery, and plain-text rendering for share sheets. All
// post-actions operate on the finished, immutable receipt.
type ReceiptService struct {
	printer      printer.Printer
	emailService *email.EmailService
	documentRepo repository.DocumentRepository
	header       entity.ReceiptHeader
	printerType  string
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	p printer.Printer,
	emailService *email.EmailService,
	documentRepo repository.DocumentRepository,
	header entity.ReceiptHeader,
	printerType string,
) *ReceiptService {
	return &ReceiptService{
		printer:      p,
		emailService: emailService,
		documentRepo: documentRepo,
		header:       header,
		printerType:  printerType,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *ReceiptService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// Print sends the receipt of a completed checkout to the thermal printer.
func (s *ReceiptService) Print(receipt *entity.Receipt) error {
	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (%s): %v", receipt.DocumentNo, err)
		return fmt.Errorf("failed to print receipt: %w", err)
	}
	return nil
}

// PrintByDocumentNo reprints the receipt for a persisted sale document.
// Reprints carry only what the document stores; the cash-drawer annotations
// of the original checkout are not reproduced.
func (s *ReceiptService) PrintByDocumentNo(ctx context.Context, documentNo string) (*entity.Receipt, error) {
	receipt, err := s.composeFromDocument(ctx, documentNo)
	if err != nil {
		return nil, err
	}

	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (%s): %v", documentNo, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	return receipt, nil
}

// Email sends the receipt to the given address.
func (s *ReceiptService) Email(receipt *entity.Receipt, toEmail string) error {
	if toEmail == "" {
		return apperror.NewBadRequestError("Recipient email is required")
	}

	data := &email.ReceiptEmailData{
		StoreName:      receipt.Header.StoreName,
		DocumentNo:     receipt.DocumentNo,
		Date:           receipt.Date,
		Cashier:        receipt.Cashier,
		Customer:       receipt.Customer,
		Currency:       receipt.Currency,
		PaymentMethod:  receipt.PaymentMethod.String(),
		SubTotal:       fmt.Sprintf("%.2f", receipt.SubTotal),
		DiscountAmount: fmt.Sprintf("%.2f", receipt.DiscountAmount),
		HasDiscount:    receipt.DiscountAmount > 0,
		Total:          fmt.Sprintf("%.2f", receipt.Total),
		AmountReceived: fmt.Sprintf("%.2f", receipt.AmountReceived),
		ChangeAmount:   fmt.Sprintf("%.2f", receipt.ChangeAmount),
		IsCash:         receipt.PaymentMethod.IsCash(),
	}
	for _, item := range receipt.Items {
		data.Items = append(data.Items, email.ReceiptItemData{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   fmt.Sprintf("%.2f", item.UnitPrice),
			LineTotal:   fmt.Sprintf("%.2f", item.LineTotal),
		})
	}

	return s.emailService.SendReceiptEmail(toEmail, data)
}

// EmailByDocumentNo sends the receipt for a persisted sale document.
func (s *ReceiptService) EmailByDocumentNo(ctx context.Context, documentNo, toEmail string) (*entity.Receipt, error) {
	receipt, err := s.composeFromDocument(ctx, documentNo)
	if err != nil {
		return nil, err
	}
	return receipt, s.Email(receipt, toEmail)
}

// ShareText renders the receipt as plain text for share sheets.
func (s *ReceiptService) ShareText(ctx context.Context, documentNo string) (string, error) {
	receipt, err := s.composeFromDocument(ctx, documentNo)
	if err != nil {
		return "", err
	}
	return RenderReceiptText(receipt), nil
}

// composeFromDocument rebuilds a receipt value object from a persisted sale
// document.
func (s *ReceiptService) composeFromDocument(ctx context.Context, documentNo string) (*entity.Receipt, error) {
	document, err := s.documentRepo.GetByDocumentNo(ctx, documentNo)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}

	receipt := &entity.Receipt{
		Header:        s.header,
		DocumentNo:    document.DocumentNo,
		Date:          document.DocumentDate.Format("2006-01-02 15:04"),
		Cashier:       document.SoldBy,
		Currency:      document.Currency,
		PaymentMethod: document.PaymentMethod,
		SubTotal:      document.GetSubTotalDecimal(),
		TaxAmount:     float64(document.TaxAmount) / 100,
		Total:         document.GetTotalDecimal(),
	}
	if document.Customer != nil {
		receipt.Customer = document.Customer.Name
	}

	for _, item := range document.Items {
		description := item.Description
		if description == "" {
			description = item.Product.Name
		}
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Description: description,
			Quantity:    item.Quantity,
			UnitPrice:   float64(item.UnitPrice) / 100,
			LineTotal:   float64(item.LineTotal) / 100,
		})
	}

	return receipt, nil
}

// TestPrint sends a test page to the printer. Returns the receipt data so
// the handler can return it as JSON when no printer is configured.
func (s *ReceiptService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header:     s.header,
		DocumentNo: "TEST-001",
		Date:       "Test Date",
		Cashier:    "System",
		Currency:   "KES",
		Items: []entity.ReceiptItem{
			{Description: "Test Item 1", Quantity: 1, UnitPrice: 10.00, LineTotal: 10.00},
			{Description: "Test Item 2", Quantity: 2, UnitPrice: 5.00, LineTotal: 10.00},
		},
		SubTotal: 20.00,
		Total:    20.00,
	}

	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(32) // 58mm paper = 32 chars

	// Pop the cash drawer before printing so change can be counted out.
	// Reprints carry no tendered amount and leave the drawer shut.
	if r.PaymentMethod.IsCash() && r.AmountReceived > 0 {
		doc.OpenDrawer()
	}

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.TextF("Tax ID: %s", r.Header.TaxID)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	// Receipt info
	doc.KeyValue("Receipt:", r.DocumentNo).
		KeyValue("Date:", r.Date)

	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}
	doc.KeyValue("Payment:", r.PaymentMethod.String())

	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Description, fmt.Sprintf("%.2f", item.LineTotal))
		if item.Quantity > 1 {
			doc.TextF("  @ %.2f each", item.UnitPrice)
		}
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal:", fmt.Sprintf("%.2f", r.SubTotal))
	if r.DiscountAmount > 0 {
		doc.KeyValue("Discount:", fmt.Sprintf("-%.2f", r.DiscountAmount))
	}
	if r.TaxAmount > 0 {
		doc.KeyValue("Tax:", fmt.Sprintf("%.2f", r.TaxAmount))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%s %.2f", r.Currency, r.Total)).
		SetBold(false)

	if r.PaymentMethod.IsCash() {
		doc.KeyValue("Cash:", fmt.Sprintf("%.2f", r.AmountReceived)).
			KeyValue("Change:", fmt.Sprintf("%.2f", r.ChangeAmount))
	}

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text(footerNote(r)).
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

// RenderReceiptText renders the receipt as plain text, mirroring the printed
// layout without ESC/POS control bytes.
func RenderReceiptText(r *entity.Receipt) string {
	var b strings.Builder
	rule := strings.Repeat("-", 32)

	fmt.Fprintf(&b, "%s\n", r.Header.StoreName)
	if r.Header.Address != "" {
		fmt.Fprintf(&b, "%s\n", r.Header.Address)
	}
	if r.Header.Phone != "" {
		fmt.Fprintf(&b, "%s\n", r.Header.Phone)
	}
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "Receipt: %s\n", r.DocumentNo)
	fmt.Fprintf(&b, "Date: %s\n", r.Date)
	if r.Cashier != "" {
		fmt.Fprintf(&b, "Cashier: %s\n", r.Cashier)
	}
	if r.Customer != "" {
		fmt.Fprintf(&b, "Customer: %s\n", r.Customer)
	}
	fmt.Fprintf(&b, "Payment: %s\n", r.PaymentMethod)
	fmt.Fprintf(&b, "%s\n", rule)
	for _, item := range r.Items {
		fmt.Fprintf(&b, "%dx %s  %.2f\n", item.Quantity, item.Description, item.LineTotal)
	}
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "Subtotal: %.2f\n", r.SubTotal)
	if r.DiscountAmount > 0 {
		fmt.Fprintf(&b, "Discount: -%.2f\n", r.DiscountAmount)
	}
	fmt.Fprintf(&b, "TOTAL: %s %.2f\n", r.Currency, r.Total)
	if r.PaymentMethod.IsCash() {
		fmt.Fprintf(&b, "Cash: %.2f\n", r.AmountReceived)
		fmt.Fprintf(&b, "Change: %.2f\n", r.ChangeAmount)
	}
	fmt.Fprintf(&b, "%s\n%s\n", rule, footerNote(r))

	return b.String()
}

func footerNote(r *entity.Receipt) string {
	if r.Header.FooterNote != "" {
		return r.Header.FooterNote
	}
	return "Thank you for your business!"
}
