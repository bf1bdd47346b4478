package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// ReceiptItemData is one line item in a receipt email
type ReceiptItemData struct {
	Description string
	Quantity    int
	UnitPrice   string
	LineTotal   string
}

// ReceiptEmailData carries the already-formatted values for the receipt email
type ReceiptEmailData struct {
	StoreName      string
	DocumentNo     string
	Date           string
	Cashier        string
	Customer       string
	Currency       string
	PaymentMethod  string
	Items          []ReceiptItemData
	SubTotal       string
	DiscountAmount string
	HasDiscount    bool
	Total          string
	AmountReceived string
	ChangeAmount   string
	IsCash         bool
}

// SendReceiptEmail sends a sale receipt to the customer
func (s *EmailService) SendReceiptEmail(toEmail string, data *ReceiptEmailData) error {
	htmlContent, err := s.renderReceiptEmail(data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Your receipt %s - %s", data.DocumentNo, data.StoreName)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

// renderReceiptEmail renders the receipt email template
func (s *EmailService) renderReceiptEmail(data *ReceiptEmailData) (string, error) {
	tmpl, err := template.New("receipt").Parse(receiptTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// receiptTemplate is the HTML template for sale receipt emails
const receiptTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Receipt {{.DocumentNo}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);">
                    <tr>
                        <td style="background: linear-gradient(135deg, #11998e 0%, #38ef7d 100%); padding: 40px 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 28px; font-weight: 600;">{{.StoreName}}</h1>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 40px 30px;">
                            <h2 style="color: #1a1a2e; margin: 0 0 20px 0; font-size: 24px; font-weight: 600;">Receipt {{.DocumentNo}}</h2>

                            <p style="color: #4a5568; font-size: 14px; margin: 0 0 4px 0;">Date: {{.Date}}</p>
                            {{if .Cashier}}<p style="color: #4a5568; font-size: 14px; margin: 0 0 4px 0;">Served by: {{.Cashier}}</p>{{end}}
                            {{if .Customer}}<p style="color: #4a5568; font-size: 14px; margin: 0 0 4px 0;">Customer: {{.Customer}}</p>{{end}}
                            <p style="color: #4a5568; font-size: 14px; margin: 0 0 20px 0;">Payment: {{.PaymentMethod}}</p>

                            <table role="presentation" style="width: 100%; border-collapse: collapse; margin: 0 0 20px 0;">
                                <tr style="border-bottom: 2px solid #e2e8f0;">
                                    <th style="text-align: left; padding: 8px 0; color: #718096; font-size: 13px;">Item</th>
                                    <th style="text-align: right; padding: 8px 0; color: #718096; font-size: 13px;">Qty</th>
                                    <th style="text-align: right; padding: 8px 0; color: #718096; font-size: 13px;">Price</th>
                                    <th style="text-align: right; padding: 8px 0; color: #718096; font-size: 13px;">Total</th>
                                </tr>
                                {{range .Items}}
                                <tr style="border-bottom: 1px solid #edf2f7;">
                                    <td style="padding: 8px 0; color: #1a1a2e; font-size: 14px;">{{.Description}}</td>
                                    <td style="text-align: right; padding: 8px 0; color: #1a1a2e; font-size: 14px;">{{.Quantity}}</td>
                                    <td style="text-align: right; padding: 8px 0; color: #1a1a2e; font-size: 14px;">{{.UnitPrice}}</td>
                                    <td style="text-align: right; padding: 8px 0; color: #1a1a2e; font-size: 14px;">{{.LineTotal}}</td>
                                </tr>
                                {{end}}
                            </table>

                            <table role="presentation" style="width: 100%; border-collapse: collapse;">
                                <tr>
                                    <td style="padding: 4px 0; color: #4a5568; font-size: 14px;">Subtotal</td>
                                    <td style="text-align: right; padding: 4px 0; color: #4a5568; font-size: 14px;">{{.Currency}} {{.SubTotal}}</td>
                                </tr>
                                {{if .HasDiscount}}
                                <tr>
                                    <td style="padding: 4px 0; color: #4a5568; font-size: 14px;">Discount</td>
                                    <td style="text-align: right; padding: 4px 0; color: #4a5568; font-size: 14px;">-{{.Currency}} {{.DiscountAmount}}</td>
                                </tr>
                                {{end}}
                                <tr>
                                    <td style="padding: 8px 0; color: #1a1a2e; font-size: 18px; font-weight: 600; border-top: 2px solid #e2e8f0;">Total</td>
                                    <td style="text-align: right; padding: 8px 0; color: #1a1a2e; font-size: 18px; font-weight: 600; border-top: 2px solid #e2e8f0;">{{.Currency}} {{.Total}}</td>
                                </tr>
                                {{if .IsCash}}
                                <tr>
                                    <td style="padding: 4px 0; color: #4a5568; font-size: 14px;">Cash received</td>
                                    <td style="text-align: right; padding: 4px 0; color: #4a5568; font-size: 14px;">{{.Currency}} {{.AmountReceived}}</td>
                                </tr>
                                <tr>
                                    <td style="padding: 4px 0; color: #4a5568; font-size: 14px;">Change</td>
                                    <td style="text-align: right; padding: 4px 0; color: #4a5568; font-size: 14px;">{{.Currency}} {{.ChangeAmount}}</td>
                                </tr>
                                {{end}}
                            </table>
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color: #f8fafc; padding: 30px; text-align: center; border-top: 1px solid #e2e8f0;">
                            <p style="color: #a0aec0; font-size: 14px; margin: 0;">
                                Thank you for your business!
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
