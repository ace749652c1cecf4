// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateInvoice generates a PDF invoice for an order
func (s *Service) GenerateInvoice(o *order.Order) (*bytes.Buffer, error) {
	data := InvoiceData{
		InvoiceNumber: fmt.Sprintf("INV-%s", o.OrderNumber),
		InvoiceDate:   o.CreatedAt.Format("January 2, 2006"),
		GeneratedAt:   time.Now().Format("January 2, 2006"),
		Order:         o,
		Store: StoreInfo{
			Name:  s.config.App.Name,
			Email: s.config.Email.FromEmail,
		},
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data InvoiceData) (string, error) {
	tmpl := template.Must(template.New("invoice").Funcs(template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"line":  func(qty int, unit float64) string { return fmt.Sprintf("%.2f", float64(qty)*unit) },
	}).Parse(invoiceTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	InvoiceNumber string
	InvoiceDate   string
	GeneratedAt   string
	Order         *order.Order
	Store         StoreInfo
}

// StoreInfo represents the storefront identity on the invoice
type StoreInfo struct {
	Name  string
	Email string
}

const invoiceTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice {{.InvoiceNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #222; }
        .header { display: flex; justify-content: space-between; margin-bottom: 30px; }
        .store-name { font-size: 24px; font-weight: bold; }
        .invoice-meta { text-align: right; }
        .section-title { font-size: 14px; font-weight: bold; margin: 20px 0 8px; text-transform: uppercase; }
        table { width: 100%; border-collapse: collapse; margin-top: 10px; }
        th { background: #f4f4f4; text-align: left; padding: 8px; font-size: 12px; }
        td { padding: 8px; border-bottom: 1px solid #eee; font-size: 12px; }
        .totals { margin-top: 20px; width: 40%; margin-left: auto; }
        .totals td { border: none; }
        .totals .grand td { font-weight: bold; border-top: 2px solid #222; }
        .badge { display: inline-block; padding: 2px 8px; border-radius: 3px; font-size: 11px; background: #eef; }
    </style>
</head>
<body>
    <div class="header">
        <div>
            <div class="store-name">{{.Store.Name}}</div>
            <div>{{.Store.Email}}</div>
        </div>
        <div class="invoice-meta">
            <div><strong>Invoice:</strong> {{.InvoiceNumber}}</div>
            <div><strong>Order:</strong> {{.Order.OrderNumber}}</div>
            <div><strong>Date:</strong> {{.InvoiceDate}}</div>
        </div>
    </div>

    <div class="section-title">Ship To</div>
    <div>
        {{.Order.Address.FullName}}<br>
        {{.Order.Address.Area}}{{if .Order.Address.Landmark}}, {{.Order.Address.Landmark}}{{end}}<br>
        {{.Order.Address.City}}, {{.Order.Address.State}} {{.Order.Address.PinCode}}<br>
        {{.Order.Address.PhoneNumber}}
    </div>

    <div class="section-title">Payment</div>
    <div>
        <span class="badge">{{.Order.PaymentType}}</span>
        {{if .Order.IsPaid}}<span class="badge">Paid</span>{{else}}<span class="badge">Unpaid</span>{{end}}
    </div>

    <div class="section-title">Items</div>
    <table>
        <thead>
            <tr><th>Product</th><th>Qty</th><th>Unit Price</th><th>Amount</th></tr>
        </thead>
        <tbody>
            {{range .Order.Items}}
            <tr>
                <td>{{.Name}}</td>
                <td>{{.Quantity}}</td>
                <td>{{money .UnitPrice}}</td>
                <td>{{line .Quantity .UnitPrice}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <table class="totals">
        <tr><td>Subtotal</td><td>{{money .Order.SubtotalAmount}}</td></tr>
        <tr><td>Tax</td><td>{{money .Order.TaxAmount}}</td></tr>
        <tr class="grand"><td>Total</td><td>{{money .Order.Amount}}</td></tr>
    </table>
</body>
</html>
`
