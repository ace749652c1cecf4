// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
)

// Email represents an outgoing email message
type Email struct {
	To          []string
	Subject     string
	HTMLContent string
}

// EmailService handles all email operations
type EmailService struct {
	config    *config.Config
	templates map[string]*template.Template
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.Config) *EmailService {
	service := &EmailService{
		config:    cfg,
		templates: make(map[string]*template.Template),
	}
	service.loadTemplates()
	return service
}

// SendEmail sends an email through the configured SMTP server
func (s *EmailService) SendEmail(ctx context.Context, email *Email) error {
	return s.sendSMTPEmail(email)
}

// SendPasswordResetEmail sends a password reset link to the user
func (s *EmailService) SendPasswordResetEmail(ctx context.Context, userEmail, userName, resetToken string) error {
	data := map[string]interface{}{
		"SiteName": s.config.Email.FromName,
		"UserName": userName,
		"ResetURL": fmt.Sprintf("%s/reset-password?token=%s", s.config.Email.BaseURL, resetToken),
		"Year":     time.Now().Year(),
	}

	htmlContent, err := s.renderTemplate("password_reset", data)
	if err != nil {
		return fmt.Errorf("failed to render password reset template: %w", err)
	}

	return s.SendEmail(ctx, &Email{
		To:          []string{userEmail},
		Subject:     fmt.Sprintf("Reset your %s password", s.config.Email.FromName),
		HTMLContent: htmlContent,
	})
}

// SendOrderConfirmationEmail sends an order confirmation to the buyer
func (s *EmailService) SendOrderConfirmationEmail(ctx context.Context, userEmail, userName, orderNumber string, amount float64) error {
	data := map[string]interface{}{
		"SiteName":    s.config.Email.FromName,
		"UserName":    userName,
		"OrderNumber": orderNumber,
		"Amount":      fmt.Sprintf("%.2f", amount),
		"Year":        time.Now().Year(),
	}

	htmlContent, err := s.renderTemplate("order_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render order confirmation template: %w", err)
	}

	return s.SendEmail(ctx, &Email{
		To:          []string{userEmail},
		Subject:     fmt.Sprintf("Order %s confirmed", orderNumber),
		HTMLContent: htmlContent,
	})
}

// SendContactMessage forwards a contact form submission to the support inbox
func (s *EmailService) SendContactMessage(ctx context.Context, fromName, fromEmail, message string) error {
	data := map[string]interface{}{
		"SiteName":  s.config.Email.FromName,
		"UserName":  fromName,
		"UserEmail": fromEmail,
		"Message":   message,
		"Year":      time.Now().Year(),
	}

	htmlContent, err := s.renderTemplate("contact", data)
	if err != nil {
		return fmt.Errorf("failed to render contact template: %w", err)
	}

	return s.SendEmail(ctx, &Email{
		To:          []string{s.config.Email.FromEmail},
		Subject:     fmt.Sprintf("Contact form message from %s", fromName),
		HTMLContent: htmlContent,
	})
}

func (s *EmailService) loadTemplates() {
	s.templates["password_reset"] = template.Must(template.New("password_reset").Parse(`
<html><body>
<h2>{{.SiteName}}</h2>
<p>Hi {{.UserName}},</p>
<p>We received a request to reset your password. Click the link below to choose a new one. The link expires in one hour.</p>
<p><a href="{{.ResetURL}}">Reset password</a></p>
<p>If you did not ask for this, you can ignore this email.</p>
<p>&copy; {{.Year}} {{.SiteName}}</p>
</body></html>`))

	s.templates["order_confirmation"] = template.Must(template.New("order_confirmation").Parse(`
<html><body>
<h2>{{.SiteName}}</h2>
<p>Hi {{.UserName}},</p>
<p>Thanks for your order <strong>{{.OrderNumber}}</strong>.</p>
<p>Total: {{.Amount}}</p>
<p>&copy; {{.Year}} {{.SiteName}}</p>
</body></html>`))

	s.templates["contact"] = template.Must(template.New("contact").Parse(`
<html><body>
<h2>{{.SiteName}} contact form</h2>
<p>From: {{.UserName}} ({{.UserEmail}})</p>
<p>{{.Message}}</p>
<p>&copy; {{.Year}} {{.SiteName}}</p>
</body></html>`))
}

func (s *EmailService) renderTemplate(templateName string, data interface{}) (string, error) {
	tmpl, exists := s.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return buf.String(), nil
}
