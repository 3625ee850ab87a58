package services

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"strings"
	texttemplate "text/template"
	"time"

	"color_robotics_site/config"
	"color_robotics_site/models"

	"github.com/resend/resend-go/v2"
)

//go:embed emails/*
var embeddedEmails embed.FS

// emailTemplates is the source of email templates, replaced in tests
var emailTemplates fs.FS = mustSub(embeddedEmails, "emails")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	ReplyTo  string
	HTMLBody string
	TextBody string
}

// loadTemplate renders templateName.html with html/template and
// templateName.txt with text/template
func loadTemplate(templateName string, data interface{}) (htmlBody string, textBody string, err error) {
	htmlSrc, err := fs.ReadFile(emailTemplates, templateName+".html")
	if err != nil {
		return "", "", fmt.Errorf("failed to read template %s.html: %v", templateName, err)
	}
	htmlTmpl, err := template.New(templateName + ".html").Parse(string(htmlSrc))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s.html: %v", templateName, err)
	}
	var htmlBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s.html: %v", templateName, err)
	}

	textSrc, err := fs.ReadFile(emailTemplates, templateName+".txt")
	if err != nil {
		return "", "", fmt.Errorf("failed to read template %s.txt: %v", templateName, err)
	}
	textTmpl, err := texttemplate.New(templateName + ".txt").Parse(string(textSrc))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s.txt: %v", templateName, err)
	}
	var textBuf bytes.Buffer
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s.txt: %v", templateName, err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		log.Printf("Email logged successfully (test mode - not actually sent)")
		return nil
	}

	// Validate configuration
	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	// Create Resend client
	client := resend.NewClient(cfg.ResendAPIKey)

	// Build the from address
	fromAddress := fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom)

	params := &resend.SendEmailRequest{
		From:    fromAddress,
		To:      email.To,
		Subject: email.Subject,
		ReplyTo: email.ReplyTo,
	}

	// Set body (prefer HTML if available)
	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}

	// Validate we have at least one body
	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %v", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details to console in test mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (Test Mode - Not Actually Sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Reply-To: %s", email.ReplyTo)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("\n--- HTML BODY (first 500 chars) ---\n%s...", truncate(email.HTMLBody, 500))
	log.Printf("%s\n", separator)
}

// truncate truncates a string to a maximum length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// SendEmailAsync sends an email asynchronously using a goroutine
func SendEmailAsync(cfg *config.Config, email *Email) {
	// Create a copy of the email to avoid race conditions
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		ReplyTo:  email.ReplyTo,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func(cfg *config.Config, email *Email) {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}(cfg, emailCopy)
}

// LeadNotificationEmailData contains data for the lead notification template
type LeadNotificationEmailData struct {
	LeadID     string
	Variant    string
	Name       string
	Email      string
	Company    string
	Message    string
	ReceivedAt string
}

// BuildLeadNotificationEmail creates the email sent to the sales inbox for a new lead
func BuildLeadNotificationEmail(to []string, lead *models.Lead) (*Email, error) {
	data := LeadNotificationEmailData{
		LeadID:     lead.ID,
		Variant:    lead.Variant,
		Name:       lead.Name,
		Email:      lead.Email,
		Company:    lead.Company,
		Message:    lead.Message,
		ReceivedAt: lead.CreatedAt.UTC().Format(time.RFC1123),
	}

	htmlBody, textBody, err := loadTemplate("lead_notification", data)
	if err != nil {
		return nil, err
	}

	subject := "New contact request from " + lead.Name
	if lead.Company != "" {
		subject += " (" + lead.Company + ")"
	}

	return &Email{
		To:       append([]string{}, to...),
		Subject:  subject,
		ReplyTo:  lead.Email,
		HTMLBody: htmlBody,
		TextBody: textBody,
	}, nil
}
