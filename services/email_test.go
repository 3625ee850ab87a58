package services

import (
	"testing"
	"testing/fstest"
	"time"

	"color_robotics_site/config"
	"color_robotics_site/models"

	"github.com/stretchr/testify/assert"
)

func TestLoadTemplate(t *testing.T) {
	original := emailTemplates
	defer func() { emailTemplates = original }()

	emailTemplates = fstest.MapFS{
		"test_template.html": {Data: []byte("<p>Hello {{.UserName}}</p>")},
		"test_template.txt":  {Data: []byte("Hello {{.UserName}}")},
		"html_only.html":     {Data: []byte("<p>only</p>")},
	}

	type data struct {
		UserName string
	}

	t.Run("Renders both bodies", func(t *testing.T) {
		html, text, err := loadTemplate("test_template", data{UserName: "John"})
		assert.NoError(t, err)
		assert.Contains(t, html, "Hello John")
		assert.Contains(t, text, "Hello John")
	})

	t.Run("HTML body is escaped, text body is not", func(t *testing.T) {
		html, text, err := loadTemplate("test_template", data{UserName: "<b>Ann</b>"})
		assert.NoError(t, err)
		assert.Contains(t, html, "&lt;b&gt;Ann&lt;/b&gt;")
		assert.Contains(t, text, "<b>Ann</b>")
	})

	t.Run("Missing text template", func(t *testing.T) {
		_, _, err := loadTemplate("html_only", data{})
		assert.Error(t, err)
	})

	t.Run("Template Not Found", func(t *testing.T) {
		_, _, err := loadTemplate("non_existent", data{})
		assert.Error(t, err)
	})
}

func TestBuildLeadNotificationEmail(t *testing.T) {
	lead := &models.Lead{
		ID:        "lead-1",
		CreatedAt: time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC),
		Variant:   "color-robotics",
		Name:      "Ada Lovelace",
		Email:     "ada@example.com",
		Company:   "Analytical Engines",
		Message:   "We need palletizing help",
	}

	email, err := BuildLeadNotificationEmail([]string{"sales@example.com"}, lead)
	assert.NoError(t, err)
	assert.Equal(t, []string{"sales@example.com"}, email.To)
	assert.Equal(t, "ada@example.com", email.ReplyTo)
	assert.Equal(t, "New contact request from Ada Lovelace (Analytical Engines)", email.Subject)
	assert.Contains(t, email.HTMLBody, "We need palletizing help")
	assert.Contains(t, email.TextBody, "ada@example.com")
	assert.Contains(t, email.TextBody, "color-robotics")

	t.Run("Subject without company", func(t *testing.T) {
		lead.Company = ""
		email, err := BuildLeadNotificationEmail([]string{"sales@example.com"}, lead)
		assert.NoError(t, err)
		assert.Equal(t, "New contact request from Ada Lovelace", email.Subject)
	})
}

func TestSendEmail_TestMode(t *testing.T) {
	cfg := &config.Config{
		EmailTestMode: true,
	}
	email := &Email{
		To:       []string{"test@example.com"},
		Subject:  "Test",
		HTMLBody: "Body",
	}

	err := SendEmail(cfg, email)
	assert.NoError(t, err)
}

func TestSendEmail_NoApiKey(t *testing.T) {
	cfg := &config.Config{
		EmailTestMode: false,
		ResendAPIKey:  "",
	}
	email := &Email{
		To:       []string{"test@example.com"},
		Subject:  "Test",
		HTMLBody: "Body",
	}

	err := SendEmail(cfg, email)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_API_KEY not configured")
}

func TestSendEmail_NoBody(t *testing.T) {
	cfg := &config.Config{
		EmailTestMode: false,
		ResendAPIKey:  "key",
	}
	email := &Email{
		To:      []string{"test@example.com"},
		Subject: "Test",
	}

	err := SendEmail(cfg, email)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "email must have either HTMLBody or TextBody")
}

func TestTruncate(t *testing.T) {
	s := "Hello World"
	assert.Equal(t, "Hello", truncate(s, 5))
	assert.Equal(t, "Hello World", truncate(s, 20))
}
