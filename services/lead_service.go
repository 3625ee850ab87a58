package services

import (
	"encoding/hex"
	"fmt"
	"html"
	"strings"
	"time"

	"color_robotics_site/models"
	"color_robotics_site/services/contactform"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/crypto/blake2b"
	"gorm.io/gorm"
)

var plainTextPolicy = bluemonday.StrictPolicy()

// SanitizeText strips markup from visitor input and returns plain text
func SanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(plainTextPolicy.Sanitize(s)))
}

// HashIP returns a keyed hash of the client IP so leads can be grouped
// without storing the address itself
func HashIP(ip, secret string) string {
	if ip == "" {
		return ""
	}
	h, err := blake2b.New256([]byte(secret))
	if err != nil {
		// Only fails for keys longer than 64 bytes
		sum := blake2b.Sum256([]byte(secret + "|" + ip))
		return hex.EncodeToString(sum[:16])
	}
	h.Write([]byte(ip))
	return hex.EncodeToString(h.Sum(nil)[:16])
}

// LeadMeta is request information stored next to the submitted fields
type LeadMeta struct {
	Variant   string
	IPHash    string
	UserAgent string
}

// RecordLead stores a validated submission with relay status pending
func RecordLead(db *gorm.DB, form contactform.FormState, meta LeadMeta) (*models.Lead, error) {
	lead := &models.Lead{
		Variant:     meta.Variant,
		Name:        SanitizeText(form.Name),
		Email:       strings.TrimSpace(form.Email),
		Company:     SanitizeText(form.Company),
		Message:     SanitizeText(form.Message),
		RelayStatus: models.RelayPending,
		IPHash:      meta.IPHash,
		UserAgent:   meta.UserAgent,
	}
	if err := db.Create(lead).Error; err != nil {
		return nil, fmt.Errorf("failed to record lead: %w", err)
	}
	return lead, nil
}

// MarkLeadRelayed records a successful forward to the form endpoint
func MarkLeadRelayed(db *gorm.DB, leadID string) error {
	now := time.Now()
	err := db.Model(&models.Lead{}).Where("id = ?", leadID).Updates(map[string]interface{}{
		"relay_status": models.RelayRelayed,
		"relay_error":  "",
		"relayed_at":   &now,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to mark lead relayed: %w", err)
	}
	return nil
}

// MarkLeadFailed records a failed forward with its error
func MarkLeadFailed(db *gorm.DB, leadID string, relayErr error) error {
	msg := ""
	if relayErr != nil {
		msg = relayErr.Error()
	}
	err := db.Model(&models.Lead{}).Where("id = ?", leadID).Updates(map[string]interface{}{
		"relay_status": models.RelayFailed,
		"relay_error":  msg,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to mark lead failed: %w", err)
	}
	return nil
}

// LeadFilter narrows ListLeads
type LeadFilter struct {
	Since       time.Time
	Variant     string
	RelayStatus string
}

// ListLeads returns leads newest first
func ListLeads(db *gorm.DB, filter LeadFilter) ([]models.Lead, error) {
	query := db.Model(&models.Lead{})
	if !filter.Since.IsZero() {
		query = query.Where("created_at >= ?", filter.Since)
	}
	if filter.Variant != "" {
		query = query.Where("variant = ?", filter.Variant)
	}
	if filter.RelayStatus != "" {
		query = query.Where("relay_status = ?", filter.RelayStatus)
	}

	var leads []models.Lead
	if err := query.Order("created_at DESC").Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return leads, nil
}

// CleanupOldLeads deletes leads older than the retention period
func CleanupOldLeads(db *gorm.DB, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result := db.Where("created_at < ?", cutoff).Delete(&models.Lead{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clean up leads: %w", result.Error)
	}
	return result.RowsAffected, nil
}
