package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Relay status of a lead
const (
	RelayPending = "pending"
	RelayRelayed = "relayed"
	RelayFailed  = "failed"
)

// Lead is a contact form submission that passed validation
type Lead struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Variant string `gorm:"not null;index" json:"variant"`

	// Submitted fields
	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"not null;index" json:"email"`
	Company string `json:"company,omitempty"`
	Message string `gorm:"type:text" json:"message,omitempty"`

	// Forwarding to the form endpoint
	RelayStatus string     `gorm:"not null;default:pending;index" json:"relay_status"`
	RelayError  string     `gorm:"type:text" json:"relay_error,omitempty"`
	RelayedAt   *time.Time `json:"relayed_at,omitempty"`

	// Audit fields
	IPHash    string `json:"-"`
	UserAgent string `gorm:"type:text" json:"user_agent,omitempty"`
}

// BeforeCreate hook to generate UUID
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Lead model
func (Lead) TableName() string {
	return "leads"
}
