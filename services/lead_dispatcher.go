package services

import (
	"context"
	"log"
	"sync"

	"color_robotics_site/config"
	"color_robotics_site/models"
	"color_robotics_site/services/contactform"

	"gorm.io/gorm"
)

// LeadDispatcher is the contact form's receiving end: it records the lead,
// forwards the fields to the form endpoint and notifies the sales inbox.
type LeadDispatcher struct {
	DB       *gorm.DB // leads are not recorded when nil
	Relay    *FormRelay
	Endpoint string
	Fields   contactform.FieldSet
	Meta     LeadMeta
	Config   *config.Config

	mu     sync.Mutex
	leadID string // set by the first attempt that recorded the lead
}

// Dispatch implements contactform.Dispatcher. The returned error is the relay
// outcome; storage and email problems are only logged. Retries of the same
// submission reuse the lead recorded by the first attempt.
func (d *LeadDispatcher) Dispatch(ctx context.Context, form contactform.FormState) error {
	leadID := d.recordOnce(form)

	relayErr := d.Relay.Post(ctx, d.Endpoint, form.Values(d.Fields))

	if leadID != "" {
		var err error
		if relayErr != nil {
			err = MarkLeadFailed(d.DB, leadID, relayErr)
		} else {
			err = MarkLeadRelayed(d.DB, leadID)
		}
		if err != nil {
			log.Printf("[WARNING] %v", err)
		}
	}
	if relayErr != nil {
		log.Printf("[WARNING] Contact form relay failed (variant %s): %v", d.Meta.Variant, relayErr)
	}
	return relayErr
}

// LeadID returns the lead recorded for this submission, empty until one is stored
func (d *LeadDispatcher) LeadID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.leadID
}

func (d *LeadDispatcher) recordOnce(form contactform.FormState) string {
	if d.DB == nil {
		return ""
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.leadID != "" {
		return d.leadID
	}

	lead, err := RecordLead(d.DB, form, d.Meta)
	if err != nil {
		log.Printf("[WARNING] %v", err)
		return ""
	}
	d.leadID = lead.ID
	d.notify(lead)
	return d.leadID
}

func (d *LeadDispatcher) notify(lead *models.Lead) {
	if d.Config == nil || len(d.Config.LeadNotifyTo) == 0 {
		return
	}
	email, err := BuildLeadNotificationEmail(d.Config.LeadNotifyTo, lead)
	if err != nil {
		log.Printf("[WARNING] Failed to build lead notification: %v", err)
		return
	}
	SendEmailAsync(d.Config, email)
}
