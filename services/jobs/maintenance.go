package jobs

import (
	"context"
	"log"
	"time"

	"color_robotics_site/services"
	"color_robotics_site/services/contactform"

	"gorm.io/gorm"
)

// Job names
const (
	JobMaintenance = "maintenance"
	JobLeadExport  = "lead-export"
)

// CleanupLeads deletes leads past the retention period
func CleanupLeads(database *gorm.DB, retentionDays int) Task {
	return func(ctx context.Context) error {
		if database == nil || retentionDays <= 0 {
			return nil
		}
		n, err := services.CleanupOldLeads(database, retentionDays)
		if err != nil {
			return err
		}
		if n > 0 {
			log.Printf("[INFO] Deleted %d leads older than %d days", n, retentionDays)
		}
		return nil
	}
}

// SweepSubmissions drops expired contact form submissions from the tracker
func SweepSubmissions(tracker *contactform.Tracker) Task {
	return func(ctx context.Context) error {
		if n := tracker.Sweep(); n > 0 {
			log.Printf("[INFO] Dropped %d expired contact submissions", n)
		}
		return nil
	}
}

// ExportRecentLeads stores a workbook of the leads received within window
func ExportRecentLeads(database *gorm.DB, storage services.StorageProvider, window time.Duration) Task {
	return func(ctx context.Context) error {
		result, err := services.ExportLeads(ctx, database, storage, services.LeadFilter{
			Since: time.Now().Add(-window),
		})
		if err != nil {
			return err
		}
		log.Printf("[INFO] Exported %d leads to %s", result.Rows, result.Storage.Key)
		return nil
	}
}

// Chain runs tasks in order and returns the first error
func Chain(tasks ...Task) Task {
	return func(ctx context.Context) error {
		for _, t := range tasks {
			if err := t(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}
