package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"color_robotics_site/config"
	"color_robotics_site/db"
	"color_robotics_site/models"
	"color_robotics_site/services"

	"github.com/spf13/cobra"
)

type exportFlags struct {
	since   time.Duration
	variant string
	status  string
	out     string
	upload  bool
	linkTTL time.Duration
}

func newExportLeadsCommand(loadConfig func() *config.Config) *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export-leads",
		Short: "Export recorded contact form leads to an XLSX workbook",
		Long: `Export recorded contact form leads to an XLSX workbook with a Leads sheet
and a per-variant Summary sheet.

The workbook is written to --out, or stored under exports/leads/ in R2
(local EXPORT_DIR when R2 is not configured) with --upload.

Examples:
  sitectl export-leads --since 168h --out leads.xlsx
  sitectl export-leads --variant command-center --status failed --upload --link-ttl 2h`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.out == "" && !flags.upload {
				return fmt.Errorf("either --out or --upload is required")
			}
			cfg := loadConfig()

			if err := db.Initialize(db.Options{
				Path:        cfg.DBPath,
				TursoURL:    cfg.TursoDatabaseURL,
				TursoToken:  cfg.TursoAuthToken,
				Environment: "production",
			}); err != nil {
				return err
			}
			defer db.Close()
			if err := db.AutoMigrate(&models.Lead{}); err != nil {
				return err
			}

			filter := services.LeadFilter{Variant: flags.variant, RelayStatus: flags.status}
			if flags.since > 0 {
				filter.Since = time.Now().Add(-flags.since)
			}
			return runExport(cmd.Context(), cmd, cfg, filter, flags)
		},
	}

	cmd.Flags().DurationVar(&flags.since, "since", 0, "only export leads received within this duration (e.g. 720h)")
	cmd.Flags().StringVar(&flags.variant, "variant", "", "only export leads from this variant")
	cmd.Flags().StringVar(&flags.status, "status", "", "only export leads with this relay status (pending, relayed, failed)")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "write the workbook to this file")
	cmd.Flags().BoolVar(&flags.upload, "upload", false, "store the workbook in export storage")
	cmd.Flags().DurationVar(&flags.linkTTL, "link-ttl", 24*time.Hour, "validity of the signed link printed after --upload")
	return cmd
}

func runExport(ctx context.Context, cmd *cobra.Command, cfg *config.Config, filter services.LeadFilter, flags exportFlags) error {
	if flags.upload {
		storage := services.NewStorage(ctx, cfg)
		result, err := services.ExportLeads(ctx, db.DB, storage, filter)
		if err != nil {
			return err
		}
		cmd.Printf("Exported %d leads to %s\n", result.Rows, result.Storage.Key)
		link, err := services.ExportLink(ctx, storage, result.Storage, flags.linkTTL)
		if err != nil {
			return err
		}
		cmd.Printf("Link: %s\n", link)
		return nil
	}

	buf, rows, err := services.GenerateLeadsWorkbook(db.DB, filter)
	if err != nil {
		return err
	}
	if err := os.WriteFile(flags.out, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", flags.out, err)
	}
	cmd.Printf("Exported %d leads to %s\n", rows, flags.out)
	return nil
}
