package main

import (
	"fmt"
	"os"
	"time"

	"color_robotics_site/config"
	"color_robotics_site/services"

	"github.com/spf13/cobra"
)

func newExportsCommand(loadConfig func() *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exports",
		Short: "Manage stored lead exports",
		Long: `Manage lead exports stored by "export-leads --upload" or the scheduled
lead export. Keys are the storage keys printed by those commands, for
example exports/leads/2026/10/leads_20261018T090000Z.xlsx.`,
	}
	cmd.AddCommand(
		newExportsLinkCommand(loadConfig),
		newExportsFetchCommand(loadConfig),
		newExportsDeleteCommand(loadConfig),
	)
	return cmd
}

func newExportsLinkCommand(loadConfig func() *config.Config) *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "link <key>",
		Short: "Print a download link for a stored export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			storage := services.NewStorage(cmd.Context(), loadConfig())
			link, err := storage.GetSignedURL(cmd.Context(), args[0], ttl)
			if err != nil {
				return err
			}
			cmd.Println(link)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "how long a signed link stays valid")
	return cmd
}

func newExportsFetchCommand(loadConfig func() *config.Config) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:     "fetch <key>",
		Short:   "Download a stored export to a local file",
		Example: `  sitectl exports fetch exports/leads/2026/10/leads_20261018T090000Z.xlsx -o leads.xlsx`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			storage := services.NewStorage(cmd.Context(), loadConfig())

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			defer f.Close()

			contentType, n, err := services.CopyExport(cmd.Context(), storage, args[0], f)
			if err != nil {
				os.Remove(out)
				return err
			}
			cmd.Printf("Wrote %d bytes (%s) to %s\n", n, contentType, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "local file to write")
	cmd.MarkFlagRequired("out")
	return cmd
}

func newExportsDeleteCommand(loadConfig func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>...",
		Short: "Delete stored exports",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			storage := services.NewStorage(cmd.Context(), loadConfig())
			for _, key := range args {
				if err := storage.Delete(cmd.Context(), key); err != nil {
					return err
				}
				cmd.Printf("Deleted %s\n", key)
			}
			return nil
		},
	}
}
