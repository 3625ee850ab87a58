package main

import (
	"color_robotics_site/config"

	"github.com/spf13/cobra"
)

// newRootCommand builds the command tree. Config is loaded lazily so that
// commands which do not need it (variants check) run without a .env file.
func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "sitectl",
		Short:         "Operator tools for the Color Robotics site",
		SilenceUsage: true,
	}

	var cfg *config.Config
	loadConfig := func() *config.Config {
		if cfg == nil {
			cfg = config.Load()
		}
		return cfg
	}

	root.AddCommand(
		newExportLeadsCommand(loadConfig),
		newExportsCommand(loadConfig),
		newSmokeCommand(loadConfig),
		newVariantsCommand(),
	)
	return root
}
