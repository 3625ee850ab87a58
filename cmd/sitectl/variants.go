package main

import (
	"fmt"
	"os"

	"color_robotics_site/services/variants"

	"github.com/spf13/cobra"
)

func newVariantsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "variants",
		Short: "Inspect landing page variants",
	}

	var file string
	check := &cobra.Command{
		Use:   "check",
		Short: "Validate a variants file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}
			list, err := variants.Parse(data)
			if err != nil {
				return err
			}
			for _, v := range list {
				cmd.Printf("%-20s %-9s %s -> %s, %d fields, %d industries\n",
					v.Key, v.Form.Token, v.Theme.Start().CSS(), v.Theme.End().CSS(), len(v.Form.Fields), len(v.Industries))
			}
			cmd.Printf("%d variants OK\n", len(list))
			return nil
		},
	}
	check.Flags().StringVarP(&file, "file", "f", "", "variants YAML file")
	check.MarkFlagRequired("file")

	cmd.AddCommand(check)
	return cmd
}
