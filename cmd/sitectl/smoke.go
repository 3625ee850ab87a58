package main

import (
	"fmt"
	"time"

	"color_robotics_site/config"
	"color_robotics_site/services"
	"color_robotics_site/services/contactform"
	"color_robotics_site/services/variants"

	"github.com/spf13/cobra"
)

func newSmokeCommand(loadConfig func() *config.Config) *cobra.Command {
	var (
		baseURL string
		variant string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Walk through a landing page variant in headless Chrome",
		Long: `Load a variant in headless Chrome and check that the background follows
the scroll theme, that an empty submit shows inline errors and that a valid
submission reaches the success acknowledgement.

The sample submission is sent to the configured form endpoint.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := loadConfig()
			if baseURL == "" {
				baseURL = cfg.AppURL
			}

			registry, err := variants.NewRegistry(cfg.VariantsFile, cfg.DefaultVariant)
			if err != nil {
				return err
			}
			v := registry.Default()
			if variant != "" {
				if v, err = registry.Get(variant); err != nil {
					return err
				}
			}

			result, err := services.RunSmokeCheck(cmd.Context(), services.SmokeOptions{
				BaseURL:     baseURL,
				Variant:     v.Key,
				ChromePath:  cfg.ChromePath,
				Timeout:     timeout,
				ScrollStart: v.Theme.Start(),
				ScrollEnd:   v.Theme.End(),
				Form:        smokeSubmission(v),
				Fields:      v.FieldSet(),
			})
			if result != nil {
				printSmokeResult(cmd, result)
			}
			if err != nil {
				return err
			}
			if !result.OK() {
				return fmt.Errorf("smoke check failed for %s", result.PageURL)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "", "site base URL (default APP_URL)")
	cmd.Flags().StringVar(&variant, "variant", "", "variant key (default DEFAULT_VARIANT)")
	cmd.Flags().DurationVar(&timeout, "timeout", 45*time.Second, "overall browser timeout")
	return cmd
}

// smokeSubmission is a sample that passes validation for v
func smokeSubmission(v *variants.Variant) contactform.FormState {
	form := contactform.FormState{
		Name:  "Smoke Check",
		Email: "smoke-check@colorrobotics.ai",
	}
	fs := v.FieldSet()
	if fs.Company {
		form.Company = "Color Robotics"
	}
	if fs.Message {
		form.Message = "Automated smoke check, please ignore."
	}
	return form
}

func printSmokeResult(cmd *cobra.Command, r *services.SmokeResult) {
	mark := func(ok bool) string {
		if ok {
			return "ok"
		}
		return "FAIL"
	}
	cmd.Printf("Page: %s\n", r.PageURL)
	cmd.Printf("  scroll background  %-4s got %s, want %s (factor %.2f)\n",
		mark(r.BackgroundColor == r.ExpectedColor), r.BackgroundColor.CSS(), r.ExpectedColor.CSS(), r.ScrollFactor)
	cmd.Printf("  contact anchor     %-4s scrollY %.0f, want %.0f\n", mark(r.AnchorLanded()), r.AnchorScrollY, r.AnchorExpected)
	cmd.Printf("  inline errors      %s\n", mark(r.InlineErrorShown))
	cmd.Printf("  posted             %-4s %v\n", mark(len(r.PostedTo) > 0), r.PostedTo)
	cmd.Printf("  acknowledged       %-4s %s\n", mark(r.Succeeded), r.Elapsed.Round(time.Millisecond))
}
