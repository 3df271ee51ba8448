package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jesssits/jesssits"
	"github.com/jesssits/jesssits/forms"
	"github.com/jesssits/jesssits/questionnaire"
)

func fillCmd(config func() jesssits.SiteConfig) *cobra.Command {
	var site string

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill in the booking questionnaire from the terminal",
		Long: `Ask the booking questions in the terminal and post the answers to a
running site, exactly as the web form would.

Examples:
  jesssits fill --site=http://localhost:3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config()
			if site == "" {
				site = cfg.URL
			}
			form, err := loadBookingForm(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			endpoint := strings.TrimSuffix(site, "/") + "/"
			ctrl := forms.NewController(form, forms.NewHTTPSubmitter(endpoint))

			_, err = questionnaire.Run(cmd.Context(), questionnaire.NewSurveyDriver(cmd.OutOrStdout()), form, ctrl)
			if errors.Is(err, questionnaire.ErrAborted) {
				fmt.Fprintln(os.Stderr, "Aborted.")
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&site, "site", "", "Base URL of the site to post to (default from SITE_URL)")

	return cmd
}
