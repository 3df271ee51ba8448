package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jesssits/jesssits"
	"github.com/jesssits/jesssits/forms"
)

func questionsCmd(config func() jesssits.SiteConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "questions",
		Short: "List the booking questionnaire",
		Long: `Print the booking questionnaire as the site renders it: sections in
display order with each question's submitted field name, kind and whether
it is required. Questions the site cannot render are counted at the end.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := loadBookingForm(cmd.Context(), config())
			if err != nil {
				return err
			}
			return printQuestions(cmd.OutOrStdout(), form)
		},
	}
}

func loadBookingForm(ctx context.Context, cfg jesssits.SiteConfig) (*forms.Form, error) {
	src, err := cfg.ContentSource()
	if err != nil {
		return nil, err
	}
	snap, err := src.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return snap.BookingForm(), nil
}

func printQuestions(out io.Writer, form *forms.Form) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, g := range form.Groups() {
		fmt.Fprintf(tw, "%s\n", g.Label())
		for _, f := range g.Fields {
			req := ""
			if f.Required {
				req = "required"
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", f.Name, f.Kind, req, f.Text)
		}
	}
	if n := form.Skipped(); n > 0 {
		fmt.Fprintf(tw, "\n%d unsupported question(s) skipped\n", n)
	}
	return tw.Flush()
}
