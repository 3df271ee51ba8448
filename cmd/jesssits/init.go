package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jesssits/jesssits/scaffold"
)

func initCmd() *cobra.Command {
	data := scaffold.Data{}

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a starter content file and environment example",
		Long: `Write content/site.yaml and .env.example into dir (default: the
current directory) so the site can run without a hosted content store.

Examples:
  jesssits init
  jesssits init mysite --name="Rex Sits" --email=hi@rexsits.example`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			created, err := scaffold.Write(dir, data)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range created {
				fmt.Fprintf(out, "  created %s\n", p)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Next steps:")
			fmt.Fprintf(out, "  cp %s %s\n", filepath.Join(dir, ".env.example"), filepath.Join(dir, ".env"))
			fmt.Fprintln(out, "  set ADMIN_PASSWORD and SESSION_SECRET, then run 'jesssits serve'")
			return nil
		},
	}

	cmd.Flags().StringVar(&data.SiteName, "name", "Jess Sits", "Site name")
	cmd.Flags().StringVar(&data.Email, "email", "hello@example.com", "Contact email shown on the site")
	cmd.Flags().StringVar(&data.SiteURL, "url", "http://localhost:3000", "Public base URL")

	return cmd
}
