package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jesssits/jesssits"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var contentFile string

	rootCmd := &cobra.Command{
		Use:   "jesssits",
		Short: "Dog sitting website and booking questionnaire",
		Long: `jesssits serves the Jess Sits website: the marketing pages, the contact
form and the booking questionnaire built from content-managed questions.

Configuration is read from the environment (SITE_URL, CONTENT_FILE,
CONTENT_PROJECT, ADMIN_PASSWORD, SESSION_SECRET, ...).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&contentFile, "content", "", "Read content from this YAML file (overrides CONTENT_FILE)")

	config := func() jesssits.SiteConfig {
		cfg := jesssits.ConfigFromEnv()
		if contentFile != "" {
			cfg.ContentFile = contentFile
		}
		return cfg
	}

	rootCmd.AddCommand(
		serveCmd(config),
		questionsCmd(config),
		fillCmd(config),
		initCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
