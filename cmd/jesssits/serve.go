package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jesssits/jesssits"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(config func() jesssits.SiteConfig) *cobra.Command {
	var (
		addr      string
		staticDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long: `Start the web server.

Examples:
  jesssits serve
  jesssits serve --addr=:8080 --content=content/site.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config()
			if addr != "" {
				cfg.Addr = addr
			}
			var opts []jesssits.Option
			if staticDir != "" {
				opts = append(opts, jesssits.WithStaticDir(staticDir))
			}
			return runServe(cmd.Context(), jesssits.New(cfg, jesssits.DefaultViews(), opts...))
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (default from ADDR)")
	cmd.Flags().StringVar(&staticDir, "static", "", "Serve extra files from this directory under /public")

	return cmd
}

func runServe(ctx context.Context, app *jesssits.App) error {
	defer app.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	app.Echo.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return app.Echo.Shutdown(shutdownCtx)
}
