package jesssits

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jesssits/jesssits/content"
)

// SiteConfig holds all configuration for the site.
type SiteConfig struct {
	Name        string // Site name (default "Jess Sits")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for meta tags and JSON-LD

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/submissions.db")

	ContentProject string        // Content API project id
	ContentDataset string        // Content API dataset (default "production")
	ContentAPI     string        // Overrides the content API base URL
	ContentFile    string        // YAML content file; used instead of the API when set
	ContentTTL     time.Duration // Content cache TTL (default 5min)

	AdminPassword string // Required: inbox login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	SubmitLimit  int           // Submissions allowed per IP per window (default 5)
	SubmitWindow time.Duration // Submission rate limit window (default 10min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Jess Sits"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/submissions.db"
	}
	if c.ContentDataset == "" {
		c.ContentDataset = "production"
	}
	if c.ContentTTL == 0 {
		c.ContentTTL = 5 * time.Minute
	}
	if c.SubmitLimit == 0 {
		c.SubmitLimit = 5
	}
	if c.SubmitWindow == 0 {
		c.SubmitWindow = 10 * time.Minute
	}
}

// ConfigFromEnv reads a SiteConfig from the environment. Unset values are
// left for setDefaults.
func ConfigFromEnv() SiteConfig {
	cfg := SiteConfig{
		Name:           EnvOr("SITE_NAME", ""),
		URL:            EnvOr("SITE_URL", ""),
		Description:    EnvOr("SITE_DESCRIPTION", ""),
		Addr:           EnvOr("ADDR", ""),
		DatabasePath:   EnvOr("DATABASE_PATH", ""),
		ContentProject: EnvOr("CONTENT_PROJECT", ""),
		ContentDataset: EnvOr("CONTENT_DATASET", ""),
		ContentAPI:     EnvOr("CONTENT_API", ""),
		ContentFile:    EnvOr("CONTENT_FILE", ""),
		AdminPassword:  EnvOr("ADMIN_PASSWORD", ""),
		SessionSecret:  EnvOr("SESSION_SECRET", ""),
		CookieSecure:   EnvOr("COOKIE_SECURE", "") == "true",
	}
	if d, err := time.ParseDuration(EnvOr("CONTENT_TTL", "")); err == nil {
		cfg.ContentTTL = d
	}
	if n, err := strconv.Atoi(EnvOr("SUBMIT_LIMIT", "")); err == nil {
		cfg.SubmitLimit = n
	}
	return cfg
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets a directory of extra static assets served under
// /public/ (default none).
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithSource replaces the content source derived from the config.
func WithSource(src content.Source) Option {
	return func(a *App) {
		a.source = src
	}
}

// WithRegistry registers the site's metrics with reg instead of a fresh
// registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(a *App) {
		a.registry = reg
	}
}
