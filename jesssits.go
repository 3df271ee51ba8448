// Package jesssits serves the Jess Sits dog-sitting site built with Go, Echo,
// and templ: marketing pages from a headless content store, the contact form
// and booking questionnaire, and the same-origin handler both forms post to.
//
// Pages are provided through the ViewFuncs struct so a deployment can swap
// any template, and the App handles routing, middleware, validation and
// storage of submissions.
package jesssits

import (
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jesssits/jesssits/content"
	"github.com/jesssits/jesssits/forms"
	"github.com/jesssits/jesssits/store"
	"github.com/jesssits/jesssits/views"
)

// ViewFuncs holds the templ components the App calls when rendering pages.
type ViewFuncs struct {
	Home            func(p views.Page) templ.Component
	About           func(p views.Page) templ.Component
	Services        func(p views.Page) templ.Component
	Pricing         func(p views.Page) templ.Component
	Testimonials    func(p views.Page) templ.Component
	Contact         func(p views.Page, form forms.ContactView) templ.Component
	Booking         func(p views.Page, form forms.BookingView) templ.Component
	AdminLogin      func(showError bool, csrfToken string) templ.Component
	AdminInbox      func(subs []store.Submission, counts map[string]int, message, csrfToken string) templ.Component
	AdminSubmission func(sub store.Submission, csrfToken string) templ.Component
	NotFound        func(p views.Page) templ.Component
	ServerError     func(p views.Page) templ.Component
}

// DefaultViews returns the built-in templates of the views package.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:            views.Home,
		About:           views.About,
		Services:        views.Services,
		Pricing:         views.Pricing,
		Testimonials:    views.Testimonials,
		Contact:         views.Contact,
		Booking:         views.Booking,
		AdminLogin:      views.AdminLogin,
		AdminInbox:      views.AdminInbox,
		AdminSubmission: views.AdminSubmission,
		NotFound:        views.NotFound,
		ServerError:     views.ServerError,
	}
}

// App is the central site application. It wires together the content cache,
// submission store, handlers, middleware, and templates.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Store   *store.Store
	Cache   *ContentCache
	Views   ViewFuncs
	Metrics *Metrics

	source        content.Source
	registry      *prometheus.Registry
	loginLimiter  *RateLimiter
	submitLimiter *RateLimiter
	customRoutes  []func(*App)
	staticDir     string
}

// New creates a new App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  views,
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init opens the store and content cache and registers middleware and
// routes. Start calls it; tests call it directly and drive a.Echo.
func (a *App) Init() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("jesssits: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("jesssits: SessionSecret is required")
	}

	if a.source == nil {
		src, err := a.Config.ContentSource()
		if err != nil {
			return err
		}
		a.source = src
	}

	s, err := store.NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("jesssits: init store: %w", err)
	}
	a.Store = s

	if a.registry == nil {
		a.registry = prometheus.NewRegistry()
	}
	a.Metrics = NewMetrics(a.registry)

	a.Cache = NewContentCache(a.source, a.Config.ContentTTL)
	a.Cache.OnStale = func(err error) {
		a.Metrics.ContentRefreshErrors.Inc()
		a.Echo.Logger.Warnf("content refresh failed, serving stale snapshot: %v", err)
	}

	a.loginLimiter = NewRateLimiter(5, loginWindow)
	a.submitLimiter = NewRateLimiter(a.Config.SubmitLimit, a.Config.SubmitWindow)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app and starts the server.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// ContentSource returns the content backend the config selects: the local
// file when ContentFile is set, the hosted query API otherwise.
func (c SiteConfig) ContentSource() (content.Source, error) {
	switch {
	case c.ContentFile != "":
		return content.NewFileSource(c.ContentFile), nil
	case c.ContentProject != "" || c.ContentAPI != "":
		src := content.NewHTTPSource(c.ContentProject, c.ContentDataset)
		if c.ContentAPI != "" {
			src.BaseURL = c.ContentAPI
		}
		return src, nil
	}
	return nil, fmt.Errorf("jesssits: ContentFile or ContentProject is required")
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Built-in stylesheet, then the optional user static dir.
	assets, _ := fs.Sub(EmbeddedAssets, "static")
	e.GET("/public/site.css", echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(assets)))))
	if a.staticDir != "" {
		e.Static("/public", a.staticDir)
	}
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/metrics", a.Metrics.Handler())

	// Public pages
	e.GET("/", a.handleHome)
	e.GET("/about/", a.handleAbout)
	e.GET("/services/", a.handleServices)
	e.GET("/pricing/", a.handlePricing)
	e.GET("/testimonials/", a.handleTestimonials)
	e.GET("/contact/", a.handleContact)
	e.GET("/booking/", a.handleBooking)

	// Form backend
	e.POST("/", a.handleSubmit)

	// Admin inbox
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/submission/:id/", a.handleAdminSubmission)
	e.DELETE("/admin/submission/:id/", a.handleAdminDelete)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Close()
	}
	if a.submitLimiter != nil {
		a.submitLimiter.Close()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("jesssits: required environment variable %s is not set", key)
	}
	return v
}
