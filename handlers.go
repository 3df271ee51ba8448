package jesssits

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jesssits/jesssits/content"
	"github.com/jesssits/jesssits/forms"
	"github.com/jesssits/jesssits/views"
)

// snapshot returns the cached content, or the built-in fallback copy when the
// content backend has never answered.
func (a *App) snapshot(c echo.Context) *content.Snapshot {
	snap, err := a.Cache.Snapshot(c.Request().Context())
	if err != nil {
		c.Logger().Warnf("content unavailable, rendering fallback copy: %v", err)
		return content.Fallback(time.Now())
	}
	return snap
}

func (a *App) site() views.Site {
	return views.Site{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
	}
}

func (a *App) page(c echo.Context, title, description string) views.Page {
	return a.pageAt(c.Request().URL.Path, a.snapshot(c), title, description)
}

func (a *App) pageAt(path string, snap *content.Snapshot, title, description string) views.Page {
	return views.Page{
		Site: a.site(),
		Meta: views.PageMeta{
			Title:       title,
			Description: description,
			URL:         views.BuildURL(a.Config.URL, path),
		},
		Content: snap,
		Path:    path,
	}
}

func (a *App) handleHome(c echo.Context) error {
	return Render(c, a.Views.Home(a.page(c, "", "")))
}

func (a *App) handleAbout(c echo.Context) error {
	return Render(c, a.Views.About(a.page(c, "About Me", "Meet Jess, your local dog sitter.")))
}

func (a *App) handleServices(c echo.Context) error {
	return Render(c, a.Views.Services(a.page(c, "Services", "Drop-in visits, day sitting and overnight stays.")))
}

func (a *App) handlePricing(c echo.Context) error {
	return Render(c, a.Views.Pricing(a.page(c, "Pricing & Terms", "Rates, add-ons and booking terms.")))
}

func (a *App) handleTestimonials(c echo.Context) error {
	return Render(c, a.Views.Testimonials(a.page(c, "Testimonials", "What pet parents say.")))
}

func (a *App) handleContact(c echo.Context) error {
	form := a.contactForm(a.snapshot(c))
	return Render(c, form.render(forms.NewController(form.schema, nil).Snapshot()))
}

func (a *App) handleBooking(c echo.Context) error {
	form := a.bookingForm(a.snapshot(c))
	return Render(c, form.render(forms.NewController(form.schema, nil).Snapshot()))
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c)
}

func (a *App) handleRobots(c echo.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Disallow: /admin/\n")
	b.WriteString("Sitemap: " + strings.TrimSuffix(views.BuildURL(a.Config.URL), "/") + "/sitemap.xml\n")
	return c.String(http.StatusOK, b.String())
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.page(c, "", "")))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		p := views.Page{Site: a.site(), Path: c.Request().URL.Path}
		_ = RenderStatus(c, code, a.Views.ServerError(p))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
