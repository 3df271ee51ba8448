package jesssits

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jesssits/jesssits/store"
)

const (
	loginWindow = time.Minute
	inboxLimit  = 200
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderInbox(c, c.QueryParam("form"), c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	a.Metrics.LoginFailures.Inc()
	return RenderStatus(c, http.StatusUnauthorized, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminSubmission(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	sub, err := a.Store.GetSubmission(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	return Render(c, a.Views.AdminSubmission(sub, CsrfToken(c)))
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	err := a.Store.DeleteSubmission(c.Request().Context(), c.Param("id"))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/?msg="+url.QueryEscape("Submission deleted."))
}

func (a *App) renderInbox(c echo.Context, form, msg string) error {
	ctx := c.Request().Context()
	subs, err := a.Store.ListSubmissions(ctx, form, inboxLimit)
	if err != nil {
		return err
	}
	counts, err := a.Store.CountByForm(ctx)
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminInbox(subs, counts, msg, CsrfToken(c)))
}
