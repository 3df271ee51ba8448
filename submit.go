package jesssits

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/jesssits/jesssits/content"
	"github.com/jesssits/jesssits/forms"
	"github.com/jesssits/jesssits/store"
)

// formPage binds a form schema to the page that renders it.
type formPage struct {
	schema forms.Schema
	decode func(url.Values) forms.Answers
	render func(forms.Snapshot) templ.Component
}

func (a *App) contactForm(snap *content.Snapshot) formPage {
	form := snap.ContactForm()
	p := a.pageAt("/contact/", snap, "Contact", "Request a callback.")
	return formPage{
		schema: form,
		decode: forms.DecodeContact,
		render: func(s forms.Snapshot) templ.Component {
			return a.Views.Contact(p, forms.ContactView{Form: form, Snapshot: s})
		},
	}
}

func (a *App) bookingForm(snap *content.Snapshot) formPage {
	form := snap.BookingForm()
	p := a.pageAt("/booking/", snap, "Book a Stay", "Tell me about your dog.")
	return formPage{
		schema: form,
		decode: func(v url.Values) forms.Answers {
			return forms.DecodeBooking(form, v)
		},
		render: func(s forms.Snapshot) templ.Component {
			return a.Views.Booking(p, forms.BookingView{Form: form, Snapshot: s})
		},
	}
}

// submitResponse is the JSON body returned when the client accepts JSON.
type submitResponse struct {
	OK     bool         `json:"ok"`
	Errors forms.Errors `json:"errors,omitempty"`
	Focus  string       `json:"focus,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// metricForm bounds the form label to known forms.
func metricForm(name string) string {
	switch name {
	case forms.BookingFormName, forms.ContactFormName:
		return name
	}
	return "unknown"
}

// handleSubmit is the same-origin backend of both forms. It dispatches on the
// form-name field, re-validates with the form's own rules and stores accepted
// submissions.
func (a *App) handleSubmit(c echo.Context) error {
	ip := c.RealIP()
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form body")
	}
	name := forms.FormName(values)

	if !a.submitLimiter.Check(ip) {
		a.Metrics.submission(metricForm(name), outcomeLimited)
		return c.String(http.StatusTooManyRequests, "Too many submissions. Try again later.")
	}

	var page formPage
	switch name {
	case forms.ContactFormName:
		page = a.contactForm(a.snapshot(c))
	case forms.BookingFormName:
		// Booking answers cannot be decoded without the current questions.
		snap, err := a.Cache.Snapshot(c.Request().Context())
		if err != nil {
			a.Metrics.submission(name, outcomeFailed)
			return echo.NewHTTPError(http.StatusServiceUnavailable, "questionnaire unavailable").SetInternal(err)
		}
		page = a.bookingForm(snap)
	default:
		a.Metrics.submission(metricForm(name), outcomeInvalid)
		return echo.NewHTTPError(http.StatusBadRequest, "unknown form")
	}

	// Bots get the confirmation a person would so they do not retry.
	if forms.IsSpam(values) {
		a.submitLimiter.Record(ip)
		a.Metrics.submission(name, outcomeSpam)
		c.Logger().Infof("discarded %s submission from %s: honeypot filled", name, ip)
		return a.respond(c, http.StatusOK, page, forms.Snapshot{Status: forms.StatusSuccess}, nil)
	}

	ctrl := forms.Restore(page.schema, a.storeSubmitter(ip), page.decode(values), nil)
	snap, err := ctrl.Submit(c.Request().Context())
	switch {
	case errors.Is(err, forms.ErrInvalid):
		a.Metrics.submission(name, outcomeInvalid)
		return a.respond(c, http.StatusUnprocessableEntity, page, snap, nil)
	case err != nil:
		a.Metrics.submission(name, outcomeFailed)
		c.Logger().Errorf("store %s submission: %v", name, err)
		return a.respond(c, http.StatusInternalServerError, page, snap, err)
	}
	a.submitLimiter.Record(ip)
	a.Metrics.submission(name, outcomeAccepted)
	return a.respond(c, http.StatusOK, page, snap, nil)
}

func (a *App) respond(c echo.Context, code int, page formPage, snap forms.Snapshot, failure error) error {
	if wantsJSON(c) {
		res := submitResponse{OK: code == http.StatusOK, Errors: snap.Errors, Focus: snap.Focus}
		if failure != nil {
			res.Error = "submission failed"
		}
		return c.JSON(code, res)
	}
	return RenderStatus(c, code, page.render(snap))
}

// storeSubmitter delivers payloads to the submission store.
func (a *App) storeSubmitter(ip string) forms.Submitter {
	return forms.SubmitterFunc(func(ctx context.Context, body url.Values) error {
		_, err := a.Store.SaveSubmission(ctx, store.Submission{
			Form:    forms.FormName(body),
			Name:    body.Get(forms.KeyName),
			Email:   body.Get(forms.KeyEmail),
			Phone:   body.Get(forms.KeyPhone),
			Payload: body,
			IP:      ip,
		})
		if err != nil {
			return fmt.Errorf("%w: %v", forms.ErrSubmissionFailed, err)
		}
		return nil
	})
}
