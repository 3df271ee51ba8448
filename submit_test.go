package jesssits

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/labstack/echo/v4"

	"github.com/jesssits/jesssits/content"
	"github.com/jesssits/jesssits/forms"
)

func bookingValues() url.Values {
	return url.Values{
		"form-name":             {"booking"},
		"bot-field":             {""},
		"name":                  {"Jo Citizen"},
		"email":                 {"jo@example.com"},
		"phone":                 {""},
		"age-years-qage00":      {"4"},
		"any-medication-qmeds0": {"No"},
		"walk-times-qwalk0[]":   {"Morning", "Evening"},
	}
}

func contactValues() url.Values {
	return url.Values{
		"form-name": {"contact"},
		"bot-field": {""},
		"name":      {"Sam"},
		"email":     {""},
		"phone":     {"0400 123 456"},
		"dogName":   {"Biscuit"},
		"service":   {"overnight-stays"},
		"message":   {"Three nights in May"},
	}
}

func TestSubmitBookingStoresSubmission(t *testing.T) {
	a, cleanup := setupTestApp(t, fixtureSource())
	defer cleanup()

	rec := postForm(a, "/", bookingValues())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d:\n%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Questionnaire Submitted!") {
		t.Errorf("expected confirmation")
	}

	subs, err := a.Store.ListSubmissions(context.Background(), "booking", 0)
	if err != nil {
		t.Fatalf("ListSubmissions: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(subs))
	}
	sub := subs[0]
	if sub.Name != "Jo Citizen" || sub.Email != "jo@example.com" || sub.IP == "" {
		t.Errorf("unexpected submission %+v", sub)
	}
	if diff := cmp.Diff([]string{"Morning", "Evening"}, sub.Payload["walk-times-qwalk0[]"]); diff != "" {
		t.Errorf("multi-choice mismatch (-want +got):\n%s", diff)
	}
	if got := sub.Payload.Get("any-medication-qmeds0"); got != "No" {
		t.Errorf("yes/no answer = %q, want No", got)
	}
	if got := counterValue(t, a.Metrics.Submissions.WithLabelValues("booking", outcomeAccepted)); got != 1 {
		t.Errorf("accepted counter = %v", got)
	}
}

func TestSubmitBookingInvalidRerendersForm(t *testing.T) {
	a, cleanup := setupTestApp(t, fixtureSource())
	defer cleanup()

	values := bookingValues()
	values.Set("name", "J")
	values.Del("any-medication-qmeds0")
	rec := postForm(a, "/", values)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{forms.MsgNameRequired, forms.MsgRequired, `value="jo@example.com"`} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in re-rendered form", want)
		}
	}

	subs, _ := a.Store.ListSubmissions(context.Background(), "", 0)
	if len(subs) != 0 {
		t.Errorf("invalid submission should not be stored")
	}
	if got := counterValue(t, a.Metrics.Submissions.WithLabelValues("booking", outcomeInvalid)); got != 1 {
		t.Errorf("invalid counter = %v", got)
	}
}

func TestSubmitJSONErrors(t *testing.T) {
	a, cleanup := setupTestApp(t, fixtureSource())
	defer cleanup()

	values := contactValues()
	values.Set("phone", "")
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec := serve(a, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var res submitResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := submitResponse{
		Errors: forms.Errors{forms.KeyContact: forms.MsgContactRequired},
		Focus:  "email",
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitContactJSONSuccess(t *testing.T) {
	a, cleanup := setupTestApp(t, fixtureSource())
	defer cleanup()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(contactValues().Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec := serve(a, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.TrimSpace(rec.Body.String()) != `{"ok":true}` {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
	subs, _ := a.Store.ListSubmissions(context.Background(), "contact", 0)
	if len(subs) != 1 || subs[0].Payload.Get("service") != "overnight-stays" {
		t.Fatalf("unexpected stored submissions %+v", subs)
	}
}

func TestSubmitRejectsUnknownService(t *testing.T) {
	a, cleanup := setupTestApp(t, fixtureSource())
	defer cleanup()

	values := contactValues()
	values.Set("service", "grooming")
	rec := postForm(a, "/", values)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), forms.MsgUnknownOption) {
		t.Errorf("expected unknown option message")
	}
}

func TestSubmitHoneypotDiscarded(t *testing.T) {
	a, cleanup := setupTestApp(t, fixtureSource())
	defer cleanup()

	values := contactValues()
	values.Set("bot-field", "http://spam.example")
	rec := postForm(a, "/", values)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Message Sent!") {
		t.Errorf("expected the normal confirmation")
	}
	subs, _ := a.Store.ListSubmissions(context.Background(), "", 0)
	if len(subs) != 0 {
		t.Errorf("spam should not be stored")
	}
	if got := counterValue(t, a.Metrics.Submissions.WithLabelValues("contact", outcomeSpam)); got != 1 {
		t.Errorf("spam counter = %v", got)
	}
}

func TestSubmitUnknownForm(t *testing.T) {
	a, cleanup := setupTestApp(t, fixtureSource())
	defer cleanup()

	values := contactValues()
	values.Set("form-name", "newsletter")
	if rec := postForm(a, "/", values); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	values.Del("form-name")
	if rec := postForm(a, "/", values); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without form-name, got %d", rec.Code)
	}
	if got := counterValue(t, a.Metrics.Submissions.WithLabelValues("unknown", outcomeInvalid)); got != 2 {
		t.Errorf("unknown counter = %v", got)
	}
}

func TestSubmitRateLimited(t *testing.T) {
	a, cleanup := setupTestApp(t, fixtureSource())
	defer cleanup()

	for i := 0; i < a.Config.SubmitLimit; i++ {
		if rec := postForm(a, "/", contactValues()); rec.Code != http.StatusOK {
			t.Fatalf("submission %d: expected 200, got %d", i, rec.Code)
		}
	}
	if rec := postForm(a, "/", contactValues()); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestSubmitInvalidDoesNotCountTowardsLimit(t *testing.T) {
	a, cleanup := setupTestApp(t, fixtureSource())
	defer cleanup()

	bad := contactValues()
	bad.Set("name", "")
	for i := 0; i < a.Config.SubmitLimit+2; i++ {
		if rec := postForm(a, "/", bad); rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("attempt %d: expected 422, got %d", i, rec.Code)
		}
	}
	if rec := postForm(a, "/", contactValues()); rec.Code != http.StatusOK {
		t.Fatalf("expected corrected submission to pass, got %d", rec.Code)
	}
}

func TestSubmitStoreFailureKeepsAnswers(t *testing.T) {
	a, cleanup := setupTestApp(t, fixtureSource())
	defer cleanup()

	a.Store.Close()
	rec := postForm(a, "/", contactValues())
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `role="alert"`) || !strings.Contains(body, "Three nights in May") {
		t.Errorf("expected error banner with preserved answers:\n%s", body)
	}
	if got := counterValue(t, a.Metrics.Submissions.WithLabelValues("contact", outcomeFailed)); got != 1 {
		t.Errorf("failed counter = %v", got)
	}
}

func TestSubmitBookingWithoutContent(t *testing.T) {
	a, cleanup := setupTestApp(t, content.Static{})
	defer cleanup()

	if rec := postForm(a, "/", bookingValues()); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestSubmitSkipsCSRF(t *testing.T) {
	a, cleanup := setupTestApp(t, fixtureSource())
	defer cleanup()

	// No _csrf cookie or token: the forms are served to anonymous visitors.
	if rec := postForm(a, "/", contactValues()); rec.Code == http.StatusForbidden {
		t.Fatal("form submissions should not require a CSRF token")
	}
	if rec := postForm(a, "/admin/login/", url.Values{"password": {"x"}}); rec.Code != http.StatusForbidden {
		t.Fatalf("admin login without token: expected 403, got %d", rec.Code)
	}
}
