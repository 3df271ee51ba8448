package jesssits

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/jesssits/jesssits/store"
)

// adminClient keeps the cookies an admin browser would send back.
type adminClient struct {
	a       *App
	cookies map[string]*http.Cookie
}

func newAdminClient(a *App) *adminClient {
	return &adminClient{a: a, cookies: map[string]*http.Cookie{}}
}

func (ac *adminClient) keep(res *http.Response) {
	for _, c := range res.Cookies() {
		ac.cookies[c.Name] = c
	}
}

func (ac *adminClient) jar() []*http.Cookie {
	out := make([]*http.Cookie, 0, len(ac.cookies))
	for _, c := range ac.cookies {
		out = append(out, c)
	}
	return out
}

func (ac *adminClient) get(path string) (int, string) {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	for _, c := range ac.jar() {
		req.AddCookie(c)
	}
	rec := serve(ac.a, req)
	ac.keep(rec.Result())
	return rec.Code, rec.Body.String()
}

func (ac *adminClient) post(path string, form url.Values) (int, http.Header) {
	if tok, ok := ac.cookies["_csrf"]; ok {
		form.Set("_csrf", tok.Value)
	}
	rec := postForm(ac.a, path, form, ac.jar()...)
	ac.keep(rec.Result())
	return rec.Code, rec.Header()
}

func (ac *adminClient) login(t *testing.T, password string) int {
	t.Helper()
	if code, _ := ac.get("/admin/"); code != http.StatusOK {
		t.Fatalf("GET /admin/: expected 200, got %d", code)
	}
	code, _ := ac.post("/admin/login/", url.Values{"password": {password}})
	return code
}

func seedSubmission(t *testing.T, a *App) store.Submission {
	t.Helper()
	sub, err := a.Store.SaveSubmission(context.Background(), store.Submission{
		Form:    "contact",
		Name:    "Sam",
		Phone:   "0400 123 456",
		Payload: url.Values{"form-name": {"contact"}, "name": {"Sam"}, "message": {"Walks on Tuesdays"}},
		IP:      "192.0.2.1",
	})
	if err != nil {
		t.Fatalf("SaveSubmission: %v", err)
	}
	return sub
}

func TestAdminRequiresLogin(t *testing.T) {
	a, cleanup := setupTestApp(t, fixtureSource())
	defer cleanup()
	sub := seedSubmission(t, a)

	rec := get(a, "/admin/")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `name="password"`) {
		t.Fatalf("expected login form, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "Sam") {
		t.Errorf("inbox leaked to anonymous visitor")
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q", got)
	}

	rec = get(a, "/admin/submission/"+sub.ID+"/")
	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected redirect to login, got %d", rec.Code)
	}
}

func TestAdminLoginWrongPassword(t *testing.T) {
	a, cleanup := setupTestApp(t, fixtureSource())
	defer cleanup()

	ac := newAdminClient(a)
	if code := ac.login(t, "wrong"); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if _, ok := ac.cookies[sessionName]; ok {
		t.Errorf("session cookie set on failed login")
	}
	if got := counterValue(t, a.Metrics.LoginFailures); got != 1 {
		t.Errorf("login failures = %v", got)
	}
}

func TestAdminLoginRateLimited(t *testing.T) {
	a, cleanup := setupTestApp(t, fixtureSource())
	defer cleanup()

	ac := newAdminClient(a)
	for i := 0; i < 5; i++ {
		ac.login(t, "wrong")
	}
	if code := ac.login(t, "correct horse"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after repeated failures, got %d", code)
	}
}

func TestAdminInboxFlow(t *testing.T) {
	a, cleanup := setupTestApp(t, fixtureSource())
	defer cleanup()
	sub := seedSubmission(t, a)

	ac := newAdminClient(a)
	if code := ac.login(t, "correct horse"); code != http.StatusSeeOther {
		t.Fatalf("expected 303 after login, got %d", code)
	}

	code, body := ac.get("/admin/")
	if code != http.StatusOK {
		t.Fatalf("inbox: expected 200, got %d", code)
	}
	for _, want := range []string{"/admin/submission/" + sub.ID + "/", "contact (1)", "Sam"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in inbox", want)
		}
	}

	code, body = ac.get("/admin/submission/" + sub.ID + "/")
	if code != http.StatusOK {
		t.Fatalf("submission: expected 200, got %d", code)
	}
	if !strings.Contains(body, "Walks on Tuesdays") {
		t.Errorf("expected payload values in detail view")
	}
	if strings.Contains(body, "<dt>form-name</dt>") {
		t.Errorf("transport fields should be hidden")
	}

	code, header := ac.post("/admin/submission/"+sub.ID+"/", url.Values{"_method": {http.MethodDelete}})
	if code != http.StatusSeeOther {
		t.Fatalf("delete: expected 303, got %d", code)
	}
	if loc := header.Get("Location"); !strings.HasPrefix(loc, "/admin/?msg=") {
		t.Errorf("Location = %q", loc)
	}
	if _, err := a.Store.GetSubmission(context.Background(), sub.ID); err == nil {
		t.Errorf("submission still stored after delete")
	}

	code, _ = ac.get("/admin/submission/" + sub.ID + "/")
	if code != http.StatusNotFound {
		t.Errorf("deleted submission: expected 404, got %d", code)
	}
}

func TestAdminLogout(t *testing.T) {
	a, cleanup := setupTestApp(t, fixtureSource())
	defer cleanup()

	ac := newAdminClient(a)
	ac.login(t, "correct horse")
	if code, _ := ac.post("/admin/logout/", url.Values{}); code != http.StatusSeeOther {
		t.Fatalf("logout: expected 303, got %d", code)
	}
	if c := ac.cookies[sessionName]; c != nil && c.MaxAge >= 0 {
		t.Errorf("session cookie not expired: %+v", c)
	}
}
