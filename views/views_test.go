package views

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/jesssits/jesssits/content"
	"github.com/jesssits/jesssits/forms"
	"github.com/jesssits/jesssits/store"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func testPage(path string) Page {
	return Page{
		Site: Site{Name: "Jess Sits", URL: "https://jesssits.example", Description: "Dog sitting"},
		Content: &content.Snapshot{
			Settings: content.SiteSettings{
				Email:   "hello@jesssits.example",
				Phone:   "555 0100",
				Tagline: "Happy dogs, happy humans",
			},
			Services:     content.FallbackServices,
			Terms:        content.FallbackTerms,
			Testimonials: []content.Testimonial{{ID: "t1", Name: "Sam", DogName: "Biscuit", Quote: "Tom & Jerry approved", Rating: 4}},
			About: &content.About{
				Bio:         "I love dogs.",
				ExtendedBio: []content.Block{{Type: "block", Children: []content.Span{{Text: "Grew up on a farm"}}}},
				Highlights:  []string{"First aid certified"},
			},
		},
		Path: path,
	}
}

func TestLayoutMarksActiveNav(t *testing.T) {
	out := renderString(t, Services(testPage("/services/")))
	if !strings.Contains(out, `href="/services/" class="site-header__link site-header__link--active" aria-current="page"`) {
		t.Fatalf("expected active services link, got:\n%s", out)
	}
	if !strings.Contains(out, `<link rel="canonical" href="https://jesssits.example/services/">`) {
		t.Errorf("expected canonical url")
	}
}

func TestLayoutJsonLD(t *testing.T) {
	out := renderString(t, Home(testPage("/")))
	start := strings.Index(out, `<script type="application/ld+json">`)
	end := strings.Index(out, `</script>`)
	if start < 0 || end < start {
		t.Fatalf("missing JSON-LD block")
	}
	raw := out[start+len(`<script type="application/ld+json">`) : end]
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		t.Fatalf("invalid JSON-LD: %v", err)
	}
	if data["@type"] != "LocalBusiness" || data["email"] != "hello@jesssits.example" {
		t.Errorf("unexpected JSON-LD: %v", data)
	}
}

func TestHomeSplitsTagline(t *testing.T) {
	out := renderString(t, Home(testPage("/")))
	if !strings.Contains(out, `Happy dogs, <span class="hero__highlight">happy humans</span>`) {
		t.Errorf("expected highlighted tagline, got:\n%s", out)
	}
}

func TestHomeDefaultsWithoutContent(t *testing.T) {
	out := renderString(t, Home(Page{Site: Site{Name: "Jess Sits"}, Path: "/"}))
	if !strings.Contains(out, "Your Pup&#39;s <span") {
		t.Errorf("expected default tagline, got:\n%s", out)
	}
}

func TestAboutRendersRichText(t *testing.T) {
	out := renderString(t, About(testPage("/about/")))
	for _, want := range []string{"<p>Grew up on a farm</p>", "First aid certified", "I love dogs."} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in about page", want)
		}
	}
}

func TestPricingListsAddOnsAndTerms(t *testing.T) {
	out := renderString(t, Pricing(testPage("/pricing/")))
	for _, want := range []string{"Bath &amp; Brush", "Cancellation Policy", "$175/night"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in pricing page", want)
		}
	}
}

func TestTestimonialsEscapesQuote(t *testing.T) {
	out := renderString(t, Testimonials(testPage("/testimonials/")))
	if !strings.Contains(out, "Tom &amp; Jerry approved") {
		t.Errorf("expected escaped quote")
	}
	if !strings.Contains(out, "⭐⭐⭐⭐<") {
		t.Errorf("expected four stars")
	}
}

func TestContactEmbedsForm(t *testing.T) {
	form := forms.ContactView{Form: forms.NewContactForm(nil), Snapshot: forms.NewController(forms.NewContactForm(nil), nil).Snapshot()}
	out := renderString(t, Contact(testPage("/contact/"), form))
	if !strings.Contains(out, `name="form-name" value="contact"`) {
		t.Errorf("expected contact form markup, got:\n%s", out)
	}
}

func TestBookingEmbedsQuestionnaire(t *testing.T) {
	f := forms.NewForm([]forms.Question{{ID: "q-breed-1", Text: "Breed", Kind: forms.KindText}})
	view := forms.BookingView{Form: f, Snapshot: forms.NewController(f, nil).Snapshot()}
	out := renderString(t, Booking(testPage("/booking/"), view))
	if !strings.Contains(out, `name="breed-qbreed"`) {
		t.Errorf("expected question field, got:\n%s", out)
	}
	if !strings.Contains(out, "Booking Policy") {
		t.Errorf("expected terms below the form")
	}
}

func TestNotFound(t *testing.T) {
	out := renderString(t, NotFound(Page{Site: Site{Name: "Jess Sits"}}))
	if !strings.Contains(out, "<title>Page Not Found | Jess Sits</title>") {
		t.Errorf("unexpected title in:\n%s", out)
	}
}

func TestAdminInbox(t *testing.T) {
	subs := []store.Submission{{
		ID:        "abc",
		Form:      "contact",
		Name:      "<Jo>",
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}}
	out := renderString(t, AdminInbox(subs, map[string]int{"contact": 1, "booking": 2}, "deleted", "tok"))
	for _, want := range []string{
		`href="/admin/submission/abc/"`,
		"&lt;Jo&gt;",
		"booking (2)",
		`name="_csrf" value="tok"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in inbox", want)
		}
	}
	if strings.Index(out, "booking (2)") > strings.Index(out, "contact (1)") {
		t.Errorf("expected counts sorted by form")
	}
}

func TestAdminSubmissionHidesTransportFields(t *testing.T) {
	sub := store.Submission{
		ID:   "abc",
		Form: "booking",
		Name: "Jo",
		Payload: url.Values{
			"form-name":    {"booking"},
			"bot-field":    {""},
			"walk-times[]": {"Morning", "Evening"},
		},
	}
	out := renderString(t, AdminSubmission(sub, "tok"))
	if strings.Contains(out, "bot-field") || strings.Contains(out, "<dt>form-name") {
		t.Errorf("transport fields should be hidden")
	}
	if !strings.Contains(out, "<dd>Morning</dd><dd>Evening</dd>") {
		t.Errorf("expected repeated values, got:\n%s", out)
	}
	if !strings.Contains(out, `name="_method" value="DELETE"`) {
		t.Errorf("expected delete override")
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://instagram.com/jesssits", "https://instagram.com/jesssits"},
		{"  /booking/ ", "/booking/"},
		{"#faq", "#faq"},
		{"mailto:hello@jesssits.example", "mailto:hello@jesssits.example"},
		{"javascript:alert(1)", ""},
		{"instagram.com/jesssits", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SafeURL(tt.in); got != tt.want {
			t.Errorf("SafeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFooterDropsUnsafeSocialLinks(t *testing.T) {
	p := testPage("/")
	p.Content.Settings.SocialLinks = content.SocialLinks{
		Instagram: "https://instagram.com/jesssits",
		Facebook:  "javascript:alert(1)",
	}
	html := renderString(t, Home(p))
	if !strings.Contains(html, `href="https://instagram.com/jesssits"`) {
		t.Errorf("expected instagram link")
	}
	if strings.Contains(html, "javascript:") || strings.Contains(html, ">Facebook<") {
		t.Errorf("unsafe facebook link rendered")
	}

	var ld struct {
		SameAs []string `json:"sameAs"`
	}
	if err := json.Unmarshal([]byte(LocalBusinessJsonLD(p.Site, p.Content.Settings)), &ld); err != nil {
		t.Fatalf("decode JSON-LD: %v", err)
	}
	if len(ld.SameAs) != 1 || ld.SameAs[0] != "https://instagram.com/jesssits" {
		t.Errorf("sameAs = %q, want only the instagram link", ld.SameAs)
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://jesssits.example", nil, "https://jesssits.example"},
		{"https://jesssits.example", []string{"booking"}, "https://jesssits.example/booking/"},
		{"https://jesssits.example/", []string{"/about/"}, "https://jesssits.example/about/"},
		{"https://jesssits.example", []string{"/"}, "https://jesssits.example/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("BuildURL(%q, %q) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}
