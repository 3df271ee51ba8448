package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jesssits/jesssits/forms"
)

// DefaultAPIVersion is the dated query API version requested.
const DefaultAPIVersion = "2024-01-01"

// Document queries, one per content type.
const (
	querySettings     = `*[_type == "siteSettings"][0]`
	queryServices     = `*[_type == "service"] | order(order asc)`
	queryServiceTypes = `*[_type == "serviceType"] | order(order asc)`
	queryTestimonials = `*[_type == "testimonial"] | order(_createdAt desc)`
	queryAbout        = `*[_type == "aboutContent"][0]`
	queryTerms        = `*[_type == "termsPolicy"] | order(order asc)`
	queryGallery      = `*[_type == "galleryImage"] | order(order asc){_id, caption, order}`
	queryQuestions    = `*[_type == "bookingQuestion"] | order(order asc)`
)

// HTTPSource reads content from a hosted query API of the form
// {BaseURL}/v{APIVersion}/data/query/{Dataset}?query=... which answers with
// {"result": ...}.
type HTTPSource struct {
	BaseURL    string
	Dataset    string
	APIVersion string
	Client     *http.Client
	// Now is used to stamp snapshots; time.Now when nil.
	Now func() time.Time
}

// NewHTTPSource returns a source for the CDN endpoint of a hosted project.
func NewHTTPSource(project, dataset string) *HTTPSource {
	if dataset == "" {
		dataset = "production"
	}
	return &HTTPSource{
		BaseURL:    "https://" + project + ".apicdn.sanity.io",
		Dataset:    dataset,
		APIVersion: DefaultAPIVersion,
		Client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
}

func (s *HTTPSource) endpoint(query string) string {
	version := s.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}
	return fmt.Sprintf("%s/v%s/data/query/%s?%s",
		strings.TrimRight(s.BaseURL, "/"), version, url.PathEscape(s.Dataset),
		url.Values{"query": {query}}.Encode())
}

// query runs a single query and decodes its result into out. A null result
// leaves out untouched.
func (s *HTTPSource) query(ctx context.Context, q string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint(q), nil)
	if err != nil {
		return fmt.Errorf("content: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return fmt.Errorf("%w: %s returned %d", ErrUnavailable, q, resp.StatusCode)
	}
	var body queryResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 8<<20)).Decode(&body); err != nil {
		return fmt.Errorf("content: decode %s: %w", q, err)
	}
	if len(body.Result) == 0 || string(body.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(body.Result, out); err != nil {
		return fmt.Errorf("content: decode %s: %w", q, err)
	}
	return nil
}

// Snapshot implements Source. Any failing query fails the snapshot so a
// cache can keep serving the previous one.
func (s *HTTPSource) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}
	var (
		settings *SiteSettings
		about    *About
	)
	queries := []struct {
		q   string
		out any
	}{
		{querySettings, &settings},
		{queryServices, &snap.Services},
		{queryServiceTypes, &snap.ServiceTypes},
		{queryTestimonials, &snap.Testimonials},
		{queryAbout, &about},
		{queryTerms, &snap.Terms},
		{queryGallery, &snap.Gallery},
		{queryQuestions, &snap.Questions},
	}
	for _, qq := range queries {
		if err := s.query(ctx, qq.q, qq.out); err != nil {
			return nil, err
		}
	}
	if settings != nil {
		snap.Settings = *settings
	}
	snap.About = about

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return snap.finish(now()), nil
}

// Questions fetches only the booking questions.
func (s *HTTPSource) Questions(ctx context.Context) ([]forms.Question, error) {
	var qs []forms.Question
	if err := s.query(ctx, queryQuestions, &qs); err != nil {
		return nil, err
	}
	return qs, nil
}
