package forms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ErrSubmissionFailed is returned when the form backend cannot be reached or
// answers with a non-2xx status.
var ErrSubmissionFailed = errors.New("forms: submission failed")

// Submitter delivers an encoded form body.
type Submitter interface {
	Submit(ctx context.Context, body url.Values) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, body url.Values) error

// Submit calls fn.
func (fn SubmitterFunc) Submit(ctx context.Context, body url.Values) error {
	return fn(ctx, body)
}

// HTTPSubmitter posts bodies as application/x-www-form-urlencoded to a fixed
// endpoint. It never retries and adds no timeout of its own.
type HTTPSubmitter struct {
	Endpoint string
	Client   *http.Client
}

// NewHTTPSubmitter returns a submitter for endpoint using the default client.
func NewHTTPSubmitter(endpoint string) *HTTPSubmitter {
	return &HTTPSubmitter{Endpoint: endpoint}
}

// Submit implements Submitter.
func (s *HTTPSubmitter) Submit(ctx context.Context, body url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, strings.NewReader(body.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrSubmissionFailed, resp.StatusCode)
	}
	return nil
}
