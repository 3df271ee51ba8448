// Package content loads the site's editable copy: settings, services,
// testimonials, policies and the booking questions. A Source returns one
// consistent Snapshot of everything a page render needs.
package content

import (
	"context"
	"errors"
	"time"

	"github.com/jesssits/jesssits/forms"
)

var (
	// ErrUnavailable is returned when the content backend cannot be read.
	ErrUnavailable = errors.New("content: source unavailable")
	// ErrNotFound is returned for lookups of documents that do not exist.
	ErrNotFound = errors.New("content: not found")
)

// Source provides content snapshots.
type Source interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

type SocialLinks struct {
	Instagram string `json:"instagram,omitempty" yaml:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty" yaml:"facebook,omitempty"`
}

type SiteSettings struct {
	SiteName    string      `json:"siteName,omitempty" yaml:"siteName,omitempty"`
	Email       string      `json:"email" yaml:"email"`
	Phone       string      `json:"phone,omitempty" yaml:"phone,omitempty"`
	Location    string      `json:"location,omitempty" yaml:"location,omitempty"`
	Tagline     string      `json:"tagline,omitempty" yaml:"tagline,omitempty"`
	SocialLinks SocialLinks `json:"socialLinks,omitempty" yaml:"socialLinks,omitempty"`
}

// Service is a priced offering shown on the services and pricing pages.
type Service struct {
	ID          string   `json:"_id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Price       string   `json:"price,omitempty" yaml:"price,omitempty"`
	Icon        string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	Features    []string `json:"features,omitempty" yaml:"features,omitempty"`
	Order       float64  `json:"order,omitempty" yaml:"order,omitempty"`
}

// ServiceType is an entry of the contact form's service dropdown.
type ServiceType struct {
	ID          string  `json:"_id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	Icon        string  `json:"icon" yaml:"icon"`
	Order       float64 `json:"order,omitempty" yaml:"order,omitempty"`
}

type Testimonial struct {
	ID      string `json:"_id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	DogName string `json:"dogName" yaml:"dogName"`
	Quote   string `json:"quote" yaml:"quote"`
	Rating  int    `json:"rating,omitempty" yaml:"rating,omitempty"`
}

// About is the biography shown on the about page. ExtendedBio is rich text.
type About struct {
	ID          string   `json:"_id" yaml:"id"`
	Bio         string   `json:"bio" yaml:"bio"`
	ExtendedBio []Block  `json:"extendedBio,omitempty" yaml:"extendedBio,omitempty"`
	Highlights  []string `json:"highlights,omitempty" yaml:"highlights,omitempty"`
}

// TermsPolicy is one titled list of booking terms.
type TermsPolicy struct {
	ID    string   `json:"_id" yaml:"id"`
	Title string   `json:"title" yaml:"title"`
	Icon  string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	Items []string `json:"items,omitempty" yaml:"items,omitempty"`
	Order float64  `json:"order,omitempty" yaml:"order,omitempty"`
}

// GalleryImage carries the caption and position of a gallery photo. Image
// assets themselves are served by the content CDN.
type GalleryImage struct {
	ID      string  `json:"_id" yaml:"id"`
	Caption string  `json:"caption,omitempty" yaml:"caption,omitempty"`
	Order   float64 `json:"order,omitempty" yaml:"order,omitempty"`
}

// Snapshot is everything one render needs, read at a single point in time.
type Snapshot struct {
	Settings     SiteSettings
	Services     []Service
	ServiceTypes []ServiceType
	Testimonials []Testimonial
	About        *About
	Terms        []TermsPolicy
	Gallery      []GalleryImage
	Questions    []forms.Question
	FetchedAt    time.Time
}

// ServiceOptions returns the contact form dropdown entries. The option value
// is the slugged title.
func (s *Snapshot) ServiceOptions() []forms.ServiceOption {
	if len(s.ServiceTypes) == 0 {
		return nil
	}
	out := make([]forms.ServiceOption, 0, len(s.ServiceTypes))
	for _, st := range s.ServiceTypes {
		v := forms.Slug(st.Title)
		if v == "" {
			continue
		}
		label := st.Title
		if st.Icon != "" {
			label = st.Icon + " " + st.Title
		}
		out = append(out, forms.ServiceOption{Value: v, Label: label})
	}
	return out
}

// BookingForm builds the questionnaire from the snapshot's questions.
func (s *Snapshot) BookingForm() *forms.Form {
	return forms.NewForm(s.Questions)
}

// ContactForm builds the contact form with the snapshot's service types.
func (s *Snapshot) ContactForm() *forms.ContactForm {
	return forms.NewContactForm(s.ServiceOptions())
}

// Service looks up a service by id.
func (s *Snapshot) Service(id string) (Service, error) {
	for _, svc := range s.Services {
		if svc.ID == id {
			return svc, nil
		}
	}
	return Service{}, ErrNotFound
}

// finish sanitises CMS strings and fills the sections editors left empty.
func (s *Snapshot) finish(now time.Time) *Snapshot {
	sanitize(s)
	applyFallbacks(s)
	s.FetchedAt = now
	return s
}
