package content

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jesssits/jesssits/forms"
)

// fileDocument is the YAML layout read by FileSource.
type fileDocument struct {
	Settings     SiteSettings     `yaml:"settings"`
	Services     []Service        `yaml:"services"`
	ServiceTypes []ServiceType    `yaml:"serviceTypes"`
	Testimonials []Testimonial    `yaml:"testimonials"`
	About        *About           `yaml:"about"`
	Terms        []TermsPolicy    `yaml:"terms"`
	Gallery      []GalleryImage   `yaml:"gallery"`
	Questions    []forms.Question `yaml:"questions"`
}

// FileSource reads content from a YAML file on every call, so edits show up
// on the next cache refresh.
type FileSource struct {
	Path string
	Now  func() time.Time
}

// NewFileSource returns a source backed by the YAML file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Snapshot implements Source.
func (s *FileSource) Snapshot(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return s.parse(data)
}

func (s *FileSource) parse(data []byte) (*Snapshot, error) {
	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("content: parse %s: %w", s.Path, err)
	}
	// The query API sorts by order; mirror that for hand-edited files.
	sort.SliceStable(doc.Services, func(i, j int) bool { return doc.Services[i].Order < doc.Services[j].Order })
	sort.SliceStable(doc.ServiceTypes, func(i, j int) bool { return doc.ServiceTypes[i].Order < doc.ServiceTypes[j].Order })
	sort.SliceStable(doc.Terms, func(i, j int) bool { return doc.Terms[i].Order < doc.Terms[j].Order })
	sort.SliceStable(doc.Gallery, func(i, j int) bool { return doc.Gallery[i].Order < doc.Gallery[j].Order })

	snap := &Snapshot{
		Settings:     doc.Settings,
		Services:     doc.Services,
		ServiceTypes: doc.ServiceTypes,
		Testimonials: doc.Testimonials,
		About:        doc.About,
		Terms:        doc.Terms,
		Gallery:      doc.Gallery,
		Questions:    doc.Questions,
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return snap.finish(now()), nil
}

// Static is a Source that always returns the same snapshot. It is useful
// in tests and when content is compiled in.
type Static struct {
	Snap *Snapshot
}

// Snapshot implements Source.
func (s Static) Snapshot(ctx context.Context) (*Snapshot, error) {
	if s.Snap == nil {
		return nil, ErrUnavailable
	}
	return s.Snap, nil
}
