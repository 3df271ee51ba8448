package views

import (
	"github.com/jesssits/jesssits/content"
)

// Site holds site-wide settings populated from environment variables.
// Every handler passes this to templates so nothing is hardcoded.
type Site struct {
	Name        string // SITE_NAME  (default "Jess Sits")
	URL         string // SITE_URL   (default "http://localhost:3000")
	Description string // SITE_DESCRIPTION
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// Page is the data every public page renders from.
type Page struct {
	Site    Site
	Meta    PageMeta
	Content *content.Snapshot
	// Path is the request path, used to mark the active nav link.
	Path string
}

// settings returns the CMS settings, or zero settings without a snapshot.
func (p Page) settings() content.SiteSettings {
	if p.Content == nil {
		return content.SiteSettings{}
	}
	return p.Content.Settings
}

func (p Page) siteName() string {
	if s := p.settings().SiteName; s != "" {
		return s
	}
	return p.Site.Name
}
