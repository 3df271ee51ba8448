package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/jesssits/jesssits/content"
)

// BuildURL joins path segments onto a base URL. A non-empty path gets a
// trailing slash to match the canonical page URLs.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// SafeURL returns raw when it is a site-relative path or an http, https,
// mailto or tel URL, and "" otherwise. Links from the CMS pass through it.
func SafeURL(raw string) string {
	val := strings.TrimSpace(raw)
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return val
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return val
	}
	return ""
}

// PathEscape wraps url.PathEscape for use in component code.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// LocalBusinessJsonLD produces a Schema.org LocalBusiness JSON-LD block from
// the site config and CMS settings.
func LocalBusinessJsonLD(site Site, settings content.SiteSettings) string {
	name := settings.SiteName
	if name == "" {
		name = site.Name
	}
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "LocalBusiness",
		"name":     name,
		"url":      BuildURL(site.URL),
	}
	if site.Description != "" {
		data["description"] = site.Description
	}
	if settings.Email != "" {
		data["email"] = settings.Email
	}
	if settings.Phone != "" {
		data["telephone"] = settings.Phone
	}
	if settings.Location != "" {
		data["areaServed"] = settings.Location
	}
	var sameAs []string
	for _, link := range []string{settings.SocialLinks.Instagram, settings.SocialLinks.Facebook} {
		if link = SafeURL(link); link != "" {
			sameAs = append(sameAs, link)
		}
	}
	if len(sameAs) > 0 {
		data["sameAs"] = sameAs
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// splitTagline splits the hero tagline after its second word so the rest can
// be highlighted.
func splitTagline(tagline string) (string, string) {
	words := strings.Fields(tagline)
	if len(words) <= 2 {
		return strings.Join(words, " "), ""
	}
	return strings.Join(words[:2], " "), strings.Join(words[2:], " ")
}

// stars renders a rating out of five.
func stars(rating int) string {
	if rating <= 0 || rating > 5 {
		rating = 5
	}
	return strings.Repeat("⭐", rating)
}
