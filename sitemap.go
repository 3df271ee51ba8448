package jesssits

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jesssits/jesssits/views"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
}

// sitemapPages are the public pages listed in the sitemap.
var sitemapPages = []string{"about", "services", "pricing", "testimonials", "contact", "booking"}

func (a *App) renderSitemap(c echo.Context) error {
	base := a.Config.URL
	lastMod := a.snapshot(c).FetchedAt.Format("2006-01-02")
	urls := []sitemapURL{
		{Loc: views.BuildURL(base), LastMod: lastMod, ChangeFreq: "weekly"},
	}
	for _, p := range sitemapPages {
		urls = append(urls, sitemapURL{
			Loc:        views.BuildURL(base, p),
			LastMod:    lastMod,
			ChangeFreq: "monthly",
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
