package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// writer emits markup and keeps the first write error.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

func (w *writer) attr(name, value string) {
	w.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// el writes <tag class="class">text</tag>.
func (w *writer) el(tag, class, text string) {
	w.raw("<" + tag)
	if class != "" {
		w.attr("class", class)
	}
	w.raw(">")
	w.text(text)
	w.raw("</" + tag + ">")
}

func (w *writer) link(href, class, text string) {
	w.raw("<a")
	w.attr("href", href)
	if class != "" {
		w.attr("class", class)
	}
	w.raw(">")
	w.text(text)
	w.raw("</a>")
}

// render writes a nested component through the writer.
func (w *writer) render(ctx context.Context, c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(ctx, w.w)
}

type navItem struct {
	Path  string
	Label string
}

var nav = []navItem{
	{"/", "Home"},
	{"/about/", "About Me"},
	{"/services/", "Services"},
	{"/pricing/", "Pricing"},
	{"/testimonials/", "Testimonials"},
	{"/contact/", "Contact"},
}

// Layout wraps body in the document shell: head metadata, header navigation
// and footer.
func Layout(p Page, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		title := p.siteName()
		if p.Meta.Title != "" {
			title = p.Meta.Title + " | " + title
		}
		description := p.Meta.Description
		if description == "" {
			description = p.Site.Description
		}
		canonical := p.Meta.URL
		if canonical == "" {
			canonical = BuildURL(p.Site.URL, p.Path)
		}
		ogType := p.Meta.OGType
		if ogType == "" {
			ogType = "website"
		}

		w.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.el("title", "", title)
		if description != "" {
			w.raw(`<meta name="description"`)
			w.attr("content", description)
			w.raw(`>`)
		}
		w.raw(`<link rel="canonical"`)
		w.attr("href", canonical)
		w.raw(`><meta property="og:title"`)
		w.attr("content", title)
		w.raw(`><meta property="og:type"`)
		w.attr("content", ogType)
		w.raw(`><meta property="og:url"`)
		w.attr("content", canonical)
		w.raw(`><link rel="stylesheet" href="/public/site.css">`)
		w.raw(`<script type="application/ld+json">`)
		// json.Marshal escapes <, > and & so the block cannot close the script.
		w.raw(LocalBusinessJsonLD(p.Site, p.settings()))
		w.raw(`</script></head><body>`)

		w.raw(`<header class="site-header"><div class="container site-header__content"><a href="/" class="site-header__logo"><span class="site-header__logo-icon">🐕</span>`)
		w.el("span", "site-header__logo-text", p.siteName())
		w.raw(`</a><nav class="site-header__nav" aria-label="Main">`)
		for _, item := range nav {
			class := "site-header__link"
			if item.Path == p.Path {
				class += " site-header__link--active"
			}
			w.raw(`<a`)
			w.attr("href", item.Path)
			w.attr("class", class)
			if item.Path == p.Path {
				w.raw(` aria-current="page"`)
			}
			w.raw(`>`)
			w.text(item.Label)
			w.raw(`</a>`)
		}
		w.link("/booking/", "btn btn-primary site-header__cta", "Book Now")
		w.raw(`</nav></div></header><main id="main">`)

		w.render(ctx, body)

		w.raw(`</main>`)
		footer(w, p)
		w.raw(`</body></html>`)
		return w.err
	})
}

func footer(w *writer, p Page) {
	s := p.settings()
	w.raw(`<footer class="site-footer"><div class="container site-footer__content"><div class="site-footer__brand">`)
	w.el("p", "site-footer__name", "🐕 "+p.siteName())
	if s.Tagline != "" {
		w.el("p", "site-footer__tagline", s.Tagline)
	}
	w.raw(`</div><ul class="site-footer__contact">`)
	if s.Email != "" {
		w.raw(`<li>`)
		w.link("mailto:"+s.Email, "", "📧 "+s.Email)
		w.raw(`</li>`)
	}
	if s.Phone != "" {
		w.raw(`<li>`)
		w.link("tel:"+s.Phone, "", "📱 "+s.Phone)
		w.raw(`</li>`)
	}
	if s.Location != "" {
		w.el("li", "", "📍 "+s.Location)
	}
	for _, social := range []struct{ href, label string }{
		{s.SocialLinks.Instagram, "Instagram"},
		{s.SocialLinks.Facebook, "Facebook"},
	} {
		if href := SafeURL(social.href); href != "" {
			w.raw(`<li>`)
			w.link(href, "", social.label)
			w.raw(`</li>`)
		}
	}
	w.raw(`</ul></div></footer>`)
}
