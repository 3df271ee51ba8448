package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/jesssits/jesssits/content"
	"github.com/jesssits/jesssits/forms"
)

const defaultTagline = "Your Pup's Home Away From Home"

// page wraps a body function in the Layout.
func page(p Page, body func(ctx context.Context, w *writer)) templ.Component {
	return Layout(p, templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		body(ctx, w)
		return w.err
	}))
}

func snapshot(p Page) *content.Snapshot {
	if p.Content == nil {
		return &content.Snapshot{}
	}
	return p.Content
}

func pageHeader(w *writer, title, subtitle string) {
	w.raw(`<section class="page-header"><div class="container">`)
	w.el("h1", "page-header__title", title)
	if subtitle != "" {
		w.el("p", "page-header__subtitle", subtitle)
	}
	w.raw(`</div></section>`)
}

func cta(w *writer, title, subtitle, href, label string) {
	w.raw(`<section class="cta"><div class="container cta__content">`)
	w.el("h2", "cta__title", title)
	w.el("p", "cta__subtitle", subtitle)
	w.link(href, "btn btn-primary", label)
	w.raw(`</div></section>`)
}

func serviceCard(w *writer, svc content.Service, detailed bool) {
	icon := svc.Icon
	if icon == "" {
		icon = "🐕"
	}
	w.raw(`<article class="card service-card"`)
	w.attr("id", svc.ID)
	w.raw(`>`)
	w.el("span", "service-card__icon", icon)
	if detailed {
		w.el("h2", "service-card__title", svc.Title)
		if svc.Price != "" {
			w.el("span", "service-card__price", svc.Price)
		}
	} else {
		w.el("h3", "service-card__title", svc.Title)
	}
	w.el("p", "service-card__description", svc.Description)
	if detailed && len(svc.Features) > 0 {
		w.raw(`<ul class="service-card__features">`)
		for _, f := range svc.Features {
			w.el("li", "", "✓ "+f)
		}
		w.raw(`</ul>`)
	}
	w.raw(`</article>`)
}

func testimonialCard(w *writer, t content.Testimonial) {
	w.raw(`<blockquote class="card testimonial-card">`)
	w.el("span", "testimonial-card__rating", stars(t.Rating))
	w.el("p", "testimonial-card__quote", "“"+t.Quote+"”")
	w.raw(`<footer class="testimonial-card__author">`)
	w.el("strong", "", t.Name)
	if t.DogName != "" {
		w.el("span", "testimonial-card__dog", "Pet parent of "+t.DogName)
	}
	w.raw(`</footer></blockquote>`)
}

// Home renders the landing page: hero, a preview of services, a short
// introduction and the latest testimonials.
func Home(p Page) templ.Component {
	return page(p, func(ctx context.Context, w *writer) {
		snap := snapshot(p)
		tagline := snap.Settings.Tagline
		if tagline == "" {
			tagline = defaultTagline
		}
		lead, highlight := splitTagline(tagline)

		w.raw(`<section class="hero"><div class="container hero__content"><div class="hero__text"><span class="hero__tag">Professional Dog Sitting</span><h1 class="hero__title">`)
		w.text(lead)
		if highlight != "" {
			w.raw(` `)
			w.el("span", "hero__highlight", highlight)
		}
		w.raw(`</h1><p class="hero__subtitle">Dogs love me, just ask them! Professional, caring dog sitting services with all the belly rubs, walks, and adventures they deserve.</p><div class="hero__cta">`)
		w.link("/booking/", "btn btn-primary", "Book a Stay")
		w.link("/services/", "btn btn-outline", "View Services")
		w.raw(`</div></div><div class="hero__badge"><span>⭐ 5-Star Rated</span></div></div></section>`)

		w.raw(`<section class="section services-preview"><div class="container">`)
		w.el("h2", "section-title", "What I Offer")
		w.el("p", "section-subtitle", "Every dog deserves personalized care. Here's how I can help!")
		w.raw(`<div class="services-grid">`)
		for i, svc := range snap.Services {
			if i == 3 {
				break
			}
			serviceCard(w, svc, false)
		}
		w.raw(`</div>`)
		w.link("/services/", "btn btn-secondary", "See All Services")
		w.raw(`</div></section>`)

		w.raw(`<section class="section about-preview"><div class="container">`)
		w.el("h2", "about-preview__title", "Hi, I'm Jess!")
		if snap.About != nil && snap.About.Bio != "" {
			w.el("p", "about-preview__description", snap.About.Bio)
		}
		w.link("/about/", "btn btn-outline", "More About Me")
		w.raw(`</div></section>`)

		if len(snap.Testimonials) > 0 {
			w.raw(`<section class="section testimonials-preview"><div class="container">`)
			w.el("h2", "section-title", "What Pet Parents Say")
			w.el("p", "section-subtitle", "Don't just take my word for it - hear from happy clients!")
			w.raw(`<div class="testimonials-grid">`)
			for i, t := range snap.Testimonials {
				if i == 2 {
					break
				}
				testimonialCard(w, t)
			}
			w.raw(`</div></div></section>`)
		}

		cta(w, "Ready for Your Pup's Best Stay?", "Let's set up a free meet & greet so your dog can get to know me.", "/booking/", "Get Started")
	})
}

// About renders the biography, highlights and gallery captions.
func About(p Page) templ.Component {
	return page(p, func(ctx context.Context, w *writer) {
		snap := snapshot(p)
		pageHeader(w, "About Me", "The human behind the belly rubs")
		w.raw(`<section class="section about"><div class="container about__content">`)
		w.el("h2", "about__title", "My Story")
		if a := snap.About; a != nil {
			if a.Bio != "" {
				w.el("p", "about__bio", a.Bio)
			}
			if len(a.ExtendedBio) > 0 {
				w.raw(`<div class="about__extended">`)
				// RenderBlocks output is escaped and sanitised.
				w.raw(content.RenderBlocks(a.ExtendedBio))
				w.raw(`</div>`)
			}
			if len(a.Highlights) > 0 {
				w.raw(`<section class="about__highlights">`)
				w.el("h2", "section-title", "Why Choose Me?")
				w.raw(`<ul>`)
				for _, h := range a.Highlights {
					w.el("li", "about__highlight", h)
				}
				w.raw(`</ul></section>`)
			}
		}
		w.raw(`</div></section>`)

		if len(snap.Gallery) > 0 {
			w.raw(`<section class="section gallery"><div class="container">`)
			w.el("h2", "section-title", "Happy Moments")
			w.el("p", "section-subtitle", "A glimpse into the fun times I have with my furry clients!")
			w.raw(`<ul class="gallery__grid">`)
			for _, img := range snap.Gallery {
				caption := img.Caption
				if caption == "" {
					caption = "🐾"
				}
				w.el("li", "gallery__item", caption)
			}
			w.raw(`</ul></div></section>`)
		}
		cta(w, "Let's Meet!", "Every great friendship starts with a meet & greet.", "/contact/", "Say Hello")
	})
}

// Services renders every service with its price and features.
func Services(p Page) templ.Component {
	return page(p, func(ctx context.Context, w *writer) {
		snap := snapshot(p)
		pageHeader(w, "Dog Sitting Services", "Tailored care for every pup, from quick visits to overnight stays")
		w.raw(`<section class="section"><div class="container services-list">`)
		for _, svc := range snap.Services {
			serviceCard(w, svc, true)
		}
		w.raw(`</div></section>`)
		cta(w, "Ready to Book?", "Fill in the questionnaire and I'll be in touch within 24 hours.", "/booking/", "Book Now")
	})
}

// Pricing renders service rates, add-ons and booking terms.
func Pricing(p Page) templ.Component {
	return page(p, func(ctx context.Context, w *writer) {
		snap := snapshot(p)
		pageHeader(w, "Pricing & Terms", "Simple, transparent pricing with no hidden fees")

		w.raw(`<section class="section pricing"><div class="container">`)
		w.el("h2", "section-title", "Service Rates")
		w.el("p", "section-subtitle", "All prices are for one dog. Multi-pet discounts available!")
		w.raw(`<table class="pricing__table"><thead><tr><th scope="col">Service</th><th scope="col">Rate</th></tr></thead><tbody>`)
		for _, svc := range snap.Services {
			w.raw(`<tr><th scope="row">`)
			w.text(svc.Title)
			w.raw(`</th>`)
			w.el("td", "pricing__price", svc.Price)
			w.raw(`</tr>`)
		}
		w.raw(`</tbody></table></div></section>`)

		w.raw(`<section class="section add-ons"><div class="container">`)
		w.el("h2", "section-title", "Add-Ons & Extras")
		w.raw(`<ul class="add-ons__list">`)
		for _, a := range content.AddOns {
			w.raw(`<li class="add-ons__item">`)
			w.el("span", "add-ons__name", a.Name)
			w.el("span", "add-ons__price", a.Price)
			w.raw(`</li>`)
		}
		w.raw(`</ul></div></section>`)

		terms(w, snap.Terms)
		cta(w, "Ready to Book?", "Let's schedule that meet & greet!", "/booking/", "Book Now")
	})
}

func terms(w *writer, policies []content.TermsPolicy) {
	if len(policies) == 0 {
		return
	}
	w.raw(`<section class="section terms"><div class="container">`)
	w.el("h2", "terms__title", "Terms & Conditions")
	w.raw(`<div class="terms__grid">`)
	for _, t := range policies {
		w.raw(`<div class="card terms__card">`)
		w.el("h3", "terms__card-title", t.Icon+" "+t.Title)
		w.raw(`<ul>`)
		for _, item := range t.Items {
			w.el("li", "", item)
		}
		w.raw(`</ul></div>`)
	}
	w.raw(`</div></div></section>`)
}

// Testimonials renders every testimonial, newest first.
func Testimonials(p Page) templ.Component {
	return page(p, func(ctx context.Context, w *writer) {
		snap := snapshot(p)
		pageHeader(w, "Testimonials", "Happy tails from happy families")
		w.raw(`<section class="section"><div class="container testimonials-grid">`)
		if len(snap.Testimonials) == 0 {
			w.el("p", "testimonials__empty", "Reviews are on their way. Check back soon!")
		}
		for _, t := range snap.Testimonials {
			testimonialCard(w, t)
		}
		w.raw(`</div></section>`)
		cta(w, "Want Your Pup to Be This Happy?", "Book a meet & greet today.", "/contact/", "Get in Touch")
	})
}

// Contact renders the contact page around the contact form.
func Contact(p Page, form forms.ContactView) templ.Component {
	return page(p, func(ctx context.Context, w *writer) {
		s := snapshot(p).Settings
		pageHeader(w, "Get in Touch", "Have questions? I'd love to hear from you and your pup!")
		w.raw(`<section class="section contact"><div class="container contact__content"><div class="contact__info">`)
		w.el("h2", "contact__info-title", "Contact Info")
		if s.Email != "" {
			w.raw(`<p>📧 `)
			w.link("mailto:"+s.Email, "", s.Email)
			w.raw(`</p>`)
		}
		if s.Phone != "" {
			w.raw(`<p>📱 `)
			w.link("tel:"+s.Phone, "", s.Phone)
			w.raw(`</p>`)
		}
		if s.Location != "" {
			w.el("p", "", "📍 "+s.Location)
		}
		w.raw(`</div><div class="card contact__form">`)
		w.el("h2", "contact__form-title", "Send a Message")
		w.el("p", "contact__form-subtitle", "Leave your details and I'll call you back.")
		w.render(ctx, forms.ContactFormView(form))
		w.raw(`</div></div></section>`)
	})
}

// Booking renders the questionnaire page followed by the booking terms.
func Booking(p Page, form forms.BookingView) templ.Component {
	return page(p, func(ctx context.Context, w *writer) {
		pageHeader(w, "Booking Questionnaire", "Tell me about your dog so I can prepare the perfect stay")
		w.raw(`<section class="section booking"><div class="container card booking__form">`)
		w.render(ctx, forms.BookingForm(form))
		w.raw(`</div></section>`)
		terms(w, snapshot(p).Terms)
	})
}

// NotFound renders the 404 page.
func NotFound(p Page) templ.Component {
	p.Meta.Title = "Page Not Found"
	return page(p, func(ctx context.Context, w *writer) {
		w.raw(`<section class="section not-found"><div class="container">`)
		w.el("span", "not-found__emoji", "🐕‍🦺")
		w.el("h1", "not-found__title", "Oops! Page Not Found")
		w.el("p", "not-found__message", "Looks like this page went off chasing squirrels. Let's get you back on track!")
		w.link("/", "btn btn-primary", "Go Home")
		w.raw(`</div></section>`)
	})
}

// ServerError renders the 500 page.
func ServerError(p Page) templ.Component {
	p.Meta.Title = "Something Went Wrong"
	return page(p, func(ctx context.Context, w *writer) {
		w.raw(`<section class="section not-found"><div class="container">`)
		w.el("h1", "not-found__title", "Something went wrong")
		w.el("p", "not-found__message", "Please try again in a moment.")
		w.link("/", "btn btn-primary", "Go Home")
		w.raw(`</div></section>`)
	})
}
