package views

import (
	"context"
	"io"
	"net/url"
	"sort"
	"strconv"

	"github.com/a-h/templ"

	"github.com/jesssits/jesssits/store"
)

const adminTime = "2 Jan 2006 15:04 MST"

func adminShell(title string, body func(w *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><meta name="robots" content="noindex">`)
		w.el("title", "", title)
		w.raw(`<link rel="stylesheet" href="/public/site.css"></head><body class="admin"><main class="container admin__content">`)
		body(w)
		w.raw(`</main></body></html>`)
		return w.err
	})
}

func csrfInput(w *writer, token string) {
	w.raw(`<input type="hidden" name="_csrf"`)
	w.attr("value", token)
	w.raw(`>`)
}

// AdminLogin renders the inbox password form.
func AdminLogin(showError bool, csrfToken string) templ.Component {
	return adminShell("Admin login", func(w *writer) {
		w.el("h1", "admin__title", "Inbox")
		if showError {
			w.raw(`<p class="admin__error" role="alert">Incorrect password.</p>`)
		}
		w.raw(`<form method="post" action="/admin/login/" class="admin__login">`)
		csrfInput(w, csrfToken)
		w.raw(`<label for="password">Password</label><input id="password" name="password" type="password" autocomplete="current-password" required autofocus><button type="submit" class="btn btn-primary">Log in</button></form>`)
	})
}

// AdminInbox renders the submission list with per-form counts.
func AdminInbox(subs []store.Submission, counts map[string]int, message, csrfToken string) templ.Component {
	return adminShell("Inbox", func(w *writer) {
		w.raw(`<header class="admin__header">`)
		w.el("h1", "admin__title", "Inbox")
		w.raw(`<form method="post" action="/admin/logout/">`)
		csrfInput(w, csrfToken)
		w.raw(`<button type="submit" class="btn btn-outline">Log out</button></form></header>`)
		if message != "" {
			w.el("p", "admin__message", message)
		}

		names := make([]string, 0, len(counts))
		for f := range counts {
			names = append(names, f)
		}
		sort.Strings(names)
		w.raw(`<ul class="admin__counts">`)
		w.raw(`<li>`)
		w.link("/admin/", "", "All")
		w.raw(`</li>`)
		for _, f := range names {
			w.raw(`<li>`)
			w.link("/admin/?form="+url.QueryEscape(f), "", f+" ("+strconv.Itoa(counts[f])+")")
			w.raw(`</li>`)
		}
		w.raw(`</ul>`)

		if len(subs) == 0 {
			w.el("p", "admin__empty", "No submissions yet.")
			return
		}
		w.raw(`<table class="admin__table"><thead><tr><th scope="col">Received</th><th scope="col">Form</th><th scope="col">Name</th><th scope="col">Email</th><th scope="col">Phone</th></tr></thead><tbody>`)
		for _, s := range subs {
			w.raw(`<tr><td>`)
			w.link("/admin/submission/"+PathEscape(s.ID)+"/", "", s.CreatedAt.Format(adminTime))
			w.raw(`</td>`)
			w.el("td", "", s.Form)
			w.el("td", "", s.Name)
			w.el("td", "", s.Email)
			w.el("td", "", s.Phone)
			w.raw(`</tr>`)
		}
		w.raw(`</tbody></table>`)
	})
}

// hiddenKeys are transport fields left out of the submission detail view.
var hiddenKeys = map[string]bool{"form-name": true, "bot-field": true}

// AdminSubmission renders every submitted value of one submission.
func AdminSubmission(sub store.Submission, csrfToken string) templ.Component {
	return adminShell("Submission from "+sub.Name, func(w *writer) {
		w.raw(`<p>`)
		w.link("/admin/", "", "← Inbox")
		w.raw(`</p>`)
		w.el("h1", "admin__title", sub.Name)
		w.el("p", "admin__meta", sub.Form+" · "+sub.CreatedAt.Format(adminTime)+" · "+sub.IP)

		keys := make([]string, 0, len(sub.Payload))
		for k := range sub.Payload {
			if !hiddenKeys[k] {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		w.raw(`<dl class="admin__values">`)
		for _, k := range keys {
			w.el("dt", "", k)
			for _, v := range sub.Payload[k] {
				w.el("dd", "", v)
			}
		}
		w.raw(`</dl>`)

		w.raw(`<form method="post"`)
		w.attr("action", "/admin/submission/"+PathEscape(sub.ID)+"/")
		w.raw(`><input type="hidden" name="_method" value="DELETE">`)
		csrfInput(w, csrfToken)
		w.raw(`<button type="submit" class="btn btn-danger">Delete</button></form>`)
	})
}
