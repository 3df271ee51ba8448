package forms

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// BookingView is everything needed to render the questionnaire.
type BookingView struct {
	Form *Form
	Snapshot
	// Action is the form's POST target; "/" when empty.
	Action string
}

// ContactView is everything needed to render the contact form.
type ContactView struct {
	Form *ContactForm
	Snapshot
	Action string
}

const (
	bookingClass = "booking-form"
	contactClass = "contact-form"
	errorBanner  = "Oops! Something went wrong. Please try again or email me directly."
)

// markup writes HTML and remembers the first write error.
type markup struct {
	w   io.Writer
	err error
}

func (m *markup) raw(s string) {
	if m.err != nil {
		return
	}
	_, m.err = io.WriteString(m.w, s)
}

func (m *markup) text(s string) {
	m.raw(templ.EscapeString(s))
}

func (m *markup) attr(name, value string) {
	m.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// optAttr writes the attribute only when value is not empty.
func (m *markup) optAttr(name, value string) {
	if value != "" {
		m.attr(name, value)
	}
}

func (m *markup) flag(name string, on bool) {
	if on {
		m.raw(" " + name)
	}
}

func classes(list ...string) string {
	out := list[:0:0]
	for _, c := range list {
		if c != "" {
			out = append(out, c)
		}
	}
	return strings.Join(out, " ")
}

func when(cond bool, s string) string {
	if cond {
		return s
	}
	return ""
}

func action(a string) string {
	if a == "" {
		return "/"
	}
	return a
}

// BookingForm renders the questionnaire, or the confirmation message once the
// submission succeeded.
func BookingForm(v BookingView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := &markup{w: w}
		if v.Status == StatusSuccess {
			success(m, bookingClass, "🎉", "Questionnaire Submitted!",
				"Thanks for your interest! I'll review your answers and get back to you within 24 hours to arrange a meet & greet.")
			return m.err
		}
		openForm(m, BookingFormName, action(v.Action))
		m.raw(`<div class="booking-form__contact-section"><h3 class="booking-form__section-title">Your Details</h3>`)
		contactFields(m, bookingClass, v.Snapshot)
		m.raw(`</div>`)

		for _, g := range v.Form.Groups() {
			m.raw(`<div class="booking-form__group"`)
			m.attr("data-group", string(g.Group))
			m.raw(`><h3 class="booking-form__group-title">`)
			m.text(g.Label())
			m.raw(`</h3>`)
			for _, fl := range g.Fields {
				if err := questionField(ctx, m, fl, v.Snapshot); err != nil {
					return err
				}
			}
			m.raw(`</div>`)
		}

		closeForm(m, bookingClass, v.Snapshot, "Submit Questionnaire", "Submitting...")
		return m.err
	})
}

// ContactFormView renders the callback request form, or the confirmation
// message once the submission succeeded.
func ContactFormView(v ContactView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := &markup{w: w}
		if v.Status == StatusSuccess {
			success(m, contactClass, "🎉", "Message Sent!", "Thanks for reaching out! I'll get back to you soon.")
			return m.err
		}
		openForm(m, ContactFormName, action(v.Action))
		m.raw(`<fieldset class="contact-form__contact"><legend class="contact-form__legend">How can I reach you?</legend>`)
		contactFields(m, contactClass, v.Snapshot)
		m.raw(`</fieldset>`)

		disabled := v.Disabled()
		m.raw(`<div class="contact-form__field"><label for="service" class="contact-form__label">Service Interested In</label><select id="service" name="service" class="contact-form__select"`)
		errorAttrs(m, v.Errors, KeyService, "")
		m.flag("disabled", disabled)
		m.raw(`><option value="">Select a service...</option>`)
		for _, s := range v.Form.Services {
			m.raw(`<option`)
			m.attr("value", s.Value)
			m.flag("selected", v.Answers.Text(KeyService) == s.Value)
			m.raw(`>`)
			m.text(s.Label)
			m.raw(`</option>`)
		}
		m.raw(`</select>`)
		errorText(m, contactClass, v.Errors, KeyService)
		m.raw(`</div>`)

		m.raw(`<div class="contact-form__field"><label for="dogName" class="contact-form__label">Dog's Name</label><input type="text" id="dogName" name="dogName" class="contact-form__input"`)
		m.attr("value", v.Answers.Text(KeyDogName))
		m.flag("disabled", disabled)
		m.raw(`></div>`)

		m.raw(`<div class="contact-form__field"><label for="message" class="contact-form__label">Anything else we should know?</label><textarea id="message" name="message" class="contact-form__textarea" placeholder="Special needs, preferred dates, questions..."`)
		m.flag("disabled", disabled)
		m.raw(`>`)
		m.text(v.Answers.Text(KeyMessage))
		m.raw(`</textarea></div>`)

		closeForm(m, contactClass, v.Snapshot, "Request a Callback", "Sending...")
		return m.err
	})
}

func success(m *markup, class, icon, title, body string) {
	m.raw(`<div class="` + class + `__success" role="status"><span class="` + class + `__success-icon" aria-hidden="true">`)
	m.text(icon)
	m.raw(`</span><h3 class="` + class + `__success-title">`)
	m.text(title)
	m.raw(`</h3><p class="` + class + `__success-text">`)
	m.text(body)
	m.raw(`</p></div>`)
}

func openForm(m *markup, name, target string) {
	m.raw(`<form`)
	m.attr("name", name)
	m.raw(` method="POST"`)
	m.attr("action", target)
	m.raw(` data-netlify="true" data-netlify-honeypot="` + HoneypotField + `" novalidate>`)
	m.raw(`<input type="hidden"`)
	m.attr("name", FormNameField)
	m.attr("value", name)
	m.raw(`><p class="form-honeypot" hidden><label>Don't fill this out if you're human: <input`)
	m.attr("name", HoneypotField)
	m.raw(` tabindex="-1" autocomplete="off"></label></p>`)
}

func closeForm(m *markup, class string, s Snapshot, label, busy string) {
	if s.Status == StatusError {
		m.raw(`<div class="` + class + `__error-banner" role="alert">`)
		m.text(errorBanner)
		m.raw(`</div>`)
	}
	m.raw(`<button type="submit" class="btn btn-primary ` + class + `__submit"`)
	m.flag("disabled", s.Disabled())
	m.raw(`>`)
	if s.Disabled() {
		m.text(busy)
	} else {
		m.text(label)
	}
	m.raw(`</button></form>`)
}

// errorAttrs marks a control invalid and links it to its error messages.
// extra names another failing key whose message also describes the control.
func errorAttrs(m *markup, errs Errors, key, extra string, describedBy ...string) {
	ids := append([]string(nil), describedBy...)
	invalid := false
	if errs.Has(key) {
		ids = append(ids, key+"-error")
		invalid = true
	}
	if extra != "" && errs.Has(extra) {
		ids = append(ids, extra+"-error")
		invalid = true
	}
	if invalid {
		m.raw(` aria-invalid="true"`)
	}
	m.optAttr("aria-describedby", classes(ids...))
}

func errorText(m *markup, class string, errs Errors, key string) {
	msg, ok := errs[key]
	if !ok {
		return
	}
	m.raw(`<span class="` + class + `__error"`)
	m.attr("id", key+"-error")
	m.raw(` role="alert">`)
	m.text(msg)
	m.raw(`</span>`)
}

type contactInput struct {
	key, label, typ, autocomplete string
	required                     bool
}

var contactInputs = []contactInput{
	{key: KeyName, label: "Your Name", typ: "text", autocomplete: "name", required: true},
	{key: KeyEmail, label: "Email Address", typ: "email", autocomplete: "email"},
	{key: KeyPhone, label: "Phone Number", typ: "tel", autocomplete: "tel"},
}

func contactFields(m *markup, class string, s Snapshot) {
	for _, in := range contactInputs {
		extra := ""
		if in.key == KeyEmail || in.key == KeyPhone {
			extra = KeyContact
		}
		failing := s.Errors.Has(in.key) || (extra != "" && s.Errors.Has(extra))

		m.raw(`<div class="` + class + `__field"><label`)
		m.attr("for", in.key)
		m.raw(` class="` + class + `__label">`)
		m.text(in.label)
		if in.required {
			m.raw(` <span class="` + class + `__required" aria-hidden="true">*</span>`)
		}
		m.raw(`</label><input`)
		m.attr("type", in.typ)
		m.attr("id", in.key)
		m.attr("name", in.key)
		m.attr("autocomplete", in.autocomplete)
		m.attr("class", classes(class+"__input", when(failing, class+"__input--error")))
		m.attr("value", s.Answers.Text(in.key))
		m.flag(`aria-required="true"`, in.required)
		errorAttrs(m, s.Errors, in.key, extra)
		m.flag("disabled", s.Disabled())
		m.flag("autofocus", s.Focus == in.key)
		m.raw(`>`)
		errorText(m, class, s.Errors, in.key)
		m.raw(`</div>`)
	}
	if msg, ok := s.Errors[KeyContact]; ok {
		m.raw(`<p id="contact-error" class="` + class + `__contact-error" role="alert">`)
		m.text(msg)
		m.raw(`</p>`)
	}
}

// questionField renders the label, helper text, control and error of one
// question.
func questionField(ctx context.Context, m *markup, fl Field, s Snapshot) error {
	m.raw(`<div class="booking-form__field"`)
	m.attr("data-kind", string(fl.Kind))
	m.raw(`>`)
	if fl.Kind.Grouped() {
		m.raw(`<span class="booking-form__label"`)
	} else {
		m.raw(`<label class="booking-form__label"`)
		m.attr("for", fl.Name)
	}
	m.attr("id", fl.Name+"-label")
	m.raw(`>`)
	m.text(fl.Text)
	if fl.Required {
		m.raw(`<span class="booking-form__required" aria-hidden="true"> *</span>`)
	}
	if fl.Kind.Grouped() {
		m.raw(`</span>`)
	} else {
		m.raw(`</label>`)
	}
	if fl.Description != "" {
		m.raw(`<p class="booking-form__helper"`)
		m.attr("id", fl.Name+"-help")
		m.raw(`>`)
		m.text(fl.Description)
		m.raw(`</p>`)
	}
	if m.err != nil {
		return m.err
	}
	if err := Control(fl, s).Render(ctx, m.w); err != nil {
		return err
	}
	errorText(m, bookingClass, s.Errors, fl.Name)
	m.raw(`</div>`)
	return m.err
}

// Control renders the input widget for a question field bound to the
// snapshot's answer and error. Fields of an unknown kind render nothing.
func Control(fl Field, s Snapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := &markup{w: w}
		c := control{m: m, fl: fl, s: s, failing: s.Errors.Has(fl.Name)}
		switch fl.Kind {
		case KindText:
			c.input("text")
		case KindNumber:
			c.input("number")
		case KindTextArea:
			c.textarea()
		case KindYesNo:
			c.choices("radiogroup", "radio", fl.Name, []string{"Yes", "No"}, true)
		case KindRadio:
			c.choices("radiogroup", "radio", fl.Name, fl.Options, false)
		case KindCheckboxes:
			c.choices("group", "checkbox", MultiName(fl.Name), fl.Options, false)
		case KindSelect:
			c.dropdown()
		}
		return m.err
	})
}

type control struct {
	m       *markup
	fl      Field
	s       Snapshot
	failing bool
}

func (c control) helpID() string {
	if c.fl.Description == "" {
		return ""
	}
	return c.fl.Name + "-help"
}

// common writes the attributes shared by single-element controls.
func (c control) common(class, variant string) {
	m := c.m
	m.attr("id", c.fl.Name)
	m.attr("name", c.fl.Name)
	m.attr("class", classes(class, variant, when(c.failing, class+"--error")))
	m.flag(`aria-required="true"`, c.fl.Required)
	errorAttrs(m, c.s.Errors, c.fl.Name, "", c.helpID())
	m.flag("disabled", c.s.Disabled())
	m.flag("autofocus", c.s.Focus == c.fl.Target())
}

func (c control) input(typ string) {
	c.m.raw(`<input`)
	c.m.attr("type", typ)
	if typ == "number" {
		c.m.raw(` inputmode="decimal" step="any"`)
		c.common("booking-form__input", "booking-form__input--number")
	} else {
		c.common("booking-form__input", "")
	}
	c.m.attr("value", c.s.Answers.Text(c.fl.Name))
	c.m.raw(`>`)
}

func (c control) textarea() {
	c.m.raw(`<textarea`)
	c.common("booking-form__textarea", "")
	c.m.raw(`>`)
	c.m.text(c.s.Answers.Text(c.fl.Name))
	c.m.raw(`</textarea>`)
}

func (c control) dropdown() {
	m := c.m
	m.raw(`<select`)
	c.common("booking-form__select", "")
	m.raw(`><option value="">Select an option...</option>`)
	current := c.s.Answers.Text(c.fl.Name)
	for _, opt := range c.fl.Options {
		m.raw(`<option`)
		m.attr("value", opt)
		m.flag("selected", opt == current)
		m.raw(`>`)
		m.text(opt)
		m.raw(`</option>`)
	}
	m.raw(`</select>`)
}

// choices renders one radio or checkbox per option inside a wrapper that
// carries the group role, the label reference and the error state.
func (c control) choices(role, typ, name string, options []string, inline bool) {
	m := c.m
	m.raw(`<div`)
	m.attr("id", c.fl.Name+"-wrapper")
	m.attr("class", classes("booking-form__option-group", when(inline, "booking-form__option-group--inline"), when(c.failing, "booking-form__option-group--error")))
	m.attr("role", role)
	m.attr("aria-labelledby", c.fl.Name+"-label")
	m.flag(`aria-required="true"`, c.fl.Required)
	errorAttrs(m, c.s.Errors, c.fl.Name, "", c.helpID())
	m.raw(`>`)

	focus := c.s.Focus == c.fl.Target()
	for i, opt := range options {
		id := c.fl.Name + "_" + strconv.Itoa(i)
		m.raw(`<label class="booking-form__option-label"`)
		m.attr("for", id)
		m.raw(`><input`)
		m.attr("id", id)
		m.attr("type", typ)
		m.attr("name", name)
		m.attr("value", opt)
		m.attr("class", "booking-form__"+typ)
		m.flag("checked", c.checked(opt))
		m.flag("disabled", c.s.Disabled())
		m.flag("autofocus", focus && i == 0)
		m.raw(`><span>`)
		m.text(opt)
		m.raw(`</span></label>`)
	}
	m.raw(`</div>`)
}

func (c control) checked(opt string) bool {
	if c.fl.Kind == KindCheckboxes {
		return c.s.Answers.Selected(c.fl.Name).Contains(opt)
	}
	return c.s.Answers.Text(c.fl.Name) == opt
}
