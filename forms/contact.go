package forms

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// ContactFormName is the marker submitted in the form-name field of the
// contact form.
const ContactFormName = "contact"

// Optional fields of the contact form.
const (
	KeyDogName = "dogName"
	KeyService = "service"
	KeyMessage = "message"
)

// ServiceOption is one entry of the contact form's service dropdown.
type ServiceOption struct {
	Value string
	Label string
}

// DefaultServiceOptions is used when the content store offers no service
// types.
var DefaultServiceOptions = []ServiceOption{
	{Value: "in-home", Label: "In-Home Dog Sitting"},
	{Value: "overnight", Label: "Overnight Stays"},
	{Value: "daily-visits", Label: "Daily Drop-In Visits"},
	{Value: "adventure-walks", Label: "Extended Adventure Walks"},
	{Value: "vacation", Label: "Vacation Care Package"},
	{Value: "puppy", Label: "Puppy Care"},
	{Value: "other", Label: "Other / Not Sure"},
}

// ContactForm is the fixed callback request form.
type ContactForm struct {
	Services []ServiceOption
}

// NewContactForm returns a contact form offering services, or the default
// list when services is empty.
func NewContactForm(services []ServiceOption) *ContactForm {
	if len(services) == 0 {
		services = DefaultServiceOptions
	}
	return &ContactForm{Services: services}
}

// Name implements Schema.
func (c *ContactForm) Name() string {
	return ContactFormName
}

// Kind implements Schema.
func (c *ContactForm) Kind(field string) (Kind, bool) {
	switch field {
	case KeyName, KeyEmail, KeyPhone, KeyDogName:
		return KindText, true
	case KeyService:
		return KindSelect, true
	case KeyMessage:
		return KindTextArea, true
	}
	return KindUnknown, false
}

// Options implements Schema.
func (c *ContactForm) Options(field string) []string {
	if field != KeyService {
		return nil
	}
	out := make([]string, len(c.Services))
	for i, s := range c.Services {
		out[i] = s.Value
	}
	return out
}

// Validate implements Schema. Unlike the questionnaire, a missing name and a
// short name report different messages.
func (c *ContactForm) Validate(a Answers) Errors {
	errs := Errors{}
	name := strings.TrimSpace(a.Text(KeyName))
	switch {
	case name == "":
		errs[KeyName] = MsgNameMissing
	case utf8.RuneCountInString(name) < minNameLength:
		errs[KeyName] = MsgNameTooShort
	}
	validateReachability(a, errs)
	if svc := a.Text(KeyService); svc != "" && !c.hasService(svc) {
		errs[KeyService] = MsgUnknownOption
	}
	return errs
}

func (c *ContactForm) hasService(v string) bool {
	for _, s := range c.Services {
		if s.Value == v {
			return true
		}
	}
	return false
}

// Payload implements Schema.
func (c *ContactForm) Payload(a Answers) url.Values {
	v := baseValues(ContactFormName, a)
	v.Set(KeyDogName, a.Text(KeyDogName))
	v.Set(KeyService, a.Text(KeyService))
	v.Set(KeyMessage, a.Text(KeyMessage))
	return v
}

// FocusOrder implements Schema.
func (c *ContactForm) FocusOrder() []FocusTarget {
	return contactFocus
}

// DecodeContact reads a submitted contact form body.
func DecodeContact(values url.Values) Answers {
	a := decodeContactDetails(values)
	for _, k := range []string{KeyDogName, KeyService, KeyMessage} {
		a[k] = Text(values.Get(k))
	}
	return a
}
