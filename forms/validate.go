package forms

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validation messages shown next to the failing field.
const (
	MsgNameRequired    = "Name is required (at least 2 characters)"
	MsgNameMissing     = "Name is required"
	MsgNameTooShort    = "Name must be at least 2 characters"
	MsgInvalidEmail    = "Please enter a valid email address"
	MsgInvalidPhone    = "Please enter a valid phone number"
	MsgContactRequired = "Please provide an email or phone number"
	MsgRequired        = "This field is required"
	MsgUnknownOption   = "Please choose one of the listed options"
	minNameLength      = 2
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9\s\-()+]{7,}$`)
)

// ValidEmail reports whether s has the local@domain.tld shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// ValidPhone reports whether s is at least seven characters of digits,
// spaces, hyphens, parentheses and plus signs.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(strings.TrimSpace(s))
}

// Validate checks the booking answers against the form and returns the
// failing fields. It never mutates a.
func Validate(f *Form, a Answers) Errors {
	errs := Errors{}
	if utf8.RuneCountInString(strings.TrimSpace(a.Text(KeyName))) < minNameLength {
		errs[KeyName] = MsgNameRequired
	}
	validateReachability(a, errs)
	for _, fl := range f.Fields() {
		v := a[fl.Name]
		if fl.Required && isEmpty(fl.Kind, v) {
			errs[fl.Name] = MsgRequired
			continue
		}
		if fl.Kind.Choice() && !withinOptions(fl.Question, v) {
			errs[fl.Name] = MsgUnknownOption
		}
	}
	return errs
}

// validateReachability applies the email and phone format rules and the
// cross-field rule requiring at least one of them.
func validateReachability(a Answers, errs Errors) {
	email, phone := strings.TrimSpace(a.Text(KeyEmail)), strings.TrimSpace(a.Text(KeyPhone))
	if email != "" && !ValidEmail(email) {
		errs[KeyEmail] = MsgInvalidEmail
	}
	if phone != "" && !ValidPhone(phone) {
		errs[KeyPhone] = MsgInvalidPhone
	}
	if email == "" && phone == "" {
		errs[KeyContact] = MsgContactRequired
	}
}

// isEmpty decides whether v leaves a question of kind k unanswered.
func isEmpty(k Kind, v Value) bool {
	if v == nil {
		return true
	}
	switch k {
	case KindCheckboxes:
		s, _ := v.(Selection)
		return len(s) == 0
	case KindYesNo:
		// Any recorded answer counts, including No.
		if t, ok := v.(Text); ok {
			return strings.TrimSpace(string(t)) == ""
		}
		return false
	case KindText, KindTextArea, KindNumber, KindRadio, KindSelect:
		t, _ := v.(Text)
		return strings.TrimSpace(string(t)) == ""
	}
	return true
}

// withinOptions reports whether every chosen value of a choice question is one
// of its options. Unanswered questions pass.
func withinOptions(q Question, v Value) bool {
	switch v := v.(type) {
	case Text:
		return v == "" || q.HasOption(string(v))
	case Selection:
		for _, opt := range v {
			if !q.HasOption(opt) {
				return false
			}
		}
	}
	return true
}
