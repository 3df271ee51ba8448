package forms

import "strings"

// Fixed keys present on every form regardless of the question set. KeyContact
// never holds a value; it carries the cross-field email-or-phone error.
const (
	KeyName    = "name"
	KeyEmail   = "email"
	KeyPhone   = "phone"
	KeyContact = "contact"
)

// Value is a single answer. It is one of Text, YesNo or Selection.
type Value interface {
	isValue()
}

// Text answers text, textarea, number, radio and select questions.
type Text string

// YesNo answers a yes/no question. An explicit No is an answer; only the
// absence of a value means the question is unanswered.
type YesNo bool

// Selection answers a multi-choice question: the checked options in the
// order they were checked.
type Selection []string

func (Text) isValue()      {}
func (YesNo) isValue()     {}
func (Selection) isValue() {}

// String renders the yes/no answer the way it is submitted.
func (y YesNo) String() string {
	if y {
		return "Yes"
	}
	return "No"
}

// Contains reports whether opt is selected.
func (s Selection) Contains(opt string) bool {
	for _, v := range s {
		if v == opt {
			return true
		}
	}
	return false
}

// Answers maps field names to the current values of a form.
type Answers map[string]Value

// NewAnswers returns answers seeded with the blank fixed contact fields.
func NewAnswers() Answers {
	return Answers{
		KeyName:  Text(""),
		KeyEmail: Text(""),
		KeyPhone: Text(""),
	}
}

// Text returns the scalar value of a field, or "" when it is unset or holds a
// selection. Yes/no answers are returned as "Yes" or "No".
func (a Answers) Text(field string) string {
	switch v := a[field].(type) {
	case Text:
		return string(v)
	case YesNo:
		return v.String()
	}
	return ""
}

// Selected returns the options checked for a multi-choice field.
func (a Answers) Selected(field string) Selection {
	if s, ok := a[field].(Selection); ok {
		return s
	}
	return nil
}

// Clone returns a deep copy so callers can hand out snapshots safely.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		if s, ok := v.(Selection); ok {
			v = append(Selection(nil), s...)
		}
		out[k] = v
	}
	return out
}

func (a Answers) blank(field string) bool {
	return strings.TrimSpace(a.Text(field)) == ""
}

// Errors maps field names (or KeyContact) to a message. A field absent from
// the map is valid; an empty map means the form can be submitted.
type Errors map[string]string

// Has reports whether key currently fails validation.
func (e Errors) Has(key string) bool {
	_, ok := e[key]
	return ok
}

// Clone returns a copy of the errors.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
