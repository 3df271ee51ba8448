package forms

import "net/url"

// BookingFormName is the marker submitted in the form-name field of the
// booking questionnaire.
const BookingFormName = "booking"

// Field is a supported question bound to its derived field name.
type Field struct {
	Question
	Name string
}

// Target returns the id of the element that receives focus for the field:
// the wrapper for grouped controls, the control itself otherwise.
func (f Field) Target() string {
	if f.Kind.Grouped() {
		return f.Name + "-wrapper"
	}
	return f.Name
}

// FieldGroup is a rendered section of the questionnaire.
type FieldGroup struct {
	Group  Group
	Fields []Field
}

// Label returns the section heading.
func (g FieldGroup) Label() string {
	return g.Group.Label()
}

// Form is the booking questionnaire derived from a question set. It is
// immutable once built and safe to share between requests.
type Form struct {
	groups  []FieldGroup
	fields  []Field
	index   map[string]int
	skipped int
}

// NewForm normalises qs, drops the questions that cannot be rendered, derives
// unique field names and arranges the rest into sections.
func NewForm(qs []Question) *Form {
	supported := make([]Question, 0, len(qs))
	for _, q := range qs {
		q = q.Normalize()
		if q.Supported() {
			supported = append(supported, q)
		}
	}
	names := fieldNames(supported)
	all := make([]Field, len(supported))
	for i, q := range supported {
		all[i] = Field{Question: q, Name: names[i]}
	}

	f := &Form{
		index:   make(map[string]int, len(all)),
		skipped: len(qs) - len(supported),
	}
	partition(all, func(fl Field) Question { return fl.Question }, func(g Group, list []Field) {
		f.groups = append(f.groups, FieldGroup{Group: g, Fields: list})
		for _, fl := range list {
			f.index[fl.Name] = len(f.fields)
			f.fields = append(f.fields, fl)
		}
	})
	return f
}

// Groups returns the non-empty sections in canonical order.
func (f *Form) Groups() []FieldGroup {
	return f.groups
}

// Fields returns every question field in section order.
func (f *Form) Fields() []Field {
	return f.fields
}

// Field looks up a question field by name.
func (f *Form) Field(name string) (Field, bool) {
	i, ok := f.index[name]
	if !ok {
		return Field{}, false
	}
	return f.fields[i], true
}

// Skipped reports how many questions were left out because their kind is
// unknown or they have no options to choose from.
func (f *Form) Skipped() int {
	return f.skipped
}

// Name implements Schema.
func (f *Form) Name() string {
	return BookingFormName
}

// Kind implements Schema. The fixed contact fields report KindText.
func (f *Form) Kind(field string) (Kind, bool) {
	switch field {
	case KeyName, KeyEmail, KeyPhone:
		return KindText, true
	}
	fl, ok := f.Field(field)
	if !ok {
		return KindUnknown, false
	}
	return fl.Kind, true
}

// Options implements Schema.
func (f *Form) Options(field string) []string {
	fl, _ := f.Field(field)
	return fl.Options
}

// Validate implements Schema.
func (f *Form) Validate(a Answers) Errors {
	return Validate(f, a)
}

// Payload implements Schema.
func (f *Form) Payload(a Answers) url.Values {
	return Payload(f, a)
}

// FocusOrder implements Schema: the fixed fields first, then the questions in
// section order. Each entry is the element id to focus and the error keys
// that select it.
func (f *Form) FocusOrder() []FocusTarget {
	order := append([]FocusTarget(nil), contactFocus...)
	for _, fl := range f.fields {
		order = append(order, FocusTarget{ID: fl.Target(), Keys: []string{fl.Name}})
	}
	return order
}

var contactFocus = []FocusTarget{
	{ID: KeyName, Keys: []string{KeyName}},
	{ID: KeyEmail, Keys: []string{KeyEmail, KeyContact}},
	{ID: KeyPhone, Keys: []string{KeyPhone}},
}
