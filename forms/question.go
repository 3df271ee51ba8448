// Package forms turns content-managed question definitions into validated,
// accessible, submittable forms. It covers the booking questionnaire, whose
// fields come from the content store at runtime, and the fixed contact form.
//
// The package is transport agnostic: the Controller drives a single form
// instance, the templ components in render.go produce markup, and Payload /
// DecodeBooking translate between answers and url-encoded bodies.
package forms

import "strings"

// Kind identifies how a question is answered. The string values match the
// tags stored by the content schema.
type Kind string

const (
	KindUnknown    Kind = ""
	KindText       Kind = "text"
	KindTextArea   Kind = "textarea"
	KindNumber     Kind = "number"
	KindYesNo      Kind = "checkbox"
	KindRadio      Kind = "radio"
	KindCheckboxes Kind = "checkboxes"
	KindSelect     Kind = "select"
)

// Kinds lists every supported kind. The renderer and validator tests iterate
// it and fail for any kind lacking a control or an emptiness rule.
func Kinds() []Kind {
	return []Kind{KindText, KindTextArea, KindNumber, KindYesNo, KindRadio, KindCheckboxes, KindSelect}
}

// ParseKind maps a content tag to a Kind. Unrecognised tags yield KindUnknown.
func ParseKind(tag string) Kind {
	k := Kind(strings.TrimSpace(tag))
	for _, known := range Kinds() {
		if k == known {
			return k
		}
	}
	return KindUnknown
}

// Choice reports whether answers are drawn from the question's options.
func (k Kind) Choice() bool {
	return k == KindRadio || k == KindCheckboxes || k == KindSelect
}

// Grouped reports whether the kind renders as several controls sharing one
// name, which need a group label instead of a <label for>.
func (k Kind) Grouped() bool {
	return k == KindYesNo || k == KindRadio || k == KindCheckboxes
}

// Group is a display section of the booking questionnaire.
type Group string

const (
	GroupContact   Group = "contact"
	GroupDogInfo   Group = "dog-info"
	GroupMedical   Group = "medical"
	GroupBehavior  Group = "behavior"
	GroupCare      Group = "care"
	GroupEmergency Group = "emergency"
	GroupOther     Group = "other"
)

// Groups returns the canonical section order.
func Groups() []Group {
	return []Group{GroupContact, GroupDogInfo, GroupMedical, GroupBehavior, GroupCare, GroupEmergency, GroupOther}
}

var groupLabels = map[Group]string{
	GroupContact:   "Contact Details",
	GroupDogInfo:   "Dog Information",
	GroupMedical:   "Medical & Health",
	GroupBehavior:  "Behavior & Personality",
	GroupCare:      "Care Requirements",
	GroupEmergency: "Emergency & Vet",
	GroupOther:     "Other Information",
}

// ParseGroup normalises a content value. Missing and unknown groups fall back
// to GroupOther so their questions are never dropped.
func ParseGroup(tag string) Group {
	g := Group(strings.TrimSpace(tag))
	if _, ok := groupLabels[g]; ok {
		return g
	}
	return GroupOther
}

// Label returns the heading shown above the section.
func (g Group) Label() string {
	if l, ok := groupLabels[g]; ok {
		return l
	}
	return string(g)
}

// Question is one content-managed questionnaire entry. It is read-only for
// the lifetime of a form.
type Question struct {
	ID          string   `json:"_id" yaml:"id"`
	Text        string   `json:"questionText" yaml:"text"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Kind        Kind     `json:"questionType" yaml:"type"`
	Options     []string `json:"options,omitempty" yaml:"options,omitempty"`
	Required    bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Group       Group    `json:"group,omitempty" yaml:"group,omitempty"`
	Order       float64  `json:"order,omitempty" yaml:"order,omitempty"`
}

// Normalize applies the content defaults: unknown kinds become KindUnknown,
// unknown or missing groups become GroupOther, blank options are dropped and
// non-choice kinds lose their options.
func (q Question) Normalize() Question {
	q.Kind = ParseKind(string(q.Kind))
	q.Group = ParseGroup(string(q.Group))
	if !q.Kind.Choice() {
		q.Options = nil
		return q
	}
	opts := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		if strings.TrimSpace(o) != "" {
			opts = append(opts, o)
		}
	}
	q.Options = opts
	return q
}

// Supported reports whether the question can be rendered and answered. Unknown
// kinds and choice questions without options are tolerated but skipped.
func (q Question) Supported() bool {
	if q.Kind == KindUnknown {
		return false
	}
	if q.Kind.Choice() && len(q.Options) == 0 {
		return false
	}
	return true
}

// HasOption reports whether opt is one of the question's options.
func (q Question) HasOption(opt string) bool {
	for _, o := range q.Options {
		if o == opt {
			return true
		}
	}
	return false
}
