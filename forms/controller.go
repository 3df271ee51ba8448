package forms

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
)

var (
	// ErrInvalid is returned by Submit when validation blocks the submission.
	ErrInvalid = errors.New("forms: validation failed")
	// ErrSubmitting is returned for edits and submits while a submission is
	// in flight.
	ErrSubmitting = errors.New("forms: submission in progress")
	// ErrUnknownField is returned when an edit names a field the form lacks.
	ErrUnknownField = errors.New("forms: unknown field")
	// ErrWrongKind is returned when an edit does not fit the field's kind.
	ErrWrongKind = errors.New("forms: edit does not match field kind")
	// ErrUnknownOption is returned when toggling an option the field lacks.
	ErrUnknownOption = errors.New("forms: unknown option")
)

// Status is the submission state of a form instance.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// FocusTarget names the element to focus when any of Keys fails validation.
type FocusTarget struct {
	ID   string
	Keys []string
}

// Schema describes a form to the Controller. *Form and *ContactForm
// implement it.
type Schema interface {
	// Name is the form-name marker sent with every submission.
	Name() string
	// Kind reports the kind of a field and whether the form has it.
	Kind(field string) (Kind, bool)
	// Options lists the choices of a choice field.
	Options(field string) []string
	Validate(Answers) Errors
	Payload(Answers) url.Values
	// FocusOrder lists focus targets in the order errors are visited.
	FocusOrder() []FocusTarget
}

// FirstFailing returns the id of the first element in s's focus order whose
// keys appear in errs, or "" when errs selects none.
func FirstFailing(s Schema, errs Errors) string {
	for _, t := range s.FocusOrder() {
		for _, k := range t.Keys {
			if errs.Has(k) {
				return t.ID
			}
		}
	}
	return ""
}

// Snapshot is a copy of a controller's state for rendering.
type Snapshot struct {
	Answers Answers
	Errors  Errors
	Status  Status
	// Focus is the element to focus after a blocked submit.
	Focus string
}

// Disabled reports whether inputs should be disabled.
func (s Snapshot) Disabled() bool {
	return s.Status == StatusSubmitting
}

// Controller holds the answers, errors and status of one form instance. It
// allows a single submission in flight at a time.
type Controller struct {
	mu        sync.Mutex
	schema    Schema
	submitter Submitter
	answers   Answers
	errors    Errors
	status    Status
	focus     string
}

// NewController returns an idle controller with blank answers.
func NewController(schema Schema, submitter Submitter) *Controller {
	return &Controller{
		schema:    schema,
		submitter: submitter,
		answers:   NewAnswers(),
		errors:    Errors{},
	}
}

// Restore returns an idle controller seeded with previously submitted answers
// and errors, as when a server re-renders a rejected form.
func Restore(schema Schema, submitter Submitter, a Answers, errs Errors) *Controller {
	c := NewController(schema, submitter)
	for k, v := range a {
		c.answers[k] = v
	}
	if len(errs) > 0 {
		c.errors = errs.Clone()
		c.focus = FirstFailing(schema, errs)
	}
	return c
}

// Schema returns the form definition the controller drives.
func (c *Controller) Schema() Schema {
	return c.schema
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Answers: c.answers.Clone(),
		Errors:  c.errors.Clone(),
		Status:  c.status,
		Focus:   c.focus,
	}
}

// Status returns the current submission status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// SetText replaces the value of a scalar field. For yes/no fields value must
// be "Yes" or "No".
func (c *Controller) SetText(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	k, err := c.editable(field)
	if err != nil {
		return err
	}
	switch k {
	case KindCheckboxes:
		return fmt.Errorf("%w: %s takes toggles", ErrWrongKind, field)
	case KindYesNo:
		switch value {
		case "Yes":
			c.answers[field] = YesNo(true)
		case "No":
			c.answers[field] = YesNo(false)
		default:
			return fmt.Errorf("%w: %q is not Yes or No", ErrWrongKind, value)
		}
	default:
		c.answers[field] = Text(value)
	}
	c.clear(field)
	return nil
}

// SetYesNo records an explicit yes or no answer.
func (c *Controller) SetYesNo(field string, yes bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	k, err := c.editable(field)
	if err != nil {
		return err
	}
	if k != KindYesNo {
		return fmt.Errorf("%w: %s is not a yes/no field", ErrWrongKind, field)
	}
	c.answers[field] = YesNo(yes)
	c.clear(field)
	return nil
}

// Toggle checks or unchecks one option of a multi-choice field, leaving the
// other selected options untouched.
func (c *Controller) Toggle(field, option string, checked bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	k, err := c.editable(field)
	if err != nil {
		return err
	}
	if k != KindCheckboxes {
		return fmt.Errorf("%w: %s is not a multi-choice field", ErrWrongKind, field)
	}
	if !contains(c.schema.Options(field), option) {
		return fmt.Errorf("%w: %q", ErrUnknownOption, option)
	}
	current := c.answers.Selected(field)
	next := make(Selection, 0, len(current)+1)
	for _, v := range current {
		if v != option {
			next = append(next, v)
		}
	}
	if checked {
		next = append(next, option)
	}
	c.answers[field] = next
	c.clear(field)
	return nil
}

// Submit validates the answers and, when they pass, hands the payload to the
// submitter. A blocked submit returns ErrInvalid, leaves the status unchanged
// and records the element to focus. A failed delivery moves to StatusError
// and keeps the answers so the user can retry.
func (c *Controller) Submit(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	if c.status == StatusSubmitting {
		c.mu.Unlock()
		return c.Snapshot(), ErrSubmitting
	}
	errs := c.schema.Validate(c.answers)
	if len(errs) > 0 {
		c.errors = errs
		c.focus = FirstFailing(c.schema, errs)
		c.mu.Unlock()
		return c.Snapshot(), ErrInvalid
	}
	c.errors = Errors{}
	c.focus = ""
	c.status = StatusSubmitting
	body := c.schema.Payload(c.answers)
	c.mu.Unlock()

	err := c.submitter.Submit(ctx, body)

	c.mu.Lock()
	if err != nil {
		c.status = StatusError
	} else {
		c.status = StatusSuccess
	}
	c.mu.Unlock()
	return c.Snapshot(), err
}

func (c *Controller) editable(field string) (Kind, error) {
	if c.status == StatusSubmitting {
		return KindUnknown, ErrSubmitting
	}
	k, ok := c.schema.Kind(field)
	if !ok {
		return KindUnknown, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return k, nil
}

// clear drops the error of the edited field only. Editing email or phone also
// drops the contact error once either of them is filled in.
func (c *Controller) clear(field string) {
	delete(c.errors, field)
	if field == KeyEmail || field == KeyPhone {
		if !c.answers.blank(KeyEmail) || !c.answers.blank(KeyPhone) {
			delete(c.errors, KeyContact)
		}
	}
	if c.focus != "" {
		c.focus = FirstFailing(c.schema, c.errors)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
