// Package questionnaire fills in the booking questionnaire from a terminal.
// It drives the same forms.Controller the web form uses, so validation,
// error clearing and submission behave identically.
package questionnaire

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jesssits/jesssits/forms"
)

const skipOption = "(no answer)"

type runner struct {
	d    PromptDriver
	form *forms.Form
	ctrl *forms.Controller
}

// Run prompts for the contact details and every question of form, section
// by section, then submits through ctrl. A blocked submit re-prompts only the
// failing fields. A failed delivery asks whether to try again; answering no
// returns the submitter's error with the answers intact.
func Run(ctx context.Context, d PromptDriver, form *forms.Form, ctrl *forms.Controller) (forms.Snapshot, error) {
	r := &runner{d: d, form: form, ctrl: ctrl}
	if err := r.walk(ctx); err != nil {
		return ctrl.Snapshot(), err
	}
	for {
		snap, err := ctrl.Submit(ctx)
		switch {
		case err == nil:
			return snap, d.Info(ctx, "Questionnaire submitted. Thanks!")
		case errors.Is(err, forms.ErrInvalid):
			if err := r.fix(ctx, snap.Errors); err != nil {
				return ctrl.Snapshot(), err
			}
		default:
			if ierr := d.Info(ctx, fmt.Sprintf("Sending failed: %v", err)); ierr != nil {
				return snap, ierr
			}
			retry, cerr := d.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
			if cerr != nil {
				return snap, cerr
			}
			if !retry {
				return snap, err
			}
		}
	}
}

func (r *runner) walk(ctx context.Context) error {
	if err := r.d.Info(ctx, forms.GroupContact.Label()); err != nil {
		return err
	}
	for _, key := range []string{forms.KeyName, forms.KeyEmail, forms.KeyPhone} {
		if err := r.ask(ctx, key); err != nil {
			return err
		}
	}
	for _, g := range r.form.Groups() {
		if err := r.d.Info(ctx, g.Label()); err != nil {
			return err
		}
		for _, f := range g.Fields {
			if err := r.ask(ctx, f.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

// fix re-asks the failing fields in focus order. A contact error re-asks
// both email and phone.
func (r *runner) fix(ctx context.Context, errs forms.Errors) error {
	var keys []string
	if errs.Has(forms.KeyName) {
		keys = append(keys, forms.KeyName)
	}
	if errs.Has(forms.KeyContact) {
		if err := r.d.Info(ctx, "! "+errs[forms.KeyContact]); err != nil {
			return err
		}
		keys = append(keys, forms.KeyEmail, forms.KeyPhone)
	} else {
		for _, k := range []string{forms.KeyEmail, forms.KeyPhone} {
			if errs.Has(k) {
				keys = append(keys, k)
			}
		}
	}
	for _, f := range r.form.Fields() {
		if errs.Has(f.Name) {
			keys = append(keys, f.Name)
		}
	}
	for _, k := range keys {
		if msg, ok := errs[k]; ok {
			if err := r.d.Info(ctx, "! "+msg); err != nil {
				return err
			}
		}
		if err := r.ask(ctx, k); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) ask(ctx context.Context, key string) error {
	kind, ok := r.form.Kind(key)
	if !ok {
		return fmt.Errorf("questionnaire: %w: %s", forms.ErrUnknownField, key)
	}
	msg, help, required := r.describe(key)
	current := r.ctrl.Snapshot().Answers

	switch kind {
	case forms.KindText, forms.KindNumber:
		cfg := InputConfig{Message: msg, Help: help, Default: current.Text(key)}
		if kind == forms.KindNumber {
			cfg.Validator = validateNumber
		}
		v, err := r.d.Input(ctx, cfg)
		if err != nil {
			return err
		}
		return r.ctrl.SetText(key, v)

	case forms.KindTextArea:
		v, err := r.d.TextArea(ctx, TextAreaConfig{Message: msg, Help: help, Default: current.Text(key)})
		if err != nil {
			return err
		}
		return r.ctrl.SetText(key, v)

	case forms.KindYesNo:
		yes, err := r.d.Confirm(ctx, ConfirmConfig{Message: msg, Help: help, Default: current.Text(key) == "Yes"})
		if err != nil {
			return err
		}
		return r.ctrl.SetYesNo(key, yes)

	case forms.KindRadio, forms.KindSelect:
		choices := r.form.Options(key)
		if !required {
			choices = append([]string{skipOption}, choices...)
		}
		def := indexOf(choices, current.Text(key))
		if def < 0 {
			def = 0
		}
		i, err := r.d.Select(ctx, SelectConfig{Message: msg, Help: help, Options: choices, DefaultIndex: def})
		if err != nil {
			return err
		}
		if i < 0 || i >= len(choices) {
			return fmt.Errorf("%w: %s", ErrNoChoice, key)
		}
		v := choices[i]
		if v == skipOption {
			v = ""
		}
		return r.ctrl.SetText(key, v)

	case forms.KindCheckboxes:
		opts := r.form.Options(key)
		picked, err := r.d.MultiSelect(ctx, SelectConfig{
			Message:  msg,
			Help:     help,
			Options:  opts,
			Defaults: indicesOf(opts, current.Selected(key)),
		})
		if err != nil {
			return err
		}
		checked := make(map[int]bool, len(picked))
		for _, i := range picked {
			if i < 0 || i >= len(opts) {
				return fmt.Errorf("%w: %s", ErrNoChoice, key)
			}
			checked[i] = true
		}
		for i, opt := range opts {
			if err := r.ctrl.Toggle(key, opt, checked[i]); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("questionnaire: cannot prompt %s of kind %q", key, kind)
}

func (r *runner) describe(key string) (msg, help string, required bool) {
	switch key {
	case forms.KeyName:
		return "Your name *", "", true
	case forms.KeyEmail:
		return "Email", "An email or a phone number is required.", false
	case forms.KeyPhone:
		return "Phone", "An email or a phone number is required.", false
	}
	f, _ := r.form.Field(key)
	msg = f.Text
	if f.Required {
		msg += " *"
	}
	return msg, f.Description, f.Required
}

func validateNumber(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return errors.New("please enter a number")
	}
	return nil
}
