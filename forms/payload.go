package forms

import (
	"net/url"
	"strings"
)

// FormNameField and HoneypotField are the hidden inputs every submission
// carries: the form marker and a field humans leave empty.
const (
	FormNameField = "form-name"
	HoneypotField = "bot-field"
	multiSuffix   = "[]"
)

// MultiName returns the transport name of a multi-choice field.
func MultiName(field string) string {
	return field + multiSuffix
}

func baseValues(formName string, a Answers) url.Values {
	v := url.Values{}
	v.Set(FormNameField, formName)
	v.Set(HoneypotField, "")
	v.Set(KeyName, a.Text(KeyName))
	v.Set(KeyEmail, a.Text(KeyEmail))
	v.Set(KeyPhone, a.Text(KeyPhone))
	return v
}

// Payload serialises booking answers into the url-encoded body posted to the
// form backend. Text-like answers are always present, yes/no and single
// choices only once answered, and each checked multi-choice option is a
// repeated entry under the field's MultiName.
func Payload(f *Form, a Answers) url.Values {
	v := baseValues(BookingFormName, a)
	for _, fl := range f.Fields() {
		switch fl.Kind {
		case KindText, KindTextArea, KindNumber, KindSelect:
			v.Set(fl.Name, a.Text(fl.Name))
		case KindYesNo, KindRadio:
			if s := a.Text(fl.Name); s != "" {
				v.Set(fl.Name, s)
			}
		case KindCheckboxes:
			for _, opt := range a.Selected(fl.Name) {
				v.Add(MultiName(fl.Name), opt)
			}
		}
	}
	return v
}

// FormName returns the form marker of a submitted body.
func FormName(values url.Values) string {
	return strings.TrimSpace(values.Get(FormNameField))
}

// IsSpam reports whether the honeypot field was filled in.
func IsSpam(values url.Values) bool {
	return strings.TrimSpace(values.Get(HoneypotField)) != ""
}

func decodeContactDetails(values url.Values) Answers {
	return Answers{
		KeyName:  Text(values.Get(KeyName)),
		KeyEmail: Text(values.Get(KeyEmail)),
		KeyPhone: Text(values.Get(KeyPhone)),
	}
}

// DecodeBooking reads a submitted booking body back into answers. Yes/no
// fields accept only "Yes" or "No"; anything else leaves them unanswered.
// Repeated multi-choice entries collapse to a set in submission order.
func DecodeBooking(f *Form, values url.Values) Answers {
	a := decodeContactDetails(values)
	for _, fl := range f.Fields() {
		switch fl.Kind {
		case KindYesNo:
			switch values.Get(fl.Name) {
			case "Yes":
				a[fl.Name] = YesNo(true)
			case "No":
				a[fl.Name] = YesNo(false)
			}
		case KindCheckboxes:
			var sel Selection
			for _, opt := range values[MultiName(fl.Name)] {
				if !sel.Contains(opt) {
					sel = append(sel, opt)
				}
			}
			a[fl.Name] = sel
		default:
			if _, ok := values[fl.Name]; ok {
				a[fl.Name] = Text(values.Get(fl.Name))
			}
		}
	}
	return a
}
