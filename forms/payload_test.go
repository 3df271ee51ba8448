package forms

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPayloadBooking(t *testing.T) {
	f := NewForm(sampleQuestions())
	a := NewAnswers()
	a[KeyName] = Text("Jo")
	a[KeyPhone] = Text("07700 900123")
	a[nameOf(t, f, "q-age-0002")] = Text("3")
	a[nameOf(t, f, "q-walk-0005")] = Selection{"C", "A"}

	got := Payload(f, a)
	want := url.Values{
		FormNameField:                           {BookingFormName},
		HoneypotField:                           {""},
		KeyName:                                 {"Jo"},
		KeyEmail:                                {""},
		KeyPhone:                                {"07700 900123"},
		nameOf(t, f, "q-age-0002"):              {"3"},
		nameOf(t, f, "q-breed-0001"):            {""},
		nameOf(t, f, "q-food-0006"):             {""},
		nameOf(t, f, "q-notes-0007"):            {""},
		MultiName(nameOf(t, f, "q-walk-0005")):  {"C", "A"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Payload mismatch (-want +got):\n%s", diff)
	}
}

func TestPayloadOmitsUnansweredChoices(t *testing.T) {
	f := NewForm(sampleQuestions())
	got := Payload(f, NewAnswers())
	for _, id := range []string{"q-meds-0003", "q-size-0004"} {
		if _, ok := got[nameOf(t, f, id)]; ok {
			t.Errorf("unanswered %s should not be submitted", id)
		}
	}
	if _, ok := got[MultiName(nameOf(t, f, "q-walk-0005"))]; ok {
		t.Errorf("empty selection should not be submitted")
	}
}

func TestDecodeBookingReadsPayload(t *testing.T) {
	f := NewForm(sampleQuestions())
	meds := nameOf(t, f, "q-meds-0003")
	walk := nameOf(t, f, "q-walk-0005")
	size := nameOf(t, f, "q-size-0004")

	values := url.Values{
		FormNameField:   {BookingFormName},
		KeyName:         {"Jo"},
		KeyEmail:        {"jo@example.com"},
		meds:            {"No"},
		size:            {"Large"},
		MultiName(walk): {"B", "A", "B"},
	}
	a := DecodeBooking(f, values)
	if a[meds] != YesNo(false) {
		t.Errorf("yes/no = %#v, want YesNo(false)", a[meds])
	}
	if a.Text(size) != "Large" {
		t.Errorf("radio = %q", a.Text(size))
	}
	if diff := cmp.Diff(Selection{"B", "A"}, a.Selected(walk)); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
	if _, ok := a[nameOf(t, f, "q-breed-0001")]; ok {
		t.Errorf("absent keys should stay unanswered")
	}

	values.Set(meds, "true")
	if _, ok := DecodeBooking(f, values)[meds]; ok {
		t.Errorf("yes/no only accepts Yes or No")
	}
}

func TestContactPayload(t *testing.T) {
	c := NewContactForm(nil)
	a := Answers{
		KeyName:    Text("Jo"),
		KeyEmail:   Text("jo@example.com"),
		KeyService: Text("overnight"),
		KeyDogName: Text("Biscuit"),
	}
	got := c.Payload(a)
	want := url.Values{
		FormNameField: {ContactFormName},
		HoneypotField: {""},
		KeyName:       {"Jo"},
		KeyEmail:      {"jo@example.com"},
		KeyPhone:      {""},
		KeyDogName:    {"Biscuit"},
		KeyService:    {"overnight"},
		KeyMessage:    {""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Payload mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(a.Text(KeyDogName), DecodeContact(got).Text(KeyDogName)); diff != "" {
		t.Errorf("DecodeContact mismatch: %s", diff)
	}
}

func TestFormNameAndHoneypot(t *testing.T) {
	v := url.Values{FormNameField: {" contact "}}
	if FormName(v) != ContactFormName {
		t.Errorf("FormName = %q", FormName(v))
	}
	if IsSpam(v) {
		t.Errorf("empty honeypot is not spam")
	}
	v.Set(HoneypotField, "http://spam.example")
	if !IsSpam(v) {
		t.Errorf("filled honeypot should be spam")
	}
}
