package forms

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func validAnswers(t *testing.T, f *Form) Answers {
	t.Helper()
	a := NewAnswers()
	a[KeyName] = Text("Jo")
	a[KeyEmail] = Text("jo@example.com")
	a[nameOf(t, f, "q-age-0002")] = Text("4")
	a[nameOf(t, f, "q-meds-0003")] = YesNo(false)
	return a
}

func TestValidateAcceptsCompleteAnswers(t *testing.T) {
	f := NewForm(sampleQuestions())
	if errs := Validate(f, validAnswers(t, f)); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateRequiredYesNo(t *testing.T) {
	f := NewForm(sampleQuestions())
	meds := nameOf(t, f, "q-meds-0003")

	a := validAnswers(t, f)
	a[meds] = YesNo(false)
	if Validate(f, a).Has(meds) {
		t.Fatalf("an explicit No must count as an answer")
	}

	a[meds] = YesNo(true)
	if Validate(f, a).Has(meds) {
		t.Fatalf("an explicit Yes must count as an answer")
	}

	delete(a, meds)
	if got := Validate(f, a)[meds]; got != MsgRequired {
		t.Fatalf("unanswered yes/no error = %q, want %q", got, MsgRequired)
	}
}

func TestValidateName(t *testing.T) {
	f := NewForm(nil)
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"", true},
		{"   ", true},
		{"J", true},
		{" J ", true},
		{"Jo", false},
		{"  Jo  ", false},
		{"Zoë", false},
	}
	for _, tt := range tests {
		a := NewAnswers()
		a[KeyName] = Text(tt.name)
		a[KeyEmail] = Text("a@b.com")
		if got := Validate(f, a).Has(KeyName); got != tt.wantErr {
			t.Errorf("name %q: error = %v, want %v", tt.name, got, tt.wantErr)
		}
	}
}

func TestValidateContactRule(t *testing.T) {
	f := NewForm(nil)
	tests := []struct {
		email, phone string
		want         Errors
	}{
		{"", "", Errors{KeyContact: MsgContactRequired}},
		{"  ", "\t", Errors{KeyContact: MsgContactRequired}},
		{"a@b.com", "", Errors{}},
		{"", "07700 900123", Errors{}},
		{"a@b", "", Errors{KeyEmail: MsgInvalidEmail}},
		{"", "12345", Errors{KeyPhone: MsgInvalidPhone}},
		{"not an email", "call me", Errors{KeyEmail: MsgInvalidEmail, KeyPhone: MsgInvalidPhone}},
	}
	for _, tt := range tests {
		a := NewAnswers()
		a[KeyName] = Text("Jo")
		a[KeyEmail] = Text(tt.email)
		a[KeyPhone] = Text(tt.phone)
		if diff := cmp.Diff(tt.want, Validate(f, a)); diff != "" {
			t.Errorf("email=%q phone=%q (-want +got):\n%s", tt.email, tt.phone, diff)
		}
	}
}

func TestValidEmailAndPhone(t *testing.T) {
	emails := map[string]bool{
		"a@b.com":           true,
		" jo@example.co.uk": true,
		"a@b":               false,
		"a b@c.com":         false,
		"@b.com":            false,
	}
	for in, want := range emails {
		if got := ValidEmail(in); got != want {
			t.Errorf("ValidEmail(%q) = %v, want %v", in, got, want)
		}
	}
	phones := map[string]bool{
		"+44 (0) 7700-900":  true,
		"1234567":           true,
		"123456":            false,
		"0770 abc 123":      false,
		"   1234567   ":     true,
		"(555) 010-9999 x1": false,
	}
	for in, want := range phones {
		if got := ValidPhone(in); got != want {
			t.Errorf("ValidPhone(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValidateRequiredByKind(t *testing.T) {
	qs := []Question{
		{ID: "t", Text: "Text", Kind: KindText, Required: true},
		{ID: "n", Text: "Number", Kind: KindNumber, Required: true},
		{ID: "ta", Text: "Long", Kind: KindTextArea, Required: true},
		{ID: "r", Text: "Radio", Kind: KindRadio, Options: []string{"x"}, Required: true},
		{ID: "s", Text: "Select", Kind: KindSelect, Options: []string{"x"}, Required: true},
		{ID: "c", Text: "Checks", Kind: KindCheckboxes, Options: []string{"x"}, Required: true},
	}
	f := NewForm(qs)
	a := NewAnswers()
	a[KeyName] = Text("Jo")
	a[KeyPhone] = Text("1234567")
	for _, fl := range f.Fields() {
		if fl.Kind == KindCheckboxes {
			a[fl.Name] = Selection{}
		} else {
			a[fl.Name] = Text("   ")
		}
	}
	errs := Validate(f, a)
	for _, fl := range f.Fields() {
		if errs[fl.Name] != MsgRequired {
			t.Errorf("%s: error = %q, want %q", fl.Kind, errs[fl.Name], MsgRequired)
		}
	}
}

func TestValidateRejectsUnknownChoices(t *testing.T) {
	f := NewForm(sampleQuestions())
	size := nameOf(t, f, "q-size-0004")
	walk := nameOf(t, f, "q-walk-0005")

	a := validAnswers(t, f)
	a[size] = Text("Huge")
	a[walk] = Selection{"A", "Z"}
	errs := Validate(f, a)
	if errs[size] != MsgUnknownOption {
		t.Errorf("radio error = %q", errs[size])
	}
	if errs[walk] != MsgUnknownOption {
		t.Errorf("checkboxes error = %q", errs[walk])
	}
}

func TestValidateDoesNotMutateAnswers(t *testing.T) {
	f := NewForm(sampleQuestions())
	a := NewAnswers()
	before := a.Clone()
	Validate(f, a)
	if diff := cmp.Diff(before, a); diff != "" {
		t.Fatalf("answers changed (-before +after):\n%s", diff)
	}
}

func TestEveryKindHasAnEmptinessRule(t *testing.T) {
	answered := map[Kind]Value{
		KindText:       Text("x"),
		KindTextArea:   Text("x"),
		KindNumber:     Text("1"),
		KindYesNo:      YesNo(false),
		KindRadio:      Text("x"),
		KindCheckboxes: Selection{"x"},
		KindSelect:     Text("x"),
	}
	for _, k := range Kinds() {
		v, ok := answered[k]
		if !ok {
			t.Errorf("kind %q has no answered example", k)
			continue
		}
		if !isEmpty(k, nil) {
			t.Errorf("kind %q: nil answer should be empty", k)
		}
		if isEmpty(k, v) {
			t.Errorf("kind %q: %v should not be empty", k, v)
		}
	}
}

func TestContactFormValidate(t *testing.T) {
	c := NewContactForm(nil)
	tests := []struct {
		a    Answers
		want Errors
	}{
		{
			Answers{KeyEmail: Text("a@b.com")},
			Errors{KeyName: MsgNameMissing},
		},
		{
			Answers{KeyName: Text("J"), KeyEmail: Text("a@b.com")},
			Errors{KeyName: MsgNameTooShort},
		},
		{
			Answers{KeyName: Text("Jo")},
			Errors{KeyContact: MsgContactRequired},
		},
		{
			Answers{KeyName: Text("Jo"), KeyPhone: Text("1234567"), KeyService: Text("grooming")},
			Errors{KeyService: MsgUnknownOption},
		},
		{
			Answers{KeyName: Text("Jo"), KeyPhone: Text("1234567"), KeyService: Text("overnight")},
			Errors{},
		},
	}
	for i, tt := range tests {
		if diff := cmp.Diff(tt.want, c.Validate(tt.a)); diff != "" {
			t.Errorf("case %d (-want +got):\n%s", i, diff)
		}
	}
}
