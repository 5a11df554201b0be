package game

import (
	"errors"
	"testing"
)

func TestParseIntent(t *testing.T) {
	tests := []struct {
		name string
		want Intent
	}{
		{name: "Welcome and Level Choice", want: IntentWelcome},
		{name: "Difficulty Level", want: IntentDifficultyLevel},
		{name: "Response Answer", want: IntentResponseAnswer},
		{name: "Misundestand", want: IntentMisunderstand},
		{name: "End of game", want: IntentEndOfGame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIntent(tt.name)
			if err != nil {
				t.Fatalf("ParseIntent(%q) returned error: %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("ParseIntent(%q) = %v, want %v", tt.name, got, tt.want)
			}
			if got.String() != tt.name {
				t.Errorf("String() = %q, want %q", got.String(), tt.name)
			}
		})
	}
}

func TestParseIntentUnknown(t *testing.T) {
	for _, name := range []string{"", "Misunderstand", "end of game", "Default Fallback Intent"} {
		if _, err := ParseIntent(name); !errors.Is(err, ErrConfiguration) {
			t.Errorf("ParseIntent(%q) error = %v, want ErrConfiguration", name, err)
		}
	}
}

func TestParamsNumber(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   float64
		wantOK bool
	}{
		{name: "json number", value: float64(12), want: 12, wantOK: true},
		{name: "fraction", value: 2.5, want: 2.5, wantOK: true},
		{name: "int", value: 7, want: 7, wantOK: true},
		{name: "numeric string", value: " 42 ", want: 42, wantOK: true},
		{name: "word", value: "dodici", wantOK: false},
		{name: "empty string", value: "", wantOK: false},
		{name: "bool", value: true, wantOK: false},
		{name: "missing", value: nil, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := Params{}
			if tt.value != nil {
				params[ParamGuessedNumber] = tt.value
			}
			got, ok := params.Number(ParamGuessedNumber)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("Number() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParamsText(t *testing.T) {
	params := Params{ParamDifficultyLevel: "medio", "blank": "  ", "number": 3.0}

	if v, ok := params.Text(ParamDifficultyLevel); !ok || v != "medio" {
		t.Errorf("Text(difficultyLevel) = (%q, %v)", v, ok)
	}
	if _, ok := params.Text("blank"); ok {
		t.Error("blank string should not be reported")
	}
	if _, ok := params.Text("number"); ok {
		t.Error("non-string value should not be reported")
	}
}
