package game

import (
	"errors"
	"testing"

	"leaddizioni/internal/models"
)

func TestGenerateRespectsLevelBound(t *testing.T) {
	generator := NewProblemGenerator(NewRandomPicker(99))

	for _, level := range models.Levels {
		t.Run(string(level), func(t *testing.T) {
			bound, _ := level.Bound()
			for i := 0; i < 2000; i++ {
				a, b, err := generator.Generate(level)
				if err != nil {
					t.Fatalf("Generate(%q) returned error: %v", level, err)
				}
				if a < 0 || b < 0 {
					t.Fatalf("negative addend: %d, %d", a, b)
				}
				if a+b > bound {
					t.Fatalf("%d + %d exceeds bound %d", a, b, bound)
				}
			}
		})
	}
}

func TestGenerateFullFirstAddendForcesZero(t *testing.T) {
	generator := NewProblemGenerator(newScriptedPicker(t, 10))

	a, b, err := generator.Generate(models.LevelBase)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if a != 10 || b != 0 {
		t.Errorf("Generate() = (%d, %d), want (10, 0)", a, b)
	}
}

func TestGenerateDrawsSecondFromRemainder(t *testing.T) {
	generator := NewProblemGenerator(newScriptedPicker(t, 40, 60))

	a, b, err := generator.Generate(models.LevelElementare)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if a != 40 || b != 60 {
		t.Errorf("Generate() = (%d, %d), want (40, 60)", a, b)
	}
}

func TestGenerateRejectsUnknownLevel(t *testing.T) {
	generator := NewProblemGenerator(newScriptedPicker(t))

	_, _, err := generator.Generate(models.Level("difficilissimo"))
	if !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    models.Level
		wantErr bool
	}{
		{name: "base", input: "base", want: models.LevelBase},
		{name: "mixed case and spaces", input: " Medio ", want: models.LevelMedio},
		{name: "superiore", input: "superiore", want: models.LevelSuperiore},
		{name: "unknown", input: "avanzato", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidLevel) {
					t.Fatalf("ParseLevel(%q) error = %v, want ErrInvalidLevel", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevel(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestQuestion(t *testing.T) {
	if got := Question(3, 4); got != "Quanto fa 3 più 4?" {
		t.Errorf("Question(3, 4) = %q", got)
	}
}
