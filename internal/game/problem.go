package game

import (
	"fmt"
	"strings"

	"leaddizioni/internal/models"
)

// ProblemGenerator draws the addends of a new question
type ProblemGenerator struct {
	picker Picker
}

// NewProblemGenerator creates a generator drawing from picker
func NewProblemGenerator(picker Picker) *ProblemGenerator {
	return &ProblemGenerator{picker: picker}
}

// Generate returns two addends whose sum does not exceed the level bound.
// The first addend is drawn over the whole range and the second over what is left,
// so small first addends leave room for large second ones.
func (g *ProblemGenerator) Generate(level models.Level) (int, int, error) {
	bound, ok := level.Bound()
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}

	first := g.picker.Pick(0, bound)
	second := g.picker.Pick(0, bound-first)
	return first, second, nil
}

// ParseLevel maps a user-supplied level name to a known Level
func ParseLevel(name string) (models.Level, error) {
	level := models.Level(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := level.Bound(); !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidLevel, name)
	}
	return level, nil
}

// Question renders the question for a pair of addends
func Question(first, second int) string {
	return fmt.Sprintf("Quanto fa %d più %d?", first, second)
}
