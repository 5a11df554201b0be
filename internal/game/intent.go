package game

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Intent is a recognized user intent
type Intent int

const (
	IntentWelcome Intent = iota + 1
	IntentDifficultyLevel
	IntentResponseAnswer
	IntentMisunderstand
	IntentEndOfGame
)

// Intent names as configured in the conversational agent
const (
	IntentNameWelcome         = "Welcome and Level Choice"
	IntentNameDifficultyLevel = "Difficulty Level"
	IntentNameResponseAnswer  = "Response Answer"
	IntentNameMisunderstand   = "Misundestand"
	IntentNameEndOfGame       = "End of game"
)

// Parameter names carried by the intents
const (
	ParamDifficultyLevel = "difficultyLevel"
	ParamGuessedNumber   = "guessedNumber"
)

func (i Intent) String() string {
	switch i {
	case IntentWelcome:
		return IntentNameWelcome
	case IntentDifficultyLevel:
		return IntentNameDifficultyLevel
	case IntentResponseAnswer:
		return IntentNameResponseAnswer
	case IntentMisunderstand:
		return IntentNameMisunderstand
	case IntentEndOfGame:
		return IntentNameEndOfGame
	default:
		return fmt.Sprintf("Intent(%d)", int(i))
	}
}

// ParseIntent maps an agent intent name to an Intent
func ParseIntent(name string) (Intent, error) {
	switch name {
	case IntentNameWelcome:
		return IntentWelcome, nil
	case IntentNameDifficultyLevel:
		return IntentDifficultyLevel, nil
	case IntentNameResponseAnswer:
		return IntentResponseAnswer, nil
	case IntentNameMisunderstand:
		return IntentMisunderstand, nil
	case IntentNameEndOfGame:
		return IntentEndOfGame, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrConfiguration, name)
}

// Params holds the typed parameters extracted by the intent resolver
type Params map[string]any

// Text returns a non-empty string parameter
func (p Params) Text(key string) (string, bool) {
	v, ok := p[key].(string)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// Number returns a numeric parameter. JSON numbers arrive as float64 and
// numeric strings are accepted as well.
func (p Params) Number(key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, !math.IsNaN(v)
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
