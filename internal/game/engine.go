// Package game implements the turn logic of the addition quiz: it maps an intent,
// its parameters and the stored session state to the next state and the reply.
package game

import (
	"errors"
	"fmt"
	"log"

	"leaddizioni/internal/models"
)

// Engine routes each turn to its handler. It holds no per-session data.
type Engine struct {
	phrases  *PhraseBank
	problems *ProblemGenerator
}

// NewEngine creates an engine using the default phrase catalog
func NewEngine(picker Picker) *Engine {
	return NewEngineWithPhrases(picker, DefaultPhrases())
}

// NewEngineWithPhrases creates an engine over a custom phrase catalog
func NewEngineWithPhrases(picker Picker, phrases map[Category]PhraseSet) *Engine {
	return &Engine{
		phrases:  NewPhraseBank(picker, phrases),
		problems: NewProblemGenerator(picker),
	}
}

// Dispatch runs the handler for intent and returns the state to persist (nil when
// nothing has to be written) and the composed reply.
//
// Only ErrConfiguration is returned to the caller. Errors a player can cause
// (unknown level, unparseable answer, no running game) are logged and answered
// through the misunderstand handler.
func (e *Engine) Dispatch(intent Intent, params Params, prior *models.SessionState) (*models.SessionState, *models.Response, error) {
	var (
		next *models.SessionState
		resp *models.Response
		err  error
	)

	switch intent {
	case IntentWelcome:
		resp = e.welcome()
	case IntentDifficultyLevel:
		next, resp, err = e.setLevel(params)
	case IntentResponseAnswer:
		next, resp, err = e.evaluate(params, prior)
	case IntentMisunderstand:
		next, resp = e.misunderstand(prior)
	case IntentEndOfGame:
		resp, err = e.endGame(prior)
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrConfiguration, intent)
	}

	if err != nil {
		log.Printf("Dispatch: intent=%s recovered from %v", intent, err)
		switch {
		case errors.Is(err, ErrMissingState):
			next, resp = e.misunderstand(nil)
		case errors.Is(err, ErrInvalidLevel), errors.Is(err, ErrMissingParameter):
			next, resp = e.misunderstand(prior)
		default:
			return nil, nil, err
		}
	}

	e.phrases.Compose(resp)
	return next, resp, nil
}
