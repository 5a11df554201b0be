package game

import (
	"fmt"
	"strings"

	"leaddizioni/internal/models"
)

const (
	gameTitle       = "Il gioco delle addizioni"
	gameDescription = "Metti alla prova le tue abilità di matematica!"
	gameBadgeURL    = "https://developers.google.com/actions/images/badges/XPM_BADGING_GoogleAssistant_VER.png"
)

// welcome lists the levels as suggestion chips. It runs before a level is chosen
// and never touches the session state.
func (e *Engine) welcome() *models.Response {
	names := make([]string, len(models.Levels))
	for i, level := range models.Levels {
		names[i] = string(level)
	}

	resp := &models.Response{
		Suggestions: names,
		Card: &models.Card{
			Title:    gameTitle,
			Text:     gameDescription,
			ImageURL: gameBadgeURL,
		},
	}
	resp.Say("Benvenuto! Seleziona il livello desiderato tra: " + strings.Join(names, ", ") + ".")
	return resp
}

// setLevel starts a new session at the requested level
func (e *Engine) setLevel(params Params) (*models.SessionState, *models.Response, error) {
	name, ok := params.Text(ParamDifficultyLevel)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidLevel, ParamDifficultyLevel)
	}
	level, err := ParseLevel(name)
	if err != nil {
		return nil, nil, err
	}

	first, second, err := e.problems.Generate(level)
	if err != nil {
		return nil, nil, err
	}

	state := &models.SessionState{
		Level:          level,
		FirstAddend:    first,
		SecondAddend:   second,
		CorrectGuesses: 0,
		TotalGuesses:   0,
		FirstAttempt:   true,
		Misunderstood:  false,
	}

	resp := &models.Response{}
	resp.Say(Question(first, second))
	return state, resp, nil
}

// evaluate checks the answer to the current problem. Each problem allows two
// attempts; the score moves only when the problem is resolved.
func (e *Engine) evaluate(params Params, prior *models.SessionState) (*models.SessionState, *models.Response, error) {
	if prior == nil {
		return nil, nil, ErrMissingState
	}
	guess, ok := params.Number(ParamGuessedNumber)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrMissingParameter, ParamGuessedNumber)
	}

	state := prior.Clone()
	state.Misunderstood = false
	correct := state.CorrectAnswer()
	resp := &models.Response{}

	switch {
	case guess == float64(correct):
		resp.Say(e.phrases.Select(CategoryRight))
		state.TotalGuesses++
		state.CorrectGuesses++
		state.FirstAttempt = true
	case state.FirstAttempt:
		resp.Say(e.phrases.Select(CategoryWrong))
		resp.Say(Question(state.FirstAddend, state.SecondAddend))
		state.FirstAttempt = false
	default:
		resp.Say(AudioCue(soundReveal, "No, errore!"))
		resp.Say(fmt.Sprintf("No, mi dispiace: %d più %d fa %d.", state.FirstAddend, state.SecondAddend, correct))
		state.TotalGuesses++
		state.FirstAttempt = true
	}

	if state.FirstAttempt {
		first, second, err := e.problems.Generate(state.Level)
		if err != nil {
			return nil, nil, err
		}
		state.FirstAddend = first
		state.SecondAddend = second
		resp.Say(Question(first, second))
	}

	return state, resp, nil
}

// misunderstand answers an unrecognized utterance. A second one in a row ends the game.
func (e *Engine) misunderstand(prior *models.SessionState) (*models.SessionState, *models.Response) {
	resp := &models.Response{}
	if prior == nil {
		resp.Say(e.phrases.Select(CategoryMisunderstand))
		return nil, resp
	}

	if prior.Misunderstood {
		// endGame only fails without state, which was ruled out above
		final, _ := e.endGame(prior)
		return nil, final
	}

	state := prior.Clone()
	state.Misunderstood = true
	resp.Say(e.phrases.Select(CategoryMisunderstand))
	return state, resp
}

// endGame reads out the score and closes the conversation
func (e *Engine) endGame(prior *models.SessionState) (*models.Response, error) {
	if prior == nil {
		return nil, ErrMissingState
	}

	resp := &models.Response{Terminal: true}
	resp.Say(renderSummary(prior.CorrectGuesses, prior.TotalGuesses))
	resp.Say(e.phrases.Select(CategoryCredits))
	resp.Say(AudioCue(soundClosing, "Voli via!"))
	return resp, nil
}
