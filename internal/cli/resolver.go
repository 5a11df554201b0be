package cli

import (
	"strconv"
	"strings"

	"leaddizioni/internal/game"
	"leaddizioni/internal/models"
)

var (
	quitWords    = map[string]bool{"fine": true, "basta": true, "esci": true, "stop": true}
	welcomeWords = map[string]bool{"ciao": true, "inizia": true, "aiuto": true, "livelli": true}
)

// resolveIntent plays the part of the dialog platform's language model for the
// console: it turns a typed line into an intent name and its parameters.
func resolveIntent(line string) (string, game.Params) {
	text := strings.ToLower(strings.TrimSpace(line))

	if quitWords[text] {
		return game.IntentEndOfGame.String(), nil
	}
	if welcomeWords[text] {
		return game.IntentWelcome.String(), nil
	}
	for _, level := range models.Levels {
		if text == string(level) {
			return game.IntentDifficultyLevel.String(), game.Params{game.ParamDifficultyLevel: text}
		}
	}
	if n, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64); err == nil {
		return game.IntentResponseAnswer.String(), game.Params{game.ParamGuessedNumber: n}
	}
	return game.IntentMisunderstand.String(), nil
}
