package game

import "errors"

var (
	// ErrConfiguration indicates an intent reached the engine with no handler wired for it.
	ErrConfiguration = errors.New("no handler for intent")

	// ErrInvalidLevel indicates an unrecognized difficulty level.
	ErrInvalidLevel = errors.New("invalid difficulty level")

	// ErrMissingState indicates a handler that needs a running session got none.
	ErrMissingState = errors.New("missing session state")

	// ErrMissingParameter indicates a required intent parameter is absent or malformed.
	ErrMissingParameter = errors.New("missing parameter")
)
