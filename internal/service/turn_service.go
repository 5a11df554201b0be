package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"leaddizioni/internal/game"
	"leaddizioni/internal/models"
	"leaddizioni/internal/repository"
)

// ErrInvalidRequest is returned for turns that cannot be attributed to a session
var ErrInvalidRequest = errors.New("invalid turn request")

// TurnRequest is one player utterance as resolved by the dialog platform
type TurnRequest struct {
	SessionID  string
	IntentName string
	Params     game.Params
}

// TurnResult is the reply to a turn and the state kept for the next one
type TurnResult struct {
	Response *models.Response
	// State is the context written by this turn, nil when none was written
	State    *models.SessionState
	Lifespan int
}

// TurnService runs a turn against the stored session context
type TurnService struct {
	engine   *game.Engine
	store    repository.ContextStore
	lifespan int
}

// NewTurnService creates a turn service. lifespan is the number of turns a
// written context survives without being rewritten.
func NewTurnService(engine *game.Engine, store repository.ContextStore, lifespan int) *TurnService {
	if lifespan < 1 {
		lifespan = 1
	}
	return &TurnService{engine: engine, store: store, lifespan: lifespan}
}

// HandleTurn loads the session context, dispatches the intent and writes back
// exactly once: the context is deleted when the game ends, replaced when the
// turn produced new state and otherwise left to age by one turn.
func (s *TurnService) HandleTurn(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("%w: missing session", ErrInvalidRequest)
	}

	intent, err := game.ParseIntent(req.IntentName)
	if err != nil {
		return nil, err
	}

	prior, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load context: %w", err)
	}

	next, resp, err := s.engine.Dispatch(intent, req.Params, prior)
	if err != nil {
		return nil, err
	}

	// An abandoned turn must not touch the stored context
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &TurnResult{Response: resp}
	switch {
	case resp.Terminal:
		err = s.store.Delete(ctx, sessionID)
	case next != nil:
		err = s.store.Save(ctx, sessionID, next, s.lifespan)
		result.State = next
		result.Lifespan = s.lifespan
	default:
		err = s.store.Advance(ctx, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to store context: %w", err)
	}

	log.Printf("Turn: session=%s intent=%q terminal=%v", sessionID, intent, resp.Terminal)
	return result, nil
}

// PurgeExpired drops contexts whose time-to-live has elapsed
func (s *TurnService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.store.PurgeExpired(ctx)
}

// Ping checks that the context store is reachable
func (s *TurnService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
