package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"leaddizioni/internal/game"
	"leaddizioni/internal/repository"
	"leaddizioni/internal/security"
	"leaddizioni/internal/service"
)

// farewell closes a console session that never reached a level
const farewell = "Alla prossima!"

func newPlayCmd() *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if seed == 0 {
				var err error
				if seed, err = game.NewSeed(); err != nil {
					return err
				}
			}
			return runPlay(cmd, seed)
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	return cmd
}

func runPlay(cmd *cobra.Command, seed int64) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	store := repository.NewMemoryContextRepository(time.Hour)
	turns := service.NewTurnService(game.NewEngine(game.NewRandomPicker(seed)), store, 1)
	sessionID := security.NewSessionID()

	play := func(intent string, params game.Params) (bool, error) {
		result, err := turns.HandleTurn(ctx, service.TurnRequest{
			SessionID:  sessionID,
			IntentName: intent,
			Params:     params,
		})
		if err != nil {
			return false, err
		}
		printReply(out, result)
		return result.Response.Terminal, nil
	}

	if _, err := play(game.IntentWelcome.String(), nil); err != nil {
		return err
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		intent, params := resolveIntent(line)
		if intent == game.IntentEndOfGame.String() {
			started, err := inGame(ctx, store, sessionID)
			if err != nil {
				return err
			}
			if !started {
				fmt.Fprintln(out, farewell)
				return nil
			}
		}
		done, err := play(intent, params)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	// Input closed: say goodbye like an explicit quit would
	fmt.Fprintln(out)
	started, err := inGame(ctx, store, sessionID)
	if err != nil {
		return err
	}
	if !started {
		fmt.Fprintln(out, farewell)
		return nil
	}
	_, err = play(game.IntentEndOfGame.String(), nil)
	return err
}

// inGame reports whether a level has been chosen and the game is running
func inGame(ctx context.Context, store repository.ContextStore, sessionID string) (bool, error) {
	state, err := store.Get(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return state != nil, nil
}

func printReply(out io.Writer, result *service.TurnResult) {
	reply := result.Response
	if reply.Card != nil {
		fmt.Fprintf(out, "== %s ==\n", reply.Card.Title)
	}
	fmt.Fprintln(out, reply.DisplayText)
	if len(reply.Suggestions) > 0 {
		fmt.Fprintf(out, "[%s]\n", strings.Join(reply.Suggestions, " | "))
	}
}
