package suite

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const maxWaitDuration = 120 * time.Second

type Suite struct {
	*testing.T
	Logger *slog.Logger
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return ctx, &Suite{
		T:      t,
		Logger: logger,
	}
}

// Board - parses a board in notation and fails the test on malformed input.
func (that *Suite) Board(notation string) entity.Board {
	that.Helper()

	board, err := entity.ParseBoard(notation)
	require.NoError(that.T, err)

	return board
}

// Game - builds a game from a board in notation, with the side to move derived from the marks.
func (that *Suite) Game(notation string) *entity.Game {
	that.Helper()

	board := that.Board(notation)

	return &entity.Game{
		Board: board,
		Turn:  board.ToMove(),
	}
}

// ReachableBoards - returns every distinct position reachable from an empty
// board by alternating legal placements with X first, terminal positions included.
func ReachableBoards() []entity.Board {
	var (
		board entity.Board
		out   []entity.Board
	)
	seen := make(map[entity.Board]struct{})

	var walk func(toMove entity.Player)
	walk = func(toMove entity.Player) {
		if _, ok := seen[board]; ok {
			return
		}
		seen[board] = struct{}{}
		out = append(out, board)

		if board.Outcome().IsTerminal() {
			return
		}

		for _, m := range board.LegalMoves() {
			_ = board.Try(m, toMove, func() {
				walk(toMove.Opponent())
			})
		}
	}
	walk(entity.PlayerX)

	return out
}
