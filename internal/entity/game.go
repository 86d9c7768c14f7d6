package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

type State uint8

const (
	StateXToMove State = iota
	StateOToMove
	StateXWon
	StateOWon
	StateDraw
)

func (that State) String() string {
	switch that {
	case StateXToMove:
		return "X to move"
	case StateOToMove:
		return "O to move"
	case StateXWon:
		return "X won"
	case StateOWon:
		return "O won"
	default:
		return "draw"
	}
}

// Game is a single session: one board, the side to move and the moves played so far.
// The result is always derived from the board and never stored.
type Game struct {
	Board Board  `json:"-"`
	Turn  Player `json:"turn"`
	Moves []Move `json:"moves"`
}

func NewGame() *Game {
	return &Game{
		Turn: PlayerX,
	}
}

func (that *Game) Outcome() Outcome {
	return that.Board.Outcome()
}

func (that *Game) State() State {
	switch that.Outcome() {
	case XWins:
		return StateXWon
	case OWins:
		return StateOWon
	case Draw:
		return StateDraw
	}

	if that.Turn == PlayerO {
		return StateOToMove
	}
	return StateXToMove
}

func (that *Game) IsFinished() bool {
	return that.Outcome().IsTerminal()
}

// MakeTurn - places the player's mark and passes the turn to the opponent.
func (that *Game) MakeTurn(player Player, m Move) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if !m.IsValid() {
		return fmt.Errorf("%w: cell %s out of range", apperror.ErrInvalidMove, m)
	}

	if that.Turn != player {
		return apperror.ErrNotYourTurn
	}

	if err := that.Board.Place(m, player); err != nil {
		return fmt.Errorf("failed to place %s: %w", player, err)
	}

	that.Moves = append(that.Moves, m)
	that.Turn = player.Opponent()

	return nil
}

// Reset - starts a new game with an empty board and X to move.
func (that *Game) Reset() {
	that.Board = Board{}
	that.Turn = PlayerX
	that.Moves = nil
}

// Clone - returns a copy that shares no state with the original.
func (that *Game) Clone() *Game {
	clone := *that
	clone.Moves = append([]Move(nil), that.Moves...)
	return &clone
}
