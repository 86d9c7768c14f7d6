package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

// Size is the side length of the board.
const Size = 3

type Cell uint8

const (
	EmptyCell Cell = iota
	CellX
	CellO
)

func (that Cell) String() string {
	switch that {
	case CellX:
		return "X"
	case CellO:
		return "O"
	default:
		return "_"
	}
}

type Player uint8

const (
	PlayerX Player = iota + 1
	PlayerO
)

// Mark - returns the cell value a player writes on the board.
func (that Player) Mark() Cell {
	if that == PlayerO {
		return CellO
	}
	return CellX
}

func (that Player) Opponent() Player {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Player) String() string {
	return that.Mark().String()
}

// Move references a cell by row and column, both in [0, Size).
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// MoveFromIndex - converts a row-major cell index (0..8) into a move.
func MoveFromIndex(index int) Move {
	return Move{Row: index / Size, Col: index % Size}
}

func (that Move) Index() int {
	return that.Row*Size + that.Col
}

func (that Move) IsValid() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

func (that Move) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

type Outcome uint8

const (
	InProgress Outcome = iota
	XWins
	OWins
	Draw
)

func (that Outcome) String() string {
	switch that {
	case XWins:
		return "X wins"
	case OWins:
		return "O wins"
	case Draw:
		return "draw"
	default:
		return "in progress"
	}
}

// IsTerminal - reports whether the game is over.
func (that Outcome) IsTerminal() bool {
	return that != InProgress
}

// Line is one of the triples of cells that wins the game when uniformly occupied.
type Line [Size]Move

// Lines holds the 8 winning lines: rows, columns, the main diagonal and the anti-diagonal.
var Lines = [8]Line{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is a 3x3 grid stored row-major. The zero value is an empty board.
// Boards are plain values: copying one yields an independent board and
// two boards compare equal iff every cell matches.
type Board struct {
	cells [Size][Size]Cell
}

func (that *Board) At(m Move) Cell {
	return that.cells[m.Row][m.Col]
}

func (that *Board) HasLine(player Player) bool {
	_, ok := that.lineOf(player.Mark())
	return ok
}

// WinningLine - returns the completed line, if any.
func (that *Board) WinningLine() (Line, bool) {
	if line, ok := that.lineOf(CellX); ok {
		return line, true
	}
	return that.lineOf(CellO)
}

func (that *Board) lineOf(mark Cell) (Line, bool) {
	for _, line := range Lines {
		if that.At(line[0]) == mark && that.At(line[1]) == mark && that.At(line[2]) == mark {
			return line, true
		}
	}
	return Line{}, false
}

func (that *Board) IsFull() bool {
	for _, row := range that.cells {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}
	return true
}

// LegalMoves - returns every empty cell in row-major order.
func (that *Board) LegalMoves() []Move {
	moves := make([]Move, 0, Size*Size)
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if that.cells[row][col] == EmptyCell {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}
	return moves
}

// Outcome - derives the game result from the board.
// A board where both players hold a line cannot arise from legal play;
// the result for it is undefined, use Validate to reject such input.
func (that *Board) Outcome() Outcome {
	switch {
	case that.HasLine(PlayerX):
		return XWins
	case that.HasLine(PlayerO):
		return OWins
	case that.IsFull():
		return Draw
	default:
		return InProgress
	}
}

func (that *Board) Place(m Move, player Player) error {
	if !m.IsValid() {
		return fmt.Errorf("%w: cell %s out of range", apperror.ErrInvalidMove, m)
	}

	if that.At(m) != EmptyCell {
		return fmt.Errorf("%w: %w at %s", apperror.ErrInvalidMove, apperror.ErrCellOccupied, m)
	}

	that.cells[m.Row][m.Col] = player.Mark()

	return nil
}

// Unplace - clears a cell that must currently hold the player's mark.
func (that *Board) Unplace(m Move, player Player) error {
	if !m.IsValid() {
		return fmt.Errorf("%w: cell %s out of range", apperror.ErrInvalidMove, m)
	}

	if got := that.At(m); got != player.Mark() {
		return fmt.Errorf("%w: expected %s at %s, found %s", apperror.ErrInvalidMove, player, m, got)
	}

	that.cells[m.Row][m.Col] = EmptyCell

	return nil
}

// Try places the player's mark at m, runs fn and clears the cell again on
// every exit path, including a panic inside fn.
func (that *Board) Try(m Move, player Player, fn func()) error {
	if err := that.Place(m, player); err != nil {
		return err
	}
	defer func() { that.cells[m.Row][m.Col] = EmptyCell }()

	fn()

	return nil
}

func (that *Board) Counts() (x, o int) {
	for _, row := range that.cells {
		for _, cell := range row {
			switch cell {
			case CellX:
				x++
			case CellO:
				o++
			}
		}
	}
	return x, o
}

// Validate - checks that the board can be reached by alternating play with X moving first.
func (that *Board) Validate() error {
	x, o := that.Counts()
	if x != o && x != o+1 {
		return fmt.Errorf("%w: %d X marks and %d O marks", apperror.ErrUnreachableBoard, x, o)
	}

	if that.HasLine(PlayerX) && that.HasLine(PlayerO) {
		return fmt.Errorf("%w: both players have a line", apperror.ErrUnreachableBoard)
	}

	return nil
}

// ToMove - returns the side to move under X-first alternation.
func (that *Board) ToMove() Player {
	x, o := that.Counts()
	if x > o {
		return PlayerO
	}
	return PlayerX
}
