package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

const rowSeparator = "/"

// ParseBoard reads a board written row by row, rows separated by '/'.
// X and O are marks, '_', '.' and '-' are empty cells, whitespace is ignored:
//
//	"OO_/XX_/___" or "O O _ / X X _ / _ _ _"
func ParseBoard(notation string) (Board, error) {
	var board Board

	compact := strings.Join(strings.Fields(notation), "")
	rows := strings.Split(compact, rowSeparator)
	if len(rows) != Size {
		return Board{}, fmt.Errorf("%w: want %d rows, got %d", apperror.ErrInvalidNotation, Size, len(rows))
	}

	for r, row := range rows {
		if len(row) != Size {
			return Board{}, fmt.Errorf("%w: row %d has %d cells", apperror.ErrInvalidNotation, r, len(row))
		}

		for c, ch := range row {
			switch ch {
			case 'X', 'x':
				board.cells[r][c] = CellX
			case 'O', 'o':
				board.cells[r][c] = CellO
			case '_', '.', '-':
				board.cells[r][c] = EmptyCell
			default:
				return Board{}, fmt.Errorf("%w: unexpected %q in row %d", apperror.ErrInvalidNotation, ch, r)
			}
		}
	}

	return board, nil
}

// MustParseBoard is like ParseBoard but panics on malformed input.
func MustParseBoard(notation string) Board {
	board, err := ParseBoard(notation)
	if err != nil {
		panic(err)
	}
	return board
}

func (that Board) String() string {
	var sb strings.Builder
	for r, row := range that.cells {
		if r > 0 {
			sb.WriteString(rowSeparator)
		}
		for _, cell := range row {
			sb.WriteString(cell.String())
		}
	}
	return sb.String()
}
