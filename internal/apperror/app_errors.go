package apperror

import "errors"

var (
	ErrGameFinished         = errors.New("game is already finished")
	ErrNotYourTurn          = errors.New("it's not your turn")
	ErrCellOccupied         = errors.New("cell is already occupied")
	ErrInvalidMove          = errors.New("invalid move")
	ErrPreconditionViolated = errors.New("search precondition violated")
	ErrUnreachableBoard     = errors.New("board is not reachable by legal play")
	ErrInvalidNotation      = errors.New("invalid board notation")
)
