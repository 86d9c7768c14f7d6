package usecase

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

type bot interface {
	MakeTurn(game *entity.Game) error
	Suggest(game *entity.Game) (entity.Move, error)
}

// GameManager owns the single game session played between the human (X) and the bot (O).
type GameManager struct {
	logger *slog.Logger
	bot    bot

	game *entity.Game
}

func NewGameManager(logger *slog.Logger, bot bot) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),
		bot:    bot,
		game:   entity.NewGame(),
	}
}

// Game - returns a snapshot of the current session.
func (that *GameManager) Game() *entity.Game {
	return that.game.Clone()
}

// MakeTurn - plays the human move and, while the game is still running, the bot's answer.
func (that *GameManager) MakeTurn(move entity.Move) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "move", move.String())

	if err := that.game.MakeTurn(entity.PlayerX, move); err != nil {
		if !errors.Is(err, apperror.ErrCellOccupied) {
			log.Warn("rejected human turn", "error", err)
		}
		return that.Game(), fmt.Errorf("failed to make turn: %w", err)
	}

	if that.game.IsFinished() {
		that.logFinished(log)
		return that.Game(), nil
	}

	if err := that.bot.MakeTurn(that.game); err != nil {
		log.Error("bot failed to make turn", "error", err)
		return that.Game(), fmt.Errorf("bot failed to make turn: %w", err)
	}

	if that.game.IsFinished() {
		that.logFinished(log)
	}

	return that.Game(), nil
}

// Hint - returns the optimal move for the human.
func (that *GameManager) Hint() (entity.Move, error) {
	move, err := that.bot.Suggest(that.game)
	if err != nil {
		return entity.Move{}, fmt.Errorf("failed to suggest move: %w", err)
	}

	return move, nil
}

// Reset - discards the current board and starts a new game with X to move.
func (that *GameManager) Reset() *entity.Game {
	that.game.Reset()
	that.logger.Info("new game started")

	return that.Game()
}

func (that *GameManager) logFinished(log *slog.Logger) {
	log.Info("game finished",
		"outcome", that.game.Outcome().String(),
		"board", that.game.Board.String(),
		"moves", len(that.game.Moves),
	)
}
