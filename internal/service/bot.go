package service

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/minimax"
)

type BotService interface {
	MakeTurn(game *entity.Game) error
	Suggest(game *entity.Game) (entity.Move, error)
}

type searchEngine interface {
	Analyze(board *entity.Board, side entity.Player) (minimax.Result, error)
}

type botService struct {
	logger *slog.Logger
	engine searchEngine
	mark   entity.Player
}

// NewBotService - creates the computer opponent. It always plays O.
func NewBotService(logger *slog.Logger, engine searchEngine) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
		engine: engine,
		mark:   entity.PlayerO,
	}
}

func (that *botService) MakeTurn(game *entity.Game) error {
	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	if game.Turn != that.mark {
		return apperror.ErrNotYourTurn
	}

	res, err := that.analyze(game, that.mark)
	if err != nil {
		return err
	}

	if err = game.MakeTurn(that.mark, res.Move); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	that.logger.Debug("bot played",
		"move", res.Move.String(),
		"score", res.Score,
		"visited", res.Stats.Visited,
		"cutoffs", res.Stats.Cutoffs,
	)

	return nil
}

// Suggest - returns the optimal move for whoever is to move.
func (that *botService) Suggest(game *entity.Game) (entity.Move, error) {
	if game.IsFinished() {
		return entity.Move{}, apperror.ErrGameFinished
	}

	res, err := that.analyze(game, game.Turn)
	if err != nil {
		return entity.Move{}, err
	}

	return res.Move, nil
}

func (that *botService) analyze(game *entity.Game, side entity.Player) (minimax.Result, error) {
	res, err := that.engine.Analyze(&game.Board, side)
	if err != nil {
		return minimax.Result{}, fmt.Errorf("failed to search for %s: %w", side, err)
	}

	return res, nil
}
