package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-ai/testing/suite"
)

var errSearchFailed = errors.New("search failed")

type mockEngine struct {
	mock.Mock
}

func (that *mockEngine) Analyze(board *entity.Board, side entity.Player) (minimax.Result, error) {
	args := that.Called(board.String(), side)
	return args.Get(0).(minimax.Result), args.Error(1)
}

func TestBotService_MakeTurn(t *testing.T) {
	t.Run("Plays the engine's best move", func(t *testing.T) {
		_, st := suite.New(t)
		bot := NewBotService(st.Logger, minimax.New(minimax.Config{}))

		// Given: X threatens the top row
		game := st.Game("XX_/O__/___")

		// When: the bot makes its turn
		err := bot.MakeTurn(game)

		// Then: it blocks and passes the turn back to X
		require.NoError(t, err)
		assert.Equal(t, "XXO/O__/___", game.Board.String())
		assert.Equal(t, entity.PlayerX, game.Turn)
	})

	t.Run("Refuses to move out of turn", func(t *testing.T) {
		_, st := suite.New(t)
		engine := &mockEngine{}
		bot := NewBotService(st.Logger, engine)

		game := entity.NewGame()

		err := bot.MakeTurn(game)

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		engine.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
	})

	t.Run("Refuses to move on a finished game", func(t *testing.T) {
		_, st := suite.New(t)
		bot := NewBotService(st.Logger, &mockEngine{})

		game := st.Game("XXX/OO_/___")
		game.Turn = entity.PlayerO

		assert.ErrorIs(t, bot.MakeTurn(game), apperror.ErrGameFinished)
	})

	t.Run("Propagates search errors and leaves the game untouched", func(t *testing.T) {
		_, st := suite.New(t)
		engine := &mockEngine{}
		bot := NewBotService(st.Logger, engine)

		game := st.Game("X__/___/___")
		before := game.Clone()

		engine.On("Analyze", "X__/___/___", entity.PlayerO).
			Return(minimax.Result{}, errSearchFailed).
			Once()

		err := bot.MakeTurn(game)

		require.ErrorIs(t, err, errSearchFailed)
		assert.Equal(t, before, game)
		engine.AssertExpectations(t)
	})

	t.Run("Rejects an illegal move from the engine", func(t *testing.T) {
		_, st := suite.New(t)
		engine := &mockEngine{}
		bot := NewBotService(st.Logger, engine)

		game := st.Game("X__/___/___")

		engine.On("Analyze", "X__/___/___", entity.PlayerO).
			Return(minimax.Result{Move: entity.Move{Row: 0, Col: 0}}, nil).
			Once()

		err := bot.MakeTurn(game)

		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		engine.AssertExpectations(t)
	})
}

func TestBotService_Suggest(t *testing.T) {
	_, st := suite.New(t)
	bot := NewBotService(st.Logger, minimax.New(minimax.Config{}))

	t.Run("Suggests the winning move for X", func(t *testing.T) {
		game := st.Game("XX_/OO_/___")

		move, err := bot.Suggest(game)

		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 0, Col: 2}, move)
		assert.Equal(t, "XX_/OO_/___", game.Board.String())
	})

	t.Run("Finished game has no suggestion", func(t *testing.T) {
		game := st.Game("XOX/XOO/OXX")

		_, err := bot.Suggest(game)

		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}
