package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/testing/suite"
)

var errBotDown = errors.New("bot down")

type mockBot struct {
	mock.Mock
}

func (that *mockBot) MakeTurn(game *entity.Game) error {
	return that.Called(game).Error(0)
}

func (that *mockBot) Suggest(game *entity.Game) (entity.Move, error) {
	args := that.Called(game)
	return args.Get(0).(entity.Move), args.Error(1)
}

func newManager(t *testing.T) *GameManager {
	t.Helper()
	_, st := suite.New(t)

	return NewGameManager(st.Logger, service.NewBotService(st.Logger, minimax.New(minimax.Config{})))
}

func TestGameManager_MakeTurn(t *testing.T) {
	t.Run("Human move is answered by the bot", func(t *testing.T) {
		// Given: a fresh session
		manager := newManager(t)

		// When: X opens in the corner
		game, err := manager.MakeTurn(entity.Move{Row: 0, Col: 0})

		// Then: O answers in the centre and it is X's turn again
		require.NoError(t, err)
		assert.Equal(t, "X__/_O_/___", game.Board.String())
		assert.Equal(t, entity.StateXToMove, game.State())
	})

	t.Run("Occupied cell is rejected without changing the session", func(t *testing.T) {
		manager := newManager(t)
		_, err := manager.MakeTurn(entity.Move{Row: 0, Col: 0})
		require.NoError(t, err)
		before := manager.Game()

		// When: X clicks on O's cell
		_, err = manager.MakeTurn(entity.Move{Row: 1, Col: 1})

		// Then: the move is refused and nothing changes
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, before, manager.Game())
	})

	t.Run("Bot is not asked to move after the human wins", func(t *testing.T) {
		_, st := suite.New(t)
		bot := &mockBot{}
		manager := NewGameManager(st.Logger, bot)
		manager.game = st.Game("XX_/OO_/___")
		manager.game.Turn = entity.PlayerX

		// When: X completes the top row
		game, err := manager.MakeTurn(entity.Move{Row: 0, Col: 2})

		// Then: X has won and the bot was never called
		require.NoError(t, err)
		assert.Equal(t, entity.StateXWon, game.State())
		bot.AssertNotCalled(t, "MakeTurn", mock.Anything)
	})

	t.Run("Bot failure is reported", func(t *testing.T) {
		_, st := suite.New(t)
		bot := &mockBot{}
		manager := NewGameManager(st.Logger, bot)

		bot.On("MakeTurn", mock.AnythingOfType("*entity.Game")).Return(errBotDown).Once()

		_, err := manager.MakeTurn(entity.Move{Row: 1, Col: 1})

		require.ErrorIs(t, err, errBotDown)
		bot.AssertExpectations(t)
	})

	t.Run("Moves after the game is over are refused", func(t *testing.T) {
		_, st := suite.New(t)
		manager := NewGameManager(st.Logger, &mockBot{})
		manager.game = st.Game("OOO/XX_/X__")

		_, err := manager.MakeTurn(entity.Move{Row: 1, Col: 2})

		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Snapshots do not alias the session", func(t *testing.T) {
		manager := newManager(t)

		snapshot := manager.Game()
		require.NoError(t, snapshot.MakeTurn(entity.PlayerX, entity.Move{Row: 2, Col: 2}))

		assert.Equal(t, entity.Board{}, manager.Game().Board)
	})
}

func TestGameManager_PlaysToTheEnd(t *testing.T) {
	// Given: a session where X always takes the first free cell
	manager := newManager(t)

	game := manager.Game()
	for !game.IsFinished() {
		var err error
		game, err = manager.MakeTurn(game.Board.LegalMoves()[0])
		require.NoError(t, err)
	}

	// Then: the optimal bot does not lose
	assert.NotEqual(t, entity.StateXWon, game.State())
	assert.True(t, game.State() == entity.StateOWon || game.State() == entity.StateDraw)
}

func TestGameManager_Hint(t *testing.T) {
	manager := newManager(t)

	move, err := manager.Hint()

	require.NoError(t, err)
	assert.True(t, move.IsValid())
	assert.Equal(t, entity.Board{}, manager.Game().Board)
}

func TestGameManager_Reset(t *testing.T) {
	manager := newManager(t)
	_, err := manager.MakeTurn(entity.Move{Row: 0, Col: 0})
	require.NoError(t, err)

	game := manager.Reset()

	assert.Equal(t, entity.StateXToMove, game.State())
	assert.Equal(t, entity.Board{}, game.Board)
	assert.Empty(t, game.Moves)
}
