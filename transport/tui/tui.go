package tui

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const (
	msgYourMove = "Your move."
	msgYouWin   = "You win!"
	msgAIWins   = "AI wins!"
	msgDraw     = "It's a draw!"
	msgAgain    = "Press enter or r to play again."
)

type gameManager interface {
	Game() *entity.Game
	MakeTurn(move entity.Move) (*entity.Game, error)
	Hint() (entity.Move, error)
	Reset() *entity.Game
}

// Model is the Bubble Tea shell around a game session. It only reports
// moves to the manager and renders whatever game state comes back.
type Model struct {
	logger  *slog.Logger
	manager gameManager

	keys keyMap
	help help.Model

	game   *entity.Game
	cursor entity.Move
	hint   *entity.Move
	err    error
}

func New(logger *slog.Logger, manager gameManager) *Model {
	return &Model{
		logger:  logger.With("component", "tui"),
		manager: manager,
		keys:    newKeyMap(),
		help:    help.New(),
		game:    manager.Game(),
		cursor:  entity.Move{Row: 1, Col: 1},
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Reset):
		m.reset()

	case key.Matches(msg, m.keys.Place):
		m.place(m.cursor)

	case key.Matches(msg, m.keys.Cell):
		index := int(msg.Runes[0] - '1')
		m.cursor = entity.MoveFromIndex(index)
		m.place(m.cursor)

	case key.Matches(msg, m.keys.Hint):
		m.suggest()

	case key.Matches(msg, m.keys.Up):
		m.cursor.Row = max(m.cursor.Row-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor.Row = min(m.cursor.Row+1, entity.Size-1)
	case key.Matches(msg, m.keys.Left):
		m.cursor.Col = max(m.cursor.Col-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.cursor.Col = min(m.cursor.Col+1, entity.Size-1)
	}

	return nil
}

// place forwards a human move. After a finished game any placement starts a new one.
func (m *Model) place(move entity.Move) {
	if m.game.IsFinished() {
		m.reset()
		return
	}

	game, err := m.manager.MakeTurn(move)
	if errors.Is(err, apperror.ErrCellOccupied) {
		return
	}

	m.game = game
	m.hint = nil
	m.err = err

	if err != nil {
		m.logger.Error("failed to make turn", "error", err)
	}
}

func (m *Model) suggest() {
	if m.game.IsFinished() {
		return
	}

	move, err := m.manager.Hint()
	if err != nil {
		m.logger.Error("failed to get hint", "error", err)
		m.err = err
		return
	}

	m.hint = &move
}

func (m *Model) reset() {
	m.game = m.manager.Reset()
	m.hint = nil
	m.err = nil
	m.cursor = entity.Move{Row: 1, Col: 1}
}

// Status - returns the line shown under the board.
func (m *Model) Status() string {
	if m.err != nil {
		return m.err.Error()
	}

	switch m.game.State() {
	case entity.StateXWon:
		return msgYouWin + " " + msgAgain
	case entity.StateOWon:
		return msgAIWins + " " + msgAgain
	case entity.StateDraw:
		return msgDraw + " " + msgAgain
	default:
		return msgYourMove
	}
}

func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render("Tic-Tac-Toe"))
	sb.WriteString("\n\n")
	sb.WriteString(m.renderBoard())
	sb.WriteString("\n\n")
	sb.WriteString(m.renderStatus())
	sb.WriteString("\n\n")
	sb.WriteString(m.help.View(m.keys))
	sb.WriteString("\n")

	return sb.String()
}

func (m *Model) renderBoard() string {
	winning := make(map[entity.Move]bool, entity.Size)
	if line, ok := m.game.Board.WinningLine(); ok {
		for _, cell := range line {
			winning[cell] = true
		}
	}

	rows := make([]string, 0, entity.Size)
	for row := 0; row < entity.Size; row++ {
		cells := make([]string, 0, entity.Size)
		for col := 0; col < entity.Size; col++ {
			cells = append(cells, m.renderCell(entity.Move{Row: row, Col: col}, winning))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderCell(move entity.Move, winning map[entity.Move]bool) string {
	style := CellStyle
	switch {
	case winning[move]:
		style = WinningStyle
	case move == m.cursor && !m.game.IsFinished():
		style = CursorStyle
	}

	switch m.game.Board.At(move) {
	case entity.CellX:
		return style.Render(MarkXStyle.Render("X"))
	case entity.CellO:
		return style.Render(MarkOStyle.Render("O"))
	}

	if m.hint != nil && *m.hint == move {
		if move == m.cursor {
			return CursorStyle.Render("*")
		}
		return HintStyle.Render("*")
	}

	return style.Render(" ")
}

func (m *Model) renderStatus() string {
	status := m.Status()

	switch {
	case m.err != nil:
		return ErrorStyle.Render(status)
	case m.game.IsFinished():
		return SuccessStyle.Render(status)
	default:
		return InfoStyle.Render(status)
	}
}
