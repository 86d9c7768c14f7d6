package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"

	app "github.com/rocketscienceinc/tictactoe-ai/internal"
	"github.com/rocketscienceinc/tictactoe-ai/internal/config"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

type PlayCmd struct{}

func (that *PlayCmd) Run(conf *config.Config, logger *slog.Logger) error {
	if err := app.RunApp(logger, conf); err != nil {
		return fmt.Errorf("app run failed: %w", err)
	}
	return nil
}

type BestCmd struct {
	Board string `arg:"" help:"Board rows separated by '/', e.g. 'XX_/O__/___'."`

	out io.Writer
}

func (that *BestCmd) Run(conf *config.Config, logger *slog.Logger) error {
	out := writerOrStdout(that.out)

	board, err := entity.ParseBoard(that.Board)
	if err != nil {
		return fmt.Errorf("failed to parse board: %w", err)
	}

	if err = board.Validate(); err != nil {
		return fmt.Errorf("failed to validate board: %w", err)
	}

	res, err := app.NewEngine(conf).Analyze(&board, entity.PlayerO)
	if err != nil {
		return fmt.Errorf("failed to find best move: %w", err)
	}

	logger.Debug("best move found", "board", board.String(), "move", res.Move.String(), "score", res.Score)

	fmt.Fprintln(out, titleStyle.Render("Best move for O"))
	fmt.Fprint(out, renderBoard(board))
	fmt.Fprintf(out, "move:    %s (cell %d)\n", res.Move, res.Move.Index()+1)
	fmt.Fprintf(out, "score:   %+d\n", res.Score)
	fmt.Fprintf(out, "visited: %d terminal: %d cutoffs: %d\n", res.Stats.Visited, res.Stats.Terminal, res.Stats.Cutoffs)

	return nil
}

type SelfplayCmd struct {
	Board string `help:"Starting position." default:"___/___/___"`

	out io.Writer
}

func (that *SelfplayCmd) Run(conf *config.Config, logger *slog.Logger) error {
	out := writerOrStdout(that.out)

	board, err := entity.ParseBoard(that.Board)
	if err != nil {
		return fmt.Errorf("failed to parse board: %w", err)
	}

	if err = board.Validate(); err != nil {
		return fmt.Errorf("failed to validate board: %w", err)
	}

	game := &entity.Game{Board: board, Turn: board.ToMove()}
	bot := service.NewBotService(logger, app.NewEngine(conf))

	fmt.Fprintln(out, titleStyle.Render("Self-play"))
	for ply := 1; !game.IsFinished(); ply++ {
		side := game.Turn

		move, err := bot.Suggest(game)
		if err != nil {
			return fmt.Errorf("failed to suggest move: %w", err)
		}

		if err = game.MakeTurn(side, move); err != nil {
			return fmt.Errorf("failed to play %s: %w", move, err)
		}

		fmt.Fprintf(out, "%d. %s %s  %s\n", ply, side, move, game.Board)
	}

	fmt.Fprint(out, renderBoard(game.Board))
	fmt.Fprintf(out, "result: %s\n", game.Outcome())

	return nil
}

func renderBoard(board entity.Board) string {
	var out string
	for row := 0; row < entity.Size; row++ {
		for col := 0; col < entity.Size; col++ {
			out += " " + board.At(entity.Move{Row: row, Col: col}).String()
		}
		out += "\n"
	}
	return out
}

func writerOrStdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
