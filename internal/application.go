package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketscienceinc/tictactoe-ai/internal/config"
	"github.com/rocketscienceinc/tictactoe-ai/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-ai/transport/tui"
)

// NewEngine - builds the search engine from the search section of the config.
func NewEngine(conf *config.Config) *minimax.Engine {
	return minimax.New(minimax.Config{
		NoPruning: conf.Search.NoPruning,
		Parallel:  conf.Search.Parallel,
	})
}

// RunApp - runs the interactive game until the player quits or a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	bot := service.NewBotService(logger, NewEngine(conf))
	gameManager := usecase.NewGameManager(logger, bot)
	model := tui.New(logger, gameManager)

	log.Info("Starting game", "no_pruning", conf.Search.NoPruning, "parallel", conf.Search.Parallel)

	program := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			log.Info("Application context canceled, shutting down")
			return nil
		}
		return fmt.Errorf("failed to run game: %w", err)
	}

	log.Info("Game closed")

	return nil
}
