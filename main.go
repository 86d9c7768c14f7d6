package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	charmlog "github.com/charmbracelet/log"

	"github.com/rocketscienceinc/tictactoe-ai/internal/config"
)

type CLI struct {
	Config    string `short:"c" help:"Path to the config file." default:"config.yml" type:"path"`
	LogLevel  string `help:"Override the configured log level (debug, info, warn, error)."`
	NoPruning bool   `help:"Disable alpha-beta pruning."`
	Parallel  bool   `help:"Search root moves in parallel."`

	Play     PlayCmd     `cmd:"" default:"1" help:"Play against the computer."`
	Best     BestCmd     `cmd:"" help:"Print the best move for O on a board."`
	Selfplay SelfplayCmd `cmd:"" help:"Let the engine play both sides."`
}

// main - is the entry point of the application. It parses flags, initializes the configuration, logger, and runs the command.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("tictactoe"),
		kong.Description("Tic-tac-toe against an unbeatable minimax opponent."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	conf := initConfig(&cli)
	logger, closer := initLogger(conf)

	err := ctx.Run(conf, logger)
	if cerr := closer.Close(); cerr != nil {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", cerr)
	}
	ctx.FatalIfErrorf(err)
}

// initialize config, command line flags win over the file.
func initConfig(cli *CLI) *config.Config {
	conf := config.MustLoad(cli.Config)

	if cli.LogLevel != "" {
		conf.LogLevel = cli.LogLevel
	}
	if cli.NoPruning {
		conf.Search.NoPruning = true
	}
	if cli.Parallel {
		conf.Search.Parallel = true
	}

	return conf
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// initialize logger.
func initLogger(conf *config.Config) (*slog.Logger, io.Closer) {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var out io.WriteCloser = nopCloser{os.Stderr}
	if conf.LogFile != "" && conf.LogFile != "-" {
		file, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			panic(fmt.Errorf("failed to open log file: %w", err))
		}
		out = file
	}

	if conf.LogFormat == "text" {
		handler := charmlog.NewWithOptions(out, charmlog.Options{
			Level:           charmlog.Level(level),
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
			Prefix:          "tictactoe",
		})
		return slog.New(handler), out
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})), out
}
