package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/internal/cli"
	"github.com/plus3/blockfall/internal/config"
	"github.com/plus3/blockfall/internal/console"
	"github.com/plus3/blockfall/internal/ctxlog"
	"github.com/plus3/blockfall/internal/gui"
	"github.com/plus3/blockfall/tetris"
)

func main() {
	// Minimal logger until the configured one is built.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(outW io.Writer, args []string) error {
	cfg, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger, closeLog, err := openLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = ctxlog.WithLogger(ctx, logger)

	session, err := newSession(cfg, logger)
	if err != nil {
		return err
	}
	return play(ctx, cfg, session)
}

// openLogger builds the configured logger. The console frontend owns the
// terminal, so without a log file its logs are discarded.
func openLogger(cfg config.Config, stderr io.Writer) (*slog.Logger, func(), error) {
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return cfg.NewLogger(f), func() { f.Close() }, nil
	}
	if cfg.Frontend == config.FrontendConsole {
		return cfg.NewLogger(io.Discard), func() {}, nil
	}
	return cfg.NewLogger(stderr), func() {}, nil
}

func newSession(cfg config.Config, logger *slog.Logger) (*game.Session, error) {
	var factory *tetris.Factory
	if cfg.HasSeed {
		factory = tetris.NewSeededFactory(cfg.Seed)
	} else {
		factory = tetris.NewFactory(nil)
	}
	return game.NewSession(cfg.Rows, cfg.Cols, factory, logger)
}

func play(ctx context.Context, cfg config.Config, session *game.Session) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Starting blockfall.", "frontend", cfg.Frontend, "rows", cfg.Rows, "cols", cfg.Cols)

	switch cfg.Frontend {
	case config.FrontendConsole:
		return console.Run(ctx, session, cfg.GravityInterval, cfg.TickInterval, logger)
	case config.FrontendGUI:
		return gui.Run(session, cfg.GravityInterval, logger)
	default:
		return &cli.ExitError{Code: 2, Message: fmt.Sprintf("unknown frontend %q", cfg.Frontend)}
	}
}
