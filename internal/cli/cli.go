package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/plus3/blockfall/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. Values come from the defaults, then
// the -config file, then any flags set explicitly. It returns the config, a
// boolean indicating the program should exit cleanly, or an *ExitError.
func Parse(args []string, output io.Writer) (config.Config, bool, error) {
	flagSet := flag.NewFlagSet("blockfall", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
blockfall - a falling-block puzzle game.

Usage:
  blockfall [options]

Controls:
  left/right  move     down  soft drop     up / a  rotate
  s           rotate back    space  hard drop     r  restart     esc  quit

Options:
`)
		flagSet.PrintDefaults()
	}

	defaults := config.Default()
	configPath := flagSet.String("config", "", "Path to an HCL configuration file.")
	rows := flagSet.Int("rows", defaults.Rows, "Board rows.")
	cols := flagSet.Int("cols", defaults.Cols, "Board columns.")
	seed := flagSet.Uint64("seed", 0, "Fix the shape sequence with this seed.")
	gravity := flagSet.Duration("gravity", defaults.GravityInterval, "Time between gravity steps at level 1.")
	tick := flagSet.Duration("tick", defaults.TickInterval, "Time between game loop ticks.")
	frontend := flagSet.String("frontend", defaults.Frontend, "Frontend to run: 'console' or 'gui'.")
	logLevel := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormat := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logFile := flagSet.String("log-file", "", "Append logs to this file instead of stderr.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return config.Config{}, true, nil
		}
		return config.Config{}, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() > 0 {
		return config.Config{}, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected argument %q", flagSet.Arg(0))}
	}

	cfg := defaults
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return config.Config{}, false, &ExitError{Code: 2, Message: err.Error()}
		}
		cfg = loaded
		slog.Debug("Configuration file loaded.", "path", *configPath)
	}

	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rows":
			cfg.Rows = *rows
		case "cols":
			cfg.Cols = *cols
		case "seed":
			cfg.Seed = *seed
			cfg.HasSeed = true
		case "gravity":
			cfg.GravityInterval = *gravity
		case "tick":
			cfg.TickInterval = *tick
		case "frontend":
			cfg.Frontend = *frontend
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-format":
			cfg.LogFormat = *logFormat
		case "log-file":
			cfg.LogFile = *logFile
		}
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "rows", cfg.Rows, "cols", cfg.Cols, "frontend", cfg.Frontend)
	return cfg, false, nil
}
