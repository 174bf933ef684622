package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/plus3/blockfall/game"
)

const (
	FrontendConsole = "console"
	FrontendGUI     = "gui"
)

// Config is the validated runtime configuration.
type Config struct {
	Rows int
	Cols int

	// Seed fixes the shape sequence when HasSeed is set.
	Seed    uint64
	HasSeed bool

	GravityInterval time.Duration
	TickInterval    time.Duration

	Frontend  string
	LogLevel  string
	LogFormat string
	// LogFile receives log output when set. The console frontend owns the
	// terminal, so without a file its logs are discarded.
	LogFile string
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Rows:            20,
		Cols:            10,
		GravityInterval: game.DefaultGravityInterval,
		TickInterval:    16 * time.Millisecond,
		Frontend:        FrontendConsole,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

type hclFile struct {
	Board           *hclBoard `hcl:"board,block"`
	Log             *hclLog   `hcl:"log,block"`
	Seed            *int64    `hcl:"seed,optional"`
	GravityInterval *string   `hcl:"gravity_interval,optional"`
	TickInterval    *string   `hcl:"tick_interval,optional"`
	Frontend        *string   `hcl:"frontend,optional"`
}

type hclBoard struct {
	Rows int `hcl:"rows"`
	Cols int `hcl:"cols"`
}

type hclLog struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
	File   *string `hcl:"file,optional"`
}

// Load parses the HCL file at path over the defaults and validates the result.
func Load(path string) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}
	return decode(file.Body, path)
}

// Parse is Load for in-memory source; filename is used in diagnostics.
func Parse(src []byte, filename string) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", filename, diags)
	}
	return decode(file.Body, filename)
}

func decode(body hcl.Body, filename string) (Config, error) {
	var parsed hclFile
	if diags := gohcl.DecodeBody(body, nil, &parsed); diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to decode config %s: %w", filename, diags)
	}

	cfg := Default()
	if parsed.Board != nil {
		cfg.Rows = parsed.Board.Rows
		cfg.Cols = parsed.Board.Cols
	}
	if parsed.Seed != nil {
		if *parsed.Seed < 0 {
			return Config{}, fmt.Errorf("config %s: seed must not be negative", filename)
		}
		cfg.Seed = uint64(*parsed.Seed)
		cfg.HasSeed = true
	}
	if parsed.GravityInterval != nil {
		d, err := time.ParseDuration(*parsed.GravityInterval)
		if err != nil {
			return Config{}, fmt.Errorf("config %s: gravity_interval: %w", filename, err)
		}
		cfg.GravityInterval = d
	}
	if parsed.TickInterval != nil {
		d, err := time.ParseDuration(*parsed.TickInterval)
		if err != nil {
			return Config{}, fmt.Errorf("config %s: tick_interval: %w", filename, err)
		}
		cfg.TickInterval = d
	}
	if parsed.Frontend != nil {
		cfg.Frontend = *parsed.Frontend
	}
	if parsed.Log != nil {
		if parsed.Log.Level != nil {
			cfg.LogLevel = *parsed.Log.Level
		}
		if parsed.Log.Format != nil {
			cfg.LogFormat = *parsed.Log.Format
		}
		if parsed.Log.File != nil {
			cfg.LogFile = *parsed.Log.File
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", filename, err)
	}
	return cfg, nil
}

// Validate checks every field and joins all problems into one error.
func (c Config) Validate() error {
	var errs []error
	if c.Rows < game.MinRows {
		errs = append(errs, fmt.Errorf("board rows must be at least %d, got %d", game.MinRows, c.Rows))
	}
	if c.Cols < game.MinCols {
		errs = append(errs, fmt.Errorf("board cols must be at least %d, got %d", game.MinCols, c.Cols))
	}
	if c.GravityInterval <= 0 {
		errs = append(errs, fmt.Errorf("gravity interval must be positive, got %s", c.GravityInterval))
	}
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick interval must be positive, got %s", c.TickInterval))
	}
	switch c.Frontend {
	case FrontendConsole, FrontendGUI:
	default:
		errs = append(errs, fmt.Errorf("frontend must be %q or %q, got %q", FrontendConsole, FrontendGUI, c.Frontend))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log level must be 'debug', 'info', 'warn', or 'error', got %q", c.LogLevel))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log format must be 'text' or 'json', got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// NewLogger builds a logger writing to w at the configured level and format.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch c.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
