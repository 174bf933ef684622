package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/blockfall/internal/cli"
	"github.com/plus3/blockfall/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHelp(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&out, []string{"-help"}))
	assert.Contains(t, out.String(), "Usage:")
}

func TestRunBadFlag(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, []string{"-rows", "nope"})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestOpenLogger(t *testing.T) {
	t.Run("console discards", func(t *testing.T) {
		var stderr bytes.Buffer
		cfg := config.Default()

		logger, closeLog, err := openLogger(cfg, &stderr)
		require.NoError(t, err)
		defer closeLog()

		logger.Info("hidden")
		assert.Empty(t, stderr.String())
	})

	t.Run("gui writes to stderr", func(t *testing.T) {
		var stderr bytes.Buffer
		cfg := config.Default()
		cfg.Frontend = config.FrontendGUI

		logger, closeLog, err := openLogger(cfg, &stderr)
		require.NoError(t, err)
		defer closeLog()

		logger.Info("visible")
		assert.Contains(t, stderr.String(), "visible")
	})

	t.Run("file", func(t *testing.T) {
		var stderr bytes.Buffer
		cfg := config.Default()
		cfg.LogFile = filepath.Join(t.TempDir(), "blockfall.log")

		logger, closeLog, err := openLogger(cfg, &stderr)
		require.NoError(t, err)
		logger.Info("to file")
		closeLog()

		data, err := os.ReadFile(cfg.LogFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "to file")
		assert.Empty(t, stderr.String())
	})

	t.Run("unwritable file", func(t *testing.T) {
		cfg := config.Default()
		cfg.LogFile = filepath.Join(t.TempDir(), "missing", "blockfall.log")

		_, _, err := openLogger(cfg, &bytes.Buffer{})
		assert.Error(t, err)
	})
}

func TestNewSessionSeeded(t *testing.T) {
	cfg := config.Default()
	cfg.Seed, cfg.HasSeed = 9, true

	a, err := newSession(cfg, nil)
	require.NoError(t, err)
	b, err := newSession(cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, a.Active().Kind(), b.Active().Kind())
}
