package cli_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/blockfall/internal/cli"
	"github.com/plus3/blockfall/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := cli.Parse(nil, &out)
	require.NoError(t, err)
	assert.False(t, exit)
	assert.Equal(t, config.Default(), cfg)
}

func TestParseFlags(t *testing.T) {
	var out bytes.Buffer
	cfg, _, err := cli.Parse([]string{"-rows", "12", "-cols", "6", "-seed", "9", "-gravity", "1s", "-frontend", "gui"}, &out)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Rows)
	assert.Equal(t, 6, cfg.Cols)
	assert.True(t, cfg.HasSeed)
	assert.Equal(t, uint64(9), cfg.Seed)
	assert.Equal(t, time.Second, cfg.GravityInterval)
	assert.Equal(t, config.FrontendGUI, cfg.Frontend)
}

func TestParseConfigFileWithOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.hcl")
	require.NoError(t, os.WriteFile(path, []byte("board {\n rows = 14\n cols = 7\n}\nseed = 3\n"), 0o644))

	var out bytes.Buffer
	cfg, _, err := cli.Parse([]string{"-config", path, "-cols", "9"}, &out)
	require.NoError(t, err)

	assert.Equal(t, 14, cfg.Rows, "from file")
	assert.Equal(t, 9, cfg.Cols, "flag wins over file")
	assert.Equal(t, uint64(3), cfg.Seed)
}

func TestParseHelp(t *testing.T) {
	var out bytes.Buffer
	_, exit, err := cli.Parse([]string{"-h"}, &out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-speed", "3"}},
		{"positional argument", []string{"extra"}},
		{"invalid board", []string{"-cols", "2"}},
		{"invalid log level", []string{"-log-level", "trace"}},
		{"missing config", []string{"-config", "/does/not/exist.hcl"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			_, exit, err := cli.Parse(tt.args, &out)
			assert.False(t, exit)

			var exitErr *cli.ExitError
			require.True(t, errors.As(err, &exitErr))
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}
