package engineconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viper-physics/internal/logger"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestDefaultLogsToLoggerFile(t *testing.T) {
	assert.Equal(t, logger.LogFilePath, Default().LogPath)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "engine.yaml")
	want := Default()
	want.FixedDelta = 0.01
	want.Gravity = [3]float32{0, -1.62, 0}
	want.LogLevel = "debug"

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fixed_delta: 0.005\n"), 0644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, float32(0.005), p.FixedDelta)
	assert.Equal(t, Default().MaxFixedSteps, p.MaxFixedSteps)
	assert.Equal(t, Default().Gravity, p.Gravity)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"garbage":       "fixed_delta: [oops\n",
		"zero step":     "fixed_delta: 0\n",
		"no step limit": "max_fixed_steps: -1\n",
		"nan step":      "fixed_delta: .nan\n",
		"inf step":      "fixed_delta: .inf\n",
		"nan gravity":   "gravity: [0, .nan, 0]\n",
		"inf gravity":   "gravity: [-.inf, 0, 0]\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))
			p, err := Load(path)
			assert.Error(t, err)
			assert.Equal(t, Default(), p)
		})
	}
}
