package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viper-physics/internal/engineconfig"
)

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\n\nVPHYSX_TEST_A=one\nexport VPHYSX_TEST_B=\"two words\"\nVPHYSX_TEST_C='three'\nnot a pair\n=novalue\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("VPHYSX_TEST_A", "")
	require.NoError(t, os.Unsetenv("VPHYSX_TEST_A"))
	t.Setenv("VPHYSX_TEST_C", "from-process")

	require.NoError(t, Load(path))
	t.Cleanup(func() {
		os.Unsetenv("VPHYSX_TEST_A")
		os.Unsetenv("VPHYSX_TEST_B")
	})

	assert.Equal(t, "one", os.Getenv("VPHYSX_TEST_A"))
	assert.Equal(t, "two words", os.Getenv("VPHYSX_TEST_B"))
	assert.Equal(t, "from-process", os.Getenv("VPHYSX_TEST_C"))
}

func TestLoadMissingFile(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), "missing.env")))
}

func TestOverride(t *testing.T) {
	t.Setenv(FixedDeltaVar, "0.01")
	t.Setenv(MaxFixedStepsVar, "4")
	t.Setenv(LogLevelVar, "debug")

	p, err := Override(engineconfig.Default())
	require.NoError(t, err)
	assert.Equal(t, float32(0.01), p.FixedDelta)
	assert.Equal(t, 4, p.MaxFixedSteps)
	assert.Equal(t, "debug", p.LogLevel)
	assert.Equal(t, engineconfig.Default().LogPath, p.LogPath)
}

func TestOverrideRejectsBadValues(t *testing.T) {
	t.Setenv(FixedDeltaVar, "fast")
	_, err := Override(engineconfig.Default())
	assert.Error(t, err)

	for _, v := range []string{"-1", "NaN", "+Inf"} {
		t.Setenv(FixedDeltaVar, v)
		_, err = Override(engineconfig.Default())
		assert.ErrorIs(t, err, engineconfig.ErrInvalidPrefs, "%s=%s", FixedDeltaVar, v)
	}
}
