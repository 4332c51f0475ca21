package env

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"viper-physics/internal/engineconfig"
)

// DotEnvPath is the optional file read before the engine config is resolved.
const DotEnvPath = ".env"

// Environment variables that override engine prefs.
const (
	FixedDeltaVar    = "VPHYSX_FIXED_DELTA"
	MaxFixedStepsVar = "VPHYSX_MAX_FIXED_STEPS"
	LogLevelVar      = "VPHYSX_LOG_LEVEL"
	LogPathVar       = "VPHYSX_LOG_PATH"
)

// Load reads the given file (e.g. ".env") and sets environment variables for each
// line of the form KEY=VALUE. Empty lines and lines starting with # are skipped.
// Variables already set in the process environment win over the file.
// The file may be missing; that is not an error.
func Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func parseLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")
	k, v, found := strings.Cut(line, "=")
	key = strings.TrimSpace(k)
	if !found || key == "" {
		return "", "", false
	}
	value = strings.TrimSpace(v)
	if len(value) >= 2 && (value[0] == '"' && value[len(value)-1] == '"' || value[0] == '\'' && value[len(value)-1] == '\'') {
		value = value[1 : len(value)-1]
	}
	return key, value, true
}

// Override applies VPHYSX_* variables on top of p and validates the result.
func Override(p engineconfig.Prefs) (engineconfig.Prefs, error) {
	if v, ok := os.LookupEnv(FixedDeltaVar); ok {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return p, fmt.Errorf("%s: %w", FixedDeltaVar, err)
		}
		p.FixedDelta = float32(f)
	}
	if v, ok := os.LookupEnv(MaxFixedStepsVar); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, fmt.Errorf("%s: %w", MaxFixedStepsVar, err)
		}
		p.MaxFixedSteps = n
	}
	if v, ok := os.LookupEnv(LogLevelVar); ok {
		p.LogLevel = v
	}
	if v, ok := os.LookupEnv(LogPathVar); ok {
		p.LogPath = v
	}
	return p, p.Validate()
}
