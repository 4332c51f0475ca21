package engineconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"

	"viper-physics/internal/logger"
)

// EngineConfigPath is the default path to the engine config file, relative to the process working directory.
const EngineConfigPath = "config/engine.yaml"

// ErrInvalidPrefs is returned by Validate for unusable preferences.
var ErrInvalidPrefs = errors.New("invalid engine preferences")

// Prefs holds simulation-loop preferences. Scene content (bodies, shapes) lives in scene files.
type Prefs struct {
	// FixedDelta is the physics step in seconds (fixed-rate update interval).
	FixedDelta float32 `yaml:"fixed_delta"`
	// MaxFixedSteps caps fixed steps per rendered frame so a slow frame cannot spiral.
	MaxFixedSteps int        `yaml:"max_fixed_steps"`
	Gravity       [3]float32 `yaml:"gravity,flow"`
	LogLevel      string     `yaml:"log_level"`
	LogPath       string     `yaml:"log_path,omitempty"`
}

// Default returns default preferences: 50 Hz physics, Earth gravity along -Y, info logging.
func Default() Prefs {
	return Prefs{
		FixedDelta:    0.02,
		MaxFixedSteps: 8,
		Gravity:       [3]float32{0, -9.81, 0},
		LogLevel:      "info",
		LogPath:       logger.LogFilePath,
	}
}

// Validate reports whether p can drive a simulation: a positive finite step, a positive
// step cap and finite gravity.
func (p Prefs) Validate() error {
	if !finite(p.FixedDelta) || p.FixedDelta <= 0 {
		return fmt.Errorf("fixed_delta %v: %w", p.FixedDelta, ErrInvalidPrefs)
	}
	if p.MaxFixedSteps <= 0 {
		return fmt.Errorf("max_fixed_steps %d: %w", p.MaxFixedSteps, ErrInvalidPrefs)
	}
	for _, g := range p.Gravity {
		if !finite(g) {
			return fmt.Errorf("gravity %v: %w", p.Gravity, ErrInvalidPrefs)
		}
	}
	return nil
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// Load reads preferences from path. A missing file yields Default() and no error.
// Keys absent from the file keep their default values.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return p, err
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Save writes preferences to path, creating the parent directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
