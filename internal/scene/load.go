package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hjson/hjson-go"
	"gopkg.in/yaml.v3"
)

// Format is a scene file encoding.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatHJSON Format = "hjson"
)

// ErrUnknownFormat is returned for scene files with an unrecognised extension.
var ErrUnknownFormat = errors.New("unknown scene format")

// FormatFor picks the format from a file extension: .yaml/.yml, or .hjson/.json (JSON is valid HJSON).
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hjson", ".json":
		return FormatHJSON, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

// Load reads a scene definition from path.
func Load(path string) (Definition, error) {
	format, err := FormatFor(path)
	if err != nil {
		return Definition{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Definition{}, err
	}
	defer f.Close()
	def, err := Decode(f, format)
	if err != nil {
		return Definition{}, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Decode reads a scene definition in the given format from r.
func Decode(r io.Reader, format Format) (Definition, error) {
	var def Definition
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&def); err != nil && !errors.Is(err, io.EOF) {
			return Definition{}, err
		}
	case FormatHJSON:
		data, err := io.ReadAll(r)
		if err != nil {
			return Definition{}, err
		}
		// hjson decodes into generic values; round-trip through JSON to fill the typed struct.
		var raw map[string]interface{}
		if err := hjson.Unmarshal(data, &raw); err != nil {
			return Definition{}, err
		}
		data, err = json.Marshal(raw)
		if err != nil {
			return Definition{}, err
		}
		if err := json.Unmarshal(data, &def); err != nil {
			return Definition{}, err
		}
	default:
		return Definition{}, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	return def, nil
}

// Encode writes def as YAML.
func Encode(w io.Writer, def Definition) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(def); err != nil {
		return err
	}
	return enc.Close()
}
