// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/enrichment-engine/pkg/types"
)

// Format selects the serialization of a saved analysis.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the format from a file name: .json is JSON, anything
// else is YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Encode writes a in the given format.
func Encode(w io.Writer, a *types.Analysis, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(a); err != nil {
			return fmt.Errorf("encoding analysis as JSON: %w", err)
		}
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(a); err != nil {
			return fmt.Errorf("encoding analysis as YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", f)
	}
	return nil
}

// Decode reads an analysis in the given format.
func Decode(data []byte, f Format) (*types.Analysis, error) {
	var a types.Analysis
	switch f {
	case FormatJSON:
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("parsing analysis JSON: %w", err)
		}
	case FormatYAML, "":
		if err := yaml.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("parsing analysis YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q: use yaml or json", f)
	}
	return &a, nil
}

// Save writes a to path, replacing any existing file. The file is
// written to a temporary name in the same directory and renamed into
// place.
func Save(path string, a *types.Analysis) error {
	var buf bytes.Buffer
	if err := Encode(&buf, a, FormatFor(path)); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".analysis-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(buf.Bytes())
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Load reads an analysis saved with Save.
func Load(path string) (*types.Analysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Decode(data, FormatFor(path))
}
