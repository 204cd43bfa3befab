package seeder

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Lumos-Labs-HQ/knights/internal/types"
	"gopkg.in/yaml.v3"
)

//go:embed sample.json
var sampleJSON []byte

// SampleData returns the built-in sample batch.
func SampleData() (types.SeedData, error) {
	return DecodeSeed(bytes.NewReader(sampleJSON), "json")
}

// ReadSeedFile decodes a JSON or YAML seed file, picked by extension.
func ReadSeedFile(path string) (types.SeedData, error) {
	var format string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		format = "json"
	case ".yaml", ".yml":
		format = "yaml"
	default:
		return types.SeedData{}, fmt.Errorf("%w: unsupported seed file extension %q", types.ErrInvalidArgument, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return types.SeedData{}, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return DecodeSeed(f, format)
}

func DecodeSeed(r io.Reader, format string) (types.SeedData, error) {
	var data types.SeedData
	switch format {
	case "json":
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&data); err != nil {
			return data, fmt.Errorf("%w: failed to parse JSON seed: %v", types.ErrInvalidArgument, err)
		}
	case "yaml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&data); err != nil && err != io.EOF {
			return data, fmt.Errorf("%w: failed to parse YAML seed: %v", types.ErrInvalidArgument, err)
		}
	default:
		return data, fmt.Errorf("%w: unknown seed format %q", types.ErrInvalidArgument, format)
	}
	return data, nil
}
