package adapters

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"addon-installer/internal/ports"
	"addon-installer/internal/types"
)

// ManifestFileAdapter loads add-on manifests. YAML and JSON documents are
// a top-level list of records; TOML documents use an [[addons]] table
// array. Unknown keys are rejected in every format.
type ManifestFileAdapter struct{}

func NewManifestFileAdapter() ManifestFileAdapter {
	return ManifestFileAdapter{}
}

var _ ports.ManifestPort = ManifestFileAdapter{}

func (a ManifestFileAdapter) Load(path string) (types.Manifest, error) {
	format, err := ManifestFormatOf(path)
	if err != nil {
		return types.Manifest{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Manifest{}, errbuilder.New().
			WithCode(types.CodeConfiguration).
			WithMsg("manifest file not found: " + path).
			WithCause(err)
	}
	var records []types.ManifestRecord
	switch format {
	case types.ManifestFormatTOML:
		records, err = decodeTOMLManifest(data)
	default:
		records, err = decodeYAMLManifest(data)
	}
	if err != nil {
		return types.Manifest{}, errbuilder.New().
			WithCode(types.CodeConfiguration).
			WithMsg("failed to parse " + string(format) + " manifest " + path).
			WithCause(err)
	}
	return types.Manifest{Path: path, Format: format, Records: records}, nil
}

// ManifestFormatOf picks the manifest format from the file extension.
func ManifestFormatOf(path string) (types.ManifestFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return types.ManifestFormatYAML, nil
	case ".json":
		return types.ManifestFormatJSON, nil
	case ".toml":
		return types.ManifestFormatTOML, nil
	default:
		return "", errbuilder.New().
			WithCode(types.CodeConfiguration).
			WithMsg("unsupported manifest extension for " + path + " (want .yaml, .yml, .json or .toml)")
	}
}

// JSON is a subset of YAML, so both go through the YAML decoder.
func decodeYAMLManifest(data []byte) ([]types.ManifestRecord, error) {
	var records []types.ManifestRecord
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return records, nil
}

func decodeTOMLManifest(data []byte) ([]types.ManifestRecord, error) {
	var doc types.TOMLManifest
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Addons, nil
}
