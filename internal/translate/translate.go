// Package translate renders the active MCP configuration in alternative
// formats, for pasting into tools that take their server config as TOML
// or YAML rather than Kiro's JSON.
package translate

import (
	"encoding/json"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/mcpdeck/mcpdeck/internal/errors"
	"github.com/mcpdeck/mcpdeck/internal/workspace"
)

// Format names an export serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat indicates an unsupported export format was requested.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q (want json, toml, or yaml)", s)
	}
}

// Render serializes the configuration document in the requested format.
//
// Key names follow the JSON wire form in every format, so a server's
// httpUrl stays httpUrl whether rendered as JSON, TOML, or YAML. This is
// done by round-tripping through the JSON representation before handing
// the document to the target encoder.
func Render(cfg *workspace.MCPConfig, format Format) ([]byte, error) {
	if cfg == nil || cfg.MCPServers == nil {
		return nil, errors.Wrap(workspace.ErrInvalidMCPConfig, "nothing to export")
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "encoding JSON")
		}
		return append(data, '\n'), nil
	case FormatTOML:
		doc, err := toWireMap(cfg)
		if err != nil {
			return nil, err
		}
		data, err := toml.Marshal(doc)
		if err != nil {
			return nil, errors.Wrap(err, "encoding TOML")
		}
		return data, nil
	case FormatYAML:
		doc, err := toWireMap(cfg)
		if err != nil {
			return nil, err
		}
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, errors.Wrap(err, "encoding YAML")
		}
		return data, nil
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

// toWireMap converts the typed document into a generic map keyed the way
// the JSON form is keyed.
func toWireMap(cfg *workspace.MCPConfig) (map[string]any, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "normalizing document")
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "normalizing document")
	}
	return doc, nil
}
