// Package merge builds a server's effective configuration by resolving its
// declared environment variables against workspace-supplied values.
package merge

import (
	"log/slog"
	"strings"

	"github.com/mcpdeck/mcpdeck/internal/catalog"
)

// defaultPrefix is the human-readable label carried by catalog default
// values, e.g. "Default: ERROR". It is display noise and is stripped
// before the value is used.
const defaultPrefix = "Default: "

// Effective produces a server's effective configuration.
//
// For every environment variable the server declares, the workspace value is
// used when present and non-blank after trimming; otherwise the catalog
// default is used with the "Default: " label and trailing carriage returns
// stripped. Workspace variables the server does not declare are ignored, so
// unrelated secrets never leak into a server's config.
//
// The function is total: the catalog definition is never mutated, a server
// without declared env is returned as-is, and a malformed record is returned
// unchanged with the anomaly logged.
func Effective(def *catalog.ServerDefinition, vars map[string]string, logger *slog.Logger) *catalog.ServerDefinition {
	if logger == nil {
		logger = slog.Default()
	}
	if def == nil {
		logger.Warn("merge called with nil server definition")
		return def
	}
	if len(def.Env) == 0 {
		// Nothing to resolve; read-only sharing is safe.
		return def
	}

	out := def.Clone()
	for key, fallback := range def.Env {
		if value, ok := vars[key]; ok && strings.TrimSpace(value) != "" {
			out.Env[key] = value
			continue
		}
		out.Env[key] = CleanDefault(fallback)
	}

	return out
}

// CleanDefault strips the "Default: " label and trailing carriage-return
// noise from a catalog default value.
func CleanDefault(value string) string {
	value = strings.TrimPrefix(value, defaultPrefix)
	return strings.TrimRight(value, "\r")
}
