package workspace

import (
	"github.com/mcpdeck/mcpdeck/internal/catalog"
)

// MCPConfig is the workspace MCP configuration document: a mapping from
// server ID to that server's effective configuration. This is the single
// source of truth for "what is currently active".
type MCPConfig struct {
	MCPServers map[string]*catalog.ServerDefinition `json:"mcpServers"`
}

// NewMCPConfig creates an empty MCPConfig with an initialized map.
func NewMCPConfig() *MCPConfig {
	return &MCPConfig{
		MCPServers: make(map[string]*catalog.ServerDefinition),
	}
}

// IDs returns the active server IDs in the document, unordered.
func (c *MCPConfig) IDs() []string {
	ids := make([]string, 0, len(c.MCPServers))
	for id := range c.MCPServers {
		ids = append(ids, id)
	}
	return ids
}

// EnvVarsDoc is the workspace environment-variables document.
// User-owned: mutated only by direct user edits or by the first-run
// template copy. Never overwritten once present.
type EnvVarsDoc struct {
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Variables   map[string]string `json:"variables"`
	Notes       map[string]string `json:"notes,omitempty"`
}

// EnvVarsVersion is the schema version written by the first-run template.
const EnvVarsVersion = "1.0.0"

// DefaultEnvVars returns the first-run environment-variables template.
func DefaultEnvVars() *EnvVarsDoc {
	return &EnvVarsDoc{
		Version:     EnvVarsVersion,
		Description: "Workspace values for MCP server environment variables. Values are stored in plaintext; do not commit secrets.",
		Variables:   map[string]string{},
		Notes: map[string]string{
			"GITHUB_PERSONAL_ACCESS_TOKEN": "Fine-grained token with repo read access is enough for most servers.",
			"AWS_DOCUMENTATION_PARTITION":  "Use aws-cn for China-region documentation.",
		},
	}
}
