package doctor

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mcpdeck/mcpdeck/internal/catalog"
	"github.com/mcpdeck/mcpdeck/internal/paths"
	"github.com/mcpdeck/mcpdeck/internal/workspace"
)

// CatalogCheck verifies the server catalog loads and is structurally valid.
type CatalogCheck struct {
	Catalog *catalog.Store
}

func (c *CatalogCheck) Name() string     { return "catalog-loads" }
func (c *CatalogCheck) Category() string { return "catalog" }

func (c *CatalogCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	doc, err := c.Catalog.Load()
	if err != nil {
		result.Status = SeverityError
		result.Message = "server catalog failed to load"
		result.Details = map[string]any{"error": err.Error()}
		result.FixHint = "If a catalog override is configured, fix or remove it; the bundled catalog always loads."
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("catalog loaded with %d servers", len(doc.Servers))
	return result
}

// TemplatesCheck verifies group templates load and reference known servers.
type TemplatesCheck struct {
	Catalog *catalog.Store
}

func (c *TemplatesCheck) Name() string     { return "group-templates" }
func (c *TemplatesCheck) Category() string { return "catalog" }

func (c *TemplatesCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	templates, err := c.Catalog.LoadTemplates()
	if err != nil {
		result.Status = SeverityError
		result.Message = "group templates failed to load"
		result.Details = map[string]any{"error": err.Error()}
		return result
	}

	doc, err := c.Catalog.Load()
	if err != nil {
		result.Status = SeverityError
		result.Message = "catalog unavailable for cross-checking templates"
		result.Details = map[string]any{"error": err.Error()}
		return result
	}

	var dangling []string
	for key, tpl := range templates.Templates {
		for _, id := range tpl.Servers {
			if _, ok := doc.Servers[id]; !ok {
				dangling = append(dangling, fmt.Sprintf("%s -> %s", key, id))
			}
		}
	}
	if len(dangling) > 0 {
		sort.Strings(dangling)
		result.Status = SeverityWarning
		result.Message = "group templates reference servers missing from the catalog"
		result.Details = map[string]any{"references": dangling}
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%d group templates reference only known servers", len(templates.Templates))
	return result
}

// MCPConfigCheck verifies the active configuration document parses and its
// entries exist in the catalog.
type MCPConfigCheck struct {
	Store   workspace.Store
	Catalog *catalog.Store
	Path    string
}

func (c *MCPConfigCheck) Name() string     { return "mcp-config" }
func (c *MCPConfigCheck) Category() string { return "workspace" }

func (c *MCPConfigCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if _, err := os.Stat(c.Path); os.IsNotExist(err) {
		result.Status = SeverityInfo
		result.Message = "no active configuration"
		result.FixHint = "Run: mcpdeck group load <group> or mcpdeck server enable <id>"
		return result
	}

	cfg, err := c.Store.ReadMCPConfig()
	if err != nil {
		result.Status = SeverityError
		result.Message = "active configuration is corrupt"
		result.Details = map[string]any{"path": c.Path, "error": err.Error()}
		result.FixHint = "Restore the file from version control, or delete it and reload a group."
		return result
	}

	var unknown []string
	if doc, catErr := c.Catalog.Load(); catErr == nil {
		for _, id := range cfg.IDs() {
			if _, ok := doc.Servers[id]; !ok {
				unknown = append(unknown, id)
			}
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		result.Status = SeverityWarning
		result.Message = "active configuration contains servers unknown to the catalog"
		result.Details = map[string]any{"servers": unknown}
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("active configuration is valid with %d servers", len(cfg.MCPServers))
	return result
}

// TransportCheck warns about active servers declaring both a local command
// and a remote URL. Consumers pick one transport; which one wins is
// consumer-defined, so the ambiguity is worth flagging.
type TransportCheck struct {
	Store workspace.Store
}

func (c *TransportCheck) Name() string     { return "transport-exclusivity" }
func (c *TransportCheck) Category() string { return "workspace" }

func (c *TransportCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	cfg, err := c.Store.ReadMCPConfig()
	if err != nil {
		result.Status = SeverityInfo
		result.Message = "active configuration unreadable, transport check skipped"
		return result
	}

	var ambiguous []string
	for id, def := range cfg.MCPServers {
		if def != nil && def.Command != "" && def.HTTPURL != "" {
			ambiguous = append(ambiguous, id)
		}
	}
	if len(ambiguous) > 0 {
		sort.Strings(ambiguous)
		result.Status = SeverityWarning
		result.Message = "servers declare both a command and an httpUrl"
		result.Details = map[string]any{"servers": ambiguous}
		result.FixHint = "Edit the entry to keep exactly one transport."
		return result
	}

	result.Status = SeverityPass
	result.Message = "every active server declares a single transport"
	return result
}

// EnvVarsCheck verifies the environment-variables document parses and has
// private permissions.
type EnvVarsCheck struct {
	Path string
}

func (c *EnvVarsCheck) Name() string     { return "env-vars" }
func (c *EnvVarsCheck) Category() string { return "workspace" }

func (c *EnvVarsCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	info, err := os.Stat(c.Path)
	if os.IsNotExist(err) {
		result.Status = SeverityInfo
		result.Message = "environment-variables document not created yet"
		result.FixHint = "Run: mcpdeck env edit"
		return result
	}
	if err != nil {
		result.Status = SeverityError
		result.Message = "environment-variables document unreadable"
		result.Details = map[string]any{"error": err.Error()}
		return result
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		result.Status = SeverityError
		result.Message = "environment-variables document unreadable"
		result.Details = map[string]any{"error": err.Error()}
		return result
	}
	var doc workspace.EnvVarsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		result.Status = SeverityWarning
		result.Message = "environment-variables document is not valid JSON; values will be ignored"
		result.Details = map[string]any{"path": c.Path}
		result.FixHint = "Fix the JSON by hand or delete the file and run: mcpdeck env edit"
		return result
	}

	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		result.Status = SeverityWarning
		result.Message = "environment-variables document is readable by other users"
		result.Details = map[string]any{"permissions": fmt.Sprintf("%o", perm)}
		result.FixHint = fmt.Sprintf("Run: chmod 600 %s", c.Path)
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("environment-variables document is valid with %d values", len(doc.Variables))
	return result
}

// HookCheck verifies the recommendation hook, when present, has the
// required shape.
type HookCheck struct {
	Path string
}

func (c *HookCheck) Name() string     { return "recommendation-hook" }
func (c *HookCheck) Category() string { return "hook" }

func (c *HookCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	data, err := os.ReadFile(c.Path)
	if os.IsNotExist(err) {
		result.Status = SeverityInfo
		result.Message = "recommendation hook not installed"
		result.FixHint = "Run: mcpdeck hook init"
		return result
	}
	if err != nil {
		result.Status = SeverityError
		result.Message = "hook document unreadable"
		result.Details = map[string]any{"error": err.Error()}
		return result
	}

	var doc struct {
		Enabled bool   `json:"enabled"`
		Name    string `json:"name"`
		When    struct {
			Type string `json:"type"`
		} `json:"when"`
		Then struct {
			Type   string `json:"type"`
			Prompt string `json:"prompt"`
		} `json:"then"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		result.Status = SeverityWarning
		result.Message = "hook document is not valid JSON"
		result.FixHint = "Delete the file and run: mcpdeck hook init"
		return result
	}

	var missing []string
	if doc.Name == "" {
		missing = append(missing, "name")
	}
	if doc.When.Type == "" {
		missing = append(missing, "when.type")
	}
	if doc.Then.Type == "" || doc.Then.Prompt == "" {
		missing = append(missing, "then")
	}
	if len(missing) > 0 {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("hook document missing required fields: %s", strings.Join(missing, ", "))
		result.FixHint = "Delete the file and run: mcpdeck hook init"
		return result
	}

	result.Status = SeverityPass
	result.Message = "recommendation hook is installed and well-formed"
	result.Details = map[string]any{"enabled": doc.Enabled}
	return result
}

// DefaultChecks builds the standard check set for a workspace.
func DefaultChecks(ws string, cat *catalog.Store, store workspace.Store) []Check {
	return []Check{
		&CatalogCheck{Catalog: cat},
		&TemplatesCheck{Catalog: cat},
		&MCPConfigCheck{Store: store, Catalog: cat, Path: paths.MCPConfigPath(ws)},
		&TransportCheck{Store: store},
		&EnvVarsCheck{Path: paths.EnvVarsPath(ws)},
		&HookCheck{Path: paths.HookPath(ws)},
	}
}
