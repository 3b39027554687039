// Package hook installs the workspace recommendation hook and bridges the
// bundled catalog into the workspace so an external agent can read it.
//
// The hook document is write-once: an existing file is sanity-checked but
// never rewritten, so user edits (enabling the hook, changing its prompt)
// always survive.
package hook

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/mcpdeck/mcpdeck/internal/catalog"
	"github.com/mcpdeck/mcpdeck/internal/errors"
	"github.com/mcpdeck/mcpdeck/internal/paths"
	"github.com/mcpdeck/mcpdeck/pkg/fileutil"
)

// ErrInvalidHook indicates a hook document failed the structural sanity check.
var ErrInvalidHook = errors.New("invalid hook document")

// Manager installs and refreshes the workspace hook artifacts.
type Manager struct {
	workspace string
	catalog   *catalog.Store
	logger    *slog.Logger
}

// NewManager creates a Manager rooted at the given workspace.
// If logger is nil, slog.Default is used.
func NewManager(workspace string, cat *catalog.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		workspace: workspace,
		catalog:   cat,
		logger:    logger,
	}
}

// HookPath returns the path of the hook document this manager owns.
func (m *Manager) HookPath() string {
	return paths.HookPath(m.workspace)
}

// EnsureHook installs the recommendation hook if it is not already present.
// Returns true when a new hook document was written.
//
// An existing document is given a shallow structural check; a failing check
// is logged so doctor can report it, but the file is left alone.
func (m *Manager) EnsureHook() (bool, error) {
	path := m.HookPath()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var doc Doc
		if jsonErr := json.Unmarshal(data, &doc); jsonErr != nil {
			m.logger.Warn("existing hook document is not valid JSON, leaving it alone", "path", path)
			return false, nil
		}
		if checkErr := Validate(&doc); checkErr != nil {
			m.logger.Warn("existing hook document failed sanity check, leaving it alone",
				"path", path, "error", checkErr)
		}
		return false, nil
	case !os.IsNotExist(err):
		return false, errors.Wrap(err, "checking hook document")
	}

	doc := defaultHook(m.workspace)
	if err := Validate(doc); err != nil {
		return false, errors.Wrap(err, "built hook template failed validation")
	}

	if err := paths.EnsureDir(paths.HooksDir(m.workspace), 0o755); err != nil {
		return false, errors.Wrap(err, "creating hooks directory")
	}
	if err := fileutil.AtomicWriteJSON(path, doc); err != nil {
		return false, errors.Wrap(err, "writing hook document")
	}

	m.logger.Info("installed recommendation hook", "path", path)
	return true, nil
}

// BridgeCatalog copies the catalog document to a workspace-visible path.
// An external agent can only see workspace files, not files bundled into
// the binary; the copy is a capability bridge, not a cache, and is
// refreshed on every call.
func (m *Manager) BridgeCatalog() error {
	raw, err := m.catalog.Raw()
	if err != nil {
		return err
	}

	if err := paths.EnsureDir(paths.SettingsDir(m.workspace), 0o755); err != nil {
		return errors.Wrap(err, "creating settings directory")
	}
	if err := fileutil.AtomicWriteFile(paths.CatalogBridgePath(m.workspace), raw, 0o644); err != nil {
		return errors.Wrap(err, "writing catalog bridge")
	}

	m.logger.Debug("refreshed catalog bridge", "path", paths.CatalogBridgePath(m.workspace))
	return nil
}

// Validate performs the shallow structural check applied both to existing
// hook documents and to freshly built templates.
func Validate(doc *Doc) error {
	if doc == nil {
		return errors.Wrap(ErrInvalidHook, "document is nil")
	}
	if doc.Name == "" {
		return errors.Wrap(ErrInvalidHook, "missing name")
	}
	if doc.When.Type == "" {
		return errors.Wrap(ErrInvalidHook, "missing trigger type")
	}
	if doc.Then.Type != "askAgent" {
		return errors.Wrapf(ErrInvalidHook, "action type %q, want askAgent", doc.Then.Type)
	}
	if doc.Then.Prompt == "" {
		return errors.Wrap(ErrInvalidHook, "missing prompt")
	}
	return nil
}

// defaultHook builds the hook template. Disabled by default: the user
// opts in by flipping the enabled flag in the written file.
func defaultHook(workspace string) *Doc {
	return &Doc{
		Enabled:     false,
		Name:        "MCP Server Recommendations",
		Description: "Suggests MCP servers from the catalog based on what this project uses",
		Version:     "1",
		When: When{
			Type: "fileEdited",
			Patterns: []string{
				"README.md",
				"package.json",
				"requirements.txt",
				"pyproject.toml",
				"go.mod",
				"Cargo.toml",
			},
		},
		Then: Then{
			Type:   "askAgent",
			Prompt: recommendationPrompt(),
		},
	}
}

func recommendationPrompt() string {
	return fmt.Sprintf(`Analyze this project's languages, frameworks, and tooling, then read the MCP server catalog at %s/%s.

Recommend servers from that catalog that would help someone working in this project. Respond with ONLY a JSON array in this exact form, no prose before or after:

[{"serverId": "<id from the catalog>", "reason": "<one sentence on why this project needs it>"}]

Rules:
- serverId must be a key from the catalog's "servers" object. Never invent IDs.
- Recommend at most 5 servers.
- If nothing in the catalog fits, respond with [].`,
		paths.SettingsDirName, paths.CatalogBridgeFile)
}
