package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// Workspace-relative locations for the documents mcpdeck manages.
// These are fixed by the workspace layout and are not configurable.
const (
	// SettingsDirName is the settings directory inside the workspace.
	SettingsDirName = ".kiro/settings"

	// HooksDirName is the agent-hooks directory inside the workspace.
	HooksDirName = ".kiro/hooks"

	// MCPConfigFile is the active MCP server configuration document.
	MCPConfigFile = "mcp.json"

	// EnvVarsFile is the workspace environment-variables document.
	EnvVarsFile = "mcp-env.json"

	// CatalogBridgeFile is the workspace-visible copy of the bundled catalog.
	CatalogBridgeFile = "mcp-catalog.json"

	// HookFile is the write-once recommendation hook document.
	HookFile = "mcp-recommendations.kiro.hook"
)

// Sentinel errors for path resolution.
var (
	// ErrWorkspaceNotFound indicates the workspace root could not be determined.
	ErrWorkspaceNotFound = errors.New("workspace root not found")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ResolveWorkspace returns the workspace root.
// If root is non-empty it is cleaned and returned; otherwise the current
// working directory is used.
func ResolveWorkspace(root string) (string, error) {
	if root != "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return "", errors.Wrapf(ErrWorkspaceNotFound, "resolving %q", root)
		}
		return abs, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(ErrWorkspaceNotFound, err.Error())
	}
	return cwd, nil
}

// SettingsDir returns the workspace settings directory.
// Returns: <workspace>/.kiro/settings
func SettingsDir(workspace string) string {
	return filepath.Join(workspace, filepath.FromSlash(SettingsDirName))
}

// HooksDir returns the workspace agent-hooks directory.
// Returns: <workspace>/.kiro/hooks
func HooksDir(workspace string) string {
	return filepath.Join(workspace, filepath.FromSlash(HooksDirName))
}

// MCPConfigPath returns the path to the active MCP configuration document.
// Returns: <workspace>/.kiro/settings/mcp.json
func MCPConfigPath(workspace string) string {
	return filepath.Join(SettingsDir(workspace), MCPConfigFile)
}

// EnvVarsPath returns the path to the environment-variables document.
// Returns: <workspace>/.kiro/settings/mcp-env.json
func EnvVarsPath(workspace string) string {
	return filepath.Join(SettingsDir(workspace), EnvVarsFile)
}

// CatalogBridgePath returns the path of the workspace-visible catalog copy.
// Returns: <workspace>/.kiro/settings/mcp-catalog.json
func CatalogBridgePath(workspace string) string {
	return filepath.Join(SettingsDir(workspace), CatalogBridgeFile)
}

// HookPath returns the path to the recommendation hook document.
// Returns: <workspace>/.kiro/hooks/mcp-recommendations.kiro.hook
func HookPath(workspace string) string {
	return filepath.Join(HooksDir(workspace), HookFile)
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// AppConfigDir returns the application configuration directory.
// Returns: <ConfigHome>/mcpdeck/
func AppConfigDir() string {
	return filepath.Join(ConfigHome(), "mcpdeck")
}
