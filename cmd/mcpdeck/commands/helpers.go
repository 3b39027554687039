package commands

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mcpdeck/mcpdeck/internal/catalog"
	"github.com/mcpdeck/mcpdeck/internal/paths"
	"github.com/mcpdeck/mcpdeck/internal/workspace"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// truncate shortens a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// confirm prompts for a yes/no answer on r. Anything other than an
// explicit yes counts as no.
func confirm(w io.Writer, r io.Reader, prompt string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", prompt)

	reader := bufio.NewReader(r)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

// workspaceRoot resolves the workspace directory from the --workspace flag,
// the configuration file, or the current directory, in that order.
func workspaceRoot() (string, error) {
	root := workspaceFlag
	if root == "" && appCfg != nil {
		root = appCfg.WorkspaceRoot
	}
	return paths.ResolveWorkspace(root)
}

// catalogStore builds the catalog store, honoring configured overrides.
func catalogStore() *catalog.Store {
	var opts []catalog.Option
	if appCfg != nil && appCfg.CatalogPath != "" {
		opts = append(opts, catalog.WithCatalogPath(appCfg.CatalogPath))
	}
	if appCfg != nil && appCfg.TemplatesPath != "" {
		opts = append(opts, catalog.WithTemplatesPath(appCfg.TemplatesPath))
	}
	return catalog.NewStore(opts...)
}

// workspaceStore builds the file-backed workspace store for the resolved
// workspace root.
func workspaceStore(logger *slog.Logger) (workspace.Store, string, error) {
	ws, err := workspaceRoot()
	if err != nil {
		return nil, "", err
	}
	return workspace.NewFileStore(ws, logger), ws, nil
}

// transportLabel describes how a server is reached.
func transportLabel(def *catalog.ServerDefinition) string {
	switch {
	case def == nil:
		return "unknown"
	case def.IsRemote():
		return "http"
	case def.IsLocal():
		return "stdio"
	default:
		return "unknown"
	}
}
