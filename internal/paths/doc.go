// Package paths centralizes file system locations used by mcpdeck.
//
// Two kinds of paths live here: workspace-relative locations for the
// documents mcpdeck owns (the MCP configuration, the environment-variables
// document, the catalog bridge copy, and the recommendation hook), and
// XDG-based locations for the application's own configuration.
//
// The workspace layout is fixed:
//
//	<workspace>/.kiro/settings/mcp.json
//	<workspace>/.kiro/settings/mcp-env.json
//	<workspace>/.kiro/settings/mcp-catalog.json
//	<workspace>/.kiro/hooks/mcp-recommendations.kiro.hook
package paths
