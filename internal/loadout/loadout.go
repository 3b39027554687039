// Package loadout builds and mutates the active MCP configuration from
// catalog definitions and workspace environment values.
//
// Group loading is a total replacement; enabling or disabling a single
// server is an incremental read-modify-write of one key.
package loadout

import (
	"log/slog"
	"sort"

	"github.com/mcpdeck/mcpdeck/internal/catalog"
	"github.com/mcpdeck/mcpdeck/internal/merge"
	"github.com/mcpdeck/mcpdeck/internal/workspace"
)

// Builder assembles effective configurations for sets of catalog servers.
type Builder struct {
	catalog *catalog.Store
	store   workspace.Store
	logger  *slog.Logger
}

// NewBuilder creates a Builder.
// If logger is nil, slog.Default is used.
func NewBuilder(cat *catalog.Store, store workspace.Store, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		catalog: cat,
		store:   store,
		logger:  logger,
	}
}

// Result describes the outcome of building a configuration.
type Result struct {
	// Loaded holds the IDs written to the configuration, sorted.
	Loaded []string

	// Skipped holds IDs that were requested but could not be built
	// (unknown to the catalog), sorted.
	Skipped []string
}

// Build constructs a full replacement configuration for the given server IDs
// using the current environment-variable values. IDs unknown to the catalog
// are skipped and reported, not fatal to the batch.
func (b *Builder) Build(ids []string) (*workspace.MCPConfig, *Result, error) {
	doc, err := b.catalog.Load()
	if err != nil {
		return nil, nil, err
	}

	vars, err := b.store.ReadEnvVars()
	if err != nil {
		return nil, nil, err
	}

	cfg := workspace.NewMCPConfig()
	result := &Result{}

	for _, id := range ids {
		def, ok := doc.Servers[id]
		if !ok || def == nil {
			b.logger.Warn("skipping server unknown to catalog", "server", id)
			result.Skipped = append(result.Skipped, id)
			continue
		}
		cfg.MCPServers[id] = merge.Effective(def, vars.Variables, b.logger)
		result.Loaded = append(result.Loaded, id)
	}

	sort.Strings(result.Loaded)
	sort.Strings(result.Skipped)
	return cfg, result, nil
}

// LoadGroup replaces the active configuration with a fresh build of the
// named group. Loading a group is a total replacement operation, not a
// merge: the prior configuration does not survive.
func (b *Builder) LoadGroup(key string) (*Result, error) {
	tpl, err := b.catalog.Group(key)
	if err != nil {
		return nil, err
	}

	cfg, result, err := b.Build(tpl.Servers)
	if err != nil {
		return nil, err
	}

	if err := b.store.WriteMCPConfig(cfg); err != nil {
		return nil, err
	}

	b.logger.Info("loaded group", "group", key, "servers", len(result.Loaded))
	return result, nil
}

// Enable adds a single server to the active configuration with its
// effective configuration. Existing entries for other servers are untouched.
func (b *Builder) Enable(id string) error {
	def, err := b.catalog.Get(id)
	if err != nil {
		return err
	}

	vars, err := b.store.ReadEnvVars()
	if err != nil {
		return err
	}

	cfg, err := b.store.ReadMCPConfig()
	if err != nil {
		return err
	}

	cfg.MCPServers[id] = merge.Effective(def, vars.Variables, b.logger)
	if err := b.store.WriteMCPConfig(cfg); err != nil {
		return err
	}

	b.logger.Info("enabled server", "server", id)
	return nil
}

// Disable removes a single server from the active configuration.
// Returns false if the server was not active; removal is idempotent.
func (b *Builder) Disable(id string) (bool, error) {
	cfg, err := b.store.ReadMCPConfig()
	if err != nil {
		return false, err
	}

	if _, ok := cfg.MCPServers[id]; !ok {
		return false, nil
	}

	delete(cfg.MCPServers, id)
	if err := b.store.WriteMCPConfig(cfg); err != nil {
		return false, err
	}

	b.logger.Info("disabled server", "server", id)
	return true, nil
}
