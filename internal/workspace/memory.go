package workspace

import (
	"github.com/cockroachdb/errors"

	"github.com/mcpdeck/mcpdeck/internal/catalog"
)

// MemStore is an in-memory Store for tests.
// It supports injecting write failures to exercise rollback paths.
type MemStore struct {
	// Config is the current MCP configuration document.
	Config *MCPConfig

	// EnvVars is the current environment-variables document.
	EnvVars *EnvVarsDoc

	// FailNextWrite makes the next WriteMCPConfig call fail without
	// modifying the stored document.
	FailNextWrite bool

	// Writes counts successful WriteMCPConfig calls.
	Writes int
}

var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		Config:  NewMCPConfig(),
		EnvVars: &EnvVarsDoc{Variables: map[string]string{}},
	}
}

// ReadMCPConfig returns a deep copy of the stored configuration, matching
// the file store's read-fresh semantics.
func (s *MemStore) ReadMCPConfig() (*MCPConfig, error) {
	out := NewMCPConfig()
	for id, def := range s.Config.MCPServers {
		out.MCPServers[id] = def.Clone()
	}
	return out, nil
}

// WriteMCPConfig replaces the stored configuration.
func (s *MemStore) WriteMCPConfig(cfg *MCPConfig) error {
	if cfg == nil || cfg.MCPServers == nil {
		return ErrInvalidMCPConfig
	}
	if s.FailNextWrite {
		s.FailNextWrite = false
		return errors.New("injected write failure")
	}

	stored := NewMCPConfig()
	for id, def := range cfg.MCPServers {
		stored.MCPServers[id] = def.Clone()
	}
	s.Config = stored
	s.Writes++
	return nil
}

// ReadEnvVars returns the stored environment-variables document.
func (s *MemStore) ReadEnvVars() (*EnvVarsDoc, error) {
	if s.EnvVars == nil {
		return &EnvVarsDoc{Variables: map[string]string{}}, nil
	}
	return s.EnvVars, nil
}

// EnsureEnvVars mimics the first-run template copy.
func (s *MemStore) EnsureEnvVars() (bool, error) {
	if s.EnvVars != nil && s.EnvVars.Version != "" {
		return false, nil
	}
	s.EnvVars = DefaultEnvVars()
	return true, nil
}

// SetServer stores a definition under the given ID, for test seeding.
func (s *MemStore) SetServer(id string, def *catalog.ServerDefinition) {
	s.Config.MCPServers[id] = def
}
