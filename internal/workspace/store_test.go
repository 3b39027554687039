package workspace

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/mcpdeck/mcpdeck/internal/catalog"
	"github.com/mcpdeck/mcpdeck/internal/logging"
	"github.com/mcpdeck/mcpdeck/internal/paths"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	ws := t.TempDir()
	return NewFileStore(ws, logging.ForTest(t)), ws
}

func TestReadMCPConfigMissingFile(t *testing.T) {
	store, _ := newTestStore(t)

	cfg, err := store.ReadMCPConfig()
	if err != nil {
		t.Fatalf("ReadMCPConfig() error = %v", err)
	}
	if cfg == nil || cfg.MCPServers == nil {
		t.Fatal("missing file should read as empty config")
	}
	if len(cfg.MCPServers) != 0 {
		t.Errorf("MCPServers len = %d, want 0", len(cfg.MCPServers))
	}
}

func TestReadMCPConfigCorrupt(t *testing.T) {
	store, ws := newTestStore(t)

	if err := paths.EnsureDir(paths.SettingsDir(ws), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.MCPConfigPath(), []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := store.ReadMCPConfig()
	if !errors.Is(err, ErrCorruptMCPConfig) {
		t.Errorf("error = %v, want ErrCorruptMCPConfig", err)
	}
}

func TestWriteMCPConfigRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	cfg := NewMCPConfig()
	cfg.MCPServers["github"] = &catalog.ServerDefinition{
		Command: "npx",
		Args:    []string{"-y", "@modelcontextprotocol/server-github"},
		Env:     map[string]string{"GITHUB_PERSONAL_ACCESS_TOKEN": "ghp_test"},
	}
	cfg.MCPServers["fetch"] = &catalog.ServerDefinition{
		Command: "uvx",
		Args:    []string{"mcp-server-fetch"},
	}

	if err := store.WriteMCPConfig(cfg); err != nil {
		t.Fatalf("WriteMCPConfig() error = %v", err)
	}

	got, err := store.ReadMCPConfig()
	if err != nil {
		t.Fatalf("ReadMCPConfig() error = %v", err)
	}

	wantIDs := []string{"fetch", "github"}
	gotIDs := got.IDs()
	slices.Sort(gotIDs)
	if !slices.Equal(gotIDs, wantIDs) {
		t.Errorf("IDs = %v, want %v", gotIDs, wantIDs)
	}
	if got.MCPServers["github"].Env["GITHUB_PERSONAL_ACCESS_TOKEN"] != "ghp_test" {
		t.Error("env value lost in round trip")
	}
}

func TestWriteMCPConfigRejectsInvalidShape(t *testing.T) {
	store, _ := newTestStore(t)

	tests := []struct {
		name string
		cfg  *MCPConfig
	}{
		{"nil config", nil},
		{"nil servers map", &MCPConfig{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.WriteMCPConfig(tt.cfg)
			if !errors.Is(err, ErrInvalidMCPConfig) {
				t.Errorf("error = %v, want ErrInvalidMCPConfig", err)
			}
			// Fail fast: no file may appear
			if _, statErr := os.Stat(store.MCPConfigPath()); !os.IsNotExist(statErr) {
				t.Error("no file should be written for an invalid document")
			}
		})
	}
}

func TestWriteMCPConfigCreatesDirectory(t *testing.T) {
	store, ws := newTestStore(t)

	if err := store.WriteMCPConfig(NewMCPConfig()); err != nil {
		t.Fatalf("WriteMCPConfig() error = %v", err)
	}

	info, err := os.Stat(paths.SettingsDir(ws))
	if err != nil || !info.IsDir() {
		t.Errorf("settings directory not created: %v", err)
	}

	// Written document is a valid, parseable mapping even when empty
	data, err := os.ReadFile(store.MCPConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("written document not parseable: %v", err)
	}
	if _, ok := doc["mcpServers"]; !ok {
		t.Error("written document missing mcpServers key")
	}
}

func TestReadEnvVars(t *testing.T) {
	t.Run("missing file degrades to empty", func(t *testing.T) {
		store, _ := newTestStore(t)

		doc, err := store.ReadEnvVars()
		if err != nil {
			t.Fatalf("ReadEnvVars() error = %v", err)
		}
		if doc.Variables == nil || len(doc.Variables) != 0 {
			t.Errorf("Variables = %v, want empty map", doc.Variables)
		}
	})

	t.Run("corrupt file degrades to empty", func(t *testing.T) {
		store, ws := newTestStore(t)

		if err := paths.EnsureDir(paths.SettingsDir(ws), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(store.EnvVarsPath(), []byte("not json"), 0600); err != nil {
			t.Fatal(err)
		}

		doc, err := store.ReadEnvVars()
		if err != nil {
			t.Fatalf("ReadEnvVars() error = %v", err)
		}
		if len(doc.Variables) != 0 {
			t.Errorf("Variables = %v, want empty map", doc.Variables)
		}
	})

	t.Run("reads existing values", func(t *testing.T) {
		store, ws := newTestStore(t)

		if err := paths.EnsureDir(paths.SettingsDir(ws), 0o755); err != nil {
			t.Fatal(err)
		}
		content := `{"version":"1.0.0","variables":{"AWS_REGION":"eu-west-1"}}`
		if err := os.WriteFile(store.EnvVarsPath(), []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		doc, err := store.ReadEnvVars()
		if err != nil {
			t.Fatalf("ReadEnvVars() error = %v", err)
		}
		if doc.Variables["AWS_REGION"] != "eu-west-1" {
			t.Errorf("AWS_REGION = %q, want %q", doc.Variables["AWS_REGION"], "eu-west-1")
		}
	})
}

func TestEnsureEnvVars(t *testing.T) {
	store, _ := newTestStore(t)

	created, err := store.EnsureEnvVars()
	if err != nil {
		t.Fatalf("EnsureEnvVars() error = %v", err)
	}
	if !created {
		t.Error("first call should create the document")
	}

	// Template is private: it will hold secrets
	info, err := os.Stat(store.EnvVarsPath())
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("permissions = %o, want 600", perm)
	}

	// Second call never overwrites
	if err := os.WriteFile(store.EnvVarsPath(), []byte(`{"version":"1.0.0","variables":{"EDITED":"yes"}}`), 0600); err != nil {
		t.Fatal(err)
	}
	created, err = store.EnsureEnvVars()
	if err != nil {
		t.Fatalf("EnsureEnvVars() second call error = %v", err)
	}
	if created {
		t.Error("second call must not recreate the document")
	}

	doc, err := store.ReadEnvVars()
	if err != nil {
		t.Fatal(err)
	}
	if doc.Variables["EDITED"] != "yes" {
		t.Error("user edits were overwritten")
	}
}

func TestMemStoreMatchesFileStoreSemantics(t *testing.T) {
	mem := NewMemStore()

	// Invalid shape rejected
	if err := mem.WriteMCPConfig(nil); !errors.Is(err, ErrInvalidMCPConfig) {
		t.Errorf("error = %v, want ErrInvalidMCPConfig", err)
	}

	// Reads are isolated copies
	cfg := NewMCPConfig()
	cfg.MCPServers["git"] = &catalog.ServerDefinition{Command: "uvx"}
	if err := mem.WriteMCPConfig(cfg); err != nil {
		t.Fatal(err)
	}

	read, _ := mem.ReadMCPConfig()
	read.MCPServers["git"].Command = "mutated"

	again, _ := mem.ReadMCPConfig()
	if again.MCPServers["git"].Command != "uvx" {
		t.Error("ReadMCPConfig must return isolated copies")
	}

	// Injected failure leaves stored document untouched
	mem.FailNextWrite = true
	bad := NewMCPConfig()
	if err := mem.WriteMCPConfig(bad); err == nil {
		t.Fatal("expected injected write failure")
	}
	current, _ := mem.ReadMCPConfig()
	if len(current.MCPServers) != 1 {
		t.Error("failed write must not modify the stored document")
	}
}

func TestDefaultEnvVars(t *testing.T) {
	doc := DefaultEnvVars()
	if doc.Version != EnvVarsVersion {
		t.Errorf("Version = %q, want %q", doc.Version, EnvVarsVersion)
	}
	if doc.Variables == nil {
		t.Error("Variables must be initialized")
	}

	// Template must be serializable
	if _, err := json.Marshal(doc); err != nil {
		t.Fatalf("marshal: %v", err)
	}
}

func TestFilePaths(t *testing.T) {
	ws := t.TempDir()
	store := NewFileStore(ws, nil)

	if got, want := store.MCPConfigPath(), filepath.Join(ws, ".kiro", "settings", "mcp.json"); got != want {
		t.Errorf("MCPConfigPath = %q, want %q", got, want)
	}
	if got, want := store.EnvVarsPath(), filepath.Join(ws, ".kiro", "settings", "mcp-env.json"); got != want {
		t.Errorf("EnvVarsPath = %q, want %q", got, want)
	}
}
