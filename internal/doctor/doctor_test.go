package doctor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mcpdeck/mcpdeck/internal/catalog"
	"github.com/mcpdeck/mcpdeck/internal/hook"
	"github.com/mcpdeck/mcpdeck/internal/logging"
	"github.com/mcpdeck/mcpdeck/internal/paths"
	"github.com/mcpdeck/mcpdeck/internal/workspace"
)

func TestRunnerAggregatesSummary(t *testing.T) {
	ws := t.TempDir()
	cat := catalog.NewStore()
	store := workspace.NewFileStore(ws, logging.ForTest(t))

	runner := NewRunner()
	for _, c := range DefaultChecks(ws, cat, store) {
		runner.AddCheck(c)
	}
	report := runner.Run()

	if len(report.Results) != 6 {
		t.Fatalf("results = %d, want 6", len(report.Results))
	}
	total := report.Summary.Passed + report.Summary.Info + report.Summary.Warnings + report.Summary.Errors
	if total != len(report.Results) {
		t.Errorf("summary total = %d, want %d", total, len(report.Results))
	}
	// A pristine workspace has no errors: missing documents are informational.
	if report.HasErrors() {
		t.Errorf("pristine workspace must not report errors: %+v", report.Results)
	}
}

func TestCatalogCheck(t *testing.T) {
	t.Run("bundled catalog passes", func(t *testing.T) {
		check := &CatalogCheck{Catalog: catalog.NewStore()}
		if result := check.Run(); result.Status != SeverityPass {
			t.Errorf("Status = %v, want pass: %s", result.Status, result.Message)
		}
	})

	t.Run("broken override errors", func(t *testing.T) {
		broken := filepath.Join(t.TempDir(), "catalog.json")
		if err := os.WriteFile(broken, []byte("{"), 0644); err != nil {
			t.Fatal(err)
		}
		check := &CatalogCheck{Catalog: catalog.NewStore(catalog.WithCatalogPath(broken))}
		result := check.Run()
		if result.Status != SeverityError {
			t.Errorf("Status = %v, want error", result.Status)
		}
		if result.FixHint == "" {
			t.Error("error result should carry a fix hint")
		}
	})
}

func TestTemplatesCheckBundled(t *testing.T) {
	check := &TemplatesCheck{Catalog: catalog.NewStore()}
	result := check.Run()
	if result.Status != SeverityPass {
		t.Errorf("bundled templates must cross-reference cleanly: %s", result.Message)
	}
}

func TestMCPConfigCheck(t *testing.T) {
	newCheck := func(t *testing.T) (*MCPConfigCheck, string) {
		ws := t.TempDir()
		return &MCPConfigCheck{
			Store:   workspace.NewFileStore(ws, logging.ForTest(t)),
			Catalog: catalog.NewStore(),
			Path:    paths.MCPConfigPath(ws),
		}, ws
	}

	t.Run("missing is informational", func(t *testing.T) {
		check, _ := newCheck(t)
		if result := check.Run(); result.Status != SeverityInfo {
			t.Errorf("Status = %v, want info", result.Status)
		}
	})

	t.Run("corrupt is an error", func(t *testing.T) {
		check, ws := newCheck(t)
		if err := paths.EnsureDir(paths.SettingsDir(ws), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(check.Path, []byte("{broken"), 0644); err != nil {
			t.Fatal(err)
		}
		if result := check.Run(); result.Status != SeverityError {
			t.Errorf("Status = %v, want error", result.Status)
		}
	})

	t.Run("unknown servers warn", func(t *testing.T) {
		check, _ := newCheck(t)
		cfg := workspace.NewMCPConfig()
		cfg.MCPServers["retired-server"] = &catalog.ServerDefinition{Command: "npx"}
		if err := check.Store.WriteMCPConfig(cfg); err != nil {
			t.Fatal(err)
		}
		if result := check.Run(); result.Status != SeverityWarning {
			t.Errorf("Status = %v, want warning", result.Status)
		}
	})
}

func TestTransportCheck(t *testing.T) {
	mem := workspace.NewMemStore()
	mem.SetServer("ambiguous", &catalog.ServerDefinition{
		Command: "npx",
		HTTPURL: "https://example.com/mcp",
	})

	check := &TransportCheck{Store: mem}
	result := check.Run()
	if result.Status != SeverityWarning {
		t.Errorf("Status = %v, want warning", result.Status)
	}

	delete(mem.Config.MCPServers, "ambiguous")
	mem.SetServer("local", &catalog.ServerDefinition{Command: "npx"})
	if result := check.Run(); result.Status != SeverityPass {
		t.Errorf("Status = %v, want pass", result.Status)
	}
}

func TestEnvVarsCheck(t *testing.T) {
	writeEnv := func(t *testing.T, content string, perm os.FileMode) string {
		ws := t.TempDir()
		if err := paths.EnsureDir(paths.SettingsDir(ws), 0o755); err != nil {
			t.Fatal(err)
		}
		path := paths.EnvVarsPath(ws)
		if err := os.WriteFile(path, []byte(content), perm); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("missing is informational", func(t *testing.T) {
		check := &EnvVarsCheck{Path: paths.EnvVarsPath(t.TempDir())}
		if result := check.Run(); result.Status != SeverityInfo {
			t.Errorf("Status = %v, want info", result.Status)
		}
	})

	t.Run("valid and private passes", func(t *testing.T) {
		check := &EnvVarsCheck{Path: writeEnv(t, `{"version":"1.0.0","variables":{}}`, 0o600)}
		if result := check.Run(); result.Status != SeverityPass {
			t.Errorf("Status = %v, want pass: %s", result.Status, result.Message)
		}
	})

	t.Run("corrupt warns", func(t *testing.T) {
		check := &EnvVarsCheck{Path: writeEnv(t, "not json", 0o600)}
		if result := check.Run(); result.Status != SeverityWarning {
			t.Errorf("Status = %v, want warning", result.Status)
		}
	})

	t.Run("loose permissions warn", func(t *testing.T) {
		check := &EnvVarsCheck{Path: writeEnv(t, `{"version":"1.0.0","variables":{}}`, 0o644)}
		result := check.Run()
		if result.Status != SeverityWarning {
			t.Errorf("Status = %v, want warning", result.Status)
		}
		if result.FixHint == "" {
			t.Error("permission warning should carry a fix hint")
		}
	})
}

func TestHookCheck(t *testing.T) {
	t.Run("missing is informational", func(t *testing.T) {
		check := &HookCheck{Path: paths.HookPath(t.TempDir())}
		if result := check.Run(); result.Status != SeverityInfo {
			t.Errorf("Status = %v, want info", result.Status)
		}
	})

	t.Run("installed hook passes", func(t *testing.T) {
		ws := t.TempDir()
		m := hook.NewManager(ws, catalog.NewStore(), logging.ForTest(t))
		if _, err := m.EnsureHook(); err != nil {
			t.Fatal(err)
		}
		check := &HookCheck{Path: paths.HookPath(ws)}
		if result := check.Run(); result.Status != SeverityPass {
			t.Errorf("Status = %v, want pass: %s", result.Status, result.Message)
		}
	})

	t.Run("missing fields warn", func(t *testing.T) {
		ws := t.TempDir()
		if err := paths.EnsureDir(paths.HooksDir(ws), 0o755); err != nil {
			t.Fatal(err)
		}
		path := paths.HookPath(ws)
		if err := os.WriteFile(path, []byte(`{"enabled":true}`), 0644); err != nil {
			t.Fatal(err)
		}
		check := &HookCheck{Path: path}
		if result := check.Run(); result.Status != SeverityWarning {
			t.Errorf("Status = %v, want warning", result.Status)
		}
	})
}
