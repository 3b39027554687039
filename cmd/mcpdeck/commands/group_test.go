package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mcpdeck/mcpdeck/internal/catalog"
	"github.com/mcpdeck/mcpdeck/internal/loadout"
	"github.com/mcpdeck/mcpdeck/internal/logging"
	"github.com/mcpdeck/mcpdeck/internal/workspace"
)

func newGroupFixture(t *testing.T) (*loadout.Builder, *workspace.MemStore) {
	t.Helper()
	mem := workspace.NewMemStore()
	return loadout.NewBuilder(catalog.NewStore(), mem, logging.ForTest(t)), mem
}

func TestGroupListOutput(t *testing.T) {
	var out bytes.Buffer
	if err := runGroupListWithIO(&out, catalog.NewStore()); err != nil {
		t.Fatalf("runGroupListWithIO() error = %v", err)
	}

	output := out.String()
	for _, key := range []string{"core", "aws", "web-dev"} {
		if !strings.Contains(output, key) {
			t.Errorf("output missing group %q", key)
		}
	}
}

func TestGroupLoadWithYesFlag(t *testing.T) {
	builder, mem := newGroupFixture(t)

	var out bytes.Buffer
	if err := runGroupLoadWithIO(&out, strings.NewReader(""), builder, mem, "core", true); err != nil {
		t.Fatalf("runGroupLoadWithIO() error = %v", err)
	}

	cfg, _ := mem.ReadMCPConfig()
	if len(cfg.MCPServers) != 3 {
		t.Errorf("server count = %d, want 3", len(cfg.MCPServers))
	}
	if !strings.Contains(out.String(), "loaded group") {
		t.Error("output should report the loaded group")
	}
}

func TestGroupLoadPromptsBeforeReplacing(t *testing.T) {
	builder, mem := newGroupFixture(t)
	mem.SetServer("existing", &catalog.ServerDefinition{Command: "npx"})

	t.Run("declining leaves the configuration untouched", func(t *testing.T) {
		var out bytes.Buffer
		if err := runGroupLoadWithIO(&out, strings.NewReader("n\n"), builder, mem, "core", false); err != nil {
			t.Fatalf("error = %v", err)
		}
		if !strings.Contains(out.String(), "Aborted") {
			t.Error("declining should abort")
		}
		cfg, _ := mem.ReadMCPConfig()
		if _, ok := cfg.MCPServers["existing"]; !ok {
			t.Error("declined load must not modify the configuration")
		}
	})

	t.Run("confirming replaces", func(t *testing.T) {
		var out bytes.Buffer
		if err := runGroupLoadWithIO(&out, strings.NewReader("y\n"), builder, mem, "core", false); err != nil {
			t.Fatalf("error = %v", err)
		}
		cfg, _ := mem.ReadMCPConfig()
		if _, ok := cfg.MCPServers["existing"]; ok {
			t.Error("confirmed load must replace the configuration")
		}
	})
}

func TestGroupLoadEmptyWorkspaceSkipsPrompt(t *testing.T) {
	builder, mem := newGroupFixture(t)

	// Nothing active: no prompt even without --yes, reader would block/EOF.
	var out bytes.Buffer
	if err := runGroupLoadWithIO(&out, strings.NewReader(""), builder, mem, "data", false); err != nil {
		t.Fatalf("error = %v", err)
	}
	cfg, _ := mem.ReadMCPConfig()
	if len(cfg.MCPServers) != 3 {
		t.Errorf("server count = %d, want 3", len(cfg.MCPServers))
	}
}

func TestGroupLoadUnknownGroupIsUserError(t *testing.T) {
	builder, mem := newGroupFixture(t)

	var out bytes.Buffer
	err := runGroupLoadWithIO(&out, strings.NewReader(""), builder, mem, "nope", true)
	if err == nil {
		t.Fatal("unknown group must error")
	}
	if !strings.Contains(err.Error(), "group not found") {
		t.Errorf("error = %v, want group not found", err)
	}
}
