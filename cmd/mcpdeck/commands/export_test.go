package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mcpdeck/mcpdeck/internal/catalog"
	"github.com/mcpdeck/mcpdeck/internal/workspace"
)

func TestExportFormats(t *testing.T) {
	mem := workspace.NewMemStore()
	mem.SetServer("fetch", &catalog.ServerDefinition{Command: "uvx", Args: []string{"mcp-server-fetch"}})

	tests := []struct {
		format string
		want   string
	}{
		{"json", `"mcpServers"`},
		{"toml", "[mcpServers.fetch]"},
		{"yaml", "mcpServers:"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var out bytes.Buffer
			if err := runExportWithIO(&out, mem, tt.format, ""); err != nil {
				t.Fatalf("runExportWithIO(%s) error = %v", tt.format, err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out.String())
			}
		})
	}
}

func TestExportToFile(t *testing.T) {
	mem := workspace.NewMemStore()
	mem.SetServer("git", &catalog.ServerDefinition{Command: "uvx"})

	path := filepath.Join(t.TempDir(), "servers.yaml")
	var out bytes.Buffer
	if err := runExportWithIO(&out, mem, "yaml", path); err != nil {
		t.Fatalf("runExportWithIO() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "git") {
		t.Error("exported file missing server entry")
	}
	if out.Len() != 0 {
		t.Error("nothing should be written to stdout when --output is set")
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	mem := workspace.NewMemStore()

	var out bytes.Buffer
	if err := runExportWithIO(&out, mem, "xml", ""); err == nil {
		t.Error("unknown format must error")
	}
}
