package editor

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectEditor(t *testing.T) {
	tests := []struct {
		name     string
		override string
		editor   string
		visual   string
		want     string
	}{
		{"override wins over everything", "code", "vim", "emacs", "code"},
		{"EDITOR wins over VISUAL", "", "vim", "emacs", "vim"},
		{"VISUAL when EDITOR unset", "", "", "emacs", "emacs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EDITOR", tt.editor)
			t.Setenv("VISUAL", tt.visual)

			if got := detectEditor(tt.override); got != tt.want {
				t.Errorf("detectEditor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpenRunsEditor(t *testing.T) {
	// "true" exits immediately without blocking
	t.Setenv("EDITOR", "true")

	path := filepath.Join(t.TempDir(), "mcp-env.json")
	if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := Open(path, ""); err != nil {
		t.Errorf("Open() with EDITOR=true error = %v", err)
	}
}

func TestOpenSurfacesEditorFailure(t *testing.T) {
	t.Setenv("EDITOR", "false")

	if err := Open(filepath.Join(t.TempDir(), "x.json"), ""); err == nil {
		t.Error("failing editor must surface an error")
	}
}
