package fileutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadFileWithLimit(t *testing.T) {
	dir := t.TempDir()

	t.Run("reads small file", func(t *testing.T) {
		path := filepath.Join(dir, "small.json")
		content := []byte(`[{"serverId":"github","reason":"repo access"}]`)
		if err := os.WriteFile(path, content, 0644); err != nil {
			t.Fatal(err)
		}

		got, err := ReadFileWithLimit(path)
		if err != nil {
			t.Fatalf("ReadFileWithLimit() error = %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Errorf("content = %q, want %q", got, content)
		}
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		path := filepath.Join(dir, "huge.json")
		if err := os.WriteFile(path, make([]byte, MaxFileSize+1), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := ReadFileWithLimit(path)
		if err == nil {
			t.Fatal("expected error for oversized file")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadFileWithLimit(filepath.Join(dir, "nope.json"))
		if err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}

func TestReadAllWithLimit(t *testing.T) {
	t.Run("reads bounded stream", func(t *testing.T) {
		got, err := ReadAllWithLimit(strings.NewReader("[]"))
		if err != nil {
			t.Fatalf("ReadAllWithLimit() error = %v", err)
		}
		if string(got) != "[]" {
			t.Errorf("content = %q, want %q", got, "[]")
		}
	})

	t.Run("rejects oversized stream", func(t *testing.T) {
		r := bytes.NewReader(make([]byte, MaxFileSize+1))
		if _, err := ReadAllWithLimit(r); err == nil {
			t.Fatal("expected error for oversized stream")
		}
	})
}
