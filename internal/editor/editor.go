// Package editor provides utilities for launching the user's preferred text editor.
package editor

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/mcpdeck/mcpdeck/internal/errors"
)

// Open launches the user's preferred editor for the given path.
// An explicit override wins; otherwise $EDITOR, falling back to $VISUAL,
// then nano, then vi.
func Open(path, override string) error {
	editorCmd := detectEditor(override)

	fmt.Printf("Location: %s\n", path)

	cmd := exec.Command(editorCmd, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "running editor")
	}

	return nil
}

// detectEditor returns the editor command to use.
// Chain: explicit override → $EDITOR → $VISUAL → nano → vi
func detectEditor(override string) string {
	if override != "" {
		return override
	}

	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	// $VISUAL for full-screen editors
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	// nano is the friendlier fallback when present
	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}

	// vi is available on all Unix systems
	return "vi"
}
