// Package main is the entry point for the mcpdeck CLI.
package main

import (
	"fmt"
	"os"

	"github.com/mcpdeck/mcpdeck/cmd/mcpdeck/commands"
	"github.com/mcpdeck/mcpdeck/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		var exitErr *errors.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr.Err)
			}
			if exitErr.Suggestion != "" {
				fmt.Fprintln(os.Stderr, exitErr.Suggestion)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(errors.ExitUser)
	}
}
