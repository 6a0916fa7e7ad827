// Imagegen CLI - image generation API command-line interface.
package main

import (
	"os"

	"github.com/ajitkumar0/Imagegenenerator-sub002/cli/commands"
)

// ExitCoder is an interface for errors that have an exit code.
type ExitCoder interface {
	ExitCode() int
}

func main() {
	if err := commands.Execute(); err != nil {
		if ec, ok := err.(ExitCoder); ok {
			os.Exit(ec.ExitCode())
		}
		os.Exit(1)
	}
}
