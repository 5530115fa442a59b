// Package main provides the entry point for the sympmatch CLI.
package main

import (
	"os"

	"github.com/sympmatch/sympmatch/cmd/sympmatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
