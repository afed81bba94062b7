// Package main is the entry point for dclean.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/zorak1103/dclean/cmd"
)

func main() {
	// Exit code semantics: 0 = sweeps completed (individual removals may have failed),
	// 1 = configuration, connection or listing error, or a recovered panic.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n❌ PANIC: %v\n", r)
			fmt.Fprintf(os.Stderr, "\nStack trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	cmd.Execute()
}
