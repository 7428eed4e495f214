package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/tagurit/levelpack/internal/cli"
	"github.com/tagurit/levelpack/pkg/levelpack"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(levelpack.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(levelpack.ExitCodeForError(err))
	}
}
