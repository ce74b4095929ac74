// Command wasmcore is a CLI front end for the wasmcore library: parse,
// validate, encode, and inspect WebAssembly 1.0 binaries.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "wasmcore: failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	root := newRootCommand(logger)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
