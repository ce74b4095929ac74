package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// appEnv is the CLI's ambient dependencies, threaded through every
// subcommand instead of read from globals so tests can substitute an
// in-memory filesystem.
type appEnv struct {
	fs     afero.Fs
	logger *zap.Logger
}

func newRootCommand(logger *zap.Logger) *cobra.Command {
	env := &appEnv{fs: afero.NewOsFs(), logger: logger}

	root := &cobra.Command{
		Use:           "wasmcore",
		Short:         "Decode, validate, and encode WebAssembly 1.0 binaries",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newParseCommand(env),
		newValidateCommand(env),
		newEncodeCommand(env),
		newInfoCommand(env),
	)
	return root
}
