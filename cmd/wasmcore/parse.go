package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wasmkit/wasmcore"
)

func newParseCommand(env *appEnv) *cobra.Command {
	var skipValidation bool
	cmd := &cobra.Command{
		Use:   "parse <file.wasm>",
		Short: "Decode and validate a module, reporting the first decode error or every validation error",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := afero.ReadFile(env.fs, args[0])
			if err != nil {
				return err
			}
			cfg := wasmcore.DefaultConfig()
			var m *wasmcore.Module
			if skipValidation {
				m, err = wasmcore.ParseUnvalidated(data, cfg)
			} else {
				m, err = wasmcore.Parse(data, cfg)
			}
			if err != nil {
				env.logger.Error("parse failed", zap.Error(err), zap.String("file", args[0]))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d types, %d functions, %d exports\n",
				len(m.TypeSection), m.FunctionCount(), len(m.ExportSection))
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipValidation, "skip-validation", false, "decode only, skip the validator")
	return cmd
}
