package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wasmkit/wasmcore"
)

func newEncodeCommand(env *appEnv) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "encode <file.wasm>",
		Short: "Decode then re-encode a module, reporting the re-encoded size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := afero.ReadFile(env.fs, args[0])
			if err != nil {
				return err
			}
			cfg := wasmcore.DefaultConfig()
			m, err := wasmcore.ParseUnvalidated(data, cfg)
			if err != nil {
				env.logger.Error("decode failed", zap.Error(err), zap.String("file", args[0]))
				return err
			}
			encoded, err := wasmcore.Encode(m, cfg)
			if err != nil {
				env.logger.Error("encode failed", zap.Error(err), zap.String("file", args[0]))
				return err
			}
			if out == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "ok: re-encoded %d bytes (input was %d)\n", len(encoded), len(data))
				return nil
			}
			return afero.WriteFile(env.fs, out, encoded, 0o644)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write the re-encoded module to this path instead of reporting its size")
	return cmd
}
