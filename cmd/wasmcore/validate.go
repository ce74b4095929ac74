package main

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wasmkit/wasmcore"
)

func newValidateCommand(env *appEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file.wasm>",
		Short: "Run every static validation rule and report all violations found",
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
			if err := wasmcore.Validate(m, cfg); err != nil {
				if merr, ok := err.(*multierror.Error); ok {
					for _, e := range merr.Errors {
						fmt.Fprintln(cmd.OutOrStdout(), e)
					}
					env.logger.Warn("validation failed", zap.Int("violations", len(merr.Errors)), zap.String("file", args[0]))
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), err)
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok: module is valid")
			return nil
		},
	}
	return cmd
}
