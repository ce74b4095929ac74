package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/wasmkit/wasmcore"
	"github.com/wasmkit/wasmcore/internal/wasm"
)

func newInfoCommand(env *appEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file.wasm>",
		Short: "List a module's sections without fully decoding them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := afero.ReadFile(env.fs, args[0])
			if err != nil {
				return err
			}
			if !wasmcore.IsWasm(data) {
				return fmt.Errorf("%s is not a WebAssembly binary", args[0])
			}
			sections, err := wasmcore.SectionInfoList(data, wasmcore.DefaultConfig())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, s := range sections {
				if s.ID == wasm.SectionIDCustom {
					fmt.Fprintf(w, "%-10s offset=0x%-8x size=%-8d name=%s\n", sectionIDName(s.ID), s.Offset, s.Size, s.Name)
					continue
				}
				fmt.Fprintf(w, "%-10s offset=0x%-8x size=%-8d\n", sectionIDName(s.ID), s.Offset, s.Size)
			}
			return nil
		},
	}
	return cmd
}

func sectionIDName(id byte) string {
	switch id {
	case wasm.SectionIDCustom:
		return "custom"
	case wasm.SectionIDType:
		return "type"
	case wasm.SectionIDImport:
		return "import"
	case wasm.SectionIDFunction:
		return "function"
	case wasm.SectionIDTable:
		return "table"
	case wasm.SectionIDMemory:
		return "memory"
	case wasm.SectionIDGlobal:
		return "global"
	case wasm.SectionIDExport:
		return "export"
	case wasm.SectionIDStart:
		return "start"
	case wasm.SectionIDElement:
		return "element"
	case wasm.SectionIDCode:
		return "code"
	case wasm.SectionIDData:
		return "data"
	default:
		return "unknown"
	}
}
