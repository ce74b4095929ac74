// Command wasminspect is an interactive terminal browser over a
// WebAssembly binary's section table, built on Parse and SectionInfoList.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: wasminspect <file.wasm>")
		os.Exit(1)
	}
	p := tea.NewProgram(newModel(os.Args[1]), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "wasminspect:", err)
		os.Exit(1)
	}
}
