package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wasmkit/wasmcore"
	"github.com/wasmkit/wasmcore/internal/wasm"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type model struct {
	filename string
	sections []wasmcore.SectionInfo
	module   *wasmcore.Module
	loadErr  error
	selected int
}

func newModel(filename string) *model {
	return &model{filename: filename}
}

type loadedMsg struct {
	sections []wasmcore.SectionInfo
	module   *wasmcore.Module
	err      error
}

func (m *model) Init() tea.Cmd {
	return m.load
}

func (m *model) load() tea.Msg {
	data, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	cfg := wasmcore.DefaultConfig()
	sections, err := wasmcore.SectionInfoList(data, cfg)
	if err != nil {
		return loadedMsg{err: err}
	}
	// A decode error is ignored rather than aborting the browser: a
	// malformed module's section table is still worth paging through, and
	// the code-section detail is simply omitted when mod is nil.
	mod, _ := wasmcore.ParseUnvalidated(data, cfg)
	return loadedMsg{sections: sections, module: mod}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.sections)-1 {
				m.selected++
			}
		}
	case loadedMsg:
		m.sections = msg.sections
		m.module = msg.module
		m.loadErr = msg.err
	}
	return m, nil
}

func (m *model) View() string {
	if m.loadErr != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.loadErr))
	}
	if m.sections == nil {
		return "Loading " + m.filename + "...\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("wasminspect"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	for i, s := range m.sections {
		line := fmt.Sprintf("%-10s offset=0x%-8x size=%-8d", sectionName(s.ID), s.Offset, s.Size)
		if s.Name != "" {
			line += " name=" + s.Name
		}
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detail())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • q quit"))
	return b.String()
}

func (m *model) detail() string {
	if m.selected >= len(m.sections) {
		return ""
	}
	s := m.sections[m.selected]
	if s.ID != wasm.SectionIDCode || m.module == nil {
		return dimStyle.Render(fmt.Sprintf("%d byte section body", s.Size))
	}
	return dimStyle.Render(fmt.Sprintf("%d function bodies, %d imported", len(m.module.CodeSection), m.module.ImportedFunctionCount()))
}

func sectionName(id byte) string {
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
