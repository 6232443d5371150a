package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unrealkit/usmap/mappings"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	schemaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const (
	listRows   = 15
	detailRows = 20
)

type browserModel struct {
	err      error
	m        *mappings.MappingFile
	filename string
	filter   textinput.Model
	schemas  []string
	visible  []string
	selected int
	detail   string
	typing   bool
	state    modelState
}

type modelState int

const (
	stateList modelState = iota
	stateDetail
)

func newBrowserModel(filename string) *browserModel {
	ti := textinput.New()
	ti.Placeholder = "filter schemas"
	ti.Prompt = "/ "
	ti.Width = 40

	return &browserModel{
		filename: filename,
		filter:   ti,
		state:    stateList,
	}
}

type loadedMsg struct {
	err error
	m   *mappings.MappingFile
}

func (m *browserModel) Init() tea.Cmd {
	return m.loadMappings
}

func (m *browserModel) loadMappings() tea.Msg {
	data, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	decoded, err := mappings.Parse(data)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{m: decoded}
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.typing {
			return m.updateFilter(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "/":
			if m.state == stateList {
				m.typing = true
				m.filter.Focus()
			}

		case "up", "k":
			if m.state == stateList && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateList && m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "enter":
			if m.state == stateList && m.selected < len(m.visible) {
				m.detail = m.visible[m.selected]
				m.state = stateDetail
			}

		case "esc":
			switch m.state {
			case stateDetail:
				m.state = stateList
			case stateList:
				if m.filter.Value() != "" {
					m.filter.SetValue("")
					m.refilter()
				}
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.m = msg.m
		m.schemas = m.m.Schemas.Keys()
		sort.Strings(m.schemas)
		m.refilter()
	}

	return m, nil
}

func (m *browserModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		m.typing = false
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refilter()
	return m, cmd
}

func (m *browserModel) refilter() {
	needle := strings.ToLower(m.filter.Value())
	if needle == "" {
		m.visible = m.schemas
	} else {
		m.visible = nil
		for _, name := range m.schemas {
			if strings.Contains(strings.ToLower(name), needle) {
				m.visible = append(m.visible, name)
			}
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = len(m.visible) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *browserModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.m == nil {
		return "Loading mappings..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("usmap browser"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateList:
		m.viewList(&b)
	case stateDetail:
		m.viewDetail(&b)
	}
	return b.String()
}

func (m *browserModel) viewList(b *strings.Builder) {
	fmt.Fprintf(b, "Schemas (%d/%d)\n", len(m.visible), len(m.schemas))
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	start := 0
	if m.selected >= listRows {
		start = m.selected - listRows + 1
	}
	end := start + listRows
	if end > len(m.visible) {
		end = len(m.visible)
	}

	for i := start; i < end; i++ {
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + m.visible[i]))
		} else {
			b.WriteString("  " + schemaStyle.Render(m.visible[i]))
		}
		b.WriteString("\n")
	}
	if end < len(m.visible) {
		fmt.Fprintf(b, "  … %d more\n", len(m.visible)-end)
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • enter open • / filter • q quit"))
}

func (m *browserModel) viewDetail(b *strings.Builder) {
	s, ok := m.m.Schemas.GetByKey(m.detail)
	if !ok {
		b.WriteString(errorStyle.Render("schema vanished"))
		return
	}

	b.WriteString(schemaStyle.Render(s.Name))
	b.WriteString("\n")
	fmt.Fprintf(b, "Super chain: %s\n", typeStyle.Render(strings.Join(superChain(m.m, s.Name), " -> ")))
	if s.ModulePath != nil {
		fmt.Fprintf(b, "Module: %s\n", pathStyle.Render(*s.ModulePath))
	}
	b.WriteString("\n")

	own := s.Properties.Values()
	fmt.Fprintf(b, "Properties (%d serialized, %d slots):\n", len(own), s.PropCount)
	for i, p := range own {
		if i == detailRows {
			fmt.Fprintf(b, "  … %d more\n", len(own)-detailRows)
			break
		}
		fmt.Fprintf(b, "  %s: %s\n", schemaStyle.Render(p.Name), typeStyle.Render(p.Data.String()))
	}
	if inherited := len(m.m.AllProperties(s.Name)) - len(own); inherited > 0 {
		fmt.Fprintf(b, "Inherited: %d more\n", inherited)
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("esc back • q quit"))
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newBrowserModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
