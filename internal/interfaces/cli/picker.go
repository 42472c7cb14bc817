package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"plugseek.dev/cli/internal/core/catalog"
)

// pickerModel holds the state for the interactive candidate chooser
// behind info --pick.
type pickerModel struct {
	records []catalog.Record
	cursor  int
	choice  *catalog.Record
}

// newPickerModel creates a picker over the candidate records
func newPickerModel(records []catalog.Record) pickerModel {
	return pickerModel{records: records}
}

// Init implements the Bubble Tea init method
func (m pickerModel) Init() tea.Cmd {
	return nil
}

// Update implements the Bubble Tea update method
func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "j":
			if m.cursor < len(m.records)-1 {
				m.cursor++
			}
			return m, nil

		case "enter":
			record := m.records[m.cursor].Clone()
			m.choice = &record
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements the Bubble Tea view method
func (m pickerModel) View() string {
	if m.choice != nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Pick a plugin") + "\n\n")

	for i, r := range m.records {
		line := fmt.Sprintf("%s  (%s, by %s)", r.DisplayName, r.Source.Label(), r.Author)
		if i == m.cursor {
			b.WriteString("▸ " + line + "\n")
		} else {
			b.WriteString(dimStyle.Render("  "+line) + "\n")
		}
	}

	b.WriteString("\n" + dimStyle.Render("Controls: [↑↓] Navigate | [Enter] Select | [q] Quit"))
	return b.String()
}

// runPicker shows the candidates and blocks until one is chosen or the
// picker is dismissed; dismissal yields a nil record.
func runPicker(records []catalog.Record) (*catalog.Record, error) {
	program := tea.NewProgram(newPickerModel(records))

	finalModel, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("picker failed: %w", err)
	}

	model, ok := finalModel.(pickerModel)
	if !ok {
		return nil, nil
	}
	return model.choice, nil
}
