package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/search"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/tui/styles"
)

// SortSelection represents the user's sort choice
type SortSelection struct {
	Field     search.SortField
	Direction search.SortDirection
}

// SortModal is a small popup for choosing sort order
type SortModal struct {
	visible     bool
	options     []search.SortField
	cursor      int
	activeField search.SortField
	activeDir   search.SortDirection
	keys        ModalKeyMap
}

// NewSortModal creates a new sort modal
func NewSortModal() SortModal {
	return SortModal{keys: DefaultModalKeyMap()}
}

// Show displays the modal with the given options and current sort state
func (m *SortModal) Show(options []search.SortField, activeField search.SortField, activeDir search.SortDirection) {
	m.visible = true
	m.options = options
	m.activeField = activeField
	m.activeDir = activeDir
	m.cursor = 0
	for i, opt := range options {
		if opt == activeField {
			m.cursor = i
			break
		}
	}
}

// Hide dismisses the modal
func (m *SortModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m SortModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press and returns the confirmed selection, if any.
// All keys are consumed while the modal is visible.
func (m *SortModal) HandleKey(msg tea.KeyMsg) *SortSelection {
	if !m.visible || len(m.options) == 0 {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Confirm):
		chosen := m.options[m.cursor]
		dir := search.DefaultDirection(chosen)
		if chosen == m.activeField {
			// Re-selecting the active field flips direction
			if m.activeDir == search.SortAsc {
				dir = search.SortDesc
			} else {
				dir = search.SortAsc
			}
		}
		m.visible = false
		return &SortSelection{Field: chosen, Direction: dir}
	case key.Matches(msg, m.keys.Cancel), msg.String() == "s":
		m.visible = false
	}
	return nil
}

// View renders the sort modal
func (m SortModal) View() string {
	if !m.visible || len(m.options) == 0 {
		return ""
	}

	var lines []string
	for i, opt := range m.options {
		isActive := opt == m.activeField

		prefix := "  "
		suffix := ""
		if isActive {
			prefix = "✓ "
			if m.activeDir == search.SortAsc {
				suffix = " ↑"
			} else {
				suffix = " ↓"
			}
		}
		text := styles.Pad(prefix+opt.String()+suffix, 20)

		style := lipgloss.NewStyle().Foreground(styles.LightGray)
		switch {
		case i == m.cursor:
			style = lipgloss.NewStyle().Foreground(styles.White).Background(styles.SlateLight)
		case isActive:
			style = lipgloss.NewStyle().Foreground(styles.Purple)
		}
		lines = append(lines, style.Render(text))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Purple).
		Background(styles.SlateDark).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render("Sort by") + "\n" + strings.Join(lines, "\n"))
}
