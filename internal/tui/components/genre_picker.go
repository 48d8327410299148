package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/search"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/tui/styles"
)

const pickerMaxRows = 12

// GenrePicker is a fuzzy-filtered category chooser
type GenrePicker struct {
	visible    bool
	categories []string
	active     string
	matches    []search.CategoryMatch
	cursor     int
	input      textinput.Model
	keys       ModalKeyMap
}

// NewGenrePicker creates a new category picker
func NewGenrePicker() GenrePicker {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "› "
	ti.PromptStyle = styles.InputPromptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle
	ti.CharLimit = 32

	keys := DefaultModalKeyMap()
	// j/k are typed into the filter, so only arrows and ctrl+n/p move
	keys.Up = key.NewBinding(key.WithKeys("up", "ctrl+p"))
	keys.Down = key.NewBinding(key.WithKeys("down", "ctrl+n"))

	return GenrePicker{input: ti, keys: keys}
}

// Show opens the picker over categories with active preselected
func (p *GenrePicker) Show(categories []string, active string) {
	p.visible = true
	p.categories = categories
	p.active = active
	p.input.SetValue("")
	p.input.Focus()
	p.refilter()
	for i, m := range p.matches {
		if m.Name == active {
			p.cursor = i
			break
		}
	}
}

// Hide dismisses the picker
func (p *GenrePicker) Hide() {
	p.visible = false
	p.input.Blur()
}

// IsVisible returns whether the picker is shown
func (p GenrePicker) IsVisible() bool {
	return p.visible
}

// Matches returns the categories currently listed
func (p GenrePicker) Matches() []search.CategoryMatch {
	return p.matches
}

// Update handles input. Returns the chosen category name on confirm.
func (p GenrePicker) Update(msg tea.Msg) (GenrePicker, tea.Cmd, string) {
	if !p.visible {
		return p, nil, ""
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, p.keys.Cancel):
			p.Hide()
			return p, nil, ""
		case key.Matches(keyMsg, p.keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil, ""
		case key.Matches(keyMsg, p.keys.Down):
			if p.cursor < len(p.matches)-1 {
				p.cursor++
			}
			return p, nil, ""
		case key.Matches(keyMsg, p.keys.Confirm):
			if len(p.matches) == 0 {
				return p, nil, ""
			}
			chosen := p.matches[p.cursor].Name
			p.Hide()
			return p, nil, chosen
		}
	}

	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.refilter()
	}
	return p, cmd, ""
}

func (p *GenrePicker) refilter() {
	p.matches = search.MatchCategories(p.input.Value(), p.categories)
	p.cursor = 0
}

// View renders the picker
func (p GenrePicker) View() string {
	if !p.visible {
		return ""
	}

	var lines []string
	start := 0
	if p.cursor >= pickerMaxRows {
		start = p.cursor - pickerMaxRows + 1
	}
	for i := start; i < len(p.matches) && i < start+pickerMaxRows; i++ {
		m := p.matches[i]
		prefix := "  "
		if m.Name == p.active {
			prefix = "✓ "
		}

		base := lipgloss.NewStyle().Foreground(styles.LightGray)
		if i == p.cursor {
			base = lipgloss.NewStyle().Foreground(styles.White).Background(styles.SlateLight)
		}
		name := styles.RenderHighlighted(m.Name, m.MatchedIndexes, base)
		pad := strings.Repeat(" ", max(0, 22-lipgloss.Width(prefix+m.Name)))
		lines = append(lines, base.Render(prefix)+name+base.Render(pad))
	}
	if len(lines) == 0 {
		lines = append(lines, styles.DimStyle.Render("no matching genre"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Genre"),
		p.input.View(),
		"",
		strings.Join(lines, "\n"),
	)
	return styles.ModalStyle.Render(content)
}
