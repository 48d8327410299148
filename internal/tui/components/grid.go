package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/domain"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/search"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/tui/styles"
)

// Layout constants for the card grid
const (
	// Border adds 1 cell on each side, padding 1 more horizontally
	cardChromeWidth  = 4
	cardChromeHeight = 2

	cardInnerWidth = 24
	cardLines      = 3
	cardWidth      = cardInnerWidth + cardChromeWidth
	cardHeight     = cardLines + cardChromeHeight
)

// CardGrid renders items as a grid of cards with a cursor
type CardGrid struct {
	items  []*domain.Item
	cursor int
	offset int // first visible row

	width  int
	height int

	query      string
	isFavorite func(id string) bool
	keys       GridKeyMap
}

// NewCardGrid creates a new card grid
func NewCardGrid() CardGrid {
	return CardGrid{keys: DefaultGridKeyMap()}
}

// SetItems replaces the grid content, keeping the cursor on the same item when present
func (g *CardGrid) SetItems(items []*domain.Item) {
	selectedID := ""
	if sel := g.Selected(); sel != nil {
		selectedID = sel.ID
	}
	g.items = items
	g.cursor = 0
	for i, item := range items {
		if item.ID == selectedID {
			g.cursor = i
			break
		}
	}
	g.clampOffset()
}

// Items returns the grid content
func (g CardGrid) Items() []*domain.Item {
	return g.items
}

// SetSize sets the area available to the grid
func (g *CardGrid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.clampOffset()
}

// SetQuery sets the search text highlighted in titles
func (g *CardGrid) SetQuery(query string) {
	g.query = query
}

// SetFavoriteFunc sets the lookup used to draw favorite markers
func (g *CardGrid) SetFavoriteFunc(fn func(id string) bool) {
	g.isFavorite = fn
}

// Selected returns the item under the cursor
func (g CardGrid) Selected() *domain.Item {
	if g.cursor < 0 || g.cursor >= len(g.items) {
		return nil
	}
	return g.items[g.cursor]
}

// Cursor returns the cursor index
func (g CardGrid) Cursor() int {
	return g.cursor
}

// Columns returns the number of cards per row
func (g CardGrid) Columns() int {
	return max(1, g.width/cardWidth)
}

func (g CardGrid) visibleRows() int {
	return max(1, g.height/cardHeight)
}

// HandleKey moves the cursor. Returns false for keys the grid does not use.
func (g *CardGrid) HandleKey(msg tea.KeyMsg) bool {
	cols := g.Columns()
	switch {
	case key.Matches(msg, g.keys.Left):
		g.move(-1)
	case key.Matches(msg, g.keys.Right):
		g.move(1)
	case key.Matches(msg, g.keys.Up):
		g.move(-cols)
	case key.Matches(msg, g.keys.Down):
		g.move(cols)
	case key.Matches(msg, g.keys.Home):
		g.cursor = 0
		g.clampOffset()
	case key.Matches(msg, g.keys.End):
		g.cursor = max(0, len(g.items)-1)
		g.clampOffset()
	default:
		return false
	}
	return true
}

func (g *CardGrid) move(delta int) {
	if len(g.items) == 0 {
		return
	}
	g.cursor = min(max(g.cursor+delta, 0), len(g.items)-1)
	g.clampOffset()
}

// clampOffset scrolls so the cursor row is visible
func (g *CardGrid) clampOffset() {
	if g.cursor >= len(g.items) {
		g.cursor = max(0, len(g.items)-1)
	}
	row := g.cursor / g.Columns()
	rows := g.visibleRows()
	if row < g.offset {
		g.offset = row
	}
	if row >= g.offset+rows {
		g.offset = row - rows + 1
	}
}

// View renders the visible rows of cards
func (g CardGrid) View() string {
	if len(g.items) == 0 {
		return ""
	}

	cols := g.Columns()
	rows := g.visibleRows()
	var lines []string
	for r := g.offset; r < g.offset+rows; r++ {
		start := r * cols
		if start >= len(g.items) {
			break
		}
		var cards []string
		for i := start; i < start+cols && i < len(g.items); i++ {
			cards = append(cards, g.renderCard(g.items[i], i == g.cursor))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	totalRows := (len(g.items) + cols - 1) / cols
	if g.offset+rows < totalRows {
		lines = append(lines, styles.DimStyle.Render("  ↓ more"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (g CardGrid) renderCard(item *domain.Item, selected bool) string {
	style := styles.CardStyle
	if selected {
		style = styles.CardSelectedStyle
	}

	marker := " "
	if g.isFavorite != nil && g.isFavorite(item.ID) {
		marker = lipgloss.NewStyle().Foreground(styles.Pink).Render(styles.FavoriteChar)
	}

	title := styles.Truncate(item.Title, cardInnerWidth-2)
	titleLine := marker + " " + styles.RenderHighlighted(title, search.Highlight(title, g.query), styles.TitleStyle)

	var info string
	if item.Quote != nil {
		info = styles.AccentStyle.Render(styles.Pad(item.NativeTitle, 6)) +
			styles.SubtitleStyle.Render(styles.Pad(item.FormattedPrice(), 11)) +
			styles.ChangeStyle(item.Quote.ChangePct).Render(item.FormattedChange())
	} else {
		info = styles.ScoreStyle.Render("★ "+item.FormattedScore()) +
			styles.DimStyle.Render("  "+item.FormattedYear())
	}

	tags := styles.DimStyle.Render(styles.Truncate(strings.Join(item.Tags, " · "), cardInnerWidth))

	return style.Width(cardInnerWidth + 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, titleLine, info, tags),
	)
}
