package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/domain"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/search"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/tui/styles"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/view"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	// Modals take over the screen, centered
	switch {
	case m.AuthForm.IsVisible():
		return m.place(m.AuthForm.View())
	case m.GenrePicker.IsVisible():
		return m.place(m.GenrePicker.View())
	case m.SortModal.IsVisible():
		return m.place(m.SortModal.View())
	}

	var body string
	switch m.Nav.Active {
	case view.Detail:
		body = m.renderDetail()
	case view.Catalog:
		body = m.renderCatalog()
	default:
		body = m.renderHome()
	}

	bodyHeight := max(m.Height-2, 0)
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
}

func (m Model) place(content string) string {
	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center, content)
}

// renderHeader renders the logo, board tabs and the session area
func (m Model) renderHeader() string {
	tab := func(label string, active bool) string {
		if active {
			return styles.BadgeStyle.Render(label)
		}
		return styles.DimBadgeStyle.Render(label)
	}

	left := lipgloss.JoinHorizontal(lipgloss.Center,
		styles.LogoStyle.Render("AniVerse"), " ",
		tab("Anime", m.Board == BoardAnime), " ",
		tab("Market", m.Board == BoardMarket), "  ",
		tab("Home", m.Nav.Active == view.Home), " ",
		tab("Catalog", m.Nav.Active == view.Catalog),
	)

	var right string
	if sess := m.currentSession(); sess != nil {
		right = styles.AccentStyle.Render("● "+sess.Username) +
			styles.DimStyle.Render("  L sign out")
	} else {
		right = styles.DimStyle.Render("a sign in")
	}

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) currentSession() *domain.Session {
	if m.Session == nil {
		return nil
	}
	return m.Session.Current()
}

// renderHome renders the "Popular" grid
func (m Model) renderHome() string {
	heading := "Popular"
	if m.Board == BoardMarket {
		heading = "Top assets"
	}
	title := styles.TitleStyle.Render(heading)

	if content, ok := m.renderPlaceholder(); ok {
		return lipgloss.JoinVertical(lipgloss.Left, title, content)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, "", m.Grid.View())
}

// renderCatalog renders the search bar, filters and the full grid
func (m Model) renderCatalog() string {
	inputStyle := styles.InputBlurredStyle
	if m.State == StateSearching {
		inputStyle = styles.InputFocusedStyle
	}
	searchBox := inputStyle.Render(m.SearchInput.View())

	filters := styles.DimStyle.Render("  genre ") + styles.AccentStyle.Render(m.Category)
	if m.SortField != search.SortDefault {
		arrow := "↑"
		if m.SortDir == search.SortDesc {
			arrow = "↓"
		}
		filters += styles.DimStyle.Render("  sort ") + styles.AccentStyle.Render(m.SortField.String()+" "+arrow)
	}
	filters += styles.DimStyle.Render(fmt.Sprintf("  %d results", len(m.Display)))

	bar := lipgloss.JoinHorizontal(lipgloss.Center, searchBox, filters)

	if content, ok := m.renderPlaceholder(); ok {
		return lipgloss.JoinVertical(lipgloss.Left, bar, content)
	}
	return lipgloss.JoinVertical(lipgloss.Left, bar, m.Grid.View())
}

// renderPlaceholder renders the loading, unavailable and empty states
func (m Model) renderPlaceholder() (string, bool) {
	switch {
	case m.Loading && len(m.Display) == 0:
		return "\n" + m.Spinner.View() + styles.DimStyle.Render(" Loading catalog..."), true

	case m.LoadFailed && len(m.Items) == 0:
		return "\n" + styles.ErrorStyle.Render("Catalog unavailable") +
			styles.DimStyle.Render("  press r to retry"), true

	case len(m.Display) == 0:
		var b strings.Builder
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle.Render("No results"))
		if len(m.Suggestions) > 0 {
			b.WriteString(styles.DimStyle.Render("  did you mean: "))
			b.WriteString(styles.AccentStyle.Render(strings.Join(m.Suggestions, ", ")))
		}
		return b.String(), true
	}
	return "", false
}

// renderDetail renders the player panel, metadata and related list
func (m Model) renderDetail() string {
	item, ok := m.Nav.Resolve(m.Display)
	if !ok {
		return styles.DimStyle.Render("Item no longer available")
	}

	width := max(m.Width-4, 20)
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(item.Title))
	if item.NativeTitle != "" {
		b.WriteString(styles.DimStyle.Render("  " + item.NativeTitle))
	}
	b.WriteString("\n\n")

	if item.Quote != nil {
		b.WriteString(m.renderQuote(item))
	} else {
		b.WriteString(m.renderPlayer(item, width))
	}
	b.WriteString("\n")

	b.WriteString(renderMeta(item))
	b.WriteString("\n")

	if item.Synopsis != "" {
		b.WriteString(lipgloss.NewStyle().Width(width).Render(
			styles.SubtitleStyle.Render(item.Synopsis)))
		b.WriteString("\n\n")
	}

	if m.Session != nil && m.Session.IsFavorite(item.ID) {
		b.WriteString(lipgloss.NewStyle().Foreground(styles.Pink).Render(styles.FavoriteChar + " In favorites"))
	} else {
		b.WriteString(styles.DimStyle.Render(styles.NotFavoriteChar + " Add to favorites (f)"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderRelated())
	return b.String()
}

func (m Model) renderQuote(item *domain.Item) string {
	price := styles.TitleStyle.Render(item.FormattedPrice())
	change := styles.ChangeStyle(item.Quote.ChangePct).Render(item.FormattedChange() + " 24h")
	return styles.PanelStyle.Render(price + "  " + change)
}

func (m Model) renderPlayer(item *domain.Item, width int) string {
	pb := m.Nav.Playback

	var lines []string
	if item.HasTrailer() {
		lines = append(lines, styles.AccentStyle.Render("▶ Trailer")+
			styles.DimStyle.Render("  "+item.Trailer.WatchURL()+"  (t to open)"))
	} else {
		lines = append(lines, styles.DimStyle.Render("Trailer unavailable"))
	}

	state := "❚❚ Paused"
	if pb.Playing {
		state = "▶ Playing"
	}
	episode := fmt.Sprintf("Episode %d", pb.Episode)
	if item.Episodes > 0 {
		episode = fmt.Sprintf("Episode %d/%d", pb.Episode, item.Episodes)
	}
	lines = append(lines, fmt.Sprintf("%s  %s  %s",
		styles.SuccessStyle.Render(state),
		styles.SubtitleStyle.Render(episode),
		styles.DimStyle.Render(formatPosition(pb.Position)),
	))
	lines = append(lines, styles.DimStyle.Render("Volume ")+volumeBar(pb.Volume, 20))

	return styles.PlayerStyle.Width(min(width, 72)).Render(strings.Join(lines, "\n"))
}

func renderMeta(item *domain.Item) string {
	var parts []string
	if item.Quote == nil {
		parts = append(parts, styles.ScoreStyle.Render("★ "+item.FormattedScore()))
	}
	if y := item.FormattedYear(); y != "" {
		parts = append(parts, y)
	}
	if item.Quote == nil {
		parts = append(parts, item.FormattedEpisodes())
		if item.Duration != "" {
			parts = append(parts, item.Duration)
		}
		parts = append(parts, item.Status.String())
		if item.Rating != "" {
			parts = append(parts, item.Rating)
		}
	}
	meta := strings.Join(parts, styles.DimStyle.Render(" · "))

	var tags []string
	for _, tag := range item.Tags {
		tags = append(tags, styles.DimBadgeStyle.Render(tag))
	}
	return meta + "\n" + strings.Join(tags, " ") + "\n"
}

func (m Model) renderRelated() string {
	related := m.Nav.Related(m.Display, RelatedLimit)
	if len(related) == 0 {
		return ""
	}

	lines := []string{styles.SubtitleStyle.Render("Related")}
	for i, item := range related {
		prefix := "  "
		style := styles.DimStyle
		if i == m.relatedIndex {
			prefix = "› "
			style = styles.AccentStyle
		}
		lines = append(lines, style.Render(prefix+item.Title))
	}
	return strings.Join(lines, "\n")
}

// renderFooter renders status on the left and hints on the right
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.Loading:
		left = m.Spinner.View() + " " + styles.DimStyle.Render("Loading...")
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	var hints []string
	switch {
	case m.State == StateSearching:
		hints = []string{"enter done", "esc close"}
	case m.Nav.Active == view.Detail && m.Board == BoardAnime:
		hints = []string{"space play", "t trailer", "f favorite", "esc close"}
	case m.Nav.Active == view.Detail:
		hints = []string{"f favorite", "esc close"}
	default:
		hints = []string{"/ search", "c genre", "s sort", "tab board"}
	}
	hints = append(hints, "? help")

	var rendered []string
	for _, h := range hints {
		k, desc, _ := strings.Cut(h, " ")
		rendered = append(rendered, styles.AccentStyle.Render(k)+styles.DimStyle.Render(" "+desc))
	}
	right := strings.Join(rendered, "  ")

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
BROWSE                          DETAIL / PLAYER
  h/j/k/l    Move                  space  Play / pause
  enter      Open                  +/-    Volume
  1 / 2      Home / catalog        h/l    Seek 10s
  tab        Anime / market        n/p    Next / previous episode
  /          Search                t      Watch trailer
  c          Genre                 j/k    Related
  s          Sort                  ⌫      Back
  r          Refresh               esc    Close

ACCOUNT                         OTHER
  a          Sign in               q      Quit
  L          Sign out              ?      This help
  f          Toggle favorite

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// formatPosition formats a duration as HH:MM:SS or MM:SS
func formatPosition(d time.Duration) string {
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// volumeBar renders a fixed-width volume gauge
func volumeBar(volume, width int) string {
	filled := volume * width / view.MaxVolume
	return styles.AccentStyle.Render(strings.Repeat("█", filled)) +
		styles.DimStyle.Render(strings.Repeat("░", width-filled)) +
		styles.DimStyle.Render(fmt.Sprintf(" %d%%", volume))
}
