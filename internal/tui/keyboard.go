package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/domain"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/search"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/tui/components"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/view"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle state-specific keys
	switch m.State {
	case StateHelp:
		m.State = StateBrowsing
		return m, nil

	case StateSearching:
		return m.handleSearchKey(msg)
	}

	// Route to active modal if any
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		m.Shutdown()
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Board):
		return m, m.switchBoard()

	case key.Matches(msg, Keys.SignIn):
		if m.Session != nil && !m.Session.SignedIn() {
			m.AuthForm.Show(components.ModeSignIn)
		}
		return m, nil

	case key.Matches(msg, Keys.SignOut):
		if m.Session != nil && m.Session.SignedIn() {
			m.Session.SignOut()
			return m, m.setStatus("Signed out", false)
		}
		return m, nil

	case key.Matches(msg, Keys.Favorite):
		return m, m.toggleFavorite()

	case key.Matches(msg, Keys.Refresh):
		return m, m.fetch()
	}

	if m.Nav.Active == view.Detail {
		return m.handleDetailKey(msg)
	}
	return m.handleBrowseKey(msg)
}

// handleBrowseKey handles keys on the home and catalog views
func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Home):
		m.Nav.ShowHome()
		m.syncGrid()
		return m, nil

	case key.Matches(msg, Keys.Catalog):
		m.Nav.ShowCatalog()
		m.syncGrid()
		return m, nil

	case key.Matches(msg, Keys.Search):
		if m.Nav.Active != view.Catalog {
			m.Nav.ShowCatalog()
			m.syncGrid()
		}
		m.State = StateSearching
		m.SearchInput.SetValue(m.Query)
		m.SearchInput.CursorEnd()
		return m, m.SearchInput.Focus()

	case key.Matches(msg, Keys.Genre):
		if svc := m.service(); svc != nil {
			m.GenrePicker.Show(svc.Categories(), m.Category)
		}
		return m, nil

	case key.Matches(msg, Keys.Sort):
		opts := search.AnimeSortOptions()
		if m.Board == BoardMarket {
			opts = search.MarketSortOptions()
		}
		m.SortModal.Show(opts, m.SortField, m.SortDir)
		return m, nil

	case key.Matches(msg, Keys.Escape):
		// Clear search and genre first, then fall back home
		if m.Query != "" || !search.IsAll(m.Category) {
			m.SearchInput.SetValue("")
			cmds := []tea.Cmd{m.applyQuery("")}
			if !search.IsAll(m.Category) {
				cmds = append(cmds, m.applyCategory(domain.CategoryAll))
			}
			return m, tea.Batch(cmds...)
		}
		if m.Nav.Active != view.Home {
			m.Nav.ShowHome()
			m.syncGrid()
		}
		return m, nil

	case key.Matches(msg, Keys.Enter):
		return m, m.openDetail(m.Grid.Selected())
	}

	m.Grid.HandleKey(msg)
	return m, nil
}

// handleDetailKey handles keys on the detail/player view
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item, ok := m.Nav.Resolve(m.Display)
	if !ok {
		m.syncGrid()
		return m, nil
	}
	related := m.Nav.Related(m.Display, RelatedLimit)

	switch {
	case key.Matches(msg, Keys.Escape):
		m.Nav.Close()
		m.playbackSeq++
		m.syncGrid()
		return m, nil

	case key.Matches(msg, Keys.Back):
		m.Nav.Back()
		m.playbackSeq++
		m.syncGrid()
		return m, nil

	case key.Matches(msg, Keys.Home):
		m.Nav.ShowHome()
		m.playbackSeq++
		m.syncGrid()
		return m, nil

	case key.Matches(msg, Keys.Catalog):
		m.Nav.ShowCatalog()
		m.playbackSeq++
		m.syncGrid()
		return m, nil

	case key.Matches(msg, Keys.Trailer):
		if !item.HasTrailer() || m.Trailers == nil {
			return m, m.setStatus("Trailer unavailable", true)
		}
		return m, PlayTrailerCmd(m.Trailers, item, m.Nav.Playback.Position)

	case key.Matches(msg, Keys.RelatedUp):
		if m.relatedIndex > 0 {
			m.relatedIndex--
		}
		return m, nil

	case key.Matches(msg, Keys.RelatedDown):
		if m.relatedIndex < len(related)-1 {
			m.relatedIndex++
		}
		return m, nil

	case key.Matches(msg, Keys.Enter):
		if m.relatedIndex < len(related) {
			return m, m.openDetail(related[m.relatedIndex])
		}
		return m, nil
	}

	// Player controls apply to the anime board only
	if m.Board != BoardAnime {
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.PlayPause):
		m.Nav.TogglePlay()
		m.playbackSeq++
		if m.Nav.Playback.Playing {
			return m, PlaybackTickCmd(m.playbackSeq)
		}
	case key.Matches(msg, Keys.VolumeUp):
		m.Nav.AdjustVolume(volumeStep)
	case key.Matches(msg, Keys.VolumeDown):
		m.Nav.AdjustVolume(-volumeStep)
	case key.Matches(msg, Keys.SeekBack):
		m.Nav.Seek(-seekStep)
	case key.Matches(msg, Keys.SeekForward):
		m.Nav.Seek(seekStep)
	case key.Matches(msg, Keys.NextEpisode):
		m.Nav.SelectEpisode(m.Nav.Playback.Episode+1, item.Episodes)
	case key.Matches(msg, Keys.PrevEpisode):
		m.Nav.SelectEpisode(m.Nav.Playback.Episode-1, item.Episodes)
	}
	return m, nil
}

// handleSearchKey handles typing in the search box
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.State = StateBrowsing
		m.SearchInput.Blur()
		return m, nil
	case tea.KeyCtrlC:
		m.Shutdown()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.SearchInput, cmd = m.SearchInput.Update(msg)
	return m, tea.Batch(cmd, m.applyQuery(m.SearchInput.Value()))
}

// routeToModal routes key input to active modals
// Returns (handled, model, cmd) where handled is true if a modal consumed the input
func (m Model) routeToModal(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	if m.AuthForm.IsVisible() {
		var (
			cmd tea.Cmd
			sub *components.AuthSubmission
		)
		m.AuthForm, cmd, sub = m.AuthForm.Update(msg)
		if sub != nil {
			return true, m, tea.Batch(cmd, m.submitAuth(*sub))
		}
		return true, m, cmd
	}

	if m.GenrePicker.IsVisible() {
		var (
			cmd    tea.Cmd
			chosen string
		)
		m.GenrePicker, cmd, chosen = m.GenrePicker.Update(msg)
		if chosen != "" {
			return true, m, tea.Batch(cmd, m.applyCategory(chosen))
		}
		return true, m, cmd
	}

	if m.SortModal.IsVisible() {
		if sel := m.SortModal.HandleKey(msg); sel != nil {
			m.SortField = sel.Field
			m.SortDir = sel.Direction
			m.refreshDisplay()
		}
		return true, m, nil
	}

	return false, m, nil
}
