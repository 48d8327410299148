package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/ticker"
)

// WaitForTickCmd adapts a ticker handle's channel to Bubble Tea. It yields one
// PriceTickMsg per tick and must be re-issued after each one. Once the handle
// stops, the channel closes and the command yields nil, ending the chain.
func WaitForTickCmd(h *ticker.Handle) tea.Cmd {
	if h == nil {
		return nil
	}
	return func() tea.Msg {
		t, ok := <-h.C()
		if !ok {
			return nil
		}
		return PriceTickMsg{Time: t, handle: h}
	}
}
