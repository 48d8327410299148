package tui

import (
	"time"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/domain"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/ticker"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// ItemsLoadedMsg carries a catalog fetch result tagged with its sequence number
type ItemsLoadedMsg struct {
	Seq      uint64
	Board    Board
	Query    string
	Category string
	Items    []*domain.Item
	Failed   bool
}

// SearchDebounceMsg fires once typing has paused
type SearchDebounceMsg struct {
	Seq   uint64
	Query string
}

// PriceTickMsg signals a market ticker period elapsed
type PriceTickMsg struct {
	Time time.Time

	handle *ticker.Handle // ticks from a stopped handle are dropped
}

// PlaybackTickMsg advances the simulated player
type PlaybackTickMsg struct {
	Seq uint64
}

// TrailerLaunchedMsg signals the external player was started
type TrailerLaunchedMsg struct {
	Title string
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
