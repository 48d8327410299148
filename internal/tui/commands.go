package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/catalog"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/domain"
)

// Command factories for async operations

// fetchTimeout bounds a single catalog fetch including retries
const fetchTimeout = 30 * time.Second

// FetchItemsCmd loads catalog items. The result carries seq so a superseded
// fetch can be recognised and dropped when it arrives.
func FetchItemsCmd(ctx context.Context, svc *catalog.Service, seq uint64, board Board, query, category string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()

		res := svc.Fetch(ctx, query, category)
		return ItemsLoadedMsg{
			Seq:      seq,
			Board:    board,
			Query:    query,
			Category: category,
			Items:    res.Items,
			Failed:   res.Failed,
		}
	}
}

// DebounceCmd delivers a SearchDebounceMsg after d
func DebounceCmd(seq uint64, query string, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return SearchDebounceMsg{Seq: seq, Query: query}
	})
}

// PlaybackTickCmd advances the simulated player once a second
func PlaybackTickCmd(seq uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return PlaybackTickMsg{Seq: seq}
	})
}

// PlayTrailerCmd launches the item's trailer in an external player
func PlayTrailerCmd(svc *catalog.TrailerService, item *domain.Item, offset time.Duration) tea.Cmd {
	return func() tea.Msg {
		if err := svc.Play(item, offset); err != nil {
			return ErrMsg{Err: err, Context: "playing trailer"}
		}
		return TrailerLaunchedMsg{Title: item.Title}
	}
}

// ClearStatusCmd clears the status message after a delay
func ClearStatusCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
