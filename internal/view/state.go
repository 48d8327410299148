// Package view holds the navigation state machine: home, catalog, and the
// detail (player) view of a single item.
package view

import (
	"time"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/domain"
)

// Kind identifies the active view
type Kind int

const (
	Home Kind = iota
	Catalog
	Detail
)

// String returns the view name
func (k Kind) String() string {
	switch k {
	case Home:
		return "home"
	case Catalog:
		return "catalog"
	case Detail:
		return "detail"
	default:
		return "unknown"
	}
}

// ParseKind maps a configured view name onto a Kind; only home and catalog
// are valid start views.
func ParseKind(name string) Kind {
	if name == "catalog" {
		return Catalog
	}
	return Home
}

const (
	DefaultVolume = 80
	MaxVolume     = 100
)

// Playback is the simulated player sub-state of the detail view
type Playback struct {
	Playing  bool
	Volume   int           // 0..100
	Position time.Duration // >= 0
	Episode  int           // 1-based
}

// DefaultPlayback returns the playback state a fresh detail view starts with
func DefaultPlayback() Playback {
	return Playback{Volume: DefaultVolume, Episode: 1}
}

// State is the navigation state. The selection is held by id and resolved
// against the current display list on every access.
type State struct {
	Active     Kind
	SelectedID string
	Playback   Playback

	// Kind to return to when the detail view closes
	returnTo Kind
}

// New returns the initial state: home, nothing selected
func New() State {
	return State{Active: Home, Playback: DefaultPlayback()}
}

// ShowHome navigates home, dropping any selection
func (s *State) ShowHome() {
	s.reset(Home)
}

// ShowCatalog navigates to the catalog, dropping any selection
func (s *State) ShowCatalog() {
	s.reset(Catalog)
}

// Open enters the detail view for id. The id must be present in list;
// otherwise the state falls back to home and domain.ErrItemNotFound is returned.
// Opening from within the detail view switches items and resets playback.
func (s *State) Open(id string, list []*domain.Item) error {
	if find(list, id) == nil {
		s.reset(Home)
		return domain.ErrItemNotFound
	}
	if s.Active != Detail {
		s.returnTo = s.Active
	}
	s.Active = Detail
	s.SelectedID = id
	s.Playback = DefaultPlayback()
	return nil
}

// Close leaves the detail view for home, clearing selection and playback
func (s *State) Close() {
	s.reset(Home)
}

// Back leaves the detail view for the view it was opened from
func (s *State) Back() {
	if s.Active != Detail {
		return
	}
	s.reset(s.returnTo)
}

// Resolve looks the selected id up in list. When the id is gone and the
// detail view is active, the state falls back to home.
func (s *State) Resolve(list []*domain.Item) (*domain.Item, bool) {
	if s.SelectedID == "" {
		return nil, false
	}
	item := find(list, s.SelectedID)
	if item == nil {
		if s.Active == Detail {
			s.reset(Home)
		} else {
			s.SelectedID = ""
		}
		return nil, false
	}
	return item, true
}

// Related returns up to n items of list sharing a tag with the selection,
// excluding the selection itself, in list order.
func (s *State) Related(list []*domain.Item, n int) []*domain.Item {
	selected := find(list, s.SelectedID)
	if selected == nil || n <= 0 {
		return nil
	}
	var out []*domain.Item
	for _, item := range list {
		if item == nil || item.ID == selected.ID {
			continue
		}
		for _, tag := range selected.Tags {
			if item.HasTag(tag) {
				out = append(out, item)
				break
			}
		}
		if len(out) == n {
			break
		}
	}
	return out
}

// TogglePlay flips play/pause in the detail view
func (s *State) TogglePlay() {
	if s.Active == Detail {
		s.Playback.Playing = !s.Playback.Playing
	}
}

// AdjustVolume changes the volume by delta, clamped to 0..100
func (s *State) AdjustVolume(delta int) {
	if s.Active != Detail {
		return
	}
	s.Playback.Volume = min(max(s.Playback.Volume+delta, 0), MaxVolume)
}

// Seek moves the playback position by delta, never before the start
func (s *State) Seek(delta time.Duration) {
	if s.Active != Detail {
		return
	}
	s.Playback.Position = max(s.Playback.Position+delta, 0)
}

// Advance moves the position forward while playing; called on each tick
func (s *State) Advance(elapsed time.Duration) {
	if s.Active == Detail && s.Playback.Playing {
		s.Playback.Position += elapsed
	}
}

// SelectEpisode switches episode within the selected item, restarting playback
// position. n is clamped to 1..episodes; episodes <= 0 means unknown (no upper bound).
func (s *State) SelectEpisode(n, episodes int) {
	if s.Active != Detail {
		return
	}
	n = max(n, 1)
	if episodes > 0 {
		n = min(n, episodes)
	}
	if n != s.Playback.Episode {
		s.Playback.Episode = n
		s.Playback.Position = 0
	}
}

func (s *State) reset(to Kind) {
	s.Active = to
	s.SelectedID = ""
	s.Playback = DefaultPlayback()
	s.returnTo = Home
}

func find(list []*domain.Item, id string) *domain.Item {
	if id == "" {
		return nil
	}
	for _, item := range list {
		if item != nil && item.ID == id {
			return item
		}
	}
	return nil
}
