package search

import (
	"slices"
	"strings"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/domain"
)

// SortField represents a field to sort by
type SortField int

const (
	SortDefault SortField = iota // Source order
	SortTitle
	SortYear
	SortScore
	SortChange // market assets only
)

// String returns the display name for the sort field
func (f SortField) String() string {
	switch f {
	case SortDefault:
		return "Default"
	case SortTitle:
		return "Title"
	case SortYear:
		return "Year"
	case SortScore:
		return "Score"
	case SortChange:
		return "24h Change"
	default:
		return "Unknown"
	}
}

// SortDirection represents sort direction
type SortDirection int

const (
	SortAsc SortDirection = iota
	SortDesc
)

// DefaultDirection returns the default sort direction for a field
func DefaultDirection(field SortField) SortDirection {
	if field == SortTitle {
		return SortAsc // A-Z
	}
	return SortDesc // best/newest first
}

// AnimeSortOptions returns the sort options offered for anime catalogs
func AnimeSortOptions() []SortField {
	return []SortField{SortDefault, SortTitle, SortYear, SortScore}
}

// MarketSortOptions returns the sort options offered for the market board
func MarketSortOptions() []SortField {
	return []SortField{SortDefault, SortTitle, SortChange}
}

// Sort returns a stably sorted copy of items. Items missing the sort key
// (unknown year, N/A score, no quote) always go last, whatever the direction.
func Sort(items []*domain.Item, field SortField, dir SortDirection) []*domain.Item {
	sorted := slices.Clone(items)
	if field == SortDefault {
		return sorted
	}

	slices.SortStableFunc(sorted, func(a, b *domain.Item) int {
		aOK, bOK := hasKey(a, field), hasKey(b, field)
		switch {
		case !aOK && !bOK:
			return 0
		case !aOK:
			return 1
		case !bOK:
			return -1
		}
		c := compare(a, b, field)
		if dir == SortDesc {
			return -c
		}
		return c
	})
	return sorted
}

func hasKey(item *domain.Item, field SortField) bool {
	switch field {
	case SortYear:
		return item.Year > 0
	case SortScore:
		return item.Score != nil
	case SortChange:
		return item.Quote != nil
	default:
		return true
	}
}

func compare(a, b *domain.Item, field SortField) int {
	switch field {
	case SortTitle:
		return strings.Compare(fold(a.Title), fold(b.Title))
	case SortYear:
		return a.Year - b.Year
	case SortScore:
		return cmpFloat(*a.Score, *b.Score)
	case SortChange:
		return cmpFloat(a.Quote.ChangePct, b.Quote.ChangePct)
	default:
		return 0
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
