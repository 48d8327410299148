package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/domain"
)

// Filter reduces items to those matching both query and category, preserving
// input order. It never mutates the items.
//
// The query matches case-insensitively against Title, or as a case-sensitive
// substring of NativeTitle (native scripts have no case). The category matches
// when the item carries it as a tag; an empty category or CategoryAll matches
// everything. An empty result is valid.
func Filter(items []*domain.Item, query, category string) []*domain.Item {
	folded := fold(query)
	result := make([]*domain.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if !MatchesCategory(item, category) {
			continue
		}
		if !matchesFolded(item, query, folded) {
			continue
		}
		result = append(result, item)
	}
	return result
}

// MatchesQuery reports whether item matches the free-text query
func MatchesQuery(item *domain.Item, query string) bool {
	return matchesFolded(item, query, fold(query))
}

// MatchesCategory reports whether item belongs to category
func MatchesCategory(item *domain.Item, category string) bool {
	if IsAll(category) {
		return true
	}
	return item.HasTag(category)
}

// IsAll reports whether category is the universal sentinel
func IsAll(category string) bool {
	return category == "" || category == domain.CategoryAll
}

func matchesFolded(item *domain.Item, query, folded string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(fold(item.Title), folded) {
		return true
	}
	return item.NativeTitle != "" && strings.Contains(item.NativeTitle, query)
}

// fold applies Unicode case folding. A Caser is stateful, so one is built per call.
func fold(s string) string {
	if s == "" {
		return s
	}
	return cases.Fold().String(s)
}

// Highlight returns the rune positions in title covered by the first
// case-insensitive occurrence of query, for match highlighting.
// Returns nil when there is no match or folding changes the title's length.
func Highlight(title, query string) []int {
	if query == "" {
		return nil
	}
	foldedTitle := []rune(fold(title))
	if len(foldedTitle) != len([]rune(title)) {
		return nil
	}
	foldedQuery := fold(query)
	idx := strings.Index(string(foldedTitle), foldedQuery)
	if idx < 0 {
		return nil
	}
	start := len([]rune(string(foldedTitle)[:idx]))
	return makeIndexRange(start, start+len([]rune(foldedQuery)))
}

// makeIndexRange creates a slice of consecutive integers [start, end)
func makeIndexRange(start, end int) []int {
	indexes := make([]int, end-start)
	for i := range indexes {
		indexes[i] = start + i
	}
	return indexes
}
