package search

import (
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/domain"
)

// CategoryMatch is a category picker entry with highlight positions
type CategoryMatch struct {
	Name           string
	MatchedIndexes []int
}

// MatchCategories fuzzy-matches query against category names for the picker.
// An empty query returns every category in its original order.
func MatchCategories(query string, categories []string) []CategoryMatch {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]CategoryMatch, len(categories))
		for i, c := range categories {
			out[i] = CategoryMatch{Name: c}
		}
		return out
	}

	lower := make([]string, len(categories))
	for i, c := range categories {
		lower[i] = strings.ToLower(c)
	}

	matches := fuzzy.Find(strings.ToLower(query), lower)
	out := make([]CategoryMatch, len(matches))
	for i, m := range matches {
		out[i] = CategoryMatch{
			Name:           categories[m.Index],
			MatchedIndexes: m.MatchedIndexes,
		}
	}
	return out
}

// Suggest returns up to n titles from items that look like what query meant,
// for "did you mean" hints on an empty result. In-order fuzzy matches rank
// first; remaining slots go to titles within a small edit distance.
func Suggest(query string, items []*domain.Item, n int) []string {
	query = strings.TrimSpace(query)
	if query == "" || n <= 0 || len(items) == 0 {
		return nil
	}

	titles := make([]string, 0, len(items))
	for _, item := range items {
		if item != nil && item.Title != "" {
			titles = append(titles, item.Title)
		}
	}

	seen := make(map[string]bool)
	var out []string
	add := func(title string) {
		if len(out) < n && !seen[title] {
			seen[title] = true
			out = append(out, title)
		}
	}

	ranks := lfuzzy.RankFindNormalizedFold(query, titles)
	sort.Sort(ranks)
	for _, r := range ranks {
		add(r.Target)
	}
	if len(out) >= n {
		return out
	}

	// Typo tolerance: compare against each word of the title as well as the whole
	type candidate struct {
		title string
		dist  int
	}
	lowerQuery := strings.ToLower(query)
	maxDist := max(2, len([]rune(lowerQuery))/3)
	var candidates []candidate
	for _, title := range titles {
		best := lfuzzy.LevenshteinDistance(lowerQuery, strings.ToLower(title))
		for _, word := range strings.Fields(strings.ToLower(title)) {
			best = min(best, lfuzzy.LevenshteinDistance(lowerQuery, word))
		}
		if best <= maxDist {
			candidates = append(candidates, candidate{title: title, dist: best})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})
	for _, c := range candidates {
		add(c.title)
	}
	return out
}
