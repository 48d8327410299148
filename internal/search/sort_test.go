package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/domain"
)

func TestSort_Default_KeepsSourceOrder(t *testing.T) {
	items := testItems()

	sorted := Sort(items, SortDefault, SortAsc)

	assert.Equal(t, ids(items), ids(sorted))
}

func TestSort_ByTitle(t *testing.T) {
	sorted := Sort(testItems(), SortTitle, SortAsc)

	assert.Equal(t, []string{"2", "3", "5", "1", "4"}, ids(sorted))
}

func TestSort_ByScore_MissingLast(t *testing.T) {
	items := testItems()

	desc := Sort(items, SortScore, SortDesc)
	assert.Equal(t, []string{"4", "1", "2", "3", "5"}, ids(desc))

	asc := Sort(items, SortScore, SortAsc)
	assert.Equal(t, []string{"2", "1", "4", "3", "5"}, ids(asc))
}

func TestSort_ByYear_IsStable(t *testing.T) {
	sorted := Sort(testItems(), SortYear, SortDesc)

	// Clannad and Shippuden share 2007 and keep their source order
	assert.Equal(t, []string{"3", "4", "2", "1", "5"}, ids(sorted))
}

func TestSort_ByChange(t *testing.T) {
	items := []*domain.Item{
		{ID: "btc", Quote: &domain.Quote{Price: 43000, ChangePct: 1.5}},
		{ID: "nil"},
		{ID: "eth", Quote: &domain.Quote{Price: 2300, ChangePct: -2.0}},
		{ID: "sol", Quote: &domain.Quote{Price: 98, ChangePct: 6.1}},
	}

	sorted := Sort(items, SortChange, SortDesc)

	assert.Equal(t, []string{"sol", "btc", "eth", "nil"}, ids(sorted))
}

func TestSort_DoesNotReorderInput(t *testing.T) {
	items := testItems()
	before := ids(items)

	_ = Sort(items, SortTitle, SortDesc)

	assert.Equal(t, before, ids(items))
}

func TestDefaultDirection(t *testing.T) {
	assert.Equal(t, SortAsc, DefaultDirection(SortTitle))
	assert.Equal(t, SortDesc, DefaultDirection(SortScore))
	assert.Equal(t, "24h Change", SortChange.String())
}

func TestMatchCategories(t *testing.T) {
	genres := []string{"All", "Action", "Drama", "Sci-Fi", "Slice of Life"}

	all := MatchCategories("", genres)
	require.Len(t, all, len(genres))
	assert.Equal(t, "All", all[0].Name)
	assert.Empty(t, all[0].MatchedIndexes)

	drama := MatchCategories("DRAMA", genres)
	require.NotEmpty(t, drama)
	assert.Equal(t, "Drama", drama[0].Name)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, drama[0].MatchedIndexes)

	names := func(ms []CategoryMatch) []string {
		out := make([]string, len(ms))
		for i, m := range ms {
			out[i] = m.Name
		}
		return out
	}
	assert.Contains(t, names(MatchCategories("sf", genres)), "Sci-Fi")
	assert.Empty(t, MatchCategories("zzz", genres))
}

func TestSuggest(t *testing.T) {
	items := testItems()

	// In-order fuzzy match, closest first
	assert.Equal(t, []string{"Naruto", "Naruto Shippuden"}, Suggest("nrt", items, 3))

	// Transposed letters fall back to edit distance
	typo := Suggest("naurto", items, 3)
	assert.Contains(t, typo, "Naruto")
	assert.NotContains(t, typo, "Bleach")

	assert.Len(t, Suggest("a", items, 2), 2)
	assert.Nil(t, Suggest("", items, 3))
	assert.Nil(t, Suggest("naruto", items, 0))
}
