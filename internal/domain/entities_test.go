package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := map[string]Status{
		"Finished Airing":  StatusCompleted,
		"completed":        StatusCompleted,
		"Currently Airing": StatusOngoing,
		" ongoing ":        StatusOngoing,
		"Not yet aired":    StatusUpcoming,
		"hiatus":           StatusUnknown,
		"":                 StatusUnknown,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseStatus(in), in)
	}
	assert.Equal(t, "Ongoing", StatusOngoing.String())
}

func TestItem_FormattedScore(t *testing.T) {
	assert.Equal(t, "N/A", (&Item{}).FormattedScore())
	assert.Equal(t, "0.00", (&Item{Score: Float64(0)}).FormattedScore())
	assert.Equal(t, "8.62", (&Item{Score: Float64(8.62)}).FormattedScore())
}

func TestItem_Formatting(t *testing.T) {
	item := &Item{Year: 2004, Episodes: 366, Quote: &Quote{Price: 0.5234, ChangePct: -1.234}}

	assert.Equal(t, "2004", item.FormattedYear())
	assert.Equal(t, "366 episodes", item.FormattedEpisodes())
	assert.Equal(t, "$0.523400", item.FormattedPrice())
	assert.Equal(t, "-1.23%", item.FormattedChange())

	item.Quote = &Quote{Price: 67420.15, ChangePct: 2}
	assert.Equal(t, "$67420", item.FormattedPrice())
	assert.Equal(t, "+2.00%", item.FormattedChange())

	blank := &Item{}
	assert.Empty(t, blank.FormattedYear())
	assert.Equal(t, "Unknown", blank.FormattedEpisodes())
	assert.Empty(t, blank.FormattedPrice())
}

func TestTrailer_WatchURL(t *testing.T) {
	var none *Trailer
	assert.Empty(t, none.WatchURL())
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", (&Trailer{YouTubeID: "abc"}).WatchURL())
	assert.Equal(t, "https://x/y", (&Trailer{URL: "https://x/y", YouTubeID: "abc"}).WatchURL())

	assert.False(t, (&Item{}).HasTrailer())
	assert.False(t, (&Item{Trailer: &Trailer{}}).HasTrailer())
	assert.True(t, (&Item{Trailer: &Trailer{EmbedURL: "https://e"}}).HasTrailer())
}

func TestSession_JSONLayout(t *testing.T) {
	data, err := json.Marshal(Session{ID: "id-1", Email: "a@b.com", Username: "a"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"id-1","email":"a@b.com","username":"a"}`, string(data))

	var nilSession *Session
	assert.False(t, nilSession.Valid())
	assert.False(t, (&Session{ID: "x"}).Valid())
	assert.True(t, (&Session{ID: "x", Email: "a@b.com"}).Valid())
}
