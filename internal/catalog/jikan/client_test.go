package jikan

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/domain"
)

const sampleBody = `{
  "pagination": {"has_next_page": false},
  "data": [
    {
      "mal_id": 20,
      "title": "Naruto",
      "title_japanese": "ナルト",
      "year": 2002,
      "score": 8.0,
      "genres": [{"mal_id": 1, "name": "Action"}, {"mal_id": 2, "name": "Adventure"}],
      "synopsis": "  Moments prior to Naruto Uzumaki's birth...  ",
      "status": "Finished Airing",
      "images": {"jpg": {"image_url": "small.jpg", "large_image_url": "large.jpg"}},
      "trailer": {"youtube_id": "j2hiC9BmJlQ", "url": "https://www.youtube.com/watch?v=j2hiC9BmJlQ", "embed_url": ""},
      "episodes": 220,
      "duration": "23 min per ep",
      "rating": "PG-13 - Teens 13 or older"
    },
    {
      "mal_id": 269,
      "title": "Bleach",
      "title_japanese": "ブリーチ",
      "year": null,
      "score": null,
      "genres": [{"mal_id": 1, "name": "Action"}],
      "synopsis": "",
      "status": "Not yet aired",
      "images": {"jpg": {"image_url": "bleach.jpg"}},
      "trailer": {"youtube_id": null, "url": null, "embed_url": null},
      "episodes": null,
      "aired": {"prop": {"from": {"year": 2004}}}
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(Options{BaseURL: srv.URL, Limit: 20})
	c.retryDelay = time.Millisecond
	return c
}

func TestFetchItems_SelectsEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		category string
		path     string
		params   map[string]string
	}{
		{"query", "naruto", "", "/anime", map[string]string{"q": "naruto", "limit": "20"}},
		{"query overrides genre", "bleach", "Drama", "/anime", map[string]string{"q": "bleach", "genres": ""}},
		{"genre", "", "Drama", "/anime", map[string]string{"genres": "8", "order_by": "score", "sort": "desc", "limit": "20"}},
		{"slice of life", "", "Slice of Life", "/anime", map[string]string{"genres": "36"}},
		{"unknown genre", "", "Mecha", "/anime", map[string]string{"genres": "", "q": "", "limit": "20"}},
		{"all", "", domain.CategoryAll, "/top/anime", map[string]string{"limit": "20"}},
		{"empty", "", "", "/top/anime", map[string]string{"q": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			var gotQuery map[string][]string
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotQuery = r.URL.Query()
				w.Write([]byte(`{"data": []}`))
			})

			items, err := c.FetchItems(context.Background(), tt.query, tt.category)
			require.NoError(t, err)
			assert.Empty(t, items)

			assert.Equal(t, tt.path, gotPath)
			for k, v := range tt.params {
				got := ""
				if vals := gotQuery[k]; len(vals) > 0 {
					got = vals[0]
				}
				assert.Equal(t, v, got, "param %s", k)
			}
		})
	}
}

func TestFetchItems_MapsRecords(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleBody))
	})

	items, err := c.FetchItems(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, items, 2)

	naruto := items[0]
	assert.Equal(t, "20", naruto.ID)
	assert.Equal(t, "Naruto", naruto.Title)
	assert.Equal(t, "ナルト", naruto.NativeTitle)
	assert.Equal(t, 2002, naruto.Year)
	require.NotNil(t, naruto.Score)
	assert.InDelta(t, 8.0, *naruto.Score, 1e-9)
	assert.Equal(t, []string{"Action", "Adventure"}, naruto.Tags)
	assert.Equal(t, "Moments prior to Naruto Uzumaki's birth...", naruto.Synopsis)
	assert.Equal(t, domain.StatusCompleted, naruto.Status)
	assert.Equal(t, "large.jpg", naruto.ImageURL)
	assert.Equal(t, 220, naruto.Episodes)
	require.NotNil(t, naruto.Trailer)
	assert.Equal(t, "https://www.youtube.com/watch?v=j2hiC9BmJlQ", naruto.Trailer.WatchURL())

	bleach := items[1]
	assert.Nil(t, bleach.Score)
	assert.Equal(t, "N/A", bleach.FormattedScore())
	assert.Nil(t, bleach.Trailer)
	assert.False(t, bleach.HasTrailer())
	assert.Equal(t, 2004, bleach.Year)
	assert.Equal(t, 0, bleach.Episodes)
	assert.Equal(t, domain.StatusUpcoming, bleach.Status)
	assert.Equal(t, "bleach.jpg", bleach.ImageURL)
}

func TestFetchItems_MalformedPayload(t *testing.T) {
	bodies := map[string]string{
		"not json":     `<html>oops</html>`,
		"missing data": `{"pagination": {}}`,
		"null data":    `{"data": null}`,
		"wrong shape":  `{"data": {"mal_id": 1}}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})

			items, err := c.FetchItems(context.Background(), "naruto", "")
			assert.Nil(t, items)
			assert.True(t, errors.Is(err, domain.ErrMalformedPayload), "got %v", err)
		})
	}
}

func TestFetchItems_Non2xx(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.FetchItems(context.Background(), "naruto", "")
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestFetchItems_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(sampleBody))
	})

	items, err := c.FetchItems(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchItems_GivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.FetchItems(context.Background(), "", "")
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	assert.Equal(t, int32(maxRetries+1), calls.Load())
}

func TestFetchItems_CancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleBody))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchItems(ctx, "naruto", "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMapAnimeList_SkipsDuplicates(t *testing.T) {
	items := MapAnimeList([]Anime{
		{MalID: 1, Title: "A"},
		{MalID: 0, Title: "no id"},
		{MalID: 1, Title: "A again"},
		{MalID: 2, TitleEnglish: "B"},
	})

	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Title)
	assert.Equal(t, "B", items[1].Title)
}

func TestGenreID(t *testing.T) {
	id, ok := GenreID("Thriller")
	assert.True(t, ok)
	assert.Equal(t, 41, id)

	_, ok = GenreID("All")
	assert.False(t, ok)
}
