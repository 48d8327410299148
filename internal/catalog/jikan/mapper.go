package jikan

import (
	"strconv"
	"strings"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/domain"
)

// MapAnimeList converts Jikan anime records to domain items.
// Records without an id are skipped; duplicate ids keep the first occurrence.
func MapAnimeList(records []Anime) []*domain.Item {
	items := make([]*domain.Item, 0, len(records))
	seen := make(map[int]bool, len(records))
	for _, rec := range records {
		if rec.MalID == 0 || seen[rec.MalID] {
			continue
		}
		seen[rec.MalID] = true
		items = append(items, mapAnime(rec))
	}
	return items
}

// mapAnime converts a single Jikan record to a domain item
func mapAnime(rec Anime) *domain.Item {
	item := &domain.Item{
		ID:          strconv.Itoa(rec.MalID),
		Title:       rec.Title,
		NativeTitle: rec.TitleJapanese,
		Score:       rec.Score, // null stays nil, rendered as N/A
		Synopsis:    strings.TrimSpace(rec.Synopsis),
		Status:      domain.ParseStatus(rec.Status),
		Duration:    rec.Duration,
		Rating:      rec.Rating,
		ImageURL:    rec.Images.JPG.LargeImageURL,
	}

	if item.Title == "" {
		item.Title = rec.TitleEnglish
	}
	if item.ImageURL == "" {
		item.ImageURL = rec.Images.JPG.ImageURL
	}

	// Jikan leaves year null for many older titles; fall back to the airing start
	switch {
	case rec.Year != nil:
		item.Year = *rec.Year
	case rec.Aired.Prop.From.Year != nil:
		item.Year = *rec.Aired.Prop.From.Year
	}

	if rec.Episodes != nil {
		item.Episodes = *rec.Episodes
	}

	item.Tags = make([]string, 0, len(rec.Genres))
	for _, g := range rec.Genres {
		if g.Name != "" {
			item.Tags = append(item.Tags, g.Name)
		}
	}

	item.Trailer = mapTrailer(rec.Trailer)
	return item
}

// mapTrailer returns nil when the record carries no usable video reference
func mapTrailer(t *Trailer) *domain.Trailer {
	if t == nil || (t.YouTubeID == "" && t.URL == "" && t.EmbedURL == "") {
		return nil
	}
	return &domain.Trailer{
		YouTubeID: t.YouTubeID,
		URL:       t.URL,
		EmbedURL:  t.EmbedURL,
	}
}
