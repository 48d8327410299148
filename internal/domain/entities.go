package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// CategoryAll is the universal category sentinel: it matches every item.
const CategoryAll = "All"

// Status is the lifecycle label of a catalog entry
type Status int

const (
	StatusUnknown Status = iota
	StatusCompleted
	StatusOngoing
	StatusUpcoming
)

// String returns a human-readable representation of the status
func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "Completed"
	case StatusOngoing:
		return "Ongoing"
	case StatusUpcoming:
		return "Upcoming"
	default:
		return "Unknown"
	}
}

// ParseStatus maps a free-form lifecycle label onto the closed Status set.
// Both the short labels ("completed") and Jikan's airing labels
// ("Finished Airing") are understood.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "completed", "finished airing", "finished":
		return StatusCompleted
	case "ongoing", "currently airing", "airing", "live":
		return StatusOngoing
	case "upcoming", "not yet aired":
		return StatusUpcoming
	default:
		return StatusUnknown
	}
}

// Trailer references an external video for an item
type Trailer struct {
	YouTubeID string `json:"youtube_id,omitempty"`
	URL       string `json:"url,omitempty"`
	EmbedURL  string `json:"embed_url,omitempty"`
}

// WatchURL returns a URL an external player or browser can open.
// Empty when the trailer carries no usable reference.
func (t *Trailer) WatchURL() string {
	if t == nil {
		return ""
	}
	switch {
	case t.URL != "":
		return t.URL
	case t.YouTubeID != "":
		return "https://www.youtube.com/watch?v=" + t.YouTubeID
	default:
		return t.EmbedURL
	}
}

// Quote holds the market fields of a tradable asset
type Quote struct {
	Price     float64 `json:"price"`
	ChangePct float64 `json:"change_pct"`
}

// Item is a catalog entry: an anime title or a tradable asset
type Item struct {
	ID          string   `json:"id"`           // Unique within a result set
	Title       string   `json:"title"`        // Display title
	NativeTitle string   `json:"native_title"` // Native-script title, or ticker symbol for assets
	Year        int      `json:"year"`         // 0 = unknown
	Score       *float64 `json:"score"`        // nil = unavailable
	Tags        []string `json:"tags"`         // Category tags
	Synopsis    string   `json:"synopsis"`
	Status      Status   `json:"status"`

	// Optional media reference; nil is a valid, expected state
	Trailer *Trailer `json:"trailer,omitempty"`

	Episodes int    `json:"episodes"` // 0 = unknown
	Duration string `json:"duration"` // e.g. "24 min per ep"
	Rating   string `json:"rating"`   // Content rating, e.g. "PG-13"
	ImageURL string `json:"image_url"`

	// Market assets only
	Quote *Quote `json:"quote,omitempty"`
}

// HasTag reports whether the item is tagged with category
func (i *Item) HasTag(category string) bool {
	for _, t := range i.Tags {
		if t == category {
			return true
		}
	}
	return false
}

// HasTrailer reports whether the item carries a playable trailer
func (i *Item) HasTrailer() bool {
	return i.Trailer.WatchURL() != ""
}

// FormattedScore renders the score, or "N/A" when it is unavailable
func (i *Item) FormattedScore() string {
	if i.Score == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*i.Score, 'f', 2, 64)
}

// FormattedYear renders the year, or an empty string when unknown
func (i *Item) FormattedYear() string {
	if i.Year <= 0 {
		return ""
	}
	return strconv.Itoa(i.Year)
}

// FormattedEpisodes renders the episode count
func (i *Item) FormattedEpisodes() string {
	switch {
	case i.Episodes <= 0:
		return "Unknown"
	case i.Episodes == 1:
		return "1 episode"
	default:
		return fmt.Sprintf("%d episodes", i.Episodes)
	}
}

// FormattedPrice renders the quote price with precision suited to its magnitude
func (i *Item) FormattedPrice() string {
	if i.Quote == nil {
		return ""
	}
	p := i.Quote.Price
	switch {
	case p >= 1000:
		return fmt.Sprintf("$%.0f", p)
	case p >= 1:
		return fmt.Sprintf("$%.2f", p)
	default:
		return fmt.Sprintf("$%.6f", p)
	}
}

// FormattedChange renders the signed percent change
func (i *Item) FormattedChange() string {
	if i.Quote == nil {
		return ""
	}
	return fmt.Sprintf("%+.2f%%", i.Quote.ChangePct)
}

// ScoreValue returns the score and whether it is present
func (i *Item) ScoreValue() (float64, bool) {
	if i.Score == nil {
		return 0, false
	}
	return *i.Score, true
}

// Session is the signed-in identity record
type Session struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Valid reports whether the record carries the fields a session needs
func (s *Session) Valid() bool {
	return s != nil && s.ID != "" && s.Email != ""
}

// Float64 returns a pointer to v, for optional numeric fields
func Float64(v float64) *float64 {
	return &v
}
