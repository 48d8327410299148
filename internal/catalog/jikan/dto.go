package jikan

import "encoding/json"

// AnimeResponse represents a list response from the Jikan v4 API.
// Data is kept raw so a missing field can be told apart from an empty list.
type AnimeResponse struct {
	Data json.RawMessage `json:"data"`
}

// Anime represents an anime record from Jikan
type Anime struct {
	MalID         int      `json:"mal_id"`
	Title         string   `json:"title"`
	TitleEnglish  string   `json:"title_english,omitempty"`
	TitleJapanese string   `json:"title_japanese,omitempty"`
	Year          *int     `json:"year"`
	Score         *float64 `json:"score"`
	Genres        []Named  `json:"genres"`
	Themes        []Named  `json:"themes,omitempty"`
	Synopsis      string   `json:"synopsis"`
	Status        string   `json:"status"`
	Images        Images   `json:"images"`
	Trailer       *Trailer `json:"trailer"`
	Episodes      *int     `json:"episodes"`
	Duration      string   `json:"duration"`
	Rating        string   `json:"rating"`
	Aired         Aired    `json:"aired"`
}

// Named is a genre, theme or studio reference
type Named struct {
	MalID int    `json:"mal_id"`
	Name  string `json:"name"`
}

// Images holds the per-format cover art
type Images struct {
	JPG ImageSet `json:"jpg"`
}

// ImageSet holds cover URLs by size
type ImageSet struct {
	ImageURL      string `json:"image_url"`
	LargeImageURL string `json:"large_image_url"`
}

// Trailer references the promotional video on YouTube
type Trailer struct {
	YouTubeID string `json:"youtube_id"`
	URL       string `json:"url"`
	EmbedURL  string `json:"embed_url"`
}

// Aired carries the airing window; only the parsed start year is used
type Aired struct {
	Prop AiredProp `json:"prop"`
}

// AiredProp holds the structured airing dates
type AiredProp struct {
	From DateParts `json:"from"`
}

// DateParts is a partially known date
type DateParts struct {
	Year *int `json:"year"`
}
