package models

import (
	"fmt"
	"time"
)

// MediaType discriminates the two watchlist collections. The same numeric id
// can appear in both collections without collision.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

func ParseMediaType(s string) (MediaType, error) {
	switch MediaType(s) {
	case MediaTypeMovie, MediaTypeTV:
		return MediaType(s), nil
	default:
		return "", fmt.Errorf("unknown media type %q", s)
	}
}

// WatchlistEntry is a saved content reference. Movies carry Title and
// ReleaseDate, TV shows Name and FirstAirDate, matching the catalog payloads.
type WatchlistEntry struct {
	ID           int64     `json:"id"`
	MediaType    MediaType `json:"mediaType,omitempty"`
	Title        string    `json:"title,omitempty"`
	Name         string    `json:"name,omitempty"`
	Overview     string    `json:"overview,omitempty"`
	PosterPath   string    `json:"poster_path,omitempty"`
	VoteAverage  float64   `json:"vote_average,omitempty"`
	ReleaseDate  string    `json:"release_date,omitempty"`
	FirstAirDate string    `json:"first_air_date,omitempty"`
	AddedAt      time.Time `json:"addedAt,omitempty"`
}
