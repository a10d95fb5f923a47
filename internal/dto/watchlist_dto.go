package dto

import "moviedeck/internal/models"

type ToggleWatchlistRequest struct {
	MediaType    string  `json:"media_type"`
	ID           int64   `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	Overview     string  `json:"overview,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	VoteAverage  float64 `json:"vote_average,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
}

func (r ToggleWatchlistRequest) Entry() models.WatchlistEntry {
	return models.WatchlistEntry{
		ID:           r.ID,
		Title:        r.Title,
		Name:         r.Name,
		Overview:     r.Overview,
		PosterPath:   r.PosterPath,
		VoteAverage:  r.VoteAverage,
		ReleaseDate:  r.ReleaseDate,
		FirstAirDate: r.FirstAirDate,
	}
}

type ToggleWatchlistResponse struct {
	InWatchlist bool `json:"in_watchlist"`
}

type WatchlistResponse struct {
	Items []models.WatchlistEntry `json:"items"`
	Count int                     `json:"count"`
}

type ContainsResponse struct {
	InWatchlist bool `json:"in_watchlist"`
}

type ThemeRequest struct {
	Theme string `json:"theme"`
}

type ThemeResponse struct {
	Theme string `json:"theme"`
}
