package models

// CatalogItem is one result row from the content API's paginated endpoints.
type CatalogItem struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	Overview     string  `json:"overview,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	VoteAverage  float64 `json:"vote_average,omitempty"`
	VoteCount    int64   `json:"vote_count,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	GenreIDs     []int64 `json:"genre_ids,omitempty"`
}

// CatalogPage is the paginated envelope every listing endpoint returns.
type CatalogPage struct {
	Page         int           `json:"page"`
	Results      []CatalogItem `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TitleDetail is the detail payload for a single movie or TV show. Fields
// absent for one media type are simply zero for the other.
type TitleDetail struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title,omitempty"`
	Name             string  `json:"name,omitempty"`
	Overview         string  `json:"overview,omitempty"`
	Tagline          string  `json:"tagline,omitempty"`
	PosterPath       string  `json:"poster_path,omitempty"`
	BackdropPath     string  `json:"backdrop_path,omitempty"`
	VoteAverage      float64 `json:"vote_average,omitempty"`
	VoteCount        int64   `json:"vote_count,omitempty"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	FirstAirDate     string  `json:"first_air_date,omitempty"`
	Runtime          int     `json:"runtime,omitempty"`
	NumberOfSeasons  int     `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes int     `json:"number_of_episodes,omitempty"`
	Status           string  `json:"status,omitempty"`
	Genres           []Genre `json:"genres,omitempty"`
}
