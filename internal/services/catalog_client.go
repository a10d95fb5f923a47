package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"moviedeck/internal/config"
	"moviedeck/internal/models"
)

var ErrUnknownCategory = errors.New("unknown catalog category")

// Listing categories the content API exposes per media type.
var (
	movieCategories = map[string]bool{
		"popular":     true,
		"top_rated":   true,
		"upcoming":    true,
		"now_playing": true,
	}
	tvCategories = map[string]bool{
		"popular":      true,
		"top_rated":    true,
		"on_the_air":   true,
		"airing_today": true,
	}
)

// CatalogClient talks to the TMDB-compatible metadata service. It is an
// opaque collaborator: failures surface to the caller, no retry policy here.
type CatalogClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewCatalogClient(cfg *config.Config) *CatalogClient {
	return &CatalogClient{
		baseURL:    cfg.ContentAPIBaseURL,
		apiKey:     cfg.ContentAPIKey,
		httpClient: &http.Client{Timeout: cfg.ContentAPITimeout},
	}
}

// MovieCategory fetches one page of a movie listing.
func (c *CatalogClient) MovieCategory(ctx context.Context, category string, page int) (*models.CatalogPage, error) {
	if !movieCategories[category] {
		return nil, ErrUnknownCategory
	}
	var out models.CatalogPage
	if err := c.get(ctx, "/movie/"+category, pageParams(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TVCategory fetches one page of a TV listing.
func (c *CatalogClient) TVCategory(ctx context.Context, category string, page int) (*models.CatalogPage, error) {
	if !tvCategories[category] {
		return nil, ErrUnknownCategory
	}
	var out models.CatalogPage
	if err := c.get(ctx, "/tv/"+category, pageParams(page), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MovieDetail fetches the detail object for one movie.
func (c *CatalogClient) MovieDetail(ctx context.Context, id int64) (*models.TitleDetail, error) {
	var out models.TitleDetail
	if err := c.get(ctx, "/movie/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TVDetail fetches the detail object for one TV show.
func (c *CatalogClient) TVDetail(ctx context.Context, id int64) (*models.TitleDetail, error) {
	var out models.TitleDetail
	if err := c.get(ctx, "/tv/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search returns one page of titles matching the query text.
func (c *CatalogClient) Search(ctx context.Context, query string, page int) (*models.CatalogPage, error) {
	params := pageParams(page)
	params.Set("query", query)
	var out models.CatalogPage
	if err := c.get(ctx, "/search/movie", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DiscoverByGenre returns one page of movies restricted to a genre id.
func (c *CatalogClient) DiscoverByGenre(ctx context.Context, genreID int64, page int) (*models.CatalogPage, error) {
	params := pageParams(page)
	params.Set("with_genres", strconv.FormatInt(genreID, 10))
	var out models.CatalogPage
	if err := c.get(ctx, "/discover/movie", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CatalogClient) get(ctx context.Context, path string, params url.Values, dst interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build content API request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("content API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("content API returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode content API response: %w", err)
	}
	return nil
}

func pageParams(page int) url.Values {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	return params
}
