package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"moviedeck/internal/models"
	"moviedeck/internal/storage"
)

var (
	ErrUpdateFailed = errors.New("failed to update watchlist")
	ErrUnknownScope = errors.New("unknown watchlist scope")
)

// Watchlist scopes accepted by List and Clear.
const (
	ScopeMovies = "movies"
	ScopeTV     = "tv"
	ScopeAll    = "all"
)

// WatchlistService maintains the two persisted collections. It holds no
// cross-call cache: every operation re-reads the stored value, so screens
// always observe the latest state after another screen mutates it.
type WatchlistService struct {
	store storage.Store
}

func NewWatchlistService(store storage.Store) *WatchlistService {
	return &WatchlistService{store: store}
}

func collectionKey(mediaType models.MediaType) string {
	if mediaType == models.MediaTypeTV {
		return storage.KeyTVWatchlist
	}
	return storage.KeyMovieWatchlist
}

// load reads one collection. A missing value is an empty collection; a
// corrupt value is treated as empty and the stored value is repaired.
func (s *WatchlistService) load(ctx context.Context, mediaType models.MediaType) ([]models.WatchlistEntry, error) {
	key := collectionKey(mediaType)
	raw, err := s.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []models.WatchlistEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		slog.Warn("watchlist corrupt, resetting", "key", key, "error", err)
		if err := s.save(ctx, mediaType, nil); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return entries, nil
}

func (s *WatchlistService) save(ctx context.Context, mediaType models.MediaType, entries []models.WatchlistEntry) error {
	if entries == nil {
		entries = []models.WatchlistEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}
	if err := s.store.Set(ctx, collectionKey(mediaType), string(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}
	return nil
}

// IsMember reports whether an entry with the id exists in the collection.
func (s *WatchlistService) IsMember(ctx context.Context, id int64, mediaType models.MediaType) (bool, error) {
	entries, err := s.load(ctx, mediaType)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// Toggle removes the entry if present, appends it otherwise, and returns the
// new membership state so callers can update their UI flag without a second
// read. A failed write leaves the stored collection unchanged.
func (s *WatchlistService) Toggle(ctx context.Context, entry models.WatchlistEntry, mediaType models.MediaType) (bool, error) {
	entries, err := s.load(ctx, mediaType)
	if err != nil {
		return false, err
	}

	kept := entries[:0:0]
	removed := false
	for _, e := range entries {
		if e.ID == entry.ID {
			removed = true
			continue
		}
		kept = append(kept, e)
	}

	if !removed {
		entry.MediaType = mediaType
		if entry.AddedAt.IsZero() {
			entry.AddedAt = time.Now().UTC()
		}
		kept = append(kept, entry)
	}

	if err := s.save(ctx, mediaType, kept); err != nil {
		return false, err
	}
	return !removed, nil
}

// List returns a snapshot of one collection, or for ScopeAll the movie
// collection followed by the TV collection. Each entry is tagged with its
// source collection's media type; an id present in both collections is
// listed twice.
func (s *WatchlistService) List(ctx context.Context, scope string) ([]models.WatchlistEntry, error) {
	switch scope {
	case ScopeMovies:
		return s.listOne(ctx, models.MediaTypeMovie)
	case ScopeTV:
		return s.listOne(ctx, models.MediaTypeTV)
	case ScopeAll:
		movies, err := s.listOne(ctx, models.MediaTypeMovie)
		if err != nil {
			return nil, err
		}
		tv, err := s.listOne(ctx, models.MediaTypeTV)
		if err != nil {
			return nil, err
		}
		return append(movies, tv...), nil
	default:
		return nil, ErrUnknownScope
	}
}

func (s *WatchlistService) listOne(ctx context.Context, mediaType models.MediaType) ([]models.WatchlistEntry, error) {
	entries, err := s.load(ctx, mediaType)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].MediaType = mediaType
	}
	return entries, nil
}

// Remove deletes the entry by id from the targeted collection. Removing an
// absent id is a no-op, not an error.
func (s *WatchlistService) Remove(ctx context.Context, id int64, mediaType models.MediaType) error {
	entries, err := s.load(ctx, mediaType)
	if err != nil {
		return err
	}

	kept := entries[:0:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return nil
	}
	return s.save(ctx, mediaType, kept)
}

// Clear deletes the targeted persisted collection(s) entirely.
func (s *WatchlistService) Clear(ctx context.Context, scope string) error {
	switch scope {
	case ScopeMovies:
		return s.clearOne(ctx, models.MediaTypeMovie)
	case ScopeTV:
		return s.clearOne(ctx, models.MediaTypeTV)
	case ScopeAll:
		if err := s.clearOne(ctx, models.MediaTypeMovie); err != nil {
			return err
		}
		return s.clearOne(ctx, models.MediaTypeTV)
	default:
		return ErrUnknownScope
	}
}

func (s *WatchlistService) clearOne(ctx context.Context, mediaType models.MediaType) error {
	if err := s.store.Delete(ctx, collectionKey(mediaType)); err != nil {
		return fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}
	return nil
}
