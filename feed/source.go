package feed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/reelfeed/reelfeed/catalog"
	"github.com/reelfeed/reelfeed/tmdb"
)

// Gateway is the subset of the TMDB client a Source needs. *tmdb.Client
// satisfies it; tests substitute a fake.
type Gateway interface {
	MovieList(ctx context.Context, list string, page int) (*tmdb.MoviePage, error)
	DiscoverMovies(ctx context.Context, page int, opts tmdb.DiscoverOptions) (*tmdb.MoviePage, error)
}

// Page is one loaded page of the list plus the keys needed to continue in
// either direction. PrevKey is nil at page 1; NextKey is nil once the
// service reports no further pages.
type Page struct {
	Items   []catalog.Movie
	PrevKey *int
	NextKey *int
}

// LoadError is the single failure condition a Source surfaces. Transport
// failures, non-success statuses, and decode failures are all flattened
// into it; callers only see the page number and the message.
type LoadError struct {
	Page int
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load page %d: %v", e.Page, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Source loads pages for one list screen. It is bound at construction to
// a category and a filter state, both immutable for its lifetime; a
// filter change means a brand-new Source.
type Source struct {
	gateway  Gateway
	category catalog.Category
	filters  catalog.Filters
	logger   zerolog.Logger
}

// NewSource creates a page source bound to the given category and filter
// state.
func NewSource(gateway Gateway, category catalog.Category, filters catalog.Filters, logger zerolog.Logger) *Source {
	return &Source{
		gateway:  gateway,
		category: category,
		filters:  filters,
		logger:   logger,
	}
}

// Category returns the bound list category.
func (s *Source) Category() catalog.Category {
	return s.category
}

// Filters returns the bound filter state.
func (s *Source) Filters() catalog.Filters {
	return s.filters
}

// Load fetches one page. A nil key means the first page. The routing
// decision is made per request: the natural per-category endpoint when no
// filter is active, the discovery endpoint with translated parameters
// otherwise. A page is applied all-or-nothing; any gateway failure comes
// back as a *LoadError.
func (s *Source) Load(ctx context.Context, key *int) (*Page, error) {
	page := 1
	if key != nil {
		page = *key
	}

	wire, err := s.fetch(ctx, page)
	if err != nil {
		return nil, &LoadError{Page: page, Err: err}
	}

	result := &Page{Items: catalog.MoviesFromWire(wire.Results)}
	if page > 1 {
		prev := page - 1
		result.PrevKey = &prev
	}
	if page < wire.TotalPages {
		next := page + 1
		result.NextKey = &next
	}

	s.logger.Debug().
		Str("category", s.category.Key()).
		Int("page", page).
		Int("items", len(result.Items)).
		Bool("has_next", result.NextKey != nil).
		Msg("Loaded list page")

	return result, nil
}

func (s *Source) fetch(ctx context.Context, page int) (*tmdb.MoviePage, error) {
	if !s.filters.NeedsDiscovery() {
		return s.gateway.MovieList(ctx, s.category.Key(), page)
	}

	return s.gateway.DiscoverMovies(ctx, page, tmdb.DiscoverOptions{
		SortBy:    s.filters.SortOrDefault(s.category).Param(),
		GenreIDs:  s.filters.GenreIDs,
		MinRating: s.filters.MinRating,
		Year:      s.filters.Year,
	})
}

// RefreshKey resolves the page to reload around after an invalidation,
// anchored to the page closest to the current position. A nil result
// means "reload from page 1".
func RefreshKey(closest *Page) *int {
	if closest == nil {
		return nil
	}
	if closest.PrevKey != nil {
		key := *closest.PrevKey + 1
		return &key
	}
	if closest.NextKey != nil {
		key := *closest.NextKey - 1
		return &key
	}
	return nil
}
