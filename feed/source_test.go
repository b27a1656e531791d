package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelfeed/reelfeed/catalog"
	"github.com/reelfeed/reelfeed/tmdb"
)

type gatewayCall struct {
	natural bool
	list    string
	page    int
	opts    tmdb.DiscoverOptions
}

// fakeGateway serves synthetic pages and records every call. Individual
// pages can be made to fail or to block until released.
type fakeGateway struct {
	mu         sync.Mutex
	calls      []gatewayCall
	totalPages int
	pageSize   int
	failPages  map[int]error
	blockPages map[int]chan struct{}
}

func newFakeGateway(totalPages int) *fakeGateway {
	return &fakeGateway{
		totalPages: totalPages,
		pageSize:   20,
		failPages:  make(map[int]error),
		blockPages: make(map[int]chan struct{}),
	}
}

func (g *fakeGateway) MovieList(ctx context.Context, list string, page int) (*tmdb.MoviePage, error) {
	g.mu.Lock()
	g.calls = append(g.calls, gatewayCall{natural: true, list: list, page: page})
	g.mu.Unlock()
	return g.servePage(ctx, page)
}

func (g *fakeGateway) DiscoverMovies(ctx context.Context, page int, opts tmdb.DiscoverOptions) (*tmdb.MoviePage, error) {
	g.mu.Lock()
	g.calls = append(g.calls, gatewayCall{page: page, opts: opts})
	g.mu.Unlock()
	return g.servePage(ctx, page)
}

func (g *fakeGateway) servePage(ctx context.Context, page int) (*tmdb.MoviePage, error) {
	g.mu.Lock()
	block := g.blockPages[page]
	failure := g.failPages[page]
	g.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if failure != nil {
		return nil, failure
	}

	results := make([]tmdb.Movie, g.pageSize)
	for i := range results {
		results[i] = tmdb.Movie{
			ID:          int64(page*1000 + i),
			Title:       fmt.Sprintf("Movie %d-%d", page, i),
			ReleaseDate: "2020-01-01",
		}
	}
	return &tmdb.MoviePage{
		Page:         page,
		Results:      results,
		TotalPages:   g.totalPages,
		TotalResults: g.totalPages * g.pageSize,
	}, nil
}

func (g *fakeGateway) recordedCalls() []gatewayCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]gatewayCall, len(g.calls))
	copy(out, g.calls)
	return out
}

func (g *fakeGateway) failPage(page int, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failPages[page] = err
}

func (g *fakeGateway) clearFailure(page int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.failPages, page)
}

func intPtr(n int) *int { return &n }

func TestSourceRoutesNaturalList(t *testing.T) {
	gw := newFakeGateway(10)

	for _, category := range catalog.Categories() {
		src := NewSource(gw, category, catalog.Filters{}, zerolog.Nop())
		_, err := src.Load(context.Background(), nil)
		require.NoError(t, err)
	}

	calls := gw.recordedCalls()
	require.Len(t, calls, 4)
	for i, category := range catalog.Categories() {
		assert.True(t, calls[i].natural, "category %s must use the natural endpoint", category.Key())
		assert.Equal(t, category.Key(), calls[i].list)
		assert.Equal(t, 1, calls[i].page)
	}
}

func TestSourceRoutesDiscovery(t *testing.T) {
	tests := []struct {
		name    string
		filters catalog.Filters
		opts    tmdb.DiscoverOptions
	}{
		{
			name:    "sort only",
			filters: catalog.Filters{Sort: catalog.SortHighestRated},
			opts:    tmdb.DiscoverOptions{SortBy: "vote_average.desc"},
		},
		{
			name:    "genres forwarded",
			filters: catalog.Filters{GenreIDs: []int{18, 80}},
			opts:    tmdb.DiscoverOptions{SortBy: "popularity.desc", GenreIDs: []int{18, 80}},
		},
		{
			name:    "rating and year with defaulted sort",
			filters: catalog.Filters{MinRating: 7.5, Year: 1999},
			opts:    tmdb.DiscoverOptions{SortBy: "popularity.desc", MinRating: 7.5, Year: 1999},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newFakeGateway(10)
			src := NewSource(gw, catalog.CategoryPopular, tt.filters, zerolog.Nop())

			_, err := src.Load(context.Background(), nil)
			require.NoError(t, err)

			calls := gw.recordedCalls()
			require.Len(t, calls, 1)
			assert.False(t, calls[0].natural, "filtered loads must use the discovery endpoint")
			assert.Equal(t, tt.opts, calls[0].opts)
		})
	}
}

func TestSourcePageKeys(t *testing.T) {
	tests := []struct {
		name       string
		key        *int
		totalPages int
		wantPrev   *int
		wantNext   *int
	}{
		{
			name:       "first page of many",
			key:        nil,
			totalPages: 50,
			wantPrev:   nil,
			wantNext:   intPtr(2),
		},
		{
			name:       "middle page",
			key:        intPtr(3),
			totalPages: 50,
			wantPrev:   intPtr(2),
			wantNext:   intPtr(4),
		},
		{
			name:       "last page",
			key:        intPtr(50),
			totalPages: 50,
			wantPrev:   intPtr(49),
			wantNext:   nil,
		},
		{
			name:       "past the last page",
			key:        intPtr(60),
			totalPages: 50,
			wantPrev:   intPtr(59),
			wantNext:   nil,
		},
		{
			name:       "single page list",
			key:        nil,
			totalPages: 1,
			wantPrev:   nil,
			wantNext:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newFakeGateway(tt.totalPages)
			src := NewSource(gw, catalog.CategoryTopRated, catalog.Filters{}, zerolog.Nop())

			page, err := src.Load(context.Background(), tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPrev, page.PrevKey)
			assert.Equal(t, tt.wantNext, page.NextKey)
			assert.Len(t, page.Items, 20)
		})
	}
}

func TestSourceFlattensFailures(t *testing.T) {
	gw := newFakeGateway(10)
	gw.failPage(2, errors.New("connection refused"))
	src := NewSource(gw, catalog.CategoryPopular, catalog.Filters{}, zerolog.Nop())

	_, err := src.Load(context.Background(), intPtr(2))
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, 2, loadErr.Page)
	assert.Contains(t, loadErr.Error(), "connection refused")
}

func TestRefreshKey(t *testing.T) {
	tests := []struct {
		name    string
		closest *Page
		want    *int
	}{
		{
			name:    "prev key anchors forward",
			closest: &Page{PrevKey: intPtr(2), NextKey: intPtr(4)},
			want:    intPtr(3),
		},
		{
			name:    "next key anchors backward",
			closest: &Page{NextKey: intPtr(5)},
			want:    intPtr(4),
		},
		{
			name:    "no keys means restart",
			closest: &Page{},
			want:    nil,
		},
		{
			name:    "no page means restart",
			closest: nil,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RefreshKey(tt.closest)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}
