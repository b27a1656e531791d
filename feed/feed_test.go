package feed

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelfeed/reelfeed/catalog"
)

func TestFeedInitialLoad(t *testing.T) {
	gw := newFakeGateway(50)
	fd := New(gw, catalog.CategoryTopRated, zerolog.Nop())
	defer fd.Close()

	fd.Start(context.Background())

	assert.Equal(t, 20, fd.Len())
	initial, appendState, refresh := fd.States()
	assert.Equal(t, PhaseIdle, initial.Phase)
	assert.Equal(t, PhaseIdle, appendState.Phase)
	assert.Equal(t, PhaseIdle, refresh.Phase)
	assert.False(t, fd.Exhausted())
}

func TestFeedPrefetchTrigger(t *testing.T) {
	gw := newFakeGateway(50)
	fd := New(gw, catalog.CategoryTopRated, zerolog.Nop())
	defer fd.Close()

	ctx := context.Background()
	fd.Start(ctx)
	require.Equal(t, 20, fd.Len())

	// 6 unconsumed items left: no load yet.
	fd.OnVisible(ctx, 13)
	assert.Equal(t, 20, fd.Len())
	require.Len(t, gw.recordedCalls(), 1)

	// 4 unconsumed items left: the next page is appended.
	fd.OnVisible(ctx, 15)
	assert.Equal(t, 40, fd.Len())
	calls := gw.recordedCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, 2, calls[1].page)
}

func TestFeedExhaustion(t *testing.T) {
	gw := newFakeGateway(1)
	fd := New(gw, catalog.CategoryNowPlaying, zerolog.Nop())
	defer fd.Close()

	ctx := context.Background()
	fd.Start(ctx)

	assert.True(t, fd.Exhausted())

	// Visibility near the end must not issue another request.
	fd.OnVisible(ctx, 19)
	require.Len(t, gw.recordedCalls(), 1)
}

func TestFeedAppendErrorAndRetry(t *testing.T) {
	gw := newFakeGateway(50)
	gw.failPage(2, errors.New("connection reset"))
	fd := New(gw, catalog.CategoryPopular, zerolog.Nop())
	defer fd.Close()

	ctx := context.Background()
	fd.Start(ctx)
	require.Equal(t, 20, fd.Len())

	fd.OnVisible(ctx, 19)

	// Prior items stay visible, the append slot carries the message.
	assert.Equal(t, 20, fd.Len())
	_, appendState, _ := fd.States()
	require.Equal(t, PhaseFailed, appendState.Phase)
	assert.Contains(t, appendState.Message, "connection reset")

	// Further visibility must not auto-retry.
	fd.OnVisible(ctx, 19)
	require.Len(t, gw.recordedCalls(), 2)

	// Retry re-issues the same page key.
	gw.clearFailure(2)
	fd.Retry(ctx)

	assert.Equal(t, 40, fd.Len())
	calls := gw.recordedCalls()
	require.Len(t, calls, 3)
	assert.Equal(t, 2, calls[1].page)
	assert.Equal(t, 2, calls[2].page)
	_, appendState, _ = fd.States()
	assert.Equal(t, PhaseIdle, appendState.Phase)
}

func TestFeedInitialErrorLeavesSequenceEmpty(t *testing.T) {
	gw := newFakeGateway(50)
	gw.failPage(1, errors.New("timeout"))
	fd := New(gw, catalog.CategoryPopular, zerolog.Nop())
	defer fd.Close()

	ctx := context.Background()
	fd.Start(ctx)

	assert.Equal(t, 0, fd.Len())
	initial, _, _ := fd.States()
	require.Equal(t, PhaseFailed, initial.Phase)
	assert.Contains(t, initial.Message, "timeout")

	// Retry lands back in the initial slot.
	gw.clearFailure(1)
	fd.Retry(ctx)
	assert.Equal(t, 20, fd.Len())
	initial, _, _ = fd.States()
	assert.Equal(t, PhaseIdle, initial.Phase)
}

func TestFeedApplyFiltersRestartsSequence(t *testing.T) {
	gw := newFakeGateway(50)
	fd := New(gw, catalog.CategoryPopular, zerolog.Nop())
	defer fd.Close()

	ctx := context.Background()
	fd.Start(ctx)
	fd.OnVisible(ctx, 19)
	require.Equal(t, 40, fd.Len())

	filters := catalog.Filters{MinRating: 7.5, Year: 1999}
	fd.ApplyFilters(ctx, filters)

	assert.Equal(t, 20, fd.Len())
	assert.Equal(t, filters, fd.Filters())

	calls := gw.recordedCalls()
	require.Len(t, calls, 3)
	last := calls[2]
	assert.False(t, last.natural, "filtered restart must use the discovery endpoint")
	assert.Equal(t, 1, last.page)
	assert.Equal(t, 7.5, last.opts.MinRating)
	assert.Equal(t, 1999, last.opts.Year)
	assert.Equal(t, "popularity.desc", last.opts.SortBy, "sort defaults to the category's")
	assert.Empty(t, last.opts.GenreIDs)
}

func TestFeedDiscardsInflightOnFilterChange(t *testing.T) {
	gw := newFakeGateway(50)
	fd := New(gw, catalog.CategoryPopular, zerolog.Nop())
	defer fd.Close()

	ctx := context.Background()
	fd.Start(ctx)
	require.Equal(t, 20, fd.Len())

	// Block the page-2 append, then change filters while it is in flight.
	release := make(chan struct{})
	gw.mu.Lock()
	gw.blockPages[2] = release
	gw.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		fd.OnVisible(ctx, 19)
	}()

	// Wait for the append to reach the gateway.
	for len(gw.recordedCalls()) < 2 {
		runtime.Gosched()
	}

	fd.ApplyFilters(ctx, catalog.Filters{Sort: catalog.SortHighestRated})
	close(release)
	<-done

	// The superseded page-2 result must not land in the new sequence.
	items := fd.Items()
	require.Len(t, items, 20)
	for _, movie := range items {
		assert.Less(t, movie.ID, int64(2000), "stale page leaked into the sequence")
	}
	_, appendState, _ := fd.States()
	assert.Equal(t, PhaseIdle, appendState.Phase)
}

func TestFeedResetFilters(t *testing.T) {
	gw := newFakeGateway(50)
	fd := New(gw, catalog.CategoryPopular, zerolog.Nop(),
		WithFilters(catalog.Filters{MinRating: 8.0}))
	defer fd.Close()

	ctx := context.Background()
	fd.Start(ctx)
	require.False(t, gw.recordedCalls()[0].natural)

	fd.ResetFilters(ctx)

	assert.Equal(t, catalog.Filters{}, fd.Filters())
	calls := gw.recordedCalls()
	require.Len(t, calls, 2)
	assert.True(t, calls[1].natural, "cleared filters go back to the natural endpoint")
}

func TestFeedRefreshAnchorsToClosestPage(t *testing.T) {
	gw := newFakeGateway(50)
	fd := New(gw, catalog.CategoryPopular, zerolog.Nop())
	defer fd.Close()

	ctx := context.Background()
	fd.Start(ctx)
	fd.OnVisible(ctx, 19)
	fd.OnVisible(ctx, 39)
	require.Equal(t, 60, fd.Len())

	// Anchor inside page 3 (indices 40..59): its prev key is 2, so the
	// refresh reloads page 3.
	fd.Refresh(ctx, 45)

	calls := gw.recordedCalls()
	require.Len(t, calls, 4)
	assert.Equal(t, 3, calls[3].page)

	// Accumulated items were discarded; only the reloaded page remains.
	assert.Equal(t, 20, fd.Len())
	_, _, refresh := fd.States()
	assert.Equal(t, PhaseIdle, refresh.Phase)
	assert.Equal(t, int64(3000), fd.Items()[0].ID)
}

func TestFeedRefreshWithoutPagesRestarts(t *testing.T) {
	gw := newFakeGateway(50)
	fd := New(gw, catalog.CategoryPopular, zerolog.Nop())
	defer fd.Close()

	ctx := context.Background()
	fd.Refresh(ctx, 0)

	calls := gw.recordedCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, 1, calls[0].page)
	assert.Equal(t, 20, fd.Len())
}

func TestFeedPrefetchDistanceOption(t *testing.T) {
	gw := newFakeGateway(50)
	fd := New(gw, catalog.CategoryPopular, zerolog.Nop(), WithPrefetchDistance(10))
	defer fd.Close()

	ctx := context.Background()
	fd.Start(ctx)

	// 10 unconsumed items left: with the wider distance this loads.
	fd.OnVisible(ctx, 10)
	assert.Equal(t, 40, fd.Len())
}
