package feed

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/reelfeed/reelfeed/catalog"
)

// DefaultPrefetchDistance is how close to the end of the materialized
// items the consumer may get before the next page is requested.
const DefaultPrefetchDistance = 5

// PageSize is the page size of the remote service's own pagination. It
// is fixed upstream, not negotiated.
const PageSize = 20

type slot int

const (
	slotInitial slot = iota
	slotAppend
	slotRefresh
)

// Option configures a Feed.
type Option func(*Feed)

// WithPrefetchDistance overrides the prefetch distance.
func WithPrefetchDistance(n int) Option {
	return func(f *Feed) {
		if n > 0 {
			f.prefetch = n
		}
	}
}

// WithFilters sets the initial filter state.
func WithFilters(filters catalog.Filters) Option {
	return func(f *Feed) {
		f.filters = filters
	}
}

// Feed stitches successive page loads into one continuously-appendable
// sequence of movies for a single consumer. It tracks three independent
// load slots (initial, append, refresh), keeps at most one request in
// flight, and restarts its page-source lineage whenever the filter state
// changes.
//
// Duplicate items across adjacent pages are possible when the upstream
// result set shifts between fetches; the feed deliberately does not
// deduplicate by id, since the upstream contract does not promise stable
// pagination either way.
//
// Load methods block until the page request resolves. A filter change
// from another goroutine cancels the in-flight request and bumps the
// feed's generation, so a superseded load discards its result instead of
// touching state that no longer belongs to it.
type Feed struct {
	gateway  Gateway
	category catalog.Category
	logger   zerolog.Logger
	prefetch int

	mu             sync.Mutex
	source         *Source
	filters        catalog.Filters
	generation     uint64
	cancelInflight context.CancelFunc
	inflight       bool

	items   []catalog.Movie
	pages   []*Page
	offsets []int
	nextKey *int

	initialState LoadState
	appendState  LoadState
	refreshState LoadState

	retryKey  *int
	retrySlot slot
	hasRetry  bool
}

// New creates a feed for one list screen bound to the given category.
func New(gateway Gateway, category catalog.Category, logger zerolog.Logger, opts ...Option) *Feed {
	f := &Feed{
		gateway:      gateway,
		category:     category,
		logger:       logger,
		prefetch:     DefaultPrefetchDistance,
		initialState: Idle(),
		appendState:  Idle(),
		refreshState: Idle(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.source = NewSource(gateway, category, f.filters, logger)
	return f
}

// Category returns the bound list category.
func (f *Feed) Category() catalog.Category {
	return f.category
}

// Filters returns the current filter state.
func (f *Feed) Filters() catalog.Filters {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filters
}

// Items returns a snapshot of the materialized sequence.
func (f *Feed) Items() []catalog.Movie {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]catalog.Movie, len(f.items))
	copy(out, f.items)
	return out
}

// Len returns the number of materialized items.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// States returns the three load-state slots: initial, append, refresh.
func (f *Feed) States() (initial, appendState, refresh LoadState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.initialState, f.appendState, f.refreshState
}

// Exhausted reports whether forward loading has reached the final page.
func (f *Feed) Exhausted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pages) > 0 && f.nextKey == nil
}

// Start loads the first page. It blocks until the page resolves; the
// outcome lands in the initial slot.
func (f *Feed) Start(ctx context.Context) {
	f.load(ctx, nil, slotInitial)
}

// OnVisible tells the feed which item index the consumer is currently
// looking at. When fewer than the prefetch distance of unconsumed items
// remain below it, the next append is issued (blocking). Nothing happens
// while a request is in flight, after an append failure (use Retry), or
// once the list is exhausted.
func (f *Feed) OnVisible(ctx context.Context, index int) {
	f.mu.Lock()
	if f.inflight || f.nextKey == nil || len(f.items) == 0 ||
		f.appendState.IsFailed() || f.initialState.IsFailed() {
		f.mu.Unlock()
		return
	}
	if len(f.items)-index-1 >= f.prefetch {
		f.mu.Unlock()
		return
	}
	key := f.nextKey
	f.mu.Unlock()

	f.load(ctx, key, slotAppend)
}

// Retry re-issues the exact page request that last failed, into the slot
// that failed. It does nothing when no failure is pending.
func (f *Feed) Retry(ctx context.Context) {
	f.mu.Lock()
	if !f.hasRetry {
		f.mu.Unlock()
		return
	}
	key, s := f.retryKey, f.retrySlot
	f.mu.Unlock()

	f.load(ctx, key, s)
}

// Refresh discards the accumulated items and reloads around the page
// closest to the given anchor index, preserving approximate position. A
// fresh source instance backs the reloaded lineage.
func (f *Feed) Refresh(ctx context.Context, anchor int) {
	f.mu.Lock()
	key := RefreshKey(f.pageClosestTo(anchor))
	f.restartLocked(f.filters)
	f.mu.Unlock()

	f.load(ctx, key, slotRefresh)
}

// ApplyFilters atomically replaces the filter state and restarts the
// sequence from page 1 with a new source. Any in-flight request from the
// superseded source is cancelled and its eventual result ignored.
func (f *Feed) ApplyFilters(ctx context.Context, filters catalog.Filters) {
	f.mu.Lock()
	f.restartLocked(filters)
	f.mu.Unlock()

	f.load(ctx, nil, slotInitial)
}

// ResetFilters clears all filters and restarts the sequence.
func (f *Feed) ResetFilters(ctx context.Context) {
	f.ApplyFilters(ctx, catalog.Filters{})
}

// Close cancels any in-flight request. The feed is not usable afterwards.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generation++
	if f.cancelInflight != nil {
		f.cancelInflight()
		f.cancelInflight = nil
	}
	f.inflight = false
}

// restartLocked abandons the current lineage: bumps the generation so a
// pending completion is discarded, cancels its request, clears the
// sequence, and binds a new source. Caller holds f.mu.
func (f *Feed) restartLocked(filters catalog.Filters) {
	f.generation++
	if f.cancelInflight != nil {
		f.cancelInflight()
		f.cancelInflight = nil
	}
	f.inflight = false
	f.filters = filters
	f.source = NewSource(f.gateway, f.category, filters, f.logger)
	f.items = nil
	f.pages = nil
	f.offsets = nil
	f.nextKey = nil
	f.initialState = Idle()
	f.appendState = Idle()
	f.refreshState = Idle()
	f.hasRetry = false
}

func (f *Feed) load(ctx context.Context, key *int, s slot) {
	f.mu.Lock()
	if f.inflight {
		f.mu.Unlock()
		return
	}
	gen := f.generation
	src := f.source
	f.inflight = true
	f.setStateLocked(s, Loading())
	lctx, cancel := context.WithCancel(ctx)
	f.cancelInflight = cancel
	f.mu.Unlock()

	page, err := src.Load(lctx, key)
	cancel()

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.generation {
		// Superseded while in flight; the result belongs to an
		// abandoned lineage.
		f.logger.Debug().Msg("Discarding stale page load")
		return
	}
	f.inflight = false
	f.cancelInflight = nil

	if err != nil {
		f.setStateLocked(s, Failed(err.Error()))
		f.retryKey = key
		f.retrySlot = s
		f.hasRetry = true
		f.logger.Warn().Err(err).Msg("Page load failed")
		return
	}

	f.setStateLocked(s, Idle())
	f.hasRetry = false
	f.offsets = append(f.offsets, len(f.items))
	f.items = append(f.items, page.Items...)
	f.pages = append(f.pages, page)
	f.nextKey = page.NextKey
}

func (f *Feed) setStateLocked(s slot, state LoadState) {
	switch s {
	case slotInitial:
		f.initialState = state
	case slotAppend:
		f.appendState = state
	case slotRefresh:
		f.refreshState = state
	}
}

// pageClosestTo returns the loaded page containing the anchor index, or
// the last page when the anchor is past the end. Caller holds f.mu.
func (f *Feed) pageClosestTo(anchor int) *Page {
	if len(f.pages) == 0 {
		return nil
	}
	for i := len(f.pages) - 1; i >= 0; i-- {
		if anchor >= f.offsets[i] {
			return f.pages[i]
		}
	}
	return f.pages[0]
}
