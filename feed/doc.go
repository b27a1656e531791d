// Package feed implements paginated list retrieval for the movie catalog:
// a page source that routes each page request to the natural per-category
// endpoint or the discovery endpoint depending on the active filters, and
// a feed that stitches the resulting pages into one lazily-materialized,
// resumable sequence with per-slot load states and explicit retry.
package feed
