package catalog

import "fmt"

// Sort is a server-recognized sort order for the discovery endpoint.
// The zero value means "no explicit sort chosen".
type Sort int

const (
	SortUnset Sort = iota
	SortMostPopular
	SortHighestRated
	SortNewestFirst
	SortOldestFirst
	SortMostVoted
)

// Sorts returns all explicit sort orders in display order.
func Sorts() []Sort {
	return []Sort{SortMostPopular, SortHighestRated, SortNewestFirst, SortOldestFirst, SortMostVoted}
}

// Param returns the literal sort token the remote service expects.
func (s Sort) Param() string {
	switch s {
	case SortMostPopular:
		return "popularity.desc"
	case SortHighestRated:
		return "vote_average.desc"
	case SortNewestFirst:
		return "primary_release_date.desc"
	case SortOldestFirst:
		return "primary_release_date.asc"
	case SortMostVoted:
		return "vote_count.desc"
	}
	return ""
}

// Label returns the human-readable name of the sort order.
func (s Sort) Label() string {
	switch s {
	case SortMostPopular:
		return "Most Popular"
	case SortHighestRated:
		return "Highest Rated"
	case SortNewestFirst:
		return "Newest First"
	case SortOldestFirst:
		return "Oldest First"
	case SortMostVoted:
		return "Most Voted"
	}
	return "Default"
}

// SortFromKey parses a sort order from a CLI/config key such as "rating"
// or the literal server token.
func SortFromKey(key string) (Sort, error) {
	switch key {
	case "":
		return SortUnset, nil
	case "popular", "popularity", "popularity.desc":
		return SortMostPopular, nil
	case "rating", "vote_average.desc":
		return SortHighestRated, nil
	case "newest", "primary_release_date.desc":
		return SortNewestFirst, nil
	case "oldest", "primary_release_date.asc":
		return SortOldestFirst, nil
	case "votes", "vote_count.desc":
		return SortMostVoted, nil
	}
	return SortUnset, fmt.Errorf("unknown sort order: %s", key)
}
