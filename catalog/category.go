package catalog

import "fmt"

// Category identifies one of the natural movie lists the service exposes.
type Category int

const (
	CategoryPopular Category = iota
	CategoryNowPlaying
	CategoryTopRated
	CategoryUpcoming
)

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{CategoryPopular, CategoryNowPlaying, CategoryTopRated, CategoryUpcoming}
}

// Key returns the stable routing key used in navigation parameters and as
// the list path segment on the remote service.
func (c Category) Key() string {
	switch c {
	case CategoryPopular:
		return "popular"
	case CategoryNowPlaying:
		return "now_playing"
	case CategoryTopRated:
		return "top_rated"
	case CategoryUpcoming:
		return "upcoming"
	}
	return "popular"
}

// Label returns the human-readable name of the category.
func (c Category) Label() string {
	switch c {
	case CategoryPopular:
		return "Popular"
	case CategoryNowPlaying:
		return "Now Playing"
	case CategoryTopRated:
		return "Top Rated"
	case CategoryUpcoming:
		return "Upcoming"
	}
	return "Popular"
}

// DefaultSort is the sort order used on the discovery path when the user
// has not chosen one explicitly.
func (c Category) DefaultSort() Sort {
	switch c {
	case CategoryTopRated:
		return SortHighestRated
	case CategoryUpcoming:
		return SortNewestFirst
	default:
		return SortMostPopular
	}
}

// CategoryFromKey reconstructs a category from its routing key.
func CategoryFromKey(key string) (Category, error) {
	for _, c := range Categories() {
		if c.Key() == key {
			return c, nil
		}
	}
	return CategoryPopular, fmt.Errorf("unknown category: %s", key)
}
