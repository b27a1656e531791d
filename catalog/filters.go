package catalog

// Filters describes the user's current sort and filter selections for a
// list screen. It is a value type: replaced wholesale on every change,
// never mutated in place. The zero value means "no filters active".
type Filters struct {
	Sort      Sort
	GenreIDs  []int
	MinRating float64
	Year      int
}

// NeedsDiscovery reports whether the generic discovery endpoint must be
// used instead of the natural per-category list. True as soon as any of
// sort, genres, minimum rating, or release year is set.
func (f Filters) NeedsDiscovery() bool {
	return f.Sort != SortUnset || len(f.GenreIDs) > 0 || f.MinRating > 0 || f.Year != 0
}

// ActiveCount counts the active filters shown to the user. The sort
// choice is an ordering, not a filter, and is excluded.
func (f Filters) ActiveCount() int {
	count := 0
	if len(f.GenreIDs) > 0 {
		count++
	}
	if f.MinRating > 0 {
		count++
	}
	if f.Year != 0 {
		count++
	}
	return count
}

// SortActive reports whether an explicit sort order has been chosen.
func (f Filters) SortActive() bool {
	return f.Sort != SortUnset
}

// SortOrDefault returns the chosen sort order, falling back to the
// category's default when none is set.
func (f Filters) SortOrDefault(c Category) Sort {
	if f.Sort != SortUnset {
		return f.Sort
	}
	return c.DefaultSort()
}
