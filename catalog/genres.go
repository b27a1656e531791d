package catalog

import "strings"

// Genre is an (id, name) pair from the fixed movie genre catalog.
type Genre struct {
	ID   int
	Name string
}

// The service's movie genre ids are stable, so the catalog is maintained
// by hand rather than fetched at runtime.
var genres = []Genre{
	{28, "Action"},
	{12, "Adventure"},
	{16, "Animation"},
	{35, "Comedy"},
	{80, "Crime"},
	{99, "Documentary"},
	{18, "Drama"},
	{10751, "Family"},
	{14, "Fantasy"},
	{36, "History"},
	{27, "Horror"},
	{10402, "Music"},
	{9648, "Mystery"},
	{10749, "Romance"},
	{878, "Science Fiction"},
	{10770, "TV Movie"},
	{53, "Thriller"},
	{10752, "War"},
	{37, "Western"},
}

// Genres returns the full genre catalog in display order.
func Genres() []Genre {
	out := make([]Genre, len(genres))
	copy(out, genres)
	return out
}

// GenreName resolves a genre id to its name.
func GenreName(id int) (string, bool) {
	for _, g := range genres {
		if g.ID == id {
			return g.Name, true
		}
	}
	return "", false
}

// GenreByName resolves a genre by name, case-insensitively.
func GenreByName(name string) (Genre, bool) {
	for _, g := range genres {
		if strings.EqualFold(g.Name, name) {
			return g, true
		}
	}
	return Genre{}, false
}

// GenreNames maps a list of genre ids to their names, skipping ids the
// catalog does not know.
func GenreNames(ids []int) []string {
	var names []string
	for _, id := range ids {
		if name, ok := GenreName(id); ok {
			names = append(names, name)
		}
	}
	return names
}
