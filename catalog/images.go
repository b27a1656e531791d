package catalog

// Image URLs are built from a fixed base plus a size token per context.
const (
	imageBaseURL = "https://image.tmdb.org/t/p/"

	posterSize   = "w500"
	backdropSize = "w780"
	profileSize  = "w185"
)

// PosterURL builds the absolute poster URL for a relative path.
// An empty path yields an empty URL, no placeholder is synthesized.
func PosterURL(path string) string {
	return imageURL(posterSize, path)
}

// BackdropURL builds the absolute backdrop URL for a relative path.
func BackdropURL(path string) string {
	return imageURL(backdropSize, path)
}

// ProfileURL builds the absolute profile thumbnail URL for a relative path.
func ProfileURL(path string) string {
	return imageURL(profileSize, path)
}

func imageURL(size, path string) string {
	if path == "" {
		return ""
	}
	return imageBaseURL + size + path
}
