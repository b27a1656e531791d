package catalog

// UnknownReleaseDate is the sentinel used when the service reports no
// release date for an item.
const UnknownReleaseDate = "Unknown"

// Movie is a single catalog list entry as the rest of the application
// consumes it. Image URLs are absolute and empty when the service
// reported no image.
type Movie struct {
	ID          int64
	Title       string
	Overview    string
	PosterURL   string
	BackdropURL string
	ReleaseDate string
	Rating      float64
	Votes       int
	Genres      []string
}

// Details is the full record for a single movie.
type Details struct {
	ID          int64
	Title       string
	Overview    string
	Tagline     string
	PosterURL   string
	BackdropURL string
	ReleaseDate string
	Runtime     int
	Rating      float64
	Votes       int
	Genres      []string
	Status      string
	Homepage    string
}

// CastMember is one acting credit, in the order the service reports.
type CastMember struct {
	ID         int64
	Name       string
	Character  string
	ProfileURL string
	Order      int
}

// CrewMember is one production credit.
type CrewMember struct {
	ID         int64
	Name       string
	Job        string
	Department string
	ProfileURL string
}

// Credits holds the cast and crew for a single movie.
type Credits struct {
	Cast []CastMember
	Crew []CrewMember
}

// Review is a single user review.
type Review struct {
	ID        string
	Author    string
	Content   string
	CreatedAt string
	Rating    float64
	HasRating bool
	AvatarURL string
	URL       string
}
