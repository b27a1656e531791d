package catalog

import "github.com/reelfeed/reelfeed/tmdb"

// MovieFromWire converts a wire list entry into a domain Movie.
// Missing optional fields are defaulted so no absence propagates past
// this boundary: release date becomes the Unknown sentinel, image paths
// become empty URLs.
func MovieFromWire(m tmdb.Movie) Movie {
	return Movie{
		ID:          m.ID,
		Title:       m.Title,
		Overview:    m.Overview,
		PosterURL:   PosterURL(m.PosterPath),
		BackdropURL: BackdropURL(m.BackdropPath),
		ReleaseDate: releaseDateOrUnknown(m.ReleaseDate),
		Rating:      m.VoteAverage,
		Votes:       m.VoteCount,
		Genres:      GenreNames(m.GenreIDs),
	}
}

// MoviesFromWire converts a page of wire entries element-wise, preserving
// order.
func MoviesFromWire(wire []tmdb.Movie) []Movie {
	movies := make([]Movie, len(wire))
	for i, m := range wire {
		movies[i] = MovieFromWire(m)
	}
	return movies
}

// DetailsFromWire converts a wire details record into a domain Details.
func DetailsFromWire(d *tmdb.MovieDetails) Details {
	genres := make([]string, len(d.Genres))
	for i, g := range d.Genres {
		genres[i] = g.Name
	}
	return Details{
		ID:          d.ID,
		Title:       d.Title,
		Overview:    d.Overview,
		Tagline:     d.Tagline,
		PosterURL:   PosterURL(d.PosterPath),
		BackdropURL: BackdropURL(d.BackdropPath),
		ReleaseDate: releaseDateOrUnknown(d.ReleaseDate),
		Runtime:     d.Runtime,
		Rating:      d.VoteAverage,
		Votes:       d.VoteCount,
		Genres:      genres,
		Status:      d.Status,
		Homepage:    d.Homepage,
	}
}

// CreditsFromWire converts a wire credits record element-wise. No
// reordering or filtering happens here; ordering decisions belong to the
// consumer.
func CreditsFromWire(c *tmdb.Credits) Credits {
	cast := make([]CastMember, len(c.Cast))
	for i, m := range c.Cast {
		cast[i] = CastMember{
			ID:         m.ID,
			Name:       m.Name,
			Character:  m.Character,
			ProfileURL: ProfileURL(m.ProfilePath),
			Order:      m.Order,
		}
	}
	crew := make([]CrewMember, len(c.Crew))
	for i, m := range c.Crew {
		crew[i] = CrewMember{
			ID:         m.ID,
			Name:       m.Name,
			Job:        m.Job,
			Department: m.Department,
			ProfileURL: ProfileURL(m.ProfilePath),
		}
	}
	return Credits{Cast: cast, Crew: crew}
}

// ReviewFromWire converts a wire review into a domain Review.
func ReviewFromWire(r tmdb.Review) Review {
	review := Review{
		ID:        r.ID,
		Author:    r.Author,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
		AvatarURL: ProfileURL(r.AuthorDetails.AvatarPath),
		URL:       r.URL,
	}
	if r.AuthorDetails.Rating != nil {
		review.Rating = *r.AuthorDetails.Rating
		review.HasRating = true
	}
	return review
}

// ReviewsFromWire converts a page of wire reviews element-wise.
func ReviewsFromWire(wire []tmdb.Review) []Review {
	reviews := make([]Review, len(wire))
	for i, r := range wire {
		reviews[i] = ReviewFromWire(r)
	}
	return reviews
}

func releaseDateOrUnknown(date string) string {
	if date == "" {
		return UnknownReleaseDate
	}
	return date
}
