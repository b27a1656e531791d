// Package tmdb provides a client for the TMDB REST API.
//
// The client covers the query shapes the rest of the application needs:
// natural movie lists (popular, now playing, top rated, upcoming), the
// generic discover endpoint with filter parameters, and single-movie
// lookups for details, credits, and paginated reviews.
//
// # Usage
//
// Create a client with the API base URL and a v4 read access token:
//
//	logger := zerolog.New(os.Stderr)
//	client, err := tmdb.NewClient(
//		tmdb.DefaultBaseURL,
//		"your-access-token",
//		logger,
//		tmdb.WithTimeout(15*time.Second),
//		tmdb.WithLanguage("en-US"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	page, err := client.MovieList(ctx, tmdb.ListPopular, 1)
//
// # Behavior
//
// The client is stateless: no caching, no retries, no request
// deduplication. Retrying is a caller decision. Every request carries the
// bearer credential, an Accept header, and a language parameter. Filter
// parameters on the discover endpoint are omitted when unset rather than
// sent empty.
//
// # Error Handling
//
// Transport failures and decode failures are returned wrapped with
// context. Non-2xx responses are returned as *APIError, which carries the
// status code and response body and offers IsNotFound/IsUnauthorized
// classification helpers.
package tmdb
