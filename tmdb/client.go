package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public TMDB API endpoint.
const DefaultBaseURL = "https://api.themoviedb.org/3"

// DefaultLanguage is sent on every request unless overridden.
const DefaultLanguage = "en-US"

// Known list endpoints. The value is the path segment under /movie.
const (
	ListPopular    = "popular"
	ListNowPlaying = "now_playing"
	ListTopRated   = "top_rated"
	ListUpcoming   = "upcoming"
)

// Client wraps the TMDB API
type Client struct {
	baseURL     string
	accessToken string
	language    string
	httpClient  *http.Client
	logger      zerolog.Logger
}

// NewClient creates a new TMDB client. The access token is the v4 read
// token sent as a bearer credential on every request.
func NewClient(baseURL, accessToken string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}
	if accessToken == "" {
		return nil, fmt.Errorf("%w: access token is required", ErrInvalidConfig)
	}

	options := &clientOptions{
		timeout:  30 * time.Second,
		language: DefaultLanguage,
	}
	for _, opt := range opts {
		opt(options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
		language:    options.language,
		httpClient:  httpClient,
		logger:      logger,
	}, nil
}

// doRequest performs an authenticated GET against the API
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("language", c.language)

	requestURL := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       string(body),
		}
	}

	return body, nil
}

// TestConnection verifies the base URL and access token against the API
func (c *Client) TestConnection(ctx context.Context) error {
	if _, err := c.doRequest(ctx, "/configuration", nil); err != nil {
		return fmt.Errorf("failed to connect to TMDB: %w", err)
	}
	return nil
}

// MovieList fetches one page of a natural list (popular, now_playing,
// top_rated, upcoming). Pages are 1-based.
func (c *Client) MovieList(ctx context.Context, list string, page int) (*MoviePage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	body, err := c.doRequest(ctx, "/movie/"+list, params)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s movies: %w", list, err)
	}

	var result MoviePage
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse %s response: %w", list, err)
	}

	c.logger.Debug().
		Str("list", list).
		Int("page", result.Page).
		Int("count", len(result.Results)).
		Int("total_pages", result.TotalPages).
		Msg("Retrieved movie list page")

	return &result, nil
}

// DiscoverMovies fetches one page of the discover endpoint with the given
// filter parameters. Unset options are omitted from the query entirely.
func (c *Client) DiscoverMovies(ctx context.Context, page int, opts DiscoverOptions) (*MoviePage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	if opts.SortBy != "" {
		params.Set("sort_by", opts.SortBy)
	}
	if len(opts.GenreIDs) > 0 {
		params.Set("with_genres", joinGenreIDs(opts.GenreIDs))
	}
	if opts.MinRating > 0 {
		params.Set("vote_average.gte", strconv.FormatFloat(opts.MinRating, 'f', -1, 64))
	}
	if opts.Year > 0 {
		params.Set("primary_release_year", strconv.Itoa(opts.Year))
	}

	body, err := c.doRequest(ctx, "/discover/movie", params)
	if err != nil {
		return nil, fmt.Errorf("failed to discover movies: %w", err)
	}

	var result MoviePage
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse discover response: %w", err)
	}

	c.logger.Debug().
		Str("sort_by", opts.SortBy).
		Int("page", result.Page).
		Int("count", len(result.Results)).
		Msg("Retrieved discover page")

	return &result, nil
}

// MovieDetails fetches the full record for a single movie
func (c *Client) MovieDetails(ctx context.Context, id int64) (*MovieDetails, error) {
	body, err := c.doRequest(ctx, fmt.Sprintf("/movie/%d", id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get movie details: %w", err)
	}

	var result MovieDetails
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse details response: %w", err)
	}
	return &result, nil
}

// MovieCredits fetches the cast and crew for a single movie
func (c *Client) MovieCredits(ctx context.Context, id int64) (*Credits, error) {
	body, err := c.doRequest(ctx, fmt.Sprintf("/movie/%d/credits", id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get movie credits: %w", err)
	}

	var result Credits
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse credits response: %w", err)
	}
	return &result, nil
}

// MovieReviews fetches one page of reviews for a single movie
func (c *Client) MovieReviews(ctx context.Context, id int64, page int) (*ReviewPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	body, err := c.doRequest(ctx, fmt.Sprintf("/movie/%d/reviews", id), params)
	if err != nil {
		return nil, fmt.Errorf("failed to get movie reviews: %w", err)
	}

	var result ReviewPage
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse reviews response: %w", err)
	}
	return &result, nil
}

// joinGenreIDs renders genre ids in the pipe-joined form the API expects
func joinGenreIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, "|")
}
