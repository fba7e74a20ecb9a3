package tmdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the TMDB API v3 root
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultLanguage is sent to the featured and detail endpoints
	DefaultLanguage = "en-US"
	defaultTimeout  = 30 * time.Second
)

var errEmptyBody = errors.New("no response body")

// Client represents a TMDB API client
type Client struct {
	baseURL    *url.URL
	token      string
	language   string
	httpClient *http.Client
	timeout    *time.Duration
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

var _ Catalog = (*Client)(nil)

// NewClient creates a new TMDB client. The token is the API read access token
// sent as a bearer credential on every request.
func NewClient(baseURL, token string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, &Error{Kind: InvalidURL, Op: "parse base URL", Err: err}
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, &Error{Kind: InvalidURL, Op: "parse base URL", Err: fmt.Errorf("%q has no scheme or host", baseURL)}
	}

	client := &Client{
		baseURL:  u,
		token:    token,
		language: DefaultLanguage,
		logger:   logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	// A timeout is applied to a copy; the caller's client is left untouched.
	switch {
	case client.httpClient == nil:
		timeout := defaultTimeout
		if client.timeout != nil {
			timeout = *client.timeout
		}
		client.httpClient = &http.Client{Timeout: timeout}
	case client.timeout != nil:
		hc := *client.httpClient
		hc.Timeout = *client.timeout
		client.httpClient = &hc
	}

	return client, nil
}

// FetchMovies retrieves one page of the given movie list. The page is forwarded
// as is; an out-of-range page yields whatever the upstream returns.
func (c *Client) FetchMovies(ctx context.Context, kind ListKind, page int) (*PagedResult, error) {
	op := fmt.Sprintf("movies %s page %d", kind, page)

	e, ok := endpoints[kind]
	if !ok {
		return nil, c.fail(&Error{Kind: URLError, Op: op, Err: fmt.Errorf("unknown list kind %d", int(kind))})
	}

	params := make(url.Values, len(e.params)+2)
	for k, vs := range e.params {
		params[k] = append([]string(nil), vs...)
	}
	if e.localized {
		params.Set("language", c.language)
	}
	params.Set("page", strconv.Itoa(page))

	body, err := c.get(ctx, op, e.path, params)
	if err != nil {
		return nil, err
	}

	result, err := decodePagedResult(body)
	if err != nil {
		return nil, c.fail(&Error{Kind: DecodingError, Op: op, Err: err})
	}

	c.logger.Debug().
		Str("kind", kind.String()).
		Int("page", result.Page).
		Int("count", len(result.Results)).
		Int("total_pages", result.TotalPages).
		Msg("Retrieved movies from TMDB")

	return result, nil
}

// FetchMovieDetail retrieves the detail record of a movie
func (c *Client) FetchMovieDetail(ctx context.Context, movieID int) (*MovieDetail, error) {
	op := fmt.Sprintf("movie %d", movieID)

	params := url.Values{}
	params.Set("language", c.language)

	body, err := c.get(ctx, op, "movie/"+strconv.Itoa(movieID), params)
	if err != nil {
		return nil, err
	}

	detail, err := decodeMovieDetail(body)
	if err != nil {
		return nil, c.fail(&Error{Kind: DecodingError, Op: op, Err: err})
	}

	c.logger.Debug().Int("movie_id", movieID).Str("title", detail.Title).Msg("Retrieved movie detail from TMDB")
	return detail, nil
}

// Ping verifies the token against the authentication endpoint
func (c *Client) Ping(ctx context.Context) error {
	const op = "authentication"

	body, err := c.get(ctx, op, "authentication", nil)
	if err != nil {
		return err
	}

	var auth struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(body, &auth); err != nil {
		return c.fail(&Error{Kind: DecodingError, Op: op, Err: err})
	}
	if !auth.Success {
		return c.fail(&Error{Kind: DataError, Op: op, Message: statusMessage(body)})
	}
	return nil
}

// get performs an authenticated GET and returns the body of a 2xx response
func (c *Client) get(ctx context.Context, op, path string, params url.Values) ([]byte, error) {
	u := c.baseURL.JoinPath(path)
	if len(params) > 0 {
		// TMDB documents with_release_type as a literal pipe list
		u.RawQuery = strings.ReplaceAll(params.Encode(), "%7C", "|")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, c.fail(&Error{Kind: URLError, Op: op, Err: err})
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, c.fail(&Error{Kind: DataError, Op: op, Err: err})
		}
	}

	c.logger.Debug().Str("op", op).Str("url", u.String()).Msg("Making TMDB API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.fail(&Error{Kind: DataError, Op: op, Err: err})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(&Error{Kind: DataError, Op: op, Err: fmt.Errorf("failed to read response body: %w", err)})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail(&Error{
			Kind:       DataError,
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    statusMessage(body),
		})
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, c.fail(&Error{Kind: DataError, Op: op, Err: errEmptyBody})
	}

	return body, nil
}

func (c *Client) fail(e *Error) error {
	c.logger.Debug().
		Err(e.Err).
		Str("op", e.Op).
		Stringer("kind", e.Kind).
		Int("status", e.StatusCode).
		Msg("TMDB request failed")
	return e
}
