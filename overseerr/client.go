package overseerr

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
)

const defaultPageSize = 100

// Client represents an Overseerr API client
type Client struct {
	baseURL    string
	apiKey     string
	pageSize   int
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithPageSize sets how many requests are fetched per page
func WithPageSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// NewClient creates a new Overseerr client and tests the connection
func NewClient(baseURL, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: overseerr URL is required", ErrInvalidConfig)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: overseerr API key is required", ErrInvalidConfig)
	}

	client := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		pageSize: defaultPageSize,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	if err := client.TestConnection(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to Overseerr: %w", err)
	}

	return client, nil
}

// doRequest performs an HTTP request with authentication. A non-nil payload is
// sent as JSON.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, params url.Values, payload any) ([]byte, error) {
	u := fmt.Sprintf("%s/api/v1%s", c.baseURL, endpoint)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Msg("Making Overseerr API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var e errorResponse
		if json.Unmarshal(respBody, &e) == nil {
			apiErr.Message = e.Message
		}
		return nil, apiErr
	}

	return respBody, nil
}

// TestConnection tests the connection to Overseerr
func (c *Client) TestConnection(ctx context.Context) error {
	// /auth/me checks both the URL and the API key
	_, err := c.doRequest(ctx, http.MethodGet, "/auth/me", nil, nil)
	return err
}

// MovieRequests retrieves all movie requests from Overseerr
func (c *Client) MovieRequests(ctx context.Context) ([]MediaRequest, error) {
	var all []MediaRequest

	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("take", strconv.Itoa(c.pageSize))
		params.Set("skip", strconv.Itoa((page-1)*c.pageSize))
		params.Set("filter", "all")

		body, err := c.doRequest(ctx, http.MethodGet, "/request", params, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to get requests: %w", err)
		}

		var response RequestsResponse
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}

		for _, req := range response.Results {
			if req.Type == MediaTypeMovie {
				all = append(all, req)
			}
		}

		c.logger.Debug().
			Int("page", page).
			Int("count", len(response.Results)).
			Int("total", len(all)).
			Msg("Retrieved movie requests from Overseerr")

		if !response.HasMorePages() {
			break
		}
	}

	return all, nil
}

// RequestMovie creates a request for the movie with the given TMDB id. A movie
// that already has a request yields ErrAlreadyRequested.
func (c *Client) RequestMovie(ctx context.Context, tmdbID int) (*MediaRequest, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/request", nil, createRequest{
		MediaType: MediaTypeMovie,
		MediaID:   tmdbID,
	})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
			return nil, fmt.Errorf("%w: %w", ErrAlreadyRequested, apiErr)
		}
		return nil, fmt.Errorf("failed to request movie %d: %w", tmdbID, err)
	}

	var created MediaRequest
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	c.logger.Info().
		Int("tmdb_id", tmdbID).
		Int("request_id", created.ID).
		Str("status", created.Status.String()).
		Msg("Requested movie")

	return &created, nil
}

// RequestedMovies indexes the movie requests by TMDB id
func RequestedMovies(requests []MediaRequest) map[int]MediaRequest {
	byID := make(map[int]MediaRequest, len(requests))
	for _, req := range requests {
		if req.Media.TmdbID > 0 {
			byID[req.Media.TmdbID] = req
		}
	}
	return byID
}
