package overseerr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer serves /auth/me and delegates every other path to handler
func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		if r.URL.Path == "/api/v1/auth/me" {
			json.NewEncoder(w).Encode(map[string]any{"id": 1, "displayName": "Test User"})
			return
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("valid config", func(t *testing.T) {
		server := newTestServer(t, nil)

		client, err := NewClient(server.URL+"/", "test-key", logger)
		require.NoError(t, err)
		assert.Equal(t, server.URL, client.baseURL)
		assert.Equal(t, defaultPageSize, client.pageSize)
	})

	t.Run("missing URL", func(t *testing.T) {
		_, err := NewClient("", "test-key", logger)
		require.ErrorIs(t, err, ErrInvalidConfig)
		assert.Contains(t, err.Error(), "URL is required")
	})

	t.Run("missing API key", func(t *testing.T) {
		_, err := NewClient("http://localhost:5055", "", logger)
		require.ErrorIs(t, err, ErrInvalidConfig)
		assert.Contains(t, err.Error(), "API key is required")
	})

	t.Run("unauthorized", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"message": "You do not have permission to access this endpoint."}`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL, "test-key", logger)
		require.Error(t, err)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.True(t, apiErr.IsUnauthorized())
		assert.False(t, apiErr.IsNotFound())
		assert.Contains(t, err.Error(), "You do not have permission")
	})
}

func TestClientOptions(t *testing.T) {
	server := newTestServer(t, nil)

	client, err := NewClient(server.URL, "test-key", zerolog.Nop(), WithTimeout(5*time.Second), WithPageSize(50))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	assert.Equal(t, 50, client.pageSize)

	client, err = NewClient(server.URL, "test-key", zerolog.Nop(), WithTimeout(0), WithPageSize(-1))
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
	assert.Equal(t, defaultPageSize, client.pageSize)
}

func TestMovieRequests(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/request", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("take"))
		assert.Equal(t, "all", r.URL.Query().Get("filter"))

		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		page := skip/2 + 1

		var results []MediaRequest
		switch page {
		case 1:
			results = []MediaRequest{
				{ID: 1, Type: MediaTypeMovie, Status: RequestStatusApproved, Media: Media{TmdbID: 550, Status: MediaStatusAvailable}},
				{ID: 2, Type: MediaTypeTV, Media: Media{TmdbID: 1399}},
			}
		case 2:
			results = []MediaRequest{
				{ID: 3, Type: MediaTypeMovie, Status: RequestStatusPending, Media: Media{TmdbID: 533535, Status: MediaStatusPending}},
			}
		}

		json.NewEncoder(w).Encode(RequestsResponse{
			PageInfo: PageInfo{Pages: 2, PageSize: 2, Results: 3, Page: page},
			Results:  results,
		})
	})

	client, err := NewClient(server.URL, "test-key", zerolog.Nop(), WithPageSize(2))
	require.NoError(t, err)

	requests, err := client.MovieRequests(context.Background())
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, 1, requests[0].ID)
	assert.Equal(t, 3, requests[1].ID)

	byID := RequestedMovies(requests)
	assert.Len(t, byID, 2)
	assert.Equal(t, RequestStatusApproved, byID[550].Status)
	assert.Equal(t, MediaStatusPending, byID[533535].Media.Status)
}

func TestRequestMovie(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/request", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body createRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, MediaTypeMovie, body.MediaType)

		switch body.MediaID {
		case 533535:
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(MediaRequest{
				ID:     7,
				Status: RequestStatusPending,
				Type:   MediaTypeMovie,
				Media:  Media{TmdbID: 533535, Status: MediaStatusPending},
			})
		case 550:
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"message": "Request for this media already exists."}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message": "Unable to retrieve movie."}`))
		}
	})

	client, err := NewClient(server.URL, "test-key", zerolog.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	created, err := client.RequestMovie(ctx, 533535)
	require.NoError(t, err)
	assert.Equal(t, 7, created.ID)
	assert.Equal(t, "PENDING", created.Status.String())

	_, err = client.RequestMovie(ctx, 550)
	require.ErrorIs(t, err, ErrAlreadyRequested)
	assert.Contains(t, err.Error(), "already exists")

	_, err = client.RequestMovie(ctx, 1)
	require.Error(t, err)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsNotFound())
}

func TestStatusStrings(t *testing.T) {
	assert.Equal(t, "PENDING", RequestStatusPending.String())
	assert.Equal(t, "APPROVED", RequestStatusApproved.String())
	assert.Equal(t, "DECLINED", RequestStatusDeclined.String())
	assert.Equal(t, "UNKNOWN", RequestStatus(99).String())

	assert.Equal(t, "AVAILABLE", MediaStatusAvailable.String())
	assert.Equal(t, "PARTIALLY_AVAILABLE", MediaStatusPartiallyAvailable.String())
	assert.Equal(t, "PROCESSING", MediaStatusProcessing.String())
	assert.Equal(t, "UNKNOWN", MediaStatusUnknown.String())
}

func TestUser(t *testing.T) {
	tests := []struct {
		name     string
		user     User
		expected string
	}{
		{name: "display name available", user: User{DisplayName: "John Doe", Username: "johndoe", Email: "john@example.com"}, expected: "John Doe"},
		{name: "only username available", user: User{Username: "johndoe", PlexUsername: "john_plex"}, expected: "johndoe"},
		{name: "only plex username available", user: User{PlexUsername: "john_plex", Email: "john@example.com"}, expected: "john_plex"},
		{name: "only email available", user: User{Email: "john@example.com"}, expected: "john@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.user.GetDisplayName())
		})
	}
}
