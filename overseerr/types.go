package overseerr

import (
	"time"
)

// RequestStatus represents the status of a media request
type RequestStatus int

const (
	// RequestStatusUnknown represents an unknown request status
	RequestStatusUnknown RequestStatus = iota
	// RequestStatusPending indicates a request waiting for approval
	RequestStatusPending
	// RequestStatusApproved indicates an approved request
	RequestStatusApproved
	// RequestStatusDeclined indicates a declined request
	RequestStatusDeclined
)

// String returns the string representation of a RequestStatus
func (rs RequestStatus) String() string {
	switch rs {
	case RequestStatusPending:
		return "PENDING"
	case RequestStatusApproved:
		return "APPROVED"
	case RequestStatusDeclined:
		return "DECLINED"
	default:
		return "UNKNOWN"
	}
}

// MediaStatus is the availability of the requested media
type MediaStatus int

const (
	MediaStatusUnknown MediaStatus = iota + 1
	MediaStatusPending
	MediaStatusProcessing
	MediaStatusPartiallyAvailable
	MediaStatusAvailable
)

func (ms MediaStatus) String() string {
	switch ms {
	case MediaStatusPending:
		return "PENDING"
	case MediaStatusProcessing:
		return "PROCESSING"
	case MediaStatusPartiallyAvailable:
		return "PARTIALLY_AVAILABLE"
	case MediaStatusAvailable:
		return "AVAILABLE"
	default:
		return "UNKNOWN"
	}
}

// MediaType represents the type of media
type MediaType string

const (
	// MediaTypeMovie represents a movie
	MediaTypeMovie MediaType = "movie"
	// MediaTypeTV represents a TV show
	MediaTypeTV MediaType = "tv"
)

// User represents an Overseerr user
type User struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username,omitempty"`
	PlexUsername string `json:"plexUsername,omitempty"`
	DisplayName  string `json:"displayName"`
}

// GetDisplayName returns the best available display name for the user
func (u *User) GetDisplayName() string {
	switch {
	case u.DisplayName != "":
		return u.DisplayName
	case u.Username != "":
		return u.Username
	case u.PlexUsername != "":
		return u.PlexUsername
	}
	return u.Email
}

// Media is the Overseerr record of a requested title
type Media struct {
	ID        int         `json:"id"`
	TmdbID    int         `json:"tmdbId"`
	Status    MediaStatus `json:"status"`
	MediaType MediaType   `json:"mediaType"`
}

// MediaRequest represents a media request in Overseerr
type MediaRequest struct {
	ID            int           `json:"id"`
	Status        RequestStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	Type          MediaType     `json:"type"`
	IsAutoRequest bool          `json:"isAutoRequest"`
	RequestedBy   User          `json:"requestedBy"`
	Media         Media         `json:"media"`
}

// RequestsResponse represents the paginated response from the requests endpoint
type RequestsResponse struct {
	PageInfo PageInfo       `json:"pageInfo"`
	Results  []MediaRequest `json:"results"`
}

// HasMorePages checks if there are more pages to fetch
func (rr *RequestsResponse) HasMorePages() bool {
	return rr.PageInfo.Page < rr.PageInfo.Pages
}

// PageInfo contains pagination information
type PageInfo struct {
	Pages    int `json:"pages"`
	PageSize int `json:"pageSize"`
	Results  int `json:"results"`
	Page     int `json:"page"`
}

// createRequest is the body of a new request
type createRequest struct {
	MediaType MediaType `json:"mediaType"`
	MediaID   int       `json:"mediaId"`
}

type errorResponse struct {
	Message string `json:"message"`
}
