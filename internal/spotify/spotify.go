// package spotify implements an authenticated client for the Spotify Web API.
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/time/rate"
	"trackshift/internal/shared"
)

const (
	// AuthURL is the Spotify authorization endpoint.
	AuthURL = "https://accounts.spotify.com/authorize"
	// TokenURL is the Spotify token endpoint.
	TokenURL = "https://accounts.spotify.com/api/token"
	// BaseURL is the Spotify Web API base.
	BaseURL = "https://api.spotify.com/v1"

	// pageLimit is the page size for every list endpoint.
	pageLimit = 50
	// likeBatchSize is the maximum ids per PUT /me/tracks call.
	likeBatchSize = 50
	// addBatchSize is the maximum uris per POST /playlists/{id}/tracks call.
	addBatchSize = 100
)

// APIError describes a non-2xx response from the Spotify API.
//
// Unwrap returns the matching category sentinel so callers can branch with
// [errors.Is] on [shared.ErrUnauthorized], [shared.ErrRateLimited] or
// [shared.ErrAPIRequest].
type APIError struct {
	Status   int
	Endpoint string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("spotify API error: status %d (%s)", e.Status, e.Endpoint)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return shared.ErrUnauthorized
	case http.StatusTooManyRequests:
		return shared.ErrRateLimited
	default:
		return shared.ErrAPIRequest
	}
}

// User represents the authenticated user's profile.
type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Followers   followers `json:"followers"`
}

type followers struct {
	Total int `json:"total"`
}

// Track is the flattened track shape the rest of the tool works with.
// Identity is the service-assigned id; artist is a comma-joined display string.
type Track struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Artist  string `json:"artist"`
	AddedAt string `json:"added_at"`
}

// Playlist describes a playlist owned by the authenticated user.
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TrackCount  int    `json:"track_count"`
	Public      bool   `json:"public"`
	Description string `json:"description"`
}

// Wire types for the paginated endpoints.

type artistObject struct {
	Name string `json:"name"`
}

type trackObject struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Artists []artistObject `json:"artists"`
}

type savedTrackItem struct {
	AddedAt string       `json:"added_at"`
	Track   *trackObject `json:"track"`
}

type trackPage struct {
	Items []savedTrackItem `json:"items"`
	Next  *string          `json:"next"`
}

type playlistOwner struct {
	ID string `json:"id"`
}

type playlistTotals struct {
	Total int `json:"total"`
}

type playlistItem struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Owner       playlistOwner  `json:"owner"`
	Public      bool           `json:"public"`
	Tracks      playlistTotals `json:"tracks"`
}

type playlistPage struct {
	Items []playlistItem `json:"items"`
	Next  *string        `json:"next"`
}

// Client is an authenticated Spotify Web API client bound to one account's
// access token. Reads paginate transparently; writes are chunked and
// throttled through the limiter.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	limiter    *rate.Limiter
}

// ClientOpts contains optional Client overrides, primarily for tests.
type ClientOpts struct {
	BaseURL    string
	HTTPClient *http.Client
	Limiter    *rate.Limiter
}

// NewClient creates a Client authorized with the given bearer access token.
//
// With no limiter, writes are unthrottled.
func NewClient(accessToken string, opts ClientOpts) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = BaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Limiter == nil {
		opts.Limiter = rate.NewLimiter(rate.Inf, 0)
	}

	return &Client{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		token:      accessToken,
		limiter:    opts.Limiter,
	}
}

// newRequest builds an authenticated request, JSON-encoding body when present.
func (c *Client) newRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	var req *http.Request
	var err error
	if reader != nil {
		req, err = http.NewRequestWithContext(ctx, method, url, reader)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, url, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// get performs a GET against url and decodes the JSON response into result.
// Any non-2xx status aborts with an [APIError].
func (c *Client) get(ctx context.Context, url string, result any) error {
	req, err := c.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Endpoint: req.URL.Path}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
		}
	}

	return nil
}

// send performs a write request and reports the response status.
// Only transport-level failures are returned as errors; the caller decides
// what a non-2xx status means for its batch accounting.
func (c *Client) send(ctx context.Context, method, url string, body any) (int, error) {
	req, err := c.newRequest(ctx, method, url, body)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}

// decodeBody decodes a JSON response body into result.
func decodeBody(resp *http.Response, result any) error {
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
	}
	return nil
}

// joinArtists renders the comma-joined artist display string for a track.
func joinArtists(artists []artistObject) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}
