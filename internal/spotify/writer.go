package spotify

import (
	"context"
	"fmt"
	"net/http"
)

// LikeTracks saves track ids to the user's library in batches of 50.
//
// A batch answered with anything other than 200 or 201 counts its full size
// toward the returned failure total; there is no per-item granularity. The
// limiter is waited on after every batch regardless of outcome. Transport
// failures abort and propagate.
func (c *Client) LikeTracks(ctx context.Context, ids []string) (int, error) {
	failed := 0

	for start := 0; start < len(ids); start += likeBatchSize {
		end := min(start+likeBatchSize, len(ids))
		batch := ids[start:end]

		status, err := c.send(ctx, http.MethodPut, c.baseURL+"/me/tracks", map[string][]string{"ids": batch})
		if err != nil {
			return failed, err
		}
		if status != http.StatusOK && status != http.StatusCreated {
			failed += len(batch)
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return failed, err
		}
	}

	return failed, nil
}

// CreatePlaylist creates a playlist for the given user and returns its id.
// Unlike the batched writes, any non-2xx response here is a hard failure.
func (c *Client) CreatePlaylist(ctx context.Context, userID, name, description string, public bool) (string, error) {
	body := map[string]any{
		"name":        name,
		"description": description,
		"public":      public,
	}

	url := fmt.Sprintf("%s/users/%s/playlists", c.baseURL, userID)
	req, err := c.newRequest(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &APIError{Status: resp.StatusCode, Endpoint: req.URL.Path}
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := decodeBody(resp, &created); err != nil {
		return "", err
	}

	return created.ID, nil
}

// AddTracks appends track ids to a playlist in batches of 100, converting
// each raw id to its spotify:track: URI form. Failure accounting and
// throttling match LikeTracks.
func (c *Client) AddTracks(ctx context.Context, playlistID string, ids []string) (int, error) {
	failed := 0
	url := fmt.Sprintf("%s/playlists/%s/tracks", c.baseURL, playlistID)

	for start := 0; start < len(ids); start += addBatchSize {
		end := min(start+addBatchSize, len(ids))
		batch := ids[start:end]

		uris := make([]string, len(batch))
		for i, id := range batch {
			uris[i] = "spotify:track:" + id
		}

		status, err := c.send(ctx, http.MethodPost, url, map[string][]string{"uris": uris})
		if err != nil {
			return failed, err
		}
		if status != http.StatusOK && status != http.StatusCreated {
			failed += len(batch)
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return failed, err
		}
	}

	return failed, nil
}
