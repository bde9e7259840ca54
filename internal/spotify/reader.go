package spotify

import (
	"context"
	"fmt"
)

// CurrentUser retrieves the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, c.baseURL+"/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// LikedTracks enumerates every saved track in the user's library, following
// the server's next-page link until exhausted. Items without an underlying
// track or without a track id are dropped; server pagination order is kept.
func (c *Client) LikedTracks(ctx context.Context) ([]Track, error) {
	return c.collectTracks(ctx, fmt.Sprintf("%s/me/tracks?limit=%d", c.baseURL, pageLimit))
}

// PlaylistTracks enumerates one playlist's tracks with the same pagination
// and filtering as LikedTracks.
func (c *Client) PlaylistTracks(ctx context.Context, playlistID string) ([]Track, error) {
	return c.collectTracks(ctx, fmt.Sprintf("%s/playlists/%s/tracks?limit=%d", c.baseURL, playlistID, pageLimit))
}

func (c *Client) collectTracks(ctx context.Context, url string) ([]Track, error) {
	var tracks []Track

	next := &url
	for next != nil {
		var page trackPage
		if err := c.get(ctx, *next, &page); err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			if item.Track == nil || item.Track.ID == "" {
				continue
			}
			tracks = append(tracks, Track{
				ID:      item.Track.ID,
				Name:    item.Track.Name,
				Artist:  joinArtists(item.Track.Artists),
				AddedAt: item.AddedAt,
			})
		}

		next = page.Next
	}

	return tracks, nil
}

// OwnedPlaylists enumerates the playlists owned by the authenticated user.
// The acting user's id is fetched once; playlists merely followed (owned by
// someone else) are excluded even when the API returns them.
func (c *Client) OwnedPlaylists(ctx context.Context) ([]Playlist, error) {
	user, err := c.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	var playlists []Playlist

	url := fmt.Sprintf("%s/me/playlists?limit=%d", c.baseURL, pageLimit)
	next := &url
	for next != nil {
		var page playlistPage
		if err := c.get(ctx, *next, &page); err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			if item.Owner.ID != user.ID {
				continue
			}
			playlists = append(playlists, Playlist{
				ID:          item.ID,
				Name:        item.Name,
				TrackCount:  item.Tracks.Total,
				Public:      item.Public,
				Description: item.Description,
			})
		}

		next = page.Next
	}

	return playlists, nil
}
