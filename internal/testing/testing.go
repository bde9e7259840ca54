// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"trackshift/internal/spotify"
)

// MockLibrary is a test double for [tasks.Library]
type MockLibrary struct {
	Liked      []spotify.Track
	Playlists  []spotify.Playlist
	Tracks     map[string][]spotify.Track
	LikedErr   error
	ListErr    error
	TracksErr  error
	LikeErr    error
	CreateErr  error
	AddErr     error
	LikeFailed int
	AddFailed  int

	LikedCalls  [][]string
	CreateCalls []string
	AddCalls    map[string][][]string
}

func NewMockLibrary() *MockLibrary {
	return &MockLibrary{
		Tracks:   make(map[string][]spotify.Track),
		AddCalls: make(map[string][][]string),
	}
}

func (m *MockLibrary) LikedTracks(ctx context.Context) ([]spotify.Track, error) {
	return m.Liked, m.LikedErr
}

func (m *MockLibrary) OwnedPlaylists(ctx context.Context) ([]spotify.Playlist, error) {
	return m.Playlists, m.ListErr
}

func (m *MockLibrary) PlaylistTracks(ctx context.Context, playlistID string) ([]spotify.Track, error) {
	if m.TracksErr != nil {
		return nil, m.TracksErr
	}
	return m.Tracks[playlistID], nil
}

func (m *MockLibrary) LikeTracks(ctx context.Context, ids []string) (int, error) {
	if m.LikeErr != nil {
		return 0, m.LikeErr
	}
	m.LikedCalls = append(m.LikedCalls, ids)
	return m.LikeFailed, nil
}

func (m *MockLibrary) CreatePlaylist(ctx context.Context, userID, name, description string, public bool) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	m.CreateCalls = append(m.CreateCalls, name)
	return "created-" + name, nil
}

func (m *MockLibrary) AddTracks(ctx context.Context, playlistID string, ids []string) (int, error) {
	if m.AddErr != nil {
		return 0, m.AddErr
	}
	m.AddCalls[playlistID] = append(m.AddCalls[playlistID], ids)
	return m.AddFailed, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
