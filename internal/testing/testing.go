// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/musicdb/internal/models"
)

// AlbumListJSON is a list projection body with three albums.
const AlbumListJSON = `[
	{"id": 1, "title": "Blue Train", "artist": "John Coltrane", "price": 12.5},
	{"id": 2, "title": "Kind of Blue", "artist": "Miles Davis", "price": "9.999"},
	{"id": 3, "title": "Discovery", "artist": "Daft Punk", "price": 15}
]`

// AlbumDetailJSON is a detail projection body mixing nested and flat track shapes.
const AlbumDetailJSON = `{
	"id": 3,
	"title": "Discovery",
	"artist": "Daft Punk",
	"description": "Second studio album",
	"release_date": "2001-03-12",
	"tracks": [
		{"id": 30, "position": 1, "song": {"title": "One More Time", "duration": 320}},
		{"id": 31, "position": 2, "title": "Aerodynamic", "duration": 125},
		{"id": 32}
	]
}`

// FakeCatalog is an in-memory [services.Catalog].
type FakeCatalog struct {
	mu          sync.Mutex
	Albums      []models.AlbumSummary
	Details     map[string]*models.Album
	Err         error
	ListCalls   int
	GetCalls    map[string]int
	Invalidated []string
}

func (f *FakeCatalog) ListAlbums(ctx context.Context) ([]models.AlbumSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Albums, nil
}

func (f *FakeCatalog) GetAlbum(ctx context.Context, id string) (*models.Album, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GetCalls == nil {
		f.GetCalls = map[string]int{}
	}
	f.GetCalls[id]++
	if f.Err != nil {
		return nil, f.Err
	}
	album, ok := f.Details[id]
	if !ok {
		return nil, errors.New("HTTP 404")
	}
	return album, nil
}

func (f *FakeCatalog) Invalidate(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Invalidated = append(f.Invalidated, key)
}

// Backend is a fake album backend serving fixed bodies by path.
type Backend struct {
	*httptest.Server

	mu       sync.Mutex
	Requests []*http.Request
}

// NewBackend starts a [Backend]. Paths missing from routes get a 404.
//
// A route body of the form "status:NNN" responds with that status and an empty JSON object.
func NewBackend(t *testing.T, routes map[string]string) *Backend {
	t.Helper()

	b := &Backend{}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.Requests = append(b.Requests, r.Clone(context.Background()))
		b.mu.Unlock()

		body, ok := routes[r.URL.Path]
		if !ok {
			http.Error(w, `{"detail": "Not found."}`, http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if code, found := strings.CutPrefix(body, "status:"); found {
			w.WriteHeader(statusCode(code))
			w.Write([]byte(`{}`))
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(b.Close)

	return b
}

// Hits counts requests received for path.
func (b *Backend) Hits(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, r := range b.Requests {
		if r.URL.Path == path {
			n++
		}
	}
	return n
}

func statusCode(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return http.StatusInternalServerError
	}
	return n
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
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

// IntPtr returns a pointer to i.
func IntPtr(i int) *int {
	return &i
}
