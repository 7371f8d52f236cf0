package media

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPage = `<html><body>
<div class="fed-list-info">
  <a class="fed-list-pics" href="/play/42.html" title="Inception"></a>
</div>
</body></html>`

const playbackPage = `<html><body>
<script>
var now = 0;
var vid = 'https://cdn.example.com/stream.m3u8';
</script>
</body></html>`

func catalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/search/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Inception", r.URL.Query().Get("wd"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		fmt.Fprint(w, searchPage)
	})
	mux.HandleFunc("/play/42.html", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, playbackPage)
	})
	return httptest.NewServer(mux)
}

func TestLookupResolvesStreamURL(t *testing.T) {
	server := catalogServer(t)
	defer server.Close()

	resolver := NewResolver(server.URL, server.Client())

	streamURL, err := resolver.Lookup(context.Background(), "Inception")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/stream.m3u8", streamURL)
}

func TestLookupNoResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>no results</body></html>")
	}))
	defer server.Close()

	resolver := NewResolver(server.URL, server.Client())

	streamURL, err := resolver.Lookup(context.Background(), "Unknown Film")
	require.NoError(t, err)
	assert.Empty(t, streamURL)
}

func TestLookupSearchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	resolver := NewResolver(server.URL, server.Client())

	_, err := resolver.Lookup(context.Background(), "Inception")
	assert.Error(t, err)
}

func TestLookupPlaybackWithoutStream(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, searchPage)
	})
	mux.HandleFunc("/play/42.html", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><script>var other = 1;</script></body></html>")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	resolver := NewResolver(server.URL, server.Client())

	streamURL, err := resolver.Lookup(context.Background(), "Inception")
	require.NoError(t, err)
	assert.Empty(t, streamURL)
}
