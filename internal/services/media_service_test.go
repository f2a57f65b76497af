package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMediaService(t *testing.T, searchURL string) *MediaService {
	t.Helper()
	return &MediaService{
		accessKey: "test-key",
		cacheDir:  t.TempDir(),
		searchURL: searchURL,
		client:    &http.Client{Timeout: 5 * time.Second},
		memo:      cache.New(time.Minute, time.Minute),
		logger:    zap.NewNop(),
	}
}

func TestFetchImages(t *testing.T) {
	var searches, downloads atomic.Int64

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		searches.Add(1)
		assert.Equal(t, "Client-ID test-key", r.Header.Get("Authorization"))
		fmt.Fprintf(w, `{"results": [{"urls": {"regular": "%s/photo.jpg"}}]}`, server.URL)
	})
	mux.HandleFunc("/photo.jpg", func(w http.ResponseWriter, r *http.Request) {
		downloads.Add(1)
		w.Write([]byte("jpeg-bytes"))
	})

	svc := newTestMediaService(t, server.URL+"/search")

	paths := svc.FetchImages(context.Background(), []string{"hanoi travel", "hanoi landscape"}, 4)
	require.Len(t, paths, 2)
	for _, p := range paths {
		content, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, "jpeg-bytes", string(content))
	}
	assert.EqualValues(t, 2, searches.Load())
	assert.EqualValues(t, 2, downloads.Load())

	// Second fetch serves from the disk cache without touching the network.
	again := svc.FetchImages(context.Background(), []string{"hanoi travel"}, 1)
	require.Len(t, again, 1)
	assert.EqualValues(t, 2, searches.Load())
	assert.EqualValues(t, 2, downloads.Load())
}

func TestFetchImagesBestEffort(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") == "bad query" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"results": [{"urls": {"regular": "%s/photo.jpg"}}]}`, server.URL)
	})
	mux.HandleFunc("/photo.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jpeg-bytes"))
	})

	svc := newTestMediaService(t, server.URL+"/search")

	paths := svc.FetchImages(context.Background(), []string{"bad query", "good query"}, 4)
	assert.Len(t, paths, 1, "failed query skipped, not fatal")
}

func TestFetchImagesWithoutKey(t *testing.T) {
	svc := &MediaService{logger: zap.NewNop()}
	assert.Nil(t, svc.FetchImages(context.Background(), []string{"anything"}, 3))
}

func TestFetchImagesRespectsMax(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	var searches atomic.Int64
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		searches.Add(1)
		fmt.Fprintf(w, `{"results": [{"urls": {"regular": "%s/photo.jpg"}}]}`, server.URL)
	})
	mux.HandleFunc("/photo.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	})

	svc := newTestMediaService(t, server.URL+"/search")
	paths := svc.FetchImages(context.Background(), []string{"a", "b", "c", "d"}, 2)
	assert.Len(t, paths, 2)
	assert.EqualValues(t, 2, searches.Load())
}
