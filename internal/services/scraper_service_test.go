package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripflow/pkg/utils"
)

const blogHTML = `<!DOCTYPE html>
<html>
<head><title>Fallback Title</title></head>
<body>
<nav>Home | About</nav>
<h1>Ten Days in Northern Vietnam</h1>
<article>
<h2>Hanoi Old Quarter</h2>
<p>We spent our first three days wandering the Old Quarter, eating pho for breakfast and dodging scooters. The energy of the city is unlike anywhere else we have visited as a family.</p>
<h2>Ha Long Bay</h2>
<p>Pro tip: book an overnight cruise rather than a day trip, the bay empties out after four and you get the karsts almost to yourselves. You should also avoid the cheapest boats.</p>
<img src="https://example.com/halong.jpg">
<img src="/relative/ignored.jpg">
</article>
<footer>Copyright</footer>
<script>console.log("noise")</script>
</body>
</html>`

func TestScrapeBlog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(blogHTML))
	}))
	defer server.Close()

	svc := NewScraperService(zap.NewNop())
	content, err := svc.ScrapeBlog(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, server.URL, content.URL)
	assert.Equal(t, "Ten Days in Northern Vietnam", content.Title)
	assert.Contains(t, content.Summary, "Old Quarter")
	assert.Contains(t, content.RawText, "overnight cruise")
	assert.NotContains(t, content.RawText, "console.log", "script content stripped")

	assert.Contains(t, content.Highlights, "Hanoi Old Quarter")
	assert.Contains(t, content.Highlights, "Ha Long Bay")

	require.NotEmpty(t, content.Tips)
	assert.Contains(t, content.Tips[0], "overnight cruise")

	assert.Equal(t, []string{"https://example.com/halong.jpg"}, content.Images)
}

func TestScrapeBlogFailures(t *testing.T) {
	svc := NewScraperService(zap.NewNop())

	t.Run("rejects non-http urls", func(t *testing.T) {
		_, err := svc.ScrapeBlog(context.Background(), "ftp://example.com")
		assert.ErrorIs(t, err, utils.ErrInvalidInput)
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := svc.ScrapeBlog(context.Background(), server.URL)
		assert.ErrorIs(t, err, utils.ErrScrapeFailed)
	})

	t.Run("page without readable content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html><body><p>short</p></body></html>"))
		}))
		defer server.Close()

		_, err := svc.ScrapeBlog(context.Background(), server.URL)
		assert.ErrorIs(t, err, utils.ErrScrapeFailed)
	})
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("Book the tickets early online. Avoid the midday crowds! Short. The last one has no terminator at all")
	assert.Equal(t, []string{
		"Book the tickets early online.",
		"Avoid the midday crowds!",
		"The last one has no terminator at all",
	}, got)
}
