package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingHTML = `<!DOCTYPE html>
<html>
<head><title>Backend Engineer</title></head>
<body>
	<nav>Home | Jobs</nav>
	<div class="job-description">
		<h1>Backend Engineer</h1>
		<p>Join our platform team.</p>
		<ul>
			<li>5+ years of experience with Go</li>
			<li>AWS knowledge required</li>
		</ul>
	</div>
	<form id="application-form">Upload resume</form>
	<footer>Copyright</footer>
</body>
</html>`

func TestIngestFromURL_InvalidURL(t *testing.T) {
	for _, u := range []string{"", "not-a-url", "example.com", "http://"} {
		_, err := IngestFromURL(context.Background(), u, URLOptions{})
		require.Error(t, err, u)
		assert.ErrorIs(t, err, ErrInvalidURL)
	}
}

func TestIngestFromURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer server.Close()

	doc, err := IngestFromURL(context.Background(), server.URL, URLOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer\nJoin our platform team.\n- 5+ years of experience with Go\n- AWS knowledge required", doc.Text)
	assert.NotContains(t, doc.Text, "Upload resume")
	assert.Equal(t, server.URL, doc.Metadata.Source)
	assert.Equal(t, "html", doc.Metadata.Format)
	assert.Equal(t, "unknown", doc.Metadata.Platform)
	assert.Equal(t, ContentHash(doc.Text), doc.Metadata.Hash)
}

func TestIngestFromURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := IngestFromURL(context.Background(), server.URL, URLOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
	assert.Contains(t, err.Error(), "403")
}

func TestIngestFromURL_BrowserFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div id="root">Loading...</div></body></html>`))
	}))
	defer server.Close()

	t.Run("uses rendered page", func(t *testing.T) {
		var renderedURL string
		opts := URLOptions{
			UseBrowser: true,
			render: func(_ context.Context, url string) (string, error) {
				renderedURL = url
				return postingHTML, nil
			},
		}

		doc, err := IngestFromURL(context.Background(), server.URL, opts)
		require.NoError(t, err)
		assert.Equal(t, server.URL, renderedURL)
		assert.True(t, strings.HasPrefix(doc.Text, "Backend Engineer"))
	})

	t.Run("keeps fetched text when rendering fails", func(t *testing.T) {
		opts := URLOptions{
			UseBrowser: true,
			render: func(context.Context, string) (string, error) {
				return "", errors.New("chrome not installed")
			},
		}

		doc, err := IngestFromURL(context.Background(), server.URL, opts)
		require.NoError(t, err)
		assert.Equal(t, "Loading...", doc.Text)
	})

	t.Run("browser disabled", func(t *testing.T) {
		called := false
		opts := URLOptions{render: func(context.Context, string) (string, error) {
			called = true
			return "", nil
		}}

		_, err := IngestFromURL(context.Background(), server.URL, opts)
		require.NoError(t, err)
		assert.False(t, called)
	})
}

func TestIngestFromURL_EmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><script>app()</script></body></html>`))
	}))
	defer server.Close()

	_, err := IngestFromURL(context.Background(), server.URL, URLOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyDocument)
}
