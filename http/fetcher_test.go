package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/greeenboii/greeenboii"
	greeenboiihttp "github.com/greeenboii/greeenboii/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := greeenboiihttp.NewFetcher()
		defer fetcher.Close()

		out := fetcher.Fetch(context.Background(), server.URL)

		require.NoError(t, out.Err)
		assert.Equal(t, server.URL, out.URL)
		assert.Equal(t, http.StatusOK, out.Status)
		assert.Equal(t, "<html><body>Hello World</body></html>", out.Body)
	})

	t.Run("sends browser headers", func(t *testing.T) {
		t.Parallel()

		var ua, lang string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ua = r.Header.Get("User-Agent")
			lang = r.Header.Get("Accept-Language")
		}))
		defer server.Close()

		fetcher := greeenboiihttp.NewFetcher()
		defer fetcher.Close()

		out := fetcher.Fetch(context.Background(), server.URL)

		require.NoError(t, out.Err)
		assert.Equal(t, greeenboii.UserAgent, ua)
		assert.Equal(t, "en-US,en;q=0.5", lang)
	})

	t.Run("returns body for non-200 status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte("<p>unusual traffic</p>"))
		}))
		defer server.Close()

		fetcher := greeenboiihttp.NewFetcher()
		defer fetcher.Close()

		out := fetcher.Fetch(context.Background(), server.URL)

		require.NoError(t, out.Err)
		assert.Equal(t, http.StatusTooManyRequests, out.Status)
		assert.Equal(t, "<p>unusual traffic</p>", out.Body)
	})

	t.Run("decodes declared charset to UTF-8", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			_, _ = w.Write([]byte("caf\xe9"))
		}))
		defer server.Close()

		fetcher := greeenboiihttp.NewFetcher()
		defer fetcher.Close()

		out := fetcher.Fetch(context.Background(), server.URL)

		require.NoError(t, out.Err)
		assert.Equal(t, "café", out.Body)
	})

	t.Run("caps body size", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte(strings.Repeat("a", greeenboiihttp.MaxBodySize+100)))
		}))
		defer server.Close()

		fetcher := greeenboiihttp.NewFetcher()
		defer fetcher.Close()

		out := fetcher.Fetch(context.Background(), server.URL)

		require.NoError(t, out.Err)
		assert.Len(t, out.Body, greeenboiihttp.MaxBodySize)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := greeenboiihttp.NewFetcher(greeenboiihttp.WithTimeout(10 * time.Millisecond))
		defer fetcher.Close()

		out := fetcher.Fetch(context.Background(), server.URL)

		require.Error(t, out.Err)
		assert.Equal(t, greeenboii.ETRANSPORT, greeenboii.ErrorCode(out.Err))
		assert.Zero(t, out.Status)
	})

	t.Run("uses supplied client", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		fetcher := greeenboiihttp.NewFetcher(greeenboiihttp.WithClient(server.Client()))
		defer fetcher.Close()

		out := fetcher.Fetch(context.Background(), server.URL)

		require.NoError(t, out.Err)
		assert.Equal(t, "ok", out.Body)
	})

	t.Run("does not modify supplied client", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		client := server.Client()
		client.Timeout = 5 * time.Minute

		fetcher := greeenboiihttp.NewFetcher(
			greeenboiihttp.WithClient(client),
			greeenboiihttp.WithTimeout(2*time.Second),
		)
		defer fetcher.Close()

		out := fetcher.Fetch(context.Background(), server.URL)

		require.NoError(t, out.Err)
		assert.Equal(t, 5*time.Minute, client.Timeout)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := greeenboiihttp.NewFetcher()
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		out := fetcher.Fetch(ctx, server.URL)

		require.Error(t, out.Err)
		assert.Equal(t, greeenboii.ETRANSPORT, greeenboii.ErrorCode(out.Err))
	})

	t.Run("returns transport error for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := greeenboiihttp.NewFetcher(greeenboiihttp.WithTimeout(100 * time.Millisecond))
		defer fetcher.Close()

		out := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/page")

		require.NotNil(t, out)
		assert.Equal(t, greeenboii.ETRANSPORT, greeenboii.ErrorCode(out.Err))
		assert.Empty(t, out.Body)
	})

	t.Run("returns transport error for malformed URL", func(t *testing.T) {
		t.Parallel()

		fetcher := greeenboiihttp.NewFetcher()
		defer fetcher.Close()

		out := fetcher.Fetch(context.Background(), "://bad")

		assert.Equal(t, greeenboii.ETRANSPORT, greeenboii.ErrorCode(out.Err))
	})
}
