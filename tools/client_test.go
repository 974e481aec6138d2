package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"seo-audit-agent/seo"
)

func newTestTools(t *testing.T) *Tools {
	t.Helper()
	analyzer, err := seo.NewAnalyzer(seo.DefaultConfig(), nil)
	require.NoError(t, err)

	tl := New(analyzer)
	// Tests should not sit out the polite crawl delay.
	tl.limiter = rate.NewLimiter(rate.Inf, 1)
	return tl
}

func serveHTML(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, html)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEnsureScheme(t *testing.T) {
	tests := []struct {
		in  string
		out string
	}{
		{"example.com", "https://example.com"},
		{"  example.com/page  ", "https://example.com/page"},
		{"http://example.com", "http://example.com"},
		{"https://example.com", "https://example.com"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, ensureScheme(tt.in), "input %q", tt.in)
	}
}

func TestResolveHref(t *testing.T) {
	base, err := url.Parse("https://example.com/blog/post")
	require.NoError(t, err)

	tests := []struct {
		name string
		href string
		want string
	}{
		{"absolute", "https://other.com/page", "https://other.com/page"},
		{"root relative", "/about", "https://example.com/about"},
		{"document relative", "part-two", "https://example.com/blog/part-two"},
		{"fragment only", "#section", ""},
		{"empty", "  ", ""},
		{"javascript", "javascript:void(0)", ""},
		{"mailto", "mailto:hi@example.com", ""},
		{"tel", "tel:+15550100", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveHref(base, tt.href))
		})
	}
}

func TestHostOf(t *testing.T) {
	assert.Equal(t, "example.com", hostOf("https://www.example.com/page?q=1"))
	assert.Equal(t, "sub.example.com", hostOf("http://sub.example.com"))
	assert.Equal(t, "", hostOf("/relative/path"))
	assert.Equal(t, "", hostOf("https://localhost"))
}

func TestRelContains(t *testing.T) {
	assert.True(t, relContains("nofollow", "nofollow"))
	assert.True(t, relContains("external NOFOLLOW sponsored", "nofollow"))
	assert.False(t, relContains("nofollowing", "nofollow"))
	assert.False(t, relContains("", "nofollow"))
}

func TestTools_FetchPage_MeasuresBody(t *testing.T) {
	srv := serveHTML(t, "<html><head><title>Hi</title></head><body>hello</body></html>")
	tl := newTestTools(t)

	page, err := tl.fetchPage(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, page.statusCode)
	assert.Greater(t, page.sizeKB, 0.0)
	assert.GreaterOrEqual(t, page.loadTimeMs(), 0.0)
	assert.Equal(t, "Hi", page.doc.Find("title").Text())
}

func TestTools_FetchPage_Unreachable(t *testing.T) {
	tl := newTestTools(t)

	_, err := tl.fetchPage(context.Background(), "http://127.0.0.1:1/")
	require.Error(t, err)
}
