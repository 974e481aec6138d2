package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveXML(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTools_ParseSitemap_URLSet(t *testing.T) {
	srv := serveXML(t, `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
	<url><loc>https://example.com/</loc><lastmod>2024-01-15</lastmod></url>
	<url><loc> https://example.com/about </loc></url>
</urlset>`)
	tl := newTestTools(t)

	report, err := tl.ParseSitemap(context.Background(), srv.URL+"/sitemap.xml")
	require.NoError(t, err)

	assert.False(t, report.IsIndex)
	assert.False(t, report.Truncated)
	assert.Equal(t, 2, report.URLCount)
	require.Len(t, report.URLs, 2)
	assert.Equal(t, "https://example.com/", report.URLs[0].Loc)
	assert.Equal(t, "2024-01-15", report.URLs[0].LastMod)
	assert.Equal(t, "https://example.com/about", report.URLs[1].Loc, "loc whitespace is trimmed")
}

func TestTools_ParseSitemap_Index(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/index.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<sitemapindex>
			<sitemap><loc>%s/a.xml</loc></sitemap>
			<sitemap><loc>%s/b.xml</loc></sitemap>
		</sitemapindex>`, srv.URL, srv.URL)
	})
	mux.HandleFunc("/a.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<urlset>
			<url><loc>https://example.com/page-one</loc></url>
			<url><loc>https://example.com/page-two</loc></url>
		</urlset>`)
	})
	mux.HandleFunc("/b.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<urlset><url><loc>https://example.com/page-three</loc></url></urlset>`)
	})

	tl := newTestTools(t)
	report, err := tl.ParseSitemap(context.Background(), srv.URL+"/index.xml")
	require.NoError(t, err)

	assert.True(t, report.IsIndex)
	assert.Equal(t, []string{srv.URL + "/a.xml", srv.URL + "/b.xml"}, report.ChildSitemaps)
	assert.Equal(t, 3, report.URLCount)
	require.Len(t, report.URLs, 3)
	assert.Equal(t, "https://example.com/page-one", report.URLs[0].Loc)
	assert.Equal(t, "https://example.com/page-three", report.URLs[2].Loc)
}

func TestTools_ParseSitemap_SkipsBrokenChild(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/index.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<sitemapindex>
			<sitemap><loc>%s/missing.xml</loc></sitemap>
			<sitemap><loc>%s/good.xml</loc></sitemap>
		</sitemapindex>`, srv.URL, srv.URL)
	})
	mux.HandleFunc("/good.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<urlset><url><loc>https://example.com/alive</loc></url></urlset>`)
	})

	tl := newTestTools(t)
	report, err := tl.ParseSitemap(context.Background(), srv.URL+"/index.xml")
	require.NoError(t, err)

	assert.Equal(t, 1, report.URLCount)
	assert.Equal(t, "https://example.com/alive", report.URLs[0].Loc)
}

func TestTools_ParseSitemap_NotXML(t *testing.T) {
	srv := serveHTML(t, "<html><body>not a sitemap</body></html>")
	tl := newTestTools(t)

	_, err := tl.ParseSitemap(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a urlset or sitemapindex")
}

func TestTools_ParseSitemap_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	tl := newTestTools(t)

	_, err := tl.ParseSitemap(context.Background(), srv.URL+"/sitemap.xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestTools_CrawlSitemapPages(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<urlset>
			<url><loc>%s/page-a</loc></url>
			<url><loc>%s/page-b</loc></url>
			<url><loc>%s/gone</loc></url>
		</urlset>`, srv.URL, srv.URL, dead.URL)
	})
	mux.HandleFunc("/page-a", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>Page A</title></head><body>
			<a href="/about">About</a>
			<a href="/privacy">Privacy</a>
		</body></html>`)
	})
	mux.HandleFunc("/page-b", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>Page B</title></head><body>
			<a href="/about">About</a>
		</body></html>`)
	})

	tl := newTestTools(t)
	report, err := tl.CrawlSitemapPages(context.Background(), srv.URL+"/sitemap.xml", 0)
	require.NoError(t, err)

	assert.Equal(t, 2, report.PagesCrawled)
	assert.Equal(t, 1, report.PagesFailed)
	require.Len(t, report.Pages, 3)

	assert.Equal(t, "Page A", report.Pages[0].Title)
	assert.Equal(t, 2, report.Pages[0].TotalLinks)
	assert.Equal(t, "Page B", report.Pages[1].Title)
	assert.NotEmpty(t, report.Pages[2].Error)

	assert.Equal(t, 2, report.CategoryTotals["navigation"])
	assert.Equal(t, 1, report.CategoryTotals["legal"])
}

func TestTools_CrawlSitemapPages_MaxPages(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<urlset>")
		for i := 0; i < 5; i++ {
			fmt.Fprintf(w, "<url><loc>%s/p%d</loc></url>", srv.URL, i)
		}
		fmt.Fprint(w, "</urlset>")
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><head><title>p</title></head><body></body></html>")
	})

	tl := newTestTools(t)
	report, err := tl.CrawlSitemapPages(context.Background(), srv.URL+"/sitemap.xml", 2)
	require.NoError(t, err)

	assert.Equal(t, 2, report.PagesCrawled)
	assert.Len(t, report.Pages, 2)
}
