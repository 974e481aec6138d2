package tools

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestHandlers_RejectMissingInput(t *testing.T) {
	h := NewHandlers(newTestTools(t))

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"meta", h.Meta},
		{"speed", h.Speed},
		{"broken links", h.BrokenLinks},
		{"serp", h.SERP},
		{"keywords", h.Keywords},
		{"page backlinks", h.PageBacklinks},
		{"links by category", h.LinksByCategory},
		{"sitemap parse", h.SitemapParse},
		{"sitemap crawl", h.SitemapCrawl},
		{"url batch", h.URLBatch},
		{"domain info", h.DomainInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(tt.handler, `{}`)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHandlers_Meta(t *testing.T) {
	srv := serveHTML(t, "<html><head><title>Endpoint Page</title></head><body></body></html>")
	h := NewHandlers(newTestTools(t))

	w := postJSON(h.Meta, fmt.Sprintf(`{"url": %q}`, srv.URL))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var report MetaReport
	require.NoError(t, json.NewDecoder(w.Body).Decode(&report))
	assert.Equal(t, "Endpoint Page", report.Title)
}

func TestHandlers_Meta_UpstreamFailure(t *testing.T) {
	h := NewHandlers(newTestTools(t))

	w := postJSON(h.Meta, `{"url": "http://127.0.0.1:1/"}`)
	require.Equal(t, http.StatusBadGateway, w.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.NotEmpty(t, body["error"])
}

func TestHandlers_Keywords_TextOnly(t *testing.T) {
	h := NewHandlers(newTestTools(t))

	w := postJSON(h.Keywords, `{"text": "backlink audits need careful backlink review"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var report KeywordReport
	require.NoError(t, json.NewDecoder(w.Body).Decode(&report))
	assert.Equal(t, "backlink", report.TopKeywords[0].Word)
	assert.Equal(t, 2, report.TopKeywords[0].Count)
}

func TestHandlers_URLBatch(t *testing.T) {
	srv := serveHTML(t, `<html><body><a href="/about">About</a></body></html>`)
	h := NewHandlers(newTestTools(t))

	w := postJSON(h.URLBatch, fmt.Sprintf(`{"urls": [%q, "http://127.0.0.1:1/"]}`, srv.URL))
	require.Equal(t, http.StatusOK, w.Code)

	var report BatchReport
	require.NoError(t, json.NewDecoder(w.Body).Decode(&report))
	assert.Equal(t, 2, report.TotalURLsAnalyzed)
	assert.Equal(t, 1, report.Successful)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Results, 2)
	assert.NotNil(t, report.Results[0].Report)
	assert.NotEmpty(t, report.Results[1].Error)
}

func TestHandlers_SERP(t *testing.T) {
	serp := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<div class="result"><a class="result__a" href="https://winner.example/">Winner</a></div>`)
	}))
	t.Cleanup(serp.Close)

	tl := newTestTools(t)
	tl.serpBase = serp.URL + "/html/"
	h := NewHandlers(tl)

	w := postJSON(h.SERP, `{"keyword": "widgets"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var report SERPReport
	require.NoError(t, json.NewDecoder(w.Body).Decode(&report))
	require.Len(t, report.Competitors, 1)
	assert.Equal(t, "https://winner.example/", report.Competitors[0].URL)
}

func TestHandlers_Speed(t *testing.T) {
	srv := serveHTML(t, "<html><body>small fast page</body></html>")
	h := NewHandlers(newTestTools(t))

	w := postJSON(h.Speed, fmt.Sprintf(`{"url": %q}`, srv.URL))
	require.Equal(t, http.StatusOK, w.Code)

	var report SpeedReport
	require.NoError(t, json.NewDecoder(w.Body).Decode(&report))
	assert.Equal(t, 100, report.EstimatedScore, "local fetch should be well under every penalty threshold")
	assert.Equal(t, "Good", report.Status)
}
