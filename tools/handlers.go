package tools

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Request bodies accepted by the tool endpoints. Decoding is lenient,
// missing fields are caught by the per-handler checks.
type urlRequest struct {
	URL  string `json:"url"`
	Text string `json:"text,omitempty"`
}

type keywordRequest struct {
	Keyword string `json:"keyword"`
}

type sitemapRequest struct {
	SitemapURL string `json:"sitemap_url"`
	MaxPages   int    `json:"max_pages"`
}

type urlListRequest struct {
	URLs []string `json:"urls"`
}

type domainRequest struct {
	Domain string `json:"domain"`
}

// The broken-link endpoint checks fewer links than the library limit so the
// response stays snappy for interactive use.
const brokenLinksRouteLimit = 5

// Handlers exposes each tool as an HTTP endpoint.
type Handlers struct {
	tools *Tools
}

// NewHandlers wraps a Tools for HTTP serving.
func NewHandlers(t *Tools) *Handlers {
	return &Handlers{tools: t}
}

// Meta handles POST /tools/meta.
func (h *Handlers) Meta(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.URL == "" {
		http.Error(w, "url required", http.StatusBadRequest)
		return
	}

	report, err := h.tools.ExtractMetaTags(r.Context(), req.URL)
	if err != nil {
		writeToolError(w, err)
		return
	}
	writeJSON(w, report)
}

// Speed handles POST /tools/speed.
func (h *Handlers) Speed(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.URL == "" {
		http.Error(w, "url required", http.StatusBadRequest)
		return
	}

	report, err := h.tools.MeasureSpeed(r.Context(), req.URL)
	if err != nil {
		writeToolError(w, err)
		return
	}
	writeJSON(w, report)
}

// BrokenLinks handles POST /tools/broken-links.
func (h *Handlers) BrokenLinks(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.URL == "" {
		http.Error(w, "url required", http.StatusBadRequest)
		return
	}

	report, err := h.tools.CheckBrokenLinks(r.Context(), req.URL, brokenLinksRouteLimit)
	if err != nil {
		writeToolError(w, err)
		return
	}
	writeJSON(w, report)
}

// SERP handles POST /tools/serp.
func (h *Handlers) SERP(w http.ResponseWriter, r *http.Request) {
	var req keywordRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Keyword == "" {
		http.Error(w, "keyword required", http.StatusBadRequest)
		return
	}

	report, err := h.tools.CompetitorRankings(r.Context(), req.Keyword)
	if err != nil {
		writeToolError(w, err)
		return
	}
	writeJSON(w, report)
}

// Keywords handles POST /tools/keywords. Accepts either a url to fetch or a
// raw text block.
func (h *Handlers) Keywords(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.URL == "" && req.Text == "" {
		http.Error(w, "url or text required", http.StatusBadRequest)
		return
	}

	report, err := h.tools.AnalyzeKeywords(r.Context(), req.URL, req.Text)
	if err != nil {
		writeToolError(w, err)
		return
	}
	writeJSON(w, report)
}

// PageBacklinks handles POST /tools/page-backlinks.
func (h *Handlers) PageBacklinks(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.URL == "" {
		http.Error(w, "url required", http.StatusBadRequest)
		return
	}

	report, err := h.tools.ExtractPageBacklinks(r.Context(), req.URL)
	if err != nil {
		writeToolError(w, err)
		return
	}
	writeJSON(w, report)
}

// LinksByCategory handles POST /tools/links-by-category.
func (h *Handlers) LinksByCategory(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.URL == "" {
		http.Error(w, "url required", http.StatusBadRequest)
		return
	}

	report, err := h.tools.LinksByCategory(r.Context(), req.URL)
	if err != nil {
		writeToolError(w, err)
		return
	}
	writeJSON(w, report)
}

// SitemapParse handles POST /tools/sitemap-parse.
func (h *Handlers) SitemapParse(w http.ResponseWriter, r *http.Request) {
	var req sitemapRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.SitemapURL == "" {
		http.Error(w, "sitemap_url required", http.StatusBadRequest)
		return
	}

	report, err := h.tools.ParseSitemap(r.Context(), req.SitemapURL)
	if err != nil {
		writeToolError(w, err)
		return
	}
	writeJSON(w, report)
}

// SitemapCrawl handles POST /tools/sitemap-crawl.
func (h *Handlers) SitemapCrawl(w http.ResponseWriter, r *http.Request) {
	var req sitemapRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.SitemapURL == "" {
		http.Error(w, "sitemap_url required", http.StatusBadRequest)
		return
	}

	report, err := h.tools.CrawlSitemapPages(r.Context(), req.SitemapURL, req.MaxPages)
	if err != nil {
		writeToolError(w, err)
		return
	}
	log.Info().Str("sitemap", req.SitemapURL).Int("pages", report.PagesCrawled).Msg("sitemap crawl completed")
	writeJSON(w, report)
}

// URLBatch handles POST /tools/urls-batch-analyze.
func (h *Handlers) URLBatch(w http.ResponseWriter, r *http.Request) {
	var req urlListRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if len(req.URLs) == 0 {
		http.Error(w, "urls required", http.StatusBadRequest)
		return
	}

	report, err := h.tools.AnalyzeURLBatch(r.Context(), req.URLs)
	if err != nil {
		writeToolError(w, err)
		return
	}
	writeJSON(w, report)
}

// DomainInfo handles POST /tools/domain.
func (h *Handlers) DomainInfo(w http.ResponseWriter, r *http.Request) {
	var req domainRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Domain == "" {
		http.Error(w, "domain required", http.StatusBadRequest)
		return
	}

	writeJSON(w, h.tools.InspectDomain(r.Context(), req.Domain))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeToolError reports upstream fetch failures as a JSON body so API
// clients always get a parseable response.
func writeToolError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("tool request failed")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadGateway)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
