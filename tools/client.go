// Package tools implements the network-facing collaborators: page fetching,
// meta and link inspection, sitemap crawling, SERP lookups, and domain
// probes. All scoring and classification logic lives in the seo package;
// everything here does I/O and hands primitive measurements to it.
package tools

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"seo-audit-agent/seo"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Request timeouts. Sitemaps get a longer window because index files on big
// sites can be slow to generate.
const (
	requestTimeout = 10 * time.Second
	headTimeout    = 5 * time.Second
	sitemapTimeout = 30 * time.Second

	// Minimum spacing between requests when fanning out over many URLs.
	crawlInterval = 300 * time.Millisecond
)

// Limits that keep multi-page operations bounded.
const (
	BrokenLinkLimit    = 10
	MaxExternalDomains = 10
	SitemapMaxURLs     = 1000
	MaxPagesToCrawl    = 50
)

// Tools bundles the HTTP plumbing and the analyzer the endpoints share.
// A single Tools value is safe for concurrent use.
type Tools struct {
	client   *http.Client
	head     *http.Client
	sitemap  *http.Client
	limiter  *rate.Limiter
	analyzer *seo.Analyzer
	serpBase string
}

// New builds a Tools around the given analyzer.
func New(analyzer *seo.Analyzer) *Tools {
	return &Tools{
		client:   &http.Client{Timeout: requestTimeout},
		head:     &http.Client{Timeout: headTimeout},
		sitemap:  &http.Client{Timeout: sitemapTimeout},
		limiter:  rate.NewLimiter(rate.Every(crawlInterval), 1),
		analyzer: analyzer,
		serpBase: "https://html.duckduckgo.com/html/",
	}
}

// Analyzer exposes the underlying analyzer so orchestration layers can reuse
// the same configuration.
func (t *Tools) Analyzer() *seo.Analyzer { return t.analyzer }

// SetSERPEndpoint points SERP lookups at an alternate results endpoint.
// Call before serving requests; Tools does not lock the field.
func (t *Tools) SetSERPEndpoint(endpoint string) {
	t.serpBase = endpoint
}

// pageFetch is one downloaded and parsed page plus the measurements the
// speed and audit tools report.
type pageFetch struct {
	url        string
	base       *url.URL
	doc        *goquery.Document
	statusCode int
	loadTime   time.Duration
	sizeKB     float64
}

func (p *pageFetch) loadTimeMs() float64 {
	return math.Round(p.loadTime.Seconds()*1000*100) / 100
}

// get issues a GET with the crawler user agent.
func (t *Tools) get(ctx context.Context, client *http.Client, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	return resp, nil
}

// fetchPage downloads and parses one page, timing the full body download.
func (t *Tools) fetchPage(ctx context.Context, rawURL string) (*pageFetch, error) {
	rawURL = ensureScheme(rawURL)
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url %q: %w", rawURL, err)
	}

	start := time.Now()
	resp, err := t.get(ctx, t.client, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}
	elapsed := time.Since(start)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rawURL, err)
	}

	return &pageFetch{
		url:        rawURL,
		base:       base,
		doc:        doc,
		statusCode: resp.StatusCode,
		loadTime:   elapsed,
		sizeKB:     math.Round(float64(len(body))/1024*100) / 100,
	}, nil
}

// headStatus probes a single link with a HEAD request. Servers that reject
// HEAD get one GET retry; 0 means the request itself failed.
func (t *Tools) headStatus(ctx context.Context, rawURL string) int {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return 0
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := t.head.Do(req)
	if err != nil {
		return 0
	}
	resp.Body.Close()

	if resp.StatusCode == http.StatusMethodNotAllowed {
		getResp, err := t.get(ctx, t.head, rawURL)
		if err != nil {
			return resp.StatusCode
		}
		getResp.Body.Close()
		return getResp.StatusCode
	}
	return resp.StatusCode
}

// ensureScheme defaults bare hostnames to https.
func ensureScheme(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" || strings.Contains(rawURL, "://") {
		return rawURL
	}
	return "https://" + rawURL
}

// resolveHref makes href absolute against the page it was found on. Returns
// "" for hrefs that are not navigable links.
func resolveHref(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	switch {
	case strings.HasPrefix(href, "javascript:"),
		strings.HasPrefix(href, "mailto:"),
		strings.HasPrefix(href, "tel:"),
		strings.HasPrefix(href, "data:"):
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
