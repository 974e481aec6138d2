package tools

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Wire shapes from sitemaps.org. Decoding ignores the namespace so both
// plain and namespaced documents parse.
type urlsetXML struct {
	XMLName xml.Name     `xml:"urlset"`
	URLs    []sitemapLoc `xml:"url"`
}

type sitemapIndexXML struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	Sitemaps []sitemapLoc `xml:"sitemap"`
}

type sitemapLoc struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

// SitemapEntry is one URL listed in a sitemap.
type SitemapEntry struct {
	Loc     string `json:"loc"`
	LastMod string `json:"lastmod,omitempty"`
}

// SitemapReport is the flattened URL list of a sitemap or sitemap index.
type SitemapReport struct {
	SitemapURL    string         `json:"sitemap_url"`
	IsIndex       bool           `json:"is_index"`
	ChildSitemaps []string       `json:"child_sitemaps,omitempty"`
	URLCount      int            `json:"url_count"`
	Truncated     bool           `json:"truncated"`
	URLs          []SitemapEntry `json:"urls"`
}

// ParseSitemap downloads a sitemap and returns the URLs it lists. Index
// files are followed one level deep, child sitemaps are fetched at the
// polite crawl rate until SitemapMaxURLs entries have been collected.
func (t *Tools) ParseSitemap(ctx context.Context, sitemapURL string) (SitemapReport, error) {
	sitemapURL = ensureScheme(sitemapURL)
	body, err := t.fetchSitemapBody(ctx, sitemapURL)
	if err != nil {
		return SitemapReport{}, err
	}

	report := SitemapReport{SitemapURL: sitemapURL}

	var urlset urlsetXML
	if err := xml.Unmarshal(body, &urlset); err == nil {
		report.URLs = toEntries(urlset.URLs, SitemapMaxURLs)
		report.URLCount = len(report.URLs)
		report.Truncated = len(urlset.URLs) > SitemapMaxURLs
		return report, nil
	}

	var index sitemapIndexXML
	if err := xml.Unmarshal(body, &index); err != nil {
		return SitemapReport{}, fmt.Errorf("parse sitemap %s: not a urlset or sitemapindex", sitemapURL)
	}

	report.IsIndex = true
	for _, child := range index.Sitemaps {
		report.ChildSitemaps = append(report.ChildSitemaps, strings.TrimSpace(child.Loc))
	}

	for _, child := range report.ChildSitemaps {
		if len(report.URLs) >= SitemapMaxURLs {
			report.Truncated = true
			break
		}
		if err := t.limiter.Wait(ctx); err != nil {
			return report, err
		}
		childBody, err := t.fetchSitemapBody(ctx, child)
		if err != nil {
			log.Warn().Err(err).Str("sitemap", child).Msg("skipping unreadable child sitemap")
			continue
		}
		var childSet urlsetXML
		if err := xml.Unmarshal(childBody, &childSet); err != nil {
			log.Warn().Str("sitemap", child).Msg("child sitemap is not a urlset")
			continue
		}
		remaining := SitemapMaxURLs - len(report.URLs)
		if len(childSet.URLs) > remaining {
			report.Truncated = true
		}
		report.URLs = append(report.URLs, toEntries(childSet.URLs, remaining)...)
	}

	report.URLCount = len(report.URLs)
	return report, nil
}

func (t *Tools) fetchSitemapBody(ctx context.Context, sitemapURL string) ([]byte, error) {
	resp, err := t.get(ctx, t.sitemap, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch sitemap %s: status %d", sitemapURL, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read sitemap %s: %w", sitemapURL, err)
	}
	return body, nil
}

func toEntries(locs []sitemapLoc, limit int) []SitemapEntry {
	if len(locs) > limit {
		locs = locs[:limit]
	}
	entries := make([]SitemapEntry, 0, len(locs))
	for _, l := range locs {
		loc := strings.TrimSpace(l.Loc)
		if loc == "" {
			continue
		}
		entries = append(entries, SitemapEntry{Loc: loc, LastMod: strings.TrimSpace(l.LastMod)})
	}
	return entries
}

// PageCrawlResult is the per-page outcome of a sitemap crawl.
type PageCrawlResult struct {
	URL        string         `json:"url"`
	StatusCode int            `json:"status_code,omitempty"`
	Title      string         `json:"title,omitempty"`
	LoadTimeMs float64        `json:"load_time_ms,omitempty"`
	TotalLinks int            `json:"total_links"`
	Categories map[string]int `json:"categories,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// SitemapCrawlReport aggregates link categories across crawled pages.
type SitemapCrawlReport struct {
	SitemapURL     string            `json:"sitemap_url"`
	PagesCrawled   int               `json:"pages_crawled"`
	PagesFailed    int               `json:"pages_failed"`
	CategoryTotals map[string]int    `json:"category_totals"`
	Pages          []PageCrawlResult `json:"pages"`
}

// CrawlSitemapPages parses a sitemap and crawls up to maxPages of its URLs,
// categorizing the links found on each page. maxPages values outside
// 1..MaxPagesToCrawl fall back to MaxPagesToCrawl. Pages that fail to fetch
// are reported, not fatal.
func (t *Tools) CrawlSitemapPages(ctx context.Context, sitemapURL string, maxPages int) (SitemapCrawlReport, error) {
	if maxPages <= 0 || maxPages > MaxPagesToCrawl {
		maxPages = MaxPagesToCrawl
	}

	parsed, err := t.ParseSitemap(ctx, sitemapURL)
	if err != nil {
		return SitemapCrawlReport{}, err
	}

	targets := parsed.URLs
	if len(targets) > maxPages {
		targets = targets[:maxPages]
	}

	pages := make([]PageCrawlResult, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	for i, entry := range targets {
		i, entry := i, entry
		g.Go(func() error {
			if err := t.limiter.Wait(gctx); err != nil {
				pages[i] = PageCrawlResult{URL: entry.Loc, Error: err.Error()}
				return nil
			}
			pages[i] = t.crawlPage(gctx, entry.Loc)
			return nil
		})
	}
	_ = g.Wait()

	report := SitemapCrawlReport{
		SitemapURL:     parsed.SitemapURL,
		CategoryTotals: make(map[string]int),
		Pages:          pages,
	}
	for _, p := range pages {
		if p.Error != "" {
			report.PagesFailed++
			continue
		}
		report.PagesCrawled++
		for cat, n := range p.Categories {
			report.CategoryTotals[cat] += n
		}
	}
	return report, nil
}

// crawlPage fetches one page and tallies its link categories.
func (t *Tools) crawlPage(ctx context.Context, loc string) PageCrawlResult {
	page, err := t.fetchPage(ctx, loc)
	if err != nil {
		return PageCrawlResult{URL: loc, Error: err.Error()}
	}

	result := PageCrawlResult{
		URL:        page.url,
		StatusCode: page.statusCode,
		Title:      strings.TrimSpace(page.doc.Find("title").First().Text()),
		LoadTimeMs: page.loadTimeMs(),
		Categories: make(map[string]int),
	}
	pageHost := page.base.Host
	page.doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if resolveHref(page.base, href) == "" {
			return
		}
		result.TotalLinks++
		result.Categories[t.analyzer.CategorizeLink(href, strings.TrimSpace(s.Text()), pageHost)]++
	})
	return result
}
