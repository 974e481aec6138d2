package tools

import (
	"context"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"seo-audit-agent/seo"
)

// Outcomes for an individual link probe.
const (
	LinkStatusOK     = "OK"
	LinkStatusBroken = "Broken"
	LinkStatusError  = "Error"
)

// LinkCheck is the probe result for one outbound link. Code 0 means the
// request never completed.
type LinkCheck struct {
	Link   string `json:"link"`
	Status string `json:"status"`
	Code   int    `json:"code"`
}

// BrokenLinkReport summarises a broken-link sweep over one page.
type BrokenLinkReport struct {
	URL          string      `json:"url"`
	CheckedCount int         `json:"checked_count"`
	BrokenCount  int         `json:"broken_count"`
	Details      []LinkCheck `json:"details"`
}

// CheckBrokenLinks fetches a page and probes up to limit of its absolute
// links with HEAD requests. limit values outside 1..BrokenLinkLimit fall
// back to BrokenLinkLimit.
func (t *Tools) CheckBrokenLinks(ctx context.Context, rawURL string, limit int) (BrokenLinkReport, error) {
	if limit <= 0 || limit > BrokenLinkLimit {
		limit = BrokenLinkLimit
	}

	page, err := t.fetchPage(ctx, rawURL)
	if err != nil {
		return BrokenLinkReport{}, err
	}

	links := collectAbsoluteLinks(page.doc)
	if len(links) > limit {
		links = links[:limit]
	}

	// Each goroutine owns one slot, so no locking around details.
	details := make([]LinkCheck, len(links))
	g, gctx := errgroup.WithContext(ctx)
	for i, link := range links {
		i, link := i, link
		g.Go(func() error {
			code := t.headStatus(gctx, link)
			check := LinkCheck{Link: link, Code: code}
			switch {
			case code == 0:
				check.Status = LinkStatusError
			case code >= 400:
				check.Status = LinkStatusBroken
			default:
				check.Status = LinkStatusOK
			}
			details[i] = check
			return nil
		})
	}
	_ = g.Wait()

	report := BrokenLinkReport{
		URL:          page.url,
		CheckedCount: len(details),
		Details:      details,
	}
	for _, d := range details {
		if d.Status != LinkStatusOK {
			report.BrokenCount++
		}
	}
	return report, nil
}

// collectAbsoluteLinks returns the page's http(s) hrefs, deduplicated in
// document order. Relative links are skipped, they cannot be probed without
// rebuilding them and the sweep targets outbound references anyway.
func collectAbsoluteLinks(doc *goquery.Document) []string {
	var links []string
	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if !strings.HasPrefix(href, "http") {
			return
		}
		if _, ok := seen[href]; ok {
			return
		}
		seen[href] = struct{}{}
		links = append(links, href)
	})
	return links
}

// ExternalDomain is one third-party domain a page links out to.
type ExternalDomain struct {
	Domain       string `json:"domain"`
	LinkCount    int    `json:"link_count"`
	SampleAnchor string `json:"sample_anchor,omitempty"`
	SampleURL    string `json:"sample_url"`
}

// PageBacklinkReport lists the external domains referenced by one page,
// grouped and ranked by how often they appear.
type PageBacklinkReport struct {
	URL                string           `json:"url"`
	TotalExternalLinks int              `json:"total_external_links"`
	UniqueDomains      int              `json:"unique_domains"`
	ExternalDomains    []ExternalDomain `json:"external_domains"`
}

// ExtractPageBacklinks groups a page's outbound links by target domain. The
// report keeps the MaxExternalDomains most-linked domains.
func (t *Tools) ExtractPageBacklinks(ctx context.Context, rawURL string) (PageBacklinkReport, error) {
	page, err := t.fetchPage(ctx, rawURL)
	if err != nil {
		return PageBacklinkReport{}, err
	}

	pageHost := seo.NormalizeDomain(page.base.Host)
	byDomain := make(map[string]*ExternalDomain)
	var order []string
	total := 0

	page.doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		abs := resolveHref(page.base, href)
		if abs == "" {
			return
		}
		host := hostOf(abs)
		if host == "" || host == pageHost {
			return
		}
		total++
		entry, ok := byDomain[host]
		if !ok {
			entry = &ExternalDomain{Domain: host, SampleURL: abs}
			byDomain[host] = entry
			order = append(order, host)
		}
		entry.LinkCount++
		if entry.SampleAnchor == "" {
			entry.SampleAnchor = strings.TrimSpace(s.Text())
		}
	})

	domains := make([]ExternalDomain, 0, len(order))
	for _, host := range order {
		domains = append(domains, *byDomain[host])
	}
	sort.SliceStable(domains, func(i, j int) bool {
		return domains[i].LinkCount > domains[j].LinkCount
	})
	if len(domains) > MaxExternalDomains {
		domains = domains[:MaxExternalDomains]
	}

	return PageBacklinkReport{
		URL:                page.url,
		TotalExternalLinks: total,
		UniqueDomains:      len(byDomain),
		ExternalDomains:    domains,
	}, nil
}

// hostOf extracts the normalized host from an absolute URL, "" if none.
func hostOf(rawURL string) string {
	host := strings.TrimPrefix(rawURL, "http://")
	host = strings.TrimPrefix(host, "https://")
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	if !strings.Contains(host, ".") {
		return ""
	}
	return seo.NormalizeDomain(host)
}

// CategorizedLink is one anchor on the page with the category and rel
// attributes it resolved to.
type CategorizedLink struct {
	URL       string `json:"url"`
	Anchor    string `json:"anchor_text"`
	Category  string `json:"category"`
	External  bool   `json:"external"`
	Nofollow  bool   `json:"nofollow"`
	Sponsored bool   `json:"sponsored"`
}

// CategorizedLinkReport breaks a page's links down by purpose.
type CategorizedLinkReport struct {
	URL            string            `json:"url"`
	TotalLinks     int               `json:"total_links"`
	InternalLinks  int               `json:"internal_links"`
	ExternalLinks  int               `json:"external_links"`
	NofollowLinks  int               `json:"nofollow_links"`
	SponsoredLinks int               `json:"sponsored_links"`
	EmptyAnchors   int               `json:"empty_anchors"`
	Categories     map[string]int    `json:"categories"`
	Links          []CategorizedLink `json:"links"`
}

// LinksByCategory fetches a page and classifies every navigable link on it.
func (t *Tools) LinksByCategory(ctx context.Context, rawURL string) (CategorizedLinkReport, error) {
	page, err := t.fetchPage(ctx, rawURL)
	if err != nil {
		return CategorizedLinkReport{}, err
	}

	report := CategorizedLinkReport{
		URL:        page.url,
		Categories: make(map[string]int),
	}
	pageHost := page.base.Host

	page.doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if resolveHref(page.base, href) == "" {
			return
		}
		anchor := strings.TrimSpace(s.Text())
		rel, _ := s.Attr("rel")

		link := CategorizedLink{
			URL:       strings.TrimSpace(href),
			Anchor:    anchor,
			Category:  t.analyzer.CategorizeLink(href, anchor, pageHost),
			Nofollow:  relContains(rel, "nofollow"),
			Sponsored: relContains(rel, "sponsored"),
		}
		link.External = link.Category == seo.CategoryExternal

		report.TotalLinks++
		report.Categories[link.Category]++
		if link.External {
			report.ExternalLinks++
		} else {
			report.InternalLinks++
		}
		if link.Nofollow {
			report.NofollowLinks++
		}
		if link.Sponsored {
			report.SponsoredLinks++
		}
		if anchor == "" {
			report.EmptyAnchors++
		}
		report.Links = append(report.Links, link)
	})

	return report, nil
}

// relContains reports whether a rel attribute carries the given token.
func relContains(rel, token string) bool {
	for _, f := range strings.Fields(strings.ToLower(rel)) {
		if f == token {
			return true
		}
	}
	return false
}
