package tools

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const serpResultLimit = 5

// SERPResult is one organic result scraped from the results page.
type SERPResult struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Snippet  string `json:"snippet,omitempty"`
}

// SERPReport lists the top-ranking pages for a keyword.
type SERPReport struct {
	Keyword     string       `json:"keyword"`
	Competitors []SERPResult `json:"competitors"`
}

// CompetitorRankings scrapes the DuckDuckGo HTML endpoint for the top
// organic results on a keyword. The HTML endpoint serves static markup, so
// no browser is needed.
func (t *Tools) CompetitorRankings(ctx context.Context, keyword string) (SERPReport, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return SERPReport{}, fmt.Errorf("serp: empty keyword")
	}

	endpoint := t.serpBase + "?q=" + url.QueryEscape(keyword)
	resp, err := t.get(ctx, t.client, endpoint)
	if err != nil {
		return SERPReport{}, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return SERPReport{}, fmt.Errorf("parse serp response: %w", err)
	}

	report := SERPReport{Keyword: keyword}
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(report.Competitors) >= serpResultLimit {
			return false
		}
		link := s.Find("a.result__a").First()
		href, _ := link.Attr("href")
		title := strings.TrimSpace(link.Text())
		if href == "" || title == "" {
			return true
		}
		report.Competitors = append(report.Competitors, SERPResult{
			Position: len(report.Competitors) + 1,
			Title:    title,
			URL:      cleanResultURL(href),
			Snippet:  strings.TrimSpace(s.Find(".result__snippet").Text()),
		})
		return true
	})

	return report, nil
}

// cleanResultURL unwraps the redirect URLs the results page links through.
// The real target rides in the uddg query parameter.
func cleanResultURL(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme == "" && u.Host != "" {
		u.Scheme = "https"
		return u.String()
	}
	return href
}
