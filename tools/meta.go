package tools

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Placeholders reported when a page omits the tag entirely.
const (
	noTitleFound       = "No Title Found"
	noDescriptionFound = "No Description Found"
)

// MetaReport covers the on-page elements an SEO review checks first.
type MetaReport struct {
	URL               string   `json:"url"`
	StatusCode        int      `json:"status_code"`
	Title             string   `json:"title"`
	TitleLength       int      `json:"title_length"`
	MetaDescription   string   `json:"meta_description"`
	DescriptionLength int      `json:"description_length"`
	Canonical         string   `json:"canonical,omitempty"`
	H1                []string `json:"h1"`
	H2                []string `json:"h2"`
	ImagesMissingAlt  int      `json:"images_missing_alt"`
}

// ExtractMetaTags fetches a page and pulls out its title, description,
// headings, and alt-text coverage. Missing tags report placeholder text with
// a zero length so downstream checks can tell "absent" from "short".
func (t *Tools) ExtractMetaTags(ctx context.Context, rawURL string) (MetaReport, error) {
	page, err := t.fetchPage(ctx, rawURL)
	if err != nil {
		return MetaReport{}, err
	}

	report := MetaReport{
		URL:             page.url,
		StatusCode:      page.statusCode,
		Title:           noTitleFound,
		MetaDescription: noDescriptionFound,
	}

	if title := strings.TrimSpace(page.doc.Find("title").First().Text()); title != "" {
		report.Title = title
		report.TitleLength = len(title)
	}
	if desc, ok := page.doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		if desc = strings.TrimSpace(desc); desc != "" {
			report.MetaDescription = desc
			report.DescriptionLength = len(desc)
		}
	}
	if canonical, ok := page.doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		report.Canonical = strings.TrimSpace(canonical)
	}

	page.doc.Find("h1").Each(func(_ int, s *goquery.Selection) {
		report.H1 = append(report.H1, strings.TrimSpace(s.Text()))
	})
	page.doc.Find("h2").Each(func(_ int, s *goquery.Selection) {
		report.H2 = append(report.H2, strings.TrimSpace(s.Text()))
	})
	page.doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if alt, _ := s.Attr("alt"); strings.TrimSpace(alt) == "" {
			report.ImagesMissingAlt++
		}
	})

	return report, nil
}
