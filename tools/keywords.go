package tools

import (
	"context"
	"fmt"

	"seo-audit-agent/seo"
)

// KeywordReport ranks the most frequent meaningful words in a body of text.
type KeywordReport struct {
	URL         string             `json:"url,omitempty"`
	TopKeywords []seo.KeywordCount `json:"top_keywords"`
	TotalWords  int                `json:"total_words"`
}

// AnalyzeKeywords extracts keyword frequencies from either a URL or a raw
// text block. When a URL is given the page is fetched and its script and
// style content stripped before counting.
func (t *Tools) AnalyzeKeywords(ctx context.Context, rawURL, text string) (KeywordReport, error) {
	report := KeywordReport{}

	if rawURL != "" {
		page, err := t.fetchPage(ctx, rawURL)
		if err != nil {
			return KeywordReport{}, err
		}
		page.doc.Find("script, style, noscript").Remove()
		text = page.doc.Text()
		report.URL = page.url
	}
	if text == "" {
		return KeywordReport{}, fmt.Errorf("keywords: nothing to analyze, need a url or text")
	}

	th := t.analyzer.Config().Thresholds
	report.TopKeywords = t.analyzer.ExtractKeywords(text, th.MinKeywordLength, th.TopKeywordsCount)
	report.TotalWords = t.analyzer.CountFilteredWords(text, th.MinKeywordLength)
	return report, nil
}
