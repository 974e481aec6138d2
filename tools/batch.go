package tools

import "context"

// BatchResult is the outcome for one URL in a batch run.
type BatchResult struct {
	URL    string                 `json:"url"`
	Report *CategorizedLinkReport `json:"report,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

// BatchReport summarises a multi-URL link analysis.
type BatchReport struct {
	TotalURLsAnalyzed int           `json:"total_urls_analyzed"`
	Successful        int           `json:"successful"`
	Failed            int           `json:"failed"`
	Results           []BatchResult `json:"results"`
}

// AnalyzeURLBatch runs the link categorizer over each URL in turn at the
// polite crawl rate. Per-URL failures are recorded in the result instead of
// aborting the batch, only a cancelled context stops the run early.
func (t *Tools) AnalyzeURLBatch(ctx context.Context, urls []string) (BatchReport, error) {
	report := BatchReport{TotalURLsAnalyzed: len(urls)}

	for _, u := range urls {
		if err := t.limiter.Wait(ctx); err != nil {
			return report, err
		}
		result := BatchResult{URL: u}
		if r, err := t.LinksByCategory(ctx, u); err != nil {
			result.Error = err.Error()
			report.Failed++
		} else {
			result.Report = &r
			report.Successful++
		}
		report.Results = append(report.Results, result)
	}
	return report, nil
}
