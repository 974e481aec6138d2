package tools

import "context"

// SpeedReport is a single-sample load measurement with the heuristic score
// the analyzer assigns to it.
type SpeedReport struct {
	URL            string  `json:"url"`
	StatusCode     int     `json:"status_code"`
	LoadTimeMs     float64 `json:"load_time_ms"`
	PageSizeKB     float64 `json:"page_size_kb"`
	EstimatedScore int     `json:"estimated_score"`
	Status         string  `json:"status"`
}

// MeasureSpeed times a full page download and scores the result. One sample
// over one connection, so treat the numbers as a smoke check rather than a
// lab measurement.
func (t *Tools) MeasureSpeed(ctx context.Context, rawURL string) (SpeedReport, error) {
	page, err := t.fetchPage(ctx, rawURL)
	if err != nil {
		return SpeedReport{}, err
	}

	loadMs := page.loadTimeMs()
	score, status := t.analyzer.ScorePageSpeed(loadMs, page.sizeKB)

	return SpeedReport{
		URL:            page.url,
		StatusCode:     page.statusCode,
		LoadTimeMs:     loadMs,
		PageSizeKB:     page.sizeKB,
		EstimatedScore: score,
		Status:         status,
	}, nil
}
