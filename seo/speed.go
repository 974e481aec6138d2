package seo

// Speed status labels.
const (
	SpeedStatusGood  = "Good"
	SpeedStatusNeeds = "Needs Improvement"
)

// ScorePageSpeed grades a measured page load out of 100. The two load-time
// penalties stack, so a page past the warning threshold loses both, and the
// size penalty is independent of timing.
func (a *Analyzer) ScorePageSpeed(loadTimeMs, pageSizeKB float64) (score int, status string) {
	t := a.cfg.Thresholds

	score = 100
	if loadTimeMs > t.SpeedSlowMs {
		score -= t.SpeedPenaltySlow
	}
	if loadTimeMs > t.SpeedWarningMs {
		score -= t.SpeedPenaltyWarn
	}
	if pageSizeKB > t.PageSizeWarnKB {
		score -= t.PageSizePenalty
	}
	if score < 0 {
		score = 0
	}

	status = SpeedStatusNeeds
	if loadTimeMs < t.SpeedGoodMs {
		status = SpeedStatusGood
	}
	return score, status
}
