package seo

import "math"

// GapImpact grades how much a competitor gap matters.
type GapImpact string

const (
	ImpactNone   GapImpact = "none"
	ImpactMedium GapImpact = "medium"
	ImpactHigh   GapImpact = "high"
)

// CompetitorGapResult is the scored comparison between a site and one
// competitor.
type CompetitorGapResult struct {
	AuthorityGapImpact GapImpact `json:"authority_gap_impact"`
	DiversityGapImpact GapImpact `json:"diversity_gap_impact"`
	DofollowGapFlag    bool      `json:"dofollow_gap_flag"`
	Confidence         float64   `json:"confidence"`
}

// ScoreCompetitorGap converts raw gap measurements into impact tiers.
// authorityGap and diversityGap are competitor-minus-site differences;
// dofollowRatioDiff is a fraction, flagged when its magnitude exceeds the
// configured threshold in either direction.
func (a *Analyzer) ScoreCompetitorGap(authorityGap, diversityGap int, dofollowRatioDiff float64) CompetitorGapResult {
	t := a.cfg.Thresholds

	res := CompetitorGapResult{
		AuthorityGapImpact: gapImpact(authorityGap, t.AuthorityGapHigh, t.AuthorityGapMedium),
		DiversityGapImpact: gapImpact(diversityGap, t.DiversityGapHigh, t.DiversityGapMedium),
		DofollowGapFlag:    math.Abs(dofollowRatioDiff) > t.DofollowGapThreshold,
	}

	// Confidence reports the strongest individual signal, never an average
	// of mixed evidence.
	conf := t.ConfidenceLow
	for _, impact := range []GapImpact{res.AuthorityGapImpact, res.DiversityGapImpact} {
		switch impact {
		case ImpactHigh:
			conf = math.Max(conf, t.ConfidenceHigh)
		case ImpactMedium:
			conf = math.Max(conf, t.ConfidenceMedium)
		}
	}
	if res.DofollowGapFlag {
		conf = math.Max(conf, t.ConfidenceMedium)
	}
	res.Confidence = conf

	return res
}

func gapImpact(gap, high, medium int) GapImpact {
	switch {
	case gap > high:
		return ImpactHigh
	case gap > medium:
		return ImpactMedium
	default:
		return ImpactNone
	}
}
