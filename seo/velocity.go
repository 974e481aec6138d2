package seo

import "fmt"

// AccelerationTier labels the change in growth rate between the two most
// recent periods.
type AccelerationTier string

const (
	TierAccelerating AccelerationTier = "accelerating"
	TierGrowing      AccelerationTier = "growing"
	TierStable       AccelerationTier = "stable"
	TierSlowing      AccelerationTier = "slowing"
	TierDeclining    AccelerationTier = "declining"
)

// HealthRating grades how fast a profile is gaining links relative to its
// existing size.
type HealthRating string

const (
	HealthExcellent HealthRating = "excellent"
	HealthGood      HealthRating = "good"
	HealthFair      HealthRating = "fair"
	HealthStalled   HealthRating = "stalled"
)

// VelocitySample is one point of a chronological link-count series.
type VelocitySample struct {
	Period    string `json:"period"`
	LinkCount int    `json:"link_count"`
}

// VelocityResult describes link acquisition over the sampled window. When
// InsufficientData is set the tier fields are empty rather than guessed.
type VelocityResult struct {
	MonthlyGrowthRate float64          `json:"monthly_growth_rate"`
	Acceleration      AccelerationTier `json:"acceleration_tier,omitempty"`
	Health            HealthRating     `json:"health_rating,omitempty"`
	InsufficientData  bool             `json:"insufficient_data,omitempty"`
}

// AnalyzeVelocity computes growth, acceleration, and health from a
// chronological series of link counts. Negative counts are rejected. Fewer
// than two samples cannot support a growth rate, so the result carries the
// InsufficientData flag instead of a fabricated tier.
func (a *Analyzer) AnalyzeVelocity(samples []VelocitySample) (VelocityResult, error) {
	for _, s := range samples {
		if s.LinkCount < 0 {
			return VelocityResult{}, fmt.Errorf("velocity: negative link count %d in period %q", s.LinkCount, s.Period)
		}
	}
	if len(samples) < 2 {
		return VelocityResult{InsufficientData: true}, nil
	}

	n := len(samples)
	latest := growthRate(samples[n-2].LinkCount, samples[n-1].LinkCount)
	previous := 0.0
	if n >= 3 {
		previous = growthRate(samples[n-3].LinkCount, samples[n-2].LinkCount)
	}

	// Acceleration is measured in percentage points of growth-rate change.
	accel := (latest - previous) * 100

	newLinks := samples[n-1].LinkCount - samples[n-2].LinkCount
	existing := samples[n-2].LinkCount

	return VelocityResult{
		MonthlyGrowthRate: latest,
		Acceleration:      a.accelerationTier(accel),
		Health:            a.healthRating(newLinks, existing),
	}, nil
}

// growthRate is the fractional change from prev to cur. A zero base is
// defined as zero growth, not an error.
func growthRate(prev, cur int) float64 {
	if prev == 0 {
		return 0
	}
	return float64(cur-prev) / float64(prev)
}

// accelerationTier buckets a percentage-point change. Bands are half-open
// with the lower bound inclusive, so every value lands in exactly one tier.
func (a *Analyzer) accelerationTier(points float64) AccelerationTier {
	t := a.cfg.Thresholds
	switch {
	case points >= t.AccelAccelerating:
		return TierAccelerating
	case points >= t.AccelGrowing:
		return TierGrowing
	case points >= t.AccelSlowing:
		return TierStable
	case points >= t.AccelDeclining:
		return TierSlowing
	default:
		return TierDeclining
	}
}

// healthRating compares the latest period's new links against the
// pre-existing total. The stalled check runs first so a shrinking profile
// never reads as healthy.
func (a *Analyzer) healthRating(newLinks, existing int) HealthRating {
	t := a.cfg.Thresholds
	switch {
	case newLinks < t.VelocityStalled:
		return HealthStalled
	case float64(newLinks) >= float64(existing)/float64(t.VelocityExcellent):
		return HealthExcellent
	case float64(newLinks) >= float64(existing)/float64(t.VelocityGood):
		return HealthGood
	default:
		return HealthFair
	}
}
