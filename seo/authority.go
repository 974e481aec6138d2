package seo

// AuthorityLevel tiers a domain-authority value.
type AuthorityLevel string

const (
	AuthorityLow    AuthorityLevel = "low"
	AuthorityMedium AuthorityLevel = "medium"
	AuthorityHigh   AuthorityLevel = "high"
)

// AuthorityTier pairs a level with the numeric weight profile aggregation
// multiplies link counts by.
type AuthorityTier struct {
	Level  AuthorityLevel `json:"level"`
	Weight float64        `json:"weight"`
}

// ClassifyAuthority maps a domain-authority value to its tier. Breakpoints
// are lower-inclusive: da at or above AuthorityHighMin is high, at or above
// AuthorityMediumMin is medium, and anything below that, negative values
// included, is low. Every integer maps to exactly one tier.
func (a *Analyzer) ClassifyAuthority(da int) AuthorityTier {
	t := a.cfg.Thresholds
	switch {
	case da >= t.AuthorityHighMin:
		return AuthorityTier{Level: AuthorityHigh, Weight: t.AuthorityWeights.High}
	case da >= t.AuthorityMediumMin:
		return AuthorityTier{Level: AuthorityMedium, Weight: t.AuthorityWeights.Medium}
	default:
		return AuthorityTier{Level: AuthorityLow, Weight: t.AuthorityWeights.Low}
	}
}
