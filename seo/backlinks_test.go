package seo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeBacklinks_DeterministicPerDomain(t *testing.T) {
	a := newTestAnalyzer(t)

	first, err := a.AnalyzeBacklinks("example.com")
	require.NoError(t, err)
	second, err := a.AnalyzeBacklinks("example.com")
	require.NoError(t, err)

	assert.Equal(t, first, second)

	other, err := a.AnalyzeBacklinks("different-site.com")
	require.NoError(t, err)
	assert.NotEqual(t, first.Profile, other.Profile)
}

func TestAnalyzeBacklinks_NormalizesInput(t *testing.T) {
	a := newTestAnalyzer(t)

	plain, err := a.AnalyzeBacklinks("example.com")
	require.NoError(t, err)
	decorated, err := a.AnalyzeBacklinks("https://www.Example.com/some/page")
	require.NoError(t, err)

	assert.Equal(t, "example.com", decorated.Domain)
	assert.Equal(t, plain, decorated)
}

func TestAnalyzeBacklinks_EmptyDomain(t *testing.T) {
	a := newTestAnalyzer(t)

	_, err := a.AnalyzeBacklinks("   ")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty domain")
}

func TestAnalyzeBacklinks_ProfileInternallyConsistent(t *testing.T) {
	a := newTestAnalyzer(t)

	report, err := a.AnalyzeBacklinks("consistency-check.com")
	require.NoError(t, err)

	p := report.Profile
	assert.Equal(t, p.TotalBacklinks, p.HighAuthority+p.MediumAuthority+p.LowAuthority)
	assert.GreaterOrEqual(t, p.TotalBacklinks, p.ReferringDomains)
	assert.Greater(t, p.ReferringDomains, 0)
	assert.GreaterOrEqual(t, p.DofollowRatio, 0.0)
	assert.LessOrEqual(t, p.DofollowRatio, 1.0)

	typed := 0
	for _, n := range p.LinkTypes {
		typed += n
	}
	assert.Equal(t, p.TotalBacklinks, typed)

	b := report.AnchorTexts
	assert.Equal(t, p.TotalBacklinks, b.Branded+b.Keyword+b.Generic)
}

func TestAnalyzeBacklinks_TopBacklinksSortedByAuthority(t *testing.T) {
	a := newTestAnalyzer(t)

	report, err := a.AnalyzeBacklinks("example.com")
	require.NoError(t, err)

	require.NotEmpty(t, report.TopBacklinks)
	assert.LessOrEqual(t, len(report.TopBacklinks), 10)
	for i := 1; i < len(report.TopBacklinks); i++ {
		assert.GreaterOrEqual(t,
			report.TopBacklinks[i-1].DomainAuthority,
			report.TopBacklinks[i].DomainAuthority)
	}
}

func TestAnalyzeBacklinks_ToxicLinksAboveReportingFloor(t *testing.T) {
	a := newTestAnalyzer(t)
	floor := DefaultThresholds().ToxicityLow

	report, err := a.AnalyzeBacklinks("example.com")
	require.NoError(t, err)

	for i, toxic := range report.ToxicLinks {
		assert.GreaterOrEqual(t, toxic.Score, floor)
		assert.NotEmpty(t, toxic.Factors)
		if i > 0 {
			assert.LessOrEqual(t, toxic.Score, report.ToxicLinks[i-1].Score, "worst first")
		}
	}
}

func TestAnalyzeBacklinks_VelocityHistory(t *testing.T) {
	a := newTestAnalyzer(t)

	report, err := a.AnalyzeBacklinks("example.com")
	require.NoError(t, err)

	v := report.Velocity
	require.Len(t, v.History, 6)
	for i := 1; i < len(v.History); i++ {
		assert.GreaterOrEqual(t, v.History[i].LinkCount, v.History[i-1].LinkCount, "counts never shrink")
	}
	assert.Equal(t, report.Profile.TotalBacklinks, v.History[5].LinkCount)
	assert.Equal(t, v.History[5].LinkCount-v.History[4].LinkCount, v.NewLast30Days)
	assert.NotEmpty(t, v.Trend)
	assert.NotEmpty(t, v.Acceleration)
	assert.NotEmpty(t, v.Health)
}

func TestAnalyzeBacklinks_QualityScoreInRange(t *testing.T) {
	a := newTestAnalyzer(t)

	for _, domain := range []string{"alpha.com", "beta.io", "gamma.org", "delta.net"} {
		report, err := a.AnalyzeBacklinks(domain)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, report.QualityScore, 0, domain)
		assert.LessOrEqual(t, report.QualityScore, 100, domain)
	}
}

func TestClassifyAnchor(t *testing.T) {
	a := newTestAnalyzer(t)

	tests := []struct {
		anchor string
		style  string
	}{
		{"click here", AnchorGeneric},
		{"Read More", AnchorGeneric},
		{"example", AnchorBranded},
		{"example.com", AnchorBranded},
		{"visit Example today", AnchorBranded},
		{"digital marketing", AnchorKeyword},
		{"best seo tools", AnchorKeyword},
	}

	for _, tc := range tests {
		t.Run(tc.anchor, func(t *testing.T) {
			assert.Equal(t, tc.style, a.ClassifyAnchor(tc.anchor, "example.com"))
		})
	}
}

func TestQualityScore_ToxicityDragsScoreDown(t *testing.T) {
	a := newTestAnalyzer(t)

	profile := LinkProfile{
		TotalBacklinks:   100,
		ReferringDomains: 50,
		HighAuthority:    30,
		MediumAuthority:  40,
		LowAuthority:     30,
		DofollowRatio:    0.8,
	}

	clean := a.qualityScore(profile, nil)
	dirty := a.qualityScore(profile, []ToxicLink{
		{Severity: SeverityHigh},
		{Severity: SeverityHigh},
		{Severity: SeverityMedium},
	})

	assert.Greater(t, clean, dirty)
	assert.Equal(t, clean-12, dirty)
}
