package seo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(DefaultConfig(), nil)
	require.NoError(t, err)
	return a
}

func TestScoreToxicity_SpamDomainWorstCase(t *testing.T) {
	a := newTestAnalyzer(t)

	res := a.ScoreToxicity(ToxicitySignal{
		DomainAuthority: 5,
		Domain:          "viagra-casino-loans.biz",
		AnchorText:      "click here",
		PageType:        "forum",
	})

	assert.Equal(t, 175, res.Score)
	assert.Equal(t, SeverityHigh, res.Severity)
	assert.Equal(t, []string{
		FactorVeryLowDA,
		FactorSuspiciousDomain,
		FactorSpamKeywords,
		FactorSuspiciousTLD,
		FactorRiskyPageType,
		FactorGenericAnchor,
	}, res.Factors)
}

func TestScoreToxicity_CleanLink(t *testing.T) {
	a := newTestAnalyzer(t)

	res := a.ScoreToxicity(ToxicitySignal{
		DomainAuthority: 55,
		Domain:          "digital-insights.com",
		AnchorText:      "digital marketing",
		PageType:        "blog-post",
	})

	assert.Equal(t, 0, res.Score)
	assert.Equal(t, SeverityLow, res.Severity)
	assert.Empty(t, res.Factors)
}

func TestScoreToxicity_AuthorityBands(t *testing.T) {
	a := newTestAnalyzer(t)

	tests := []struct {
		name   string
		da     int
		score  int
		factor string
	}{
		{"very low", 5, 40, FactorVeryLowDA},
		{"very low upper edge", 9, 40, FactorVeryLowDA},
		{"low lower edge", 10, 20, FactorLowDA},
		{"low upper edge", 19, 20, FactorLowDA},
		{"above low band", 20, 0, ""},
		{"negative", -3, 40, FactorVeryLowDA},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := a.ScoreToxicity(ToxicitySignal{
				DomainAuthority: tc.da,
				Domain:          "digital-insights.com",
			})

			assert.Equal(t, tc.score, res.Score)
			if tc.factor == "" {
				assert.Empty(t, res.Factors)
			} else {
				assert.Equal(t, []string{tc.factor}, res.Factors)
			}
		})
	}
}

func TestScoreToxicity_ExplicitTermStacksOnIndicator(t *testing.T) {
	a := newTestAnalyzer(t)

	explicit := a.ScoreToxicity(ToxicitySignal{DomainAuthority: 50, Domain: "casino-hub.com"})
	assert.Equal(t, 75, explicit.Score)
	assert.Equal(t, []string{FactorSuspiciousDomain, FactorSpamKeywords}, explicit.Factors)

	// "cheap" is an indicator but not an explicit term, so only the base
	// penalty applies.
	mild := a.ScoreToxicity(ToxicitySignal{DomainAuthority: 50, Domain: "cheap-tools.com"})
	assert.Equal(t, 50, mild.Score)
	assert.Equal(t, []string{FactorSuspiciousDomain}, mild.Factors)
}

func TestScoreToxicity_TLDOverridesDomain(t *testing.T) {
	a := newTestAnalyzer(t)

	res := a.ScoreToxicity(ToxicitySignal{
		DomainAuthority: 50,
		Domain:          "example.com",
		TLD:             ".tk",
	})

	assert.Equal(t, 15, res.Score)
	assert.Equal(t, []string{FactorSuspiciousTLD}, res.Factors)
}

func TestScoreToxicity_TLDDerivedFromDomain(t *testing.T) {
	a := newTestAnalyzer(t)

	res := a.ScoreToxicity(ToxicitySignal{DomainAuthority: 50, Domain: "example.info"})

	assert.Equal(t, 15, res.Score)
	assert.Equal(t, []string{FactorSuspiciousTLD}, res.Factors)
}

func TestScoreToxicity_KeywordStuffing(t *testing.T) {
	a := newTestAnalyzer(t)
	stuffed := strings.Repeat("best seo tools ", 5) // 75 chars

	res := a.ScoreToxicity(ToxicitySignal{
		DomainAuthority: 50,
		Domain:          "example.com",
		AnchorText:      stuffed,
	})

	assert.Equal(t, 20, res.Score)
	assert.Equal(t, []string{FactorKeywordStuffing}, res.Factors)
}

func TestScoreToxicity_GenericAnchorCaseInsensitive(t *testing.T) {
	a := newTestAnalyzer(t)

	res := a.ScoreToxicity(ToxicitySignal{
		DomainAuthority: 50,
		Domain:          "example.com",
		AnchorText:      "  Click HERE ",
	})

	assert.Equal(t, 15, res.Score)
	assert.Equal(t, []string{FactorGenericAnchor}, res.Factors)
}

func TestScoreToxicity_SeverityBoundaries(t *testing.T) {
	a := newTestAnalyzer(t)

	// 20 (low_da) + 15 (suspicious_tld) = 35, below the medium line.
	low := a.ScoreToxicity(ToxicitySignal{DomainAuthority: 15, Domain: "example.tk"})
	assert.Equal(t, 35, low.Score)
	assert.Equal(t, SeverityLow, low.Severity)

	// 20 (low_da) + 20 (keyword_stuffing) = 40, exactly the medium line.
	medium := a.ScoreToxicity(ToxicitySignal{
		DomainAuthority: 15,
		Domain:          "example.com",
		AnchorText:      strings.Repeat("a", 61),
	})
	assert.Equal(t, 40, medium.Score)
	assert.Equal(t, SeverityMedium, medium.Severity)

	// 40 (very_low_da) + 30 (risky_page_type) = 70, exactly the high line.
	high := a.ScoreToxicity(ToxicitySignal{
		DomainAuthority: 5,
		Domain:          "example.com",
		PageType:        "guestbook",
	})
	assert.Equal(t, 70, high.Score)
	assert.Equal(t, SeverityHigh, high.Severity)
}

func TestScoreToxicity_MonotonicUnderAddedRisk(t *testing.T) {
	a := newTestAnalyzer(t)

	// Each signal strictly adds risk on top of the previous one.
	signals := []ToxicitySignal{
		{DomainAuthority: 50, Domain: "example.com"},
		{DomainAuthority: 15, Domain: "example.com"},
		{DomainAuthority: 5, Domain: "example.com"},
		{DomainAuthority: 5, Domain: "free-money.com"},
		{DomainAuthority: 5, Domain: "free-money.biz"},
		{DomainAuthority: 5, Domain: "free-money.biz", AnchorText: "click here"},
		{DomainAuthority: 5, Domain: "free-money.biz", AnchorText: "click here", PageType: "forum"},
		{DomainAuthority: 5, Domain: "casino-money.biz", AnchorText: "click here", PageType: "forum"},
	}

	prev := -1
	for _, sig := range signals {
		score := a.ScoreToxicity(sig).Score
		assert.GreaterOrEqual(t, score, prev, "signal %+v", sig)
		prev = score
	}
}

func TestScoreToxicity_EmptySignal(t *testing.T) {
	a := newTestAnalyzer(t)

	// A zero signal still carries DA 0, which is a very low authority.
	res := a.ScoreToxicity(ToxicitySignal{})

	assert.Equal(t, 40, res.Score)
	assert.Equal(t, []string{FactorVeryLowDA}, res.Factors)
}
