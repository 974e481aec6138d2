package seo

import "strings"

// ToxicitySeverity buckets a toxicity score.
type ToxicitySeverity string

const (
	SeverityLow    ToxicitySeverity = "low"
	SeverityMedium ToxicitySeverity = "medium"
	SeverityHigh   ToxicitySeverity = "high"
)

// Factor names recorded in ToxicityResult.Factors, in evaluation order.
const (
	FactorVeryLowDA        = "very_low_da"
	FactorLowDA            = "low_da"
	FactorSuspiciousDomain = "suspicious_domain"
	FactorSpamKeywords     = "spam_keywords"
	FactorSuspiciousTLD    = "suspicious_tld"
	FactorKeywordStuffing  = "keyword_stuffing"
	FactorRiskyPageType    = "risky_page_type"
	FactorGenericAnchor    = "generic_anchor"
)

// ToxicitySignal carries the observable attributes of one backlink. Optional
// fields left zero simply contribute nothing; TLD is derived from Domain when
// not set explicitly.
type ToxicitySignal struct {
	DomainAuthority int    `json:"domain_authority"`
	Domain          string `json:"domain"`
	AnchorText      string `json:"anchor_text"`
	PageType        string `json:"page_type"`
	TLD             string `json:"tld,omitempty"`
}

// ToxicityResult is the scored judgment for a single backlink.
type ToxicityResult struct {
	Score    int              `json:"score"`
	Severity ToxicitySeverity `json:"severity"`
	Factors  []string         `json:"contributing_factors"`
}

// ScoreToxicity evaluates each risk factor independently and sums the
// configured weights. The score is the raw sum, deliberately unclamped so a
// link matching everything reads worse than one barely over the high line.
func (a *Analyzer) ScoreToxicity(sig ToxicitySignal) ToxicityResult {
	w := a.cfg.Thresholds.ToxicityWeights

	score := 0
	var factors []string

	domain := strings.ToLower(sig.Domain)
	anchor := strings.ToLower(strings.TrimSpace(sig.AnchorText))

	// Domain authority
	if sig.DomainAuthority < a.cfg.Thresholds.VeryLowDAMax {
		score += w.VeryLowDA
		factors = append(factors, FactorVeryLowDA)
	} else if sig.DomainAuthority < a.cfg.Thresholds.LowDAMax {
		score += w.LowDA
		factors = append(factors, FactorLowDA)
	}

	// Spam vocabulary in the domain name. An explicit term stacks a second
	// penalty on top of the indicator match.
	if indicator := a.matchSpamIndicator(domain); indicator != "" {
		score += w.SuspiciousDomain
		factors = append(factors, FactorSuspiciousDomain)
		if a.isExplicitSpamTerm(domain) {
			score += w.SpamKeywords
			factors = append(factors, FactorSpamKeywords)
		}
	}

	// TLD
	tld := strings.ToLower(strings.TrimPrefix(sig.TLD, "."))
	if tld == "" {
		tld = tldOf(domain)
	}
	if _, ok := a.suspiciousTLDs[tld]; ok {
		score += w.SuspiciousTLD
		factors = append(factors, FactorSuspiciousTLD)
	}

	// Anchor text
	if len(anchor) > a.cfg.Thresholds.AnchorStuffingLength {
		score += w.KeywordStuffing
		factors = append(factors, FactorKeywordStuffing)
	}

	// Placement
	if _, ok := a.riskyPageTypes[strings.ToLower(strings.TrimSpace(sig.PageType))]; ok {
		score += w.RiskyPageType
		factors = append(factors, FactorRiskyPageType)
	}

	if _, ok := a.genericAnchors[anchor]; ok {
		score += w.GenericAnchor
		factors = append(factors, FactorGenericAnchor)
	}

	return ToxicityResult{
		Score:    score,
		Severity: a.toxicitySeverity(score),
		Factors:  factors,
	}
}

func (a *Analyzer) toxicitySeverity(score int) ToxicitySeverity {
	switch {
	case score >= a.cfg.Thresholds.ToxicityHigh:
		return SeverityHigh
	case score >= a.cfg.Thresholds.ToxicityMedium:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// matchSpamIndicator returns the first spam indicator contained in the
// lowercased domain, or "" when the domain is clean.
func (a *Analyzer) matchSpamIndicator(domain string) string {
	for _, indicator := range a.cfg.Lists.SpamIndicators {
		if strings.Contains(domain, indicator) {
			return indicator
		}
	}
	return ""
}

func (a *Analyzer) isExplicitSpamTerm(domain string) bool {
	for _, term := range a.cfg.Lists.ExplicitSpamTerms {
		if strings.Contains(domain, term) {
			return true
		}
	}
	return false
}
