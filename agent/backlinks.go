package agent

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"seo-audit-agent/seo"
)

// Rule thresholds for the backlink insight generator.
const (
	strongDiversityLinksPerDomain = 5.0
	healthyDofollowPct            = 50.0
	excellentHighAuthorityPct     = 15.0
	qualityExcellentMin           = 80
	qualityGoodMin                = 60
	growingLinksPerMonth          = 10
)

// BacklinkSummary is the condensed numbers block of a backlink analysis.
type BacklinkSummary struct {
	TotalBacklinks    int     `json:"total_backlinks"`
	ReferringDomains  int     `json:"referring_domains"`
	DofollowRatio     float64 `json:"dofollow_ratio"`
	HighAuthorityPct  float64 `json:"high_authority_pct"`
	ToxicLinksCount   int     `json:"toxic_links_count"`
	HighSeverityToxic int     `json:"high_severity_toxic"`
	QualityScore      int     `json:"quality_score"`
}

// BacklinkAnalysis wraps the raw backlink report with derived insights and
// the competitor comparison for the same domain.
type BacklinkAnalysis struct {
	ReportID        string                 `json:"report_id"`
	Domain          string                 `json:"domain"`
	Summary         string                 `json:"summary"`
	DataSummary     BacklinkSummary        `json:"data_summary"`
	Insights        []string               `json:"insights"`
	Recommendations []string               `json:"recommendations"`
	Report          seo.BacklinkReport     `json:"backlinks_data"`
	Competitors     seo.CompetitorAnalysis `json:"competitor_analysis"`
	Timestamp       string                 `json:"timestamp"`
}

// AnalyzeBacklinks builds the backlink and competitor reports for a domain
// and runs the insight rules over them.
func (a *Agent) AnalyzeBacklinks(ctx context.Context, domain string) (BacklinkAnalysis, error) {
	report, err := a.tools.Analyzer().AnalyzeBacklinks(domain)
	if err != nil {
		return BacklinkAnalysis{}, err
	}
	competitors, err := a.tools.Analyzer().AnalyzeCompetitors(domain)
	if err != nil {
		return BacklinkAnalysis{}, err
	}

	insights, recommendations := backlinkInsights(report)
	insights = append(insights, competitorInsights(competitors)...)

	analysis := BacklinkAnalysis{
		ReportID: newReportID(),
		Domain:   report.Domain,
		Summary: fmt.Sprintf("Analyzed %d backlinks from %d unique domains",
			report.Profile.TotalBacklinks, report.Profile.ReferringDomains),
		DataSummary:     summarizeBacklinks(report),
		Insights:        insights,
		Recommendations: recommendations,
		Report:          report,
		Competitors:     competitors,
		Timestamp:       timestamp(),
	}

	log.Info().
		Str("domain", report.Domain).
		Int("backlinks", report.Profile.TotalBacklinks).
		Int("quality_score", report.QualityScore).
		Msg("backlink analysis completed")

	return analysis, nil
}

func summarizeBacklinks(r seo.BacklinkReport) BacklinkSummary {
	return BacklinkSummary{
		TotalBacklinks:    r.Profile.TotalBacklinks,
		ReferringDomains:  r.Profile.ReferringDomains,
		DofollowRatio:     r.Profile.DofollowRatio,
		HighAuthorityPct:  highAuthorityPct(r),
		ToxicLinksCount:   len(r.ToxicLinks),
		HighSeverityToxic: countHighSeverity(r.ToxicLinks),
		QualityScore:      r.QualityScore,
	}
}

// backlinkInsights applies the link-profile review rules. The ordering is
// stable: distribution first, then dofollow, authority, anchors, toxicity,
// quality, and velocity.
func backlinkInsights(r seo.BacklinkReport) (insights, recommendations []string) {
	total := r.Profile.TotalBacklinks
	referring := r.Profile.ReferringDomains

	// Link distribution
	if total == 0 {
		insights = append(insights, "No backlinks detected. This is critical for SEO performance.")
		recommendations = append(recommendations, "Start outreach and link building campaigns immediately.")
	} else if referring > 0 {
		avg := float64(total) / float64(referring)
		if avg > strongDiversityLinksPerDomain {
			insights = append(insights, fmt.Sprintf("Strong link diversity: average %.1f links per domain.", avg))
		} else {
			insights = append(insights, fmt.Sprintf("Limited link diversity: only %.1f links per domain on average.", avg))
			recommendations = append(recommendations, "Diversify your link sources across more domains.")
		}
	}

	// Dofollow share
	dofollowPct := r.Profile.DofollowRatio * 100
	if dofollowPct < healthyDofollowPct {
		insights = append(insights, fmt.Sprintf("Low dofollow ratio (%.0f%%). Many links may not pass link equity.", dofollowPct))
		recommendations = append(recommendations, "Focus on acquiring high-quality dofollow links from authoritative sites.")
	} else {
		insights = append(insights, fmt.Sprintf("Healthy dofollow ratio (%.0f%%), good link equity transfer.", dofollowPct))
	}

	// Authority distribution
	if r.Profile.HighAuthority > 0 && total > 0 {
		pct := highAuthorityPct(r)
		if pct >= excellentHighAuthorityPct {
			insights = append(insights, fmt.Sprintf("Excellent link profile: %.0f%% of links come from high-authority domains.", pct))
		} else {
			insights = append(insights, fmt.Sprintf("Need more authority links: only %.0f%% come from high-authority domains.", pct))
			recommendations = append(recommendations, "Target high-authority publications and resources for guest posting.")
		}
	}

	// Anchor text mix
	anchors := r.AnchorTexts
	if anchors.Keyword > 0 {
		insights = append(insights, fmt.Sprintf("Strong keyword anchors: %d links use keyword-rich anchor text.", anchors.Keyword))
	}
	if anchors.Generic > anchors.Branded && anchors.Generic > anchors.Keyword {
		insights = append(insights, fmt.Sprintf("Many generic anchors (%d). Consider improving anchor text diversity.", anchors.Generic))
		recommendations = append(recommendations, "Work with content partners to use descriptive anchor text in future links.")
	}

	// Toxicity
	if len(r.ToxicLinks) > 0 {
		insights = append(insights, fmt.Sprintf("Found %d potentially toxic links (%d high-severity).",
			len(r.ToxicLinks), countHighSeverity(r.ToxicLinks)))
		recommendations = append(recommendations, "Review and disavow toxic links using Google Search Console.")
	} else {
		insights = append(insights, "Clean backlink profile, no obvious toxic links detected.")
	}

	// Quality score
	switch {
	case r.QualityScore >= qualityExcellentMin:
		insights = append(insights, fmt.Sprintf("Excellent link quality score: %d/100. Your backlink profile is strong.", r.QualityScore))
	case r.QualityScore >= qualityGoodMin:
		insights = append(insights, fmt.Sprintf("Good link quality score: %d/100. There's room for improvement.", r.QualityScore))
	default:
		insights = append(insights, fmt.Sprintf("Low link quality score: %d/100. Significant improvements needed.", r.QualityScore))
	}

	// Velocity
	switch {
	case r.Velocity.Trend == seo.TrendGrowing && r.Velocity.NewLast30Days > growingLinksPerMonth:
		insights = append(insights, fmt.Sprintf("Positive trend: growing backlinks (%d new in the last 30 days).", r.Velocity.NewLast30Days))
	case r.Velocity.Trend == seo.TrendDeclining:
		insights = append(insights, "Warning: declining backlinks, some links were lost recently.")
		recommendations = append(recommendations, "Analyze lost links and recreate valuable content to recover them.")
	}

	return insights, recommendations
}

// competitorInsights condenses the competitor comparison into findings.
func competitorInsights(c seo.CompetitorAnalysis) []string {
	var insights []string

	highGaps := 0
	for _, cmp := range c.Competitors {
		if cmp.Assessment.AuthorityGapImpact == seo.ImpactHigh {
			highGaps++
		}
	}
	if highGaps > 0 {
		insights = append(insights, fmt.Sprintf(
			"%d of %d competitors hold a high authority advantage.", highGaps, len(c.Competitors)))
	}
	if len(c.Opportunities) > 0 {
		insights = append(insights, fmt.Sprintf(
			"Identified %d link building opportunities from the competitor comparison.", len(c.Opportunities)))
	}
	return insights
}

func highAuthorityPct(r seo.BacklinkReport) float64 {
	if r.Profile.TotalBacklinks == 0 {
		return 0
	}
	return float64(r.Profile.HighAuthority) / float64(r.Profile.TotalBacklinks) * 100
}

func countHighSeverity(links []seo.ToxicLink) int {
	n := 0
	for _, l := range links {
		if l.Severity == seo.SeverityHigh {
			n++
		}
	}
	return n
}
