package agent

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog/log"

	"seo-audit-agent/seo"
	"seo-audit-agent/tools"
)

// Rule thresholds for the link structure review.
const (
	goodNavigationLinks    = 5
	richBusinessLinks      = 10
	manyUtilityLinks       = 10
	externalPctHigh        = 70.0
	externalPctIdealLow    = 0.2
	externalPctIdealHigh   = 30.0
	internalRatioExcellent = 3.0
	internalRatioGood      = 1.5
)

// CategoryStat is one row of the per-category breakdown.
type CategoryStat struct {
	Category    string  `json:"category"`
	Count       int     `json:"count"`
	Percentage  float64 `json:"percentage"`
	Description string  `json:"description,omitempty"`
}

// LinkCategoryAnalysis reviews how a page distributes its links.
type LinkCategoryAnalysis struct {
	ReportID          string                      `json:"report_id"`
	URL               string                      `json:"url"`
	Summary           string                      `json:"summary"`
	LinkQualityScore  int                         `json:"link_quality_score"`
	TotalLinks        int                         `json:"total_links"`
	InternalLinks     int                         `json:"internal_links"`
	ExternalLinks     int                         `json:"external_links"`
	CategoryBreakdown []CategoryStat              `json:"category_breakdown"`
	Insights          []string                    `json:"insights"`
	Warnings          []string                    `json:"warnings"`
	Recommendations   []string                    `json:"recommendations"`
	Report            tools.CategorizedLinkReport `json:"raw_data"`
	Timestamp         string                      `json:"timestamp"`
}

// CategorizeLinks fetches a page, classifies its links, and reviews the
// distribution against link structure best practices.
func (a *Agent) CategorizeLinks(ctx context.Context, url string) (LinkCategoryAnalysis, error) {
	report, err := a.tools.LinksByCategory(ctx, url)
	if err != nil {
		return LinkCategoryAnalysis{}, err
	}

	analysis := reviewLinkCategories(a.tools.Analyzer(), report)
	analysis.ReportID = newReportID()
	analysis.Timestamp = timestamp()

	log.Info().
		Str("url", report.URL).
		Int("links", report.TotalLinks).
		Int("score", analysis.LinkQualityScore).
		Msg("link categorization completed")

	return analysis, nil
}

// reviewLinkCategories runs the structure rules over a categorized page.
func reviewLinkCategories(analyzer *seo.Analyzer, r tools.CategorizedLinkReport) LinkCategoryAnalysis {
	analysis := LinkCategoryAnalysis{
		URL:           r.URL,
		TotalLinks:    r.TotalLinks,
		InternalLinks: r.InternalLinks,
		ExternalLinks: r.ExternalLinks,
		Report:        r,
	}

	if r.TotalLinks == 0 {
		analysis.Summary = "No links detected"
		analysis.Insights = append(analysis.Insights, "No links found on this page.")
		analysis.Warnings = append(analysis.Warnings,
			"Pages with no links may have poor user experience and limited SEO value.")
		return analysis
	}

	analysis.CategoryBreakdown = categoryBreakdown(analyzer, r)
	analysis.Summary = fmt.Sprintf("Analyzed %d links across %d categories",
		r.TotalLinks, len(analysis.CategoryBreakdown))

	insight := func(format string, args ...any) {
		analysis.Insights = append(analysis.Insights, fmt.Sprintf(format, args...))
	}
	warn := func(format string, args ...any) {
		analysis.Warnings = append(analysis.Warnings, fmt.Sprintf(format, args...))
	}
	recommend := func(msg string) {
		analysis.Recommendations = append(analysis.Recommendations, msg)
	}

	// Navigation
	navCount := r.Categories["navigation"]
	switch {
	case navCount == 0:
		warn("No navigation links detected. Users may have difficulty navigating your site.")
		recommend("Add clear navigation links (home, about, contact, services) to improve user experience.")
	case navCount < goodNavigationLinks:
		insight("Limited navigation: only %d navigation links found.", navCount)
		recommend("Consider adding more navigation options for better site structure.")
	default:
		insight("Good navigation structure: %d navigation links found.", navCount)
	}

	// Social presence
	if socialCount := r.Categories["social"]; socialCount == 0 {
		recommend("Add social media links to increase brand visibility and engagement.")
	} else {
		insight("Social presence: %d social media links found.", socialCount)
	}

	// Legal pages
	if legalCount := r.Categories["legal"]; legalCount == 0 {
		warn("No legal or policy links found. This may affect user trust and compliance.")
		recommend("Add privacy policy, terms of service, and other compliance pages.")
	} else {
		insight("Legal compliance: %d legal/policy links present.", legalCount)
	}

	// Business content
	if businessCount := r.Categories["business"]; businessCount == 0 {
		warn("No business/content links found. Add blog posts, resources, or product pages.")
	} else {
		insight("Content depth: %d business/content links found.", businessCount)
	}

	// External linking
	externalPct := float64(r.ExternalLinks) / float64(r.TotalLinks) * 100
	switch {
	case r.ExternalLinks == 0:
		warn("No external links found. Consider linking to authoritative sources to build trust.")
		recommend("Add relevant external links to trusted sources in your industry.")
	case externalPct > externalPctHigh:
		warn("High external link ratio (%.0f%%). This may dilute your link equity.", externalPct)
		recommend("Balance external links with more internal linking to keep users on your site.")
	default:
		insight("Balanced external linking: %d external links (%.0f%%).", r.ExternalLinks, externalPct)
	}

	if nofollowExt := nofollowExternalCount(r); nofollowExt > 0 && r.ExternalLinks > 0 {
		insight("%.0f%% of external links use the nofollow attribute.",
			float64(nofollowExt)/float64(r.ExternalLinks)*100)
	}

	// Media and utility
	if mediaCount := r.Categories["media"]; mediaCount > 0 {
		insight("Rich content: %d media/download links found.", mediaCount)
	}
	if utilityCount := r.Categories["utility"]; utilityCount > manyUtilityLinks {
		insight("Many utility links (%d). Ensure they don't clutter the user experience.", utilityCount)
	}

	// Internal to external balance
	if r.InternalLinks > 0 && r.ExternalLinks > 0 {
		ratio := float64(r.InternalLinks) / float64(r.ExternalLinks)
		switch {
		case ratio >= internalRatioExcellent:
			insight("Excellent internal linking: %.1f:1 ratio of internal to external links.", ratio)
		case ratio >= internalRatioGood:
			insight("Good internal linking: %.1f:1 ratio of internal to external links.", ratio)
		default:
			warn("Low internal linking ratio: %.1f:1. Consider adding more internal links.", ratio)
			recommend("Strengthen internal linking to improve site structure and SEO.")
		}
	}

	// Anchor hygiene
	if r.EmptyAnchors > 0 {
		warn("%d links have no anchor text. This hurts accessibility and SEO.", r.EmptyAnchors)
		recommend("Add descriptive anchor text to all links.")
	}
	if r.SponsoredLinks > 0 {
		insight("%d links properly marked as sponsored.", r.SponsoredLinks)
	}

	analysis.LinkQualityScore = linkQualityScore(r, externalPct)
	return analysis
}

// linkQualityScore grades link structure from a base of 70, rewarding solid
// navigation, trust pages, and balanced external linking.
func linkQualityScore(r tools.CategorizedLinkReport, externalPct float64) int {
	score := 70

	if r.Categories["navigation"] >= goodNavigationLinks {
		score += 5
	}
	if r.Categories["social"] > 0 {
		score += 3
	}
	if r.Categories["legal"] > 0 {
		score += 5
	}
	if r.Categories["business"] >= richBusinessLinks {
		score += 5
	}
	if externalPct >= externalPctIdealLow && externalPct <= externalPctIdealHigh {
		score += 7
	}
	if r.EmptyAnchors == 0 {
		score += 5
	}

	if r.Categories["navigation"] == 0 {
		score -= 10
	}
	if r.Categories["legal"] == 0 {
		score -= 5
	}
	if externalPct > externalPctHigh {
		score -= 10
	}
	if float64(r.EmptyAnchors) > float64(r.TotalLinks)*0.2 {
		score -= 10
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

func categoryBreakdown(analyzer *seo.Analyzer, r tools.CategorizedLinkReport) []CategoryStat {
	stats := make([]CategoryStat, 0, len(r.Categories))
	for name, count := range r.Categories {
		if count == 0 {
			continue
		}
		pct := float64(count) / float64(r.TotalLinks) * 100
		stats = append(stats, CategoryStat{
			Category:    name,
			Count:       count,
			Percentage:  math.Round(pct*10) / 10,
			Description: analyzer.CategoryDescription(name),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Category < stats[j].Category
	})
	return stats
}

func nofollowExternalCount(r tools.CategorizedLinkReport) int {
	n := 0
	for _, link := range r.Links {
		if link.External && link.Nofollow {
			n++
		}
	}
	return n
}
