package agent

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"seo-audit-agent/tools"
)

// Title length bounds for the audit insight. Shorter reads as thin, longer
// gets truncated in result snippets.
const (
	titleMinChars = 10
	titleMaxChars = 60
)

const slowLoadThresholdMs = 1000

// TechnicalSection holds the technical half of an audit. Domain is nil when
// the audited host is an IP address or otherwise not inspectable.
type TechnicalSection struct {
	MetaTags    tools.MetaReport        `json:"meta_tags"`
	BrokenLinks tools.BrokenLinkReport  `json:"broken_links"`
	Domain      *tools.DomainInspection `json:"domain,omitempty"`
}

// AuditReport is the full site audit the agent assembles.
type AuditReport struct {
	ReportID    string               `json:"report_id"`
	URL         string               `json:"url"`
	FocusAreas  []string             `json:"focus_areas"`
	Technical   *TechnicalSection    `json:"technical,omitempty"`
	Performance *tools.SpeedReport   `json:"performance,omitempty"`
	Content     *tools.KeywordReport `json:"content,omitempty"`
	Insights    []string             `json:"generated_insights"`
	Errors      []string             `json:"errors,omitempty"`
	Summary     string               `json:"summary"`
	Timestamp   string               `json:"timestamp"`
}

const auditBrokenLinkLimit = 5

// RunAudit executes the requested audit sections in parallel and derives
// insights from the collected numbers. A section that fails is reported in
// Errors without sinking the rest; the call errors only when every
// requested section failed.
func (a *Agent) RunAudit(ctx context.Context, url string, focusAreas []string) (AuditReport, error) {
	if url == "" {
		return AuditReport{}, fmt.Errorf("audit: empty url")
	}

	selected := resolveFocus(focusAreas)
	log.Info().Str("url", url).Strs("focus", focusKeys(selected)).Msg("starting audit")

	report := AuditReport{
		ReportID:   newReportID(),
		URL:        url,
		FocusAreas: focusKeys(selected),
	}

	var mu sync.Mutex
	fail := func(section string, err error) {
		mu.Lock()
		report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", section, err))
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)

	if selected[FocusTechnical] {
		g.Go(func() error {
			meta, err := a.tools.ExtractMetaTags(gctx, url)
			if err != nil {
				fail(FocusTechnical, err)
				return nil
			}
			broken, err := a.tools.CheckBrokenLinks(gctx, url, auditBrokenLinkLimit)
			if err != nil {
				fail(FocusTechnical, err)
				return nil
			}
			section := &TechnicalSection{MetaTags: meta, BrokenLinks: broken}
			if host := inspectableHost(url); host != "" {
				inspection := a.tools.InspectDomain(gctx, host)
				section.Domain = &inspection
			}
			mu.Lock()
			report.Technical = section
			mu.Unlock()
			return nil
		})
	}

	if selected[FocusPerformance] {
		g.Go(func() error {
			speed, err := a.tools.MeasureSpeed(gctx, url)
			if err != nil {
				fail(FocusPerformance, err)
				return nil
			}
			mu.Lock()
			report.Performance = &speed
			mu.Unlock()
			return nil
		})
	}

	if selected[FocusContent] {
		g.Go(func() error {
			keywords, err := a.tools.AnalyzeKeywords(gctx, url, "")
			if err != nil {
				fail(FocusContent, err)
				return nil
			}
			mu.Lock()
			report.Content = &keywords
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()

	if len(report.Errors) == len(report.FocusAreas) {
		return report, fmt.Errorf("audit: all sections failed for %s", url)
	}

	report.Insights = auditInsights(report)
	report.Summary = "Audit Complete"
	report.Timestamp = timestamp()

	log.Info().Str("url", url).Int("insights", len(report.Insights)).Msg("audit completed")
	return report, nil
}

// auditInsights turns the collected sections into reviewer-style findings.
func auditInsights(r AuditReport) []string {
	var insights []string

	if r.Technical != nil {
		titleLen := r.Technical.MetaTags.TitleLength
		if titleLen < titleMinChars || titleLen > titleMaxChars {
			insights = append(insights, fmt.Sprintf(
				"Critical: title tag length (%d chars) is non-optimal. Aim for 30-60 chars.", titleLen))
		}
		if r.Technical.MetaTags.DescriptionLength == 0 {
			insights = append(insights, "Warning: page has no meta description.")
		}
		if missing := r.Technical.MetaTags.ImagesMissingAlt; missing > 0 {
			insights = append(insights, fmt.Sprintf("Warning: %d images are missing alt text.", missing))
		}
		if broken := r.Technical.BrokenLinks.BrokenCount; broken > 0 {
			insights = append(insights, fmt.Sprintf(
				"Warning: %d of %d checked links did not resolve.", broken, r.Technical.BrokenLinks.CheckedCount))
		}
	}

	if r.Technical != nil && r.Technical.Domain != nil && !r.Technical.Domain.HTTPSOk {
		insights = append(insights, "Warning: HTTPS did not respond on port 443.")
	}

	if r.Performance != nil && r.Performance.LoadTimeMs > slowLoadThresholdMs {
		insights = append(insights, fmt.Sprintf(
			"Warning: page load time is high (%.0fms). Consider optimizing images.", r.Performance.LoadTimeMs))
	}

	return insights
}

// inspectableHost extracts a registrable hostname from the audited URL.
// IP addresses and bare localhost are skipped, whois has nothing for them.
func inspectableHost(rawURL string) string {
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	if host == "" || !strings.Contains(host, ".") || net.ParseIP(host) != nil {
		return ""
	}
	return host
}

func focusKeys(selected map[string]bool) []string {
	keys := make([]string, 0, len(selected))
	for _, area := range []string{FocusTechnical, FocusPerformance, FocusContent} {
		if selected[area] {
			keys = append(keys, area)
		}
	}
	return keys
}
