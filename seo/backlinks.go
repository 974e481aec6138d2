package seo

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"
)

// Page placements used when synthesizing link profiles. The share of each is
// set by the LinkType* thresholds; risky placements only appear on toxic
// links.
const (
	PageTypeHomepage = "homepage"
	PageTypeInner    = "inner-page"
	PageTypeResource = "resource-page"
	PageTypeBlog     = "blog-post"
)

// Anchor styles reported in AnchorTextBreakdown.
const (
	AnchorBranded = "branded"
	AnchorKeyword = "keyword"
	AnchorGeneric = "generic"
)

// Backlink is a single synthesized inbound link.
type Backlink struct {
	SourceDomain    string `json:"source_domain"`
	SourceURL       string `json:"source_url"`
	TargetURL       string `json:"target_url"`
	AnchorText      string `json:"anchor_text"`
	DomainAuthority int    `json:"domain_authority"`
	Dofollow        bool   `json:"dofollow"`
	PageType        string `json:"page_type"`
}

// LinkProfile aggregates a backlink set by tier and placement.
type LinkProfile struct {
	TotalBacklinks   int            `json:"total_backlinks"`
	ReferringDomains int            `json:"referring_domains"`
	HighAuthority    int            `json:"high_authority_links"`
	MediumAuthority  int            `json:"medium_authority_links"`
	LowAuthority     int            `json:"low_authority_links"`
	AvgAuthority     float64        `json:"avg_domain_authority"`
	DofollowRatio    float64        `json:"dofollow_ratio"`
	LinkTypes        map[string]int `json:"link_types"`
}

// AnchorTextBreakdown counts anchors by style.
type AnchorTextBreakdown struct {
	Branded int `json:"branded"`
	Keyword int `json:"keyword"`
	Generic int `json:"generic"`
}

// ToxicLink pairs a flagged backlink with its toxicity judgment.
type ToxicLink struct {
	SourceDomain string           `json:"source_domain"`
	AnchorText   string           `json:"anchor_text"`
	Score        int              `json:"toxicity_score"`
	Severity     ToxicitySeverity `json:"severity"`
	Factors      []string         `json:"contributing_factors"`
}

// Trend labels carried by VelocitySummary.
const (
	TrendGrowing   = "growing"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// VelocitySummary condenses 6 months of link acquisition.
type VelocitySummary struct {
	NewLast30Days int              `json:"new_links_30d"`
	Trend         string           `json:"trend"`
	Sustainable   bool             `json:"sustainable_pace"`
	Acceleration  AccelerationTier `json:"acceleration_tier"`
	Health        HealthRating     `json:"health_rating"`
	History       []VelocitySample `json:"history"`
}

// BacklinkReport is the full estimated profile for one domain.
type BacklinkReport struct {
	Domain       string              `json:"domain"`
	Profile      LinkProfile         `json:"profile"`
	AnchorTexts  AnchorTextBreakdown `json:"anchor_text_breakdown"`
	TopBacklinks []Backlink          `json:"top_backlinks"`
	ToxicLinks   []ToxicLink         `json:"toxic_links"`
	Velocity     VelocitySummary     `json:"velocity"`
	QualityScore int                 `json:"quality_score"`
}

// AnalyzeBacklinks estimates a full backlink profile for a domain. The
// profile is synthesized from a seed derived from the normalized domain name,
// so repeated calls for the same domain return the same report while
// different domains get different but equally plausible shapes.
func (a *Analyzer) AnalyzeBacklinks(domain string) (BacklinkReport, error) {
	normalized := NormalizeDomain(domain)
	if normalized == "" {
		return BacklinkReport{}, fmt.Errorf("backlinks: empty domain")
	}

	r := rand.New(rand.NewSource(domainSeed(normalized)))
	_, links := a.synthesizeSite(r, normalized)

	profile := a.aggregateProfile(links)
	anchors := a.breakdownAnchors(links, normalized)
	toxic := a.flagToxicLinks(links)
	velocity := a.synthesizeVelocity(r, profile.TotalBacklinks)

	return BacklinkReport{
		Domain:       normalized,
		Profile:      profile,
		AnchorTexts:  anchors,
		TopBacklinks: topByAuthority(links, 10),
		ToxicLinks:   toxic,
		Velocity:     velocity,
		QualityScore: a.qualityScore(profile, toxic),
	}, nil
}

// domainSeed hashes a normalized domain so synthesis is stable per domain.
func domainSeed(domain string) int64 {
	h := fnv.New64a()
	h.Write([]byte(domain))
	return int64(h.Sum64())
}

// synthesizeSite draws the site's own authority estimate and its inbound
// links from r. Competitor analysis replays the same draws for the same
// domain, which keeps the two reports consistent with each other.
func (a *Analyzer) synthesizeSite(r Rand, domain string) (siteDA int, links []Backlink) {
	siteDA = 25 + r.Intn(40)
	referring := 10 + r.Intn(140)

	for i := 0; i < referring; i++ {
		toxic := r.Intn(100) < 8

		var src string
		var da int
		if toxic {
			src = a.toxicDomain(r)
			da = 1 + r.Intn(15)
		} else {
			src = a.generateDomain(r)
			da = a.drawAuthority(r)
		}

		for n := 1 + r.Intn(5); n > 0; n-- {
			pageType := a.drawPageType(r, toxic)
			links = append(links, Backlink{
				SourceDomain:    src,
				SourceURL:       a.sourceURL(r, src, pageType),
				TargetURL:       a.targetURL(r, domain),
				AnchorText:      a.drawAnchor(r, domain, toxic),
				DomainAuthority: da,
				Dofollow:        r.Intn(100) < 70,
				PageType:        pageType,
			})
		}
	}
	return siteDA, links
}

// toxicDomain builds a spam-flavored referring domain: an explicit spam term,
// a filler noun, and a suspicious TLD.
func (a *Analyzer) toxicDomain(r Rand) string {
	term := pick(r, a.cfg.Lists.ExplicitSpamTerms)
	noun := pick(r, a.cfg.Lists.DomainNouns)
	tld := strings.TrimPrefix(pick(r, a.cfg.Lists.SuspiciousTLDs), ".")
	return term + "-" + noun + "." + tld
}

// drawAuthority rolls a DA for a clean referring domain: roughly 15% high
// tier, 35% medium, the rest low.
func (a *Analyzer) drawAuthority(r Rand) int {
	t := a.cfg.Thresholds
	switch roll := r.Intn(100); {
	case roll < 15:
		return t.AuthorityHighMin + r.Intn(33)
	case roll < 50:
		return t.AuthorityMediumMin + r.Intn(t.AuthorityHighMin-t.AuthorityMediumMin)
	default:
		return 2 + r.Intn(t.AuthorityMediumMin-2)
	}
}

func (a *Analyzer) drawPageType(r Rand, toxic bool) string {
	if toxic {
		return pick(r, a.cfg.Lists.RiskyPageTypes)
	}
	t := a.cfg.Thresholds
	homepageMax := int(t.LinkTypeHomepage * 100)
	innerMax := homepageMax + int(t.LinkTypeInner*100)
	resourceMax := innerMax + int(t.LinkTypeResource*100)
	switch roll := r.Intn(100); {
	case roll < homepageMax:
		return PageTypeHomepage
	case roll < innerMax:
		return PageTypeInner
	case roll < resourceMax:
		return PageTypeResource
	default:
		return PageTypeBlog
	}
}

// drawAnchor rolls an anchor style: ~30% branded, ~40% keyword-rich, ~30%
// generic. Toxic links always use generic anchors.
func (a *Analyzer) drawAnchor(r Rand, domain string, toxic bool) string {
	if toxic {
		return pick(r, a.cfg.Lists.GenericAnchors)
	}
	switch roll := r.Intn(100); {
	case roll < 30:
		if r.Intn(2) == 0 {
			return brandName(domain)
		}
		return domain
	case roll < 70:
		return pick(r, a.cfg.Lists.QualityAnchorKeywords)
	default:
		return pick(r, a.cfg.Lists.GenericAnchors)
	}
}

func (a *Analyzer) sourceURL(r Rand, src, pageType string) string {
	slug := pick(r, a.cfg.Lists.DomainNouns) + "-" + pick(r, a.cfg.Lists.DomainNouns)
	switch pageType {
	case PageTypeHomepage:
		return "https://" + src + "/"
	case PageTypeInner:
		return "https://" + src + "/" + slug
	case PageTypeResource:
		return "https://" + src + "/resources/" + slug
	case PageTypeBlog:
		return "https://" + src + "/blog/" + slug
	default:
		return "https://" + src + "/" + pageType + "/" + slug
	}
}

func (a *Analyzer) targetURL(r Rand, domain string) string {
	if r.Intn(100) < 60 {
		return "https://" + domain + "/"
	}
	return "https://" + domain + "/" + pick(r, a.cfg.Lists.DomainNouns)
}

// brandName is the first label of a domain, used as its branded anchor.
func brandName(domain string) string {
	if i := strings.IndexByte(domain, '.'); i > 0 {
		return domain[:i]
	}
	return domain
}

func (a *Analyzer) aggregateProfile(links []Backlink) LinkProfile {
	profile := LinkProfile{
		TotalBacklinks: len(links),
		LinkTypes:      make(map[string]int),
	}

	seen := make(map[string]struct{})
	dofollow := 0
	daSum := 0
	for _, l := range links {
		seen[l.SourceDomain] = struct{}{}
		daSum += l.DomainAuthority
		if l.Dofollow {
			dofollow++
		}
		profile.LinkTypes[l.PageType]++

		switch a.ClassifyAuthority(l.DomainAuthority).Level {
		case AuthorityHigh:
			profile.HighAuthority++
		case AuthorityMedium:
			profile.MediumAuthority++
		default:
			profile.LowAuthority++
		}
	}

	profile.ReferringDomains = len(seen)
	if len(links) > 0 {
		profile.AvgAuthority = math.Round(float64(daSum)/float64(len(links))*10) / 10
		profile.DofollowRatio = math.Round(float64(dofollow)/float64(len(links))*100) / 100
	}
	return profile
}

// ClassifyAnchor labels an anchor as branded, keyword, or generic relative to
// the linked domain. Generic templates win over everything; anchors carrying
// the brand label count as branded; the rest are keyword anchors.
func (a *Analyzer) ClassifyAnchor(anchor, domain string) string {
	lowered := strings.ToLower(strings.TrimSpace(anchor))
	if _, ok := a.genericAnchors[lowered]; ok {
		return AnchorGeneric
	}
	if brand := brandName(NormalizeDomain(domain)); brand != "" && strings.Contains(lowered, brand) {
		return AnchorBranded
	}
	return AnchorKeyword
}

func (a *Analyzer) breakdownAnchors(links []Backlink, domain string) AnchorTextBreakdown {
	var b AnchorTextBreakdown
	for _, l := range links {
		switch a.ClassifyAnchor(l.AnchorText, domain) {
		case AnchorBranded:
			b.Branded++
		case AnchorGeneric:
			b.Generic++
		default:
			b.Keyword++
		}
	}
	return b
}

// flagToxicLinks scores every link and keeps those at or above the reporting
// floor, worst first.
func (a *Analyzer) flagToxicLinks(links []Backlink) []ToxicLink {
	var toxic []ToxicLink
	for _, l := range links {
		res := a.ScoreToxicity(ToxicitySignal{
			DomainAuthority: l.DomainAuthority,
			Domain:          l.SourceDomain,
			AnchorText:      l.AnchorText,
			PageType:        l.PageType,
		})
		if res.Score >= a.cfg.Thresholds.ToxicityLow {
			toxic = append(toxic, ToxicLink{
				SourceDomain: l.SourceDomain,
				AnchorText:   l.AnchorText,
				Score:        res.Score,
				Severity:     res.Severity,
				Factors:      res.Factors,
			})
		}
	}
	sort.SliceStable(toxic, func(i, j int) bool { return toxic[i].Score > toxic[j].Score })
	return toxic
}

func topByAuthority(links []Backlink, n int) []Backlink {
	top := make([]Backlink, len(links))
	copy(top, links)
	sort.SliceStable(top, func(i, j int) bool { return top[i].DomainAuthority > top[j].DomainAuthority })
	if len(top) > n {
		top = top[:n]
	}
	return top
}

// synthesizeVelocity walks the total backwards over six months with a random
// 3-15% monthly growth rate, then grades the resulting series.
func (a *Analyzer) synthesizeVelocity(r Rand, total int) VelocitySummary {
	const months = 6

	counts := make([]int, months)
	counts[months-1] = total
	for i := months - 2; i >= 0; i-- {
		pct := 3 + r.Intn(13)
		prev := counts[i+1] * 100 / (100 + pct)
		if prev < 1 {
			prev = 1
		}
		counts[i] = prev
	}

	now := time.Now()
	history := make([]VelocitySample, months)
	for i := range history {
		history[i] = VelocitySample{
			Period:    now.AddDate(0, i-(months-1), 0).Format("2006-01"),
			LinkCount: counts[i],
		}
	}

	// Counts are non-negative by construction, so the analyzer cannot fail.
	res, _ := a.AnalyzeVelocity(history)

	t := a.cfg.Thresholds
	return VelocitySummary{
		NewLast30Days: counts[months-1] - counts[months-2],
		Trend:         a.velocityTrend(res.MonthlyGrowthRate),
		Sustainable:   res.MonthlyGrowthRate >= t.VelocityMinGrowth && res.MonthlyGrowthRate <= t.VelocityMaxGrowth,
		Acceleration:  res.Acceleration,
		Health:        res.Health,
		History:       history,
	}
}

func (a *Analyzer) velocityTrend(growth float64) string {
	t := a.cfg.Thresholds
	switch {
	case growth > t.VelocityMinGrowth:
		return TrendGrowing
	case growth < -t.VelocityMinGrowth:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// qualityScore blends authority mix, dofollow share, and referring-domain
// diversity into a 0-100 grade, then subtracts for flagged toxic links.
func (a *Analyzer) qualityScore(profile LinkProfile, toxic []ToxicLink) int {
	if profile.TotalBacklinks == 0 {
		return 0
	}
	w := a.cfg.Thresholds.AuthorityWeights

	weighted := w.High*float64(profile.HighAuthority) +
		w.Medium*float64(profile.MediumAuthority) +
		w.Low*float64(profile.LowAuthority)
	avgWeight := weighted / float64(profile.TotalBacklinks)

	score := avgWeight / w.High * 60
	score += profile.DofollowRatio * 25
	score += math.Min(15, float64(profile.ReferringDomains)/10)

	for _, t := range toxic {
		switch t.Severity {
		case SeverityHigh:
			score -= 5
		case SeverityMedium:
			score -= 2
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}
