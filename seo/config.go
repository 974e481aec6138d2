package seo

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// WordLists holds the static vocabulary the analyzers work from. The lists
// are read-only after construction; per-environment tweaks go through
// DefaultWordLists + field overrides before NewAnalyzer is called.
type WordLists struct {
	// Stopwords grouped by part of speech. Keyword extraction filters
	// against the union of all groups.
	Stopwords map[string][]string `json:"stopwords"`

	// Vocabulary for synthesizing plausible referring domains.
	DomainAdjectives []string `json:"domain_adjectives"`
	DomainNouns      []string `json:"domain_nouns"`
	DomainTLDs       []string `json:"domain_tlds"`

	// Toxic-link detection vocabulary.
	SpamIndicators    []string `json:"spam_indicators"`
	ExplicitSpamTerms []string `json:"explicit_spam_terms"`
	SuspiciousTLDs    []string `json:"suspicious_tlds"`
	GenericAnchors    []string `json:"generic_anchors"`
	RiskyPageTypes    []string `json:"risky_page_types"`

	// High-quality anchor phrases, used when synthesizing keyword anchors.
	QualityAnchorKeywords []string `json:"quality_anchor_keywords"`

	// Ordered link categories; first keyword match wins.
	LinkCategories []LinkCategory `json:"link_categories"`
}

// LinkCategory maps URL/anchor keywords to a named link bucket.
type LinkCategory struct {
	Name        string   `json:"name"`
	Keywords    []string `json:"keywords"`
	Description string   `json:"description"`
}

// DefaultWordLists returns the built-in vocabulary.
func DefaultWordLists() WordLists {
	return WordLists{
		Stopwords: map[string][]string{
			"articles": {
				"the", "a", "an", "this", "that", "these", "those", "some", "any", "all", "each", "every", "other",
			},
			"pronouns": {
				"i", "me", "my", "mine", "myself",
				"we", "us", "our", "ours", "ourselves",
				"you", "your", "yours", "yourself", "yourselves",
				"he", "him", "his", "himself",
				"she", "her", "hers", "herself",
				"it", "its", "itself",
				"they", "them", "their", "theirs", "themselves",
				"who", "whom", "whose", "what", "which", "whoever", "whomever", "whatever", "whichever",
			},
			"auxiliaries": {
				"is", "am", "are", "was", "were", "be", "being", "been",
				"do", "does", "did", "doing",
				"have", "has", "had", "having",
				"can", "could", "will", "would", "shall", "should", "may", "might", "must", "ought",
			},
			"prepositions": {
				"in", "on", "at", "by", "for", "from", "to", "of", "with", "without",
				"through", "during", "before", "after",
				"above", "below", "between", "among", "into", "out", "up", "down", "over", "under",
				"near", "about",
			},
			"conjunctions": {
				"and", "or", "but", "nor", "yet", "so", "because", "as", "if", "unless", "when", "where", "while", "until",
			},
			"adverbs": {
				"not", "no", "yes", "very", "just", "only", "more", "most", "less", "least",
				"also", "too", "so", "then", "now", "here", "there",
				"how", "why", "when", "where",
				"almost", "already", "always", "never", "ever", "still",
			},
			"fillers": {
				"one", "two", "first", "second", "thing", "way", "time", "day", "year",
				"place", "people", "man", "woman", "person",
				"said", "say", "says", "told", "tell", "tells",
				"being", "having", "getting", "making",
			},
			"common_words": {
				"etc", "amp", "nbsp", "quot", "apos",
				"use", "used", "using",
				"new", "old", "good", "bad", "best", "worst",
				"same", "different", "like", "unlike", "such",
				"even", "own", "many", "several", "few", "much",
			},
			"single_letters": {
				"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m",
				"n", "o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z",
			},
		},

		DomainAdjectives: []string{
			"digital", "smart", "pro", "best", "top", "perfect", "ultimate", "premium",
			"advanced", "elite", "expert", "professional", "trusted", "leading", "modern",
			"innovative", "optimal", "superior", "dynamic", "strategic",
		},
		DomainNouns: []string{
			"solutions", "services", "hub", "central", "studio", "agency", "tech", "labs",
			"media", "group", "marketing", "consulting", "insights", "analytics", "strategy",
			"content", "web", "digital", "online", "resources", "tools", "platform", "network",
			"exchange", "marketplace", "directory", "portal", "center", "syndicate",
		},
		DomainTLDs: []string{
			"com", "net", "org", "co", "io", "info", "biz", "blog", "site", "online",
			"tech", "website", "space", "work", "news", "guru",
		},

		SpamIndicators: []string{
			"spam", "casino", "poker", "viagra", "pharma", "loan", "debt",
			"crypto", "forex", "trading", "xxx", "adult", "porn", "cheap",
			"free", "money", "weight loss", "dating", "escort",
		},
		ExplicitSpamTerms: []string{
			"casino", "poker", "viagra", "xxx", "adult", "porn", "escort",
		},
		SuspiciousTLDs: []string{
			".biz", ".info", ".tk", ".ml", ".ga", ".cf", ".gq",
		},
		GenericAnchors: []string{
			"click here", "read more", "check this out", "here", "link",
			"more info", "learn more", "continue reading", "view more",
		},
		RiskyPageTypes: []string{
			"forum", "comment", "blog-comment", "guestbook", "profile", "directory",
		},

		QualityAnchorKeywords: []string{
			"best seo tools", "digital marketing", "seo guide", "industry leader",
			"seo services", "marketing tools", "analytics platform", "optimization guide",
			"keyword research", "link building", "content strategy", "ppc management",
			"social media marketing", "conversion optimization", "web analytics",
		},

		LinkCategories: []LinkCategory{
			{
				Name:        "navigation",
				Keywords:    []string{"home", "about", "contact", "menu", "nav", "header", "footer", "sitemap"},
				Description: "Navigation and menu links",
			},
			{
				Name:        "ecommerce",
				Keywords:    []string{"shop", "store", "cart", "checkout", "buy", "purchase", "order", "product", "products", "item", "items"},
				Description: "E-commerce and shopping links",
			},
			{
				Name:        "product",
				Keywords:    []string{"product", "item", "catalog", "inventory", "merchandise", "goods", "sku"},
				Description: "Product pages and listings",
			},
			{
				Name:        "account",
				Keywords:    []string{"login", "signup", "register", "account", "profile", "dashboard", "settings", "logout", "signin"},
				Description: "User account and authentication links",
			},
			{
				Name:        "support",
				Keywords:    []string{"help", "support", "faq", "documentation", "docs", "tutorial", "guide", "contact", "service"},
				Description: "Support and help resources",
			},
			{
				Name:        "social",
				Keywords:    []string{"facebook", "twitter", "instagram", "linkedin", "youtube", "pinterest", "tiktok", "reddit", "social", "share"},
				Description: "Social media links",
			},
			{
				Name:        "legal",
				Keywords:    []string{"privacy", "terms", "disclaimer", "legal", "cookie", "policy", "gdpr", "compliance", "license"},
				Description: "Legal and policy pages",
			},
			{
				Name:        "content",
				Keywords:    []string{"blog", "article", "post", "news", "story", "press", "magazine", "publication"},
				Description: "Blog and content pages",
			},
			{
				Name:        "business",
				Keywords:    []string{"pricing", "plans", "features", "case-study", "resources", "solutions", "enterprise", "demo"},
				Description: "Business and marketing pages",
			},
			{
				Name:        "careers",
				Keywords:    []string{"career", "careers", "jobs", "hiring", "employment", "work", "join", "team", "vacancy"},
				Description: "Career and job opportunity links",
			},
			{
				Name:        "external",
				Keywords:    []string{}, // decided by host comparison, not keywords
				Description: "External third-party links",
			},
			{
				Name:        "media",
				Keywords:    []string{"image", "video", "pdf", "download", "media", "gallery", "photo", "audio", "file"},
				Description: "Media and downloadable content",
			},
			{
				Name:        "utility",
				Keywords:    []string{"search", "filter", "tag", "category", "archive", "rss", "feed", "print", "email"},
				Description: "Utility and functional pages",
			},
		},
	}
}

// ToxicityWeights are the additive points per matched risk factor.
type ToxicityWeights struct {
	VeryLowDA        int `json:"very_low_da"`       // DA below VeryLowDAMax
	LowDA            int `json:"low_da"`            // DA in [VeryLowDAMax, LowDAMax)
	SuspiciousDomain int `json:"suspicious_domain"` // domain contains a spam indicator
	SuspiciousTLD    int `json:"suspicious_tld"`    // TLD on the suspicious list
	KeywordStuffing  int `json:"keyword_stuffing"`  // anchor text over the stuffing length
	SpamKeywords     int `json:"spam_keywords"`     // matched indicator is an explicit spam term
	RiskyPageType    int `json:"risky_page_type"`   // comment/forum style placements
	GenericAnchor    int `json:"generic_anchor"`    // "click here" style anchors
}

// AuthorityWeights maps authority tiers to their numeric link weight.
type AuthorityWeights struct {
	High   float64 `json:"high"`
	Medium float64 `json:"medium"`
	Low    float64 `json:"low"`
}

// Thresholds collects every numeric breakpoint the analyzers use.
// Boundary semantics are documented on the functions that consume them.
type Thresholds struct {
	// Keyword extraction defaults.
	MinKeywordLength int `json:"min_keyword_length"`
	TopKeywordsCount int `json:"top_keywords_count"`

	// Page speed (milliseconds / kilobytes).
	SpeedGoodMs      float64 `json:"speed_good_ms"`      // under this: Good
	SpeedSlowMs      float64 `json:"speed_slow_ms"`      // over this: first penalty
	SpeedWarningMs   float64 `json:"speed_warning_ms"`   // over this: second penalty
	PageSizeWarnKB   float64 `json:"page_size_warn_kb"`  // over this: size penalty
	SpeedPenaltySlow int     `json:"speed_penalty_slow"` // points lost past SpeedSlowMs
	SpeedPenaltyWarn int     `json:"speed_penalty_warn"` // points lost past SpeedWarningMs
	PageSizePenalty  int     `json:"page_size_penalty"`  // points lost past PageSizeWarnKB

	// Domain authority tiering. High is da >= AuthorityHighMin, medium is
	// [AuthorityMediumMin, AuthorityHighMin), everything below is low.
	AuthorityHighMin   int              `json:"authority_high_min"`
	AuthorityMediumMin int              `json:"authority_medium_min"`
	AuthorityWeights   AuthorityWeights `json:"authority_weights"`

	// Toxicity scoring.
	VeryLowDAMax         int             `json:"very_low_da_max"` // da < this: very_low_da
	LowDAMax             int             `json:"low_da_max"`      // da < this: low_da
	AnchorStuffingLength int             `json:"anchor_stuffing_length"`
	ToxicityWeights      ToxicityWeights `json:"toxicity_weights"`
	ToxicityHigh         int             `json:"toxicity_high"`   // score >= this: high severity
	ToxicityMedium       int             `json:"toxicity_medium"` // score >= this: medium severity
	ToxicityLow          int             `json:"toxicity_low"`    // score >= this: worth reporting

	// Link velocity. Acceleration bands are percentage points of growth-rate
	// change, lower bound inclusive.
	AccelAccelerating float64 `json:"accel_accelerating"`
	AccelGrowing      float64 `json:"accel_growing"`
	AccelSlowing      float64 `json:"accel_slowing"`
	AccelDeclining    float64 `json:"accel_declining"`
	VelocityStalled   int     `json:"velocity_stalled_threshold"` // fewer new links than this: stalled
	VelocityExcellent int     `json:"velocity_excellent_ratio"`   // 1 new link per this many existing: excellent
	VelocityGood      int     `json:"velocity_good_ratio"`        // 1 new link per this many existing: good
	VelocityMinGrowth float64 `json:"velocity_min_growth"`        // sustainable monthly band, low end
	VelocityMaxGrowth float64 `json:"velocity_max_growth"`        // sustainable monthly band, high end

	// Competitor gap impact.
	AuthorityGapHigh     int     `json:"authority_gap_high"`
	AuthorityGapMedium   int     `json:"authority_gap_medium"`
	DiversityGapHigh     int     `json:"diversity_gap_high"`
	DiversityGapMedium   int     `json:"diversity_gap_medium"`
	DofollowGapThreshold float64 `json:"dofollow_gap_threshold"`
	ConfidenceHigh       float64 `json:"confidence_high"`
	ConfidenceMedium     float64 `json:"confidence_medium"`
	ConfidenceLow        float64 `json:"confidence_low"`
	CompetitorsToAnalyze int     `json:"competitors_to_analyze"`

	// Synthesized link profile shape (shares of total referring pages).
	LinkTypeHomepage float64 `json:"link_type_homepage"`
	LinkTypeInner    float64 `json:"link_type_inner_pages"`
	LinkTypeResource float64 `json:"link_type_resource_links"`
	LinkTypeBlog     float64 `json:"link_type_blog_links"`
}

// DefaultThresholds returns the built-in breakpoints.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinKeywordLength: 3,
		TopKeywordsCount: 10,

		SpeedGoodMs:      800,
		SpeedSlowMs:      1000,
		SpeedWarningMs:   2000,
		PageSizeWarnKB:   2000,
		SpeedPenaltySlow: 10,
		SpeedPenaltyWarn: 20,
		PageSizePenalty:  10,

		AuthorityHighMin:   60,
		AuthorityMediumMin: 30,
		AuthorityWeights: AuthorityWeights{
			High:   3.0,
			Medium: 1.5,
			Low:    1.0,
		},

		VeryLowDAMax:         10,
		LowDAMax:             20,
		AnchorStuffingLength: 60,
		ToxicityWeights: ToxicityWeights{
			VeryLowDA:        40,
			LowDA:            20,
			SuspiciousDomain: 50,
			SuspiciousTLD:    15,
			KeywordStuffing:  20,
			SpamKeywords:     25,
			RiskyPageType:    30,
			GenericAnchor:    15,
		},
		ToxicityHigh:   70,
		ToxicityMedium: 40,
		ToxicityLow:    20,

		AccelAccelerating: 20,
		AccelGrowing:      5,
		AccelSlowing:      -5,
		AccelDeclining:    -20,
		VelocityStalled:   1,
		VelocityExcellent: 5,
		VelocityGood:      10,
		VelocityMinGrowth: 0.05,
		VelocityMaxGrowth: 0.15,

		AuthorityGapHigh:     15,
		AuthorityGapMedium:   5,
		DiversityGapHigh:     50,
		DiversityGapMedium:   20,
		DofollowGapThreshold: 0.05,
		ConfidenceHigh:       0.85,
		ConfidenceMedium:     0.75,
		ConfidenceLow:        0.60,
		CompetitorsToAnalyze: 3,

		LinkTypeHomepage: 0.30,
		LinkTypeInner:    0.50,
		LinkTypeResource: 0.15,
		LinkTypeBlog:     0.05,
	}
}

// Config is the full static configuration consumed by an Analyzer.
type Config struct {
	Lists      WordLists  `json:"lists"`
	Thresholds Thresholds `json:"thresholds"`
}

// DefaultConfig returns the built-in word lists and thresholds.
func DefaultConfig() Config {
	return Config{
		Lists:      DefaultWordLists(),
		Thresholds: DefaultThresholds(),
	}
}

// LoadConfig returns the default configuration overlaid with whatever fields
// the JSON file at path provides. An empty path or a missing file is not an
// error; the defaults are used as-is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("file", path).Msg("configuration file not found, using defaults")
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the analyzers cannot classify with.
func (c Config) Validate() error {
	if len(c.Lists.Stopwords) == 0 {
		return fmt.Errorf("config: stopword lists are empty")
	}
	if len(c.Lists.DomainAdjectives) == 0 || len(c.Lists.DomainNouns) == 0 || len(c.Lists.DomainTLDs) == 0 {
		return fmt.Errorf("config: domain word lists must not be empty")
	}
	if len(c.Lists.SpamIndicators) == 0 {
		return fmt.Errorf("config: spam indicator list is empty")
	}
	if len(c.Lists.LinkCategories) == 0 {
		return fmt.Errorf("config: link category table is empty")
	}
	for _, w := range c.Lists.DomainAdjectives {
		if !isDomainWord(w) {
			return fmt.Errorf("config: domain adjective %q is not lowercase alphanumeric", w)
		}
	}
	for _, w := range c.Lists.DomainNouns {
		if !isDomainWord(w) {
			return fmt.Errorf("config: domain noun %q is not lowercase alphanumeric", w)
		}
	}
	for _, tld := range c.Lists.DomainTLDs {
		if tld == "" || strings.Trim(tld, "abcdefghijklmnopqrstuvwxyz") != "" {
			return fmt.Errorf("config: TLD %q is not lowercase alphabetic", tld)
		}
	}
	t := c.Thresholds
	if t.AuthorityMediumMin >= t.AuthorityHighMin {
		return fmt.Errorf("config: authority breakpoints out of order (medium %d >= high %d)", t.AuthorityMediumMin, t.AuthorityHighMin)
	}
	if t.VeryLowDAMax >= t.LowDAMax {
		return fmt.Errorf("config: DA toxicity breakpoints out of order (%d >= %d)", t.VeryLowDAMax, t.LowDAMax)
	}
	if t.ToxicityMedium >= t.ToxicityHigh {
		return fmt.Errorf("config: toxicity severity breakpoints out of order (%d >= %d)", t.ToxicityMedium, t.ToxicityHigh)
	}
	if !(t.AccelDeclining < t.AccelSlowing && t.AccelSlowing < t.AccelGrowing && t.AccelGrowing < t.AccelAccelerating) {
		return fmt.Errorf("config: acceleration bands out of order")
	}
	if t.VelocityExcellent <= 0 || t.VelocityGood <= 0 {
		return fmt.Errorf("config: velocity ratios must be positive")
	}
	return nil
}

func isDomainWord(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
