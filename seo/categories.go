package seo

import (
	"net/url"
	"strings"
)

// Category names with special handling outside the keyword table.
const (
	CategoryExternal      = "external"
	CategoryUncategorized = "uncategorized"
)

// CategorizeLink buckets one link by destination and vocabulary. A link whose
// host resolves to a different site than pageHost is external regardless of
// keywords. Otherwise the category table is scanned in order, matching
// keywords against the lowercased URL and anchor, and the first hit wins.
// Links nothing matches land in "uncategorized".
func (a *Analyzer) CategorizeLink(rawURL, anchorText, pageHost string) string {
	trimmed := strings.TrimSpace(rawURL)
	if u, err := url.Parse(trimmed); err == nil && u.Host != "" && pageHost != "" {
		if NormalizeDomain(u.Host) != NormalizeDomain(pageHost) {
			return CategoryExternal
		}
	}

	href := strings.ToLower(trimmed)
	anchor := strings.ToLower(anchorText)
	for _, cat := range a.cfg.Lists.LinkCategories {
		for _, kw := range cat.Keywords {
			if strings.Contains(href, kw) || strings.Contains(anchor, kw) {
				return cat.Name
			}
		}
	}
	return CategoryUncategorized
}

// CategoryDescription returns the table's description for a category name,
// or "" for names not in the table.
func (a *Analyzer) CategoryDescription(name string) string {
	for _, cat := range a.cfg.Lists.LinkCategories {
		if cat.Name == name {
			return cat.Description
		}
	}
	return ""
}
