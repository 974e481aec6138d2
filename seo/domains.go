package seo

import (
	"strconv"
	"strings"
)

// Domain name shapes the synthesizer draws from.
const (
	patternSimple     = iota // adjective + noun
	patternHyphenated        // adjective-noun
	patternCompound          // noun + noun
	patternNounNumber        // noun + number
	patternNumbered          // adjective + noun + number
	patternSingle            // single noun
	patternCount
)

// GenerateDomain synthesizes a plausible referring-domain name from the
// configured word lists. Output is guaranteed lowercase, matches
// ^[a-z0-9-]+\.[a-z]+$, never starts or ends the name with a hyphen, and
// numeric suffixes are 2-3 digits.
func (a *Analyzer) GenerateDomain() string {
	return a.generateDomain(a.rng)
}

func (a *Analyzer) generateDomain(r Rand) string {
	adj := a.cfg.Lists.DomainAdjectives
	nouns := a.cfg.Lists.DomainNouns

	var name string
	switch r.Intn(patternCount) {
	case patternSimple:
		name = pick(r, adj) + pick(r, nouns)
	case patternHyphenated:
		name = pick(r, adj) + "-" + pick(r, nouns)
	case patternCompound:
		name = pick(r, nouns) + pick(r, nouns)
	case patternNounNumber:
		name = pick(r, nouns) + domainNumber(r)
	case patternNumbered:
		name = pick(r, adj) + pick(r, nouns) + domainNumber(r)
	default:
		name = pick(r, nouns)
	}

	return strings.ToLower(name + "." + pick(r, a.cfg.Lists.DomainTLDs))
}

// domainNumber returns a 2-3 digit suffix.
func domainNumber(r Rand) string {
	return strconv.Itoa(10 + r.Intn(990))
}

func pick(r Rand, words []string) string {
	return words[r.Intn(len(words))]
}
