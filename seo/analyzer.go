// Package seo implements the signal-estimation core: classifiers that turn
// raw backlink, authority, and growth inputs into categorical judgments, plus
// the synthesizers that produce plausible profiles for domains we cannot
// crawl. Everything here is pure computation; network inspection lives in the
// tools package.
package seo

import (
	"math/rand"
	"strings"
)

// Rand supplies randomness for domain and profile synthesis. math/rand's
// *rand.Rand satisfies it, so tests can pass a seeded source. A nil Rand
// given to NewAnalyzer falls back to the process-wide locked source.
type Rand interface {
	Intn(n int) int
}

type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) }

// Analyzer evaluates SEO signals against an immutable Config. It holds no
// mutable state besides the injected random source, so a single Analyzer is
// safe for concurrent use as long as its Rand is.
type Analyzer struct {
	cfg Config
	rng Rand

	stopwords      map[string]struct{}
	genericAnchors map[string]struct{}
	riskyPageTypes map[string]struct{}
	suspiciousTLDs map[string]struct{}
}

// NewAnalyzer validates cfg and builds the lookup tables the classifiers
// need. rng may be nil.
func NewAnalyzer(cfg Config, rng Rand) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = globalRand{}
	}

	a := &Analyzer{
		cfg:            cfg,
		rng:            rng,
		stopwords:      make(map[string]struct{}),
		genericAnchors: make(map[string]struct{}),
		riskyPageTypes: make(map[string]struct{}),
		suspiciousTLDs: make(map[string]struct{}),
	}
	for _, group := range cfg.Lists.Stopwords {
		for _, w := range group {
			a.stopwords[strings.ToLower(w)] = struct{}{}
		}
	}
	for _, anchor := range cfg.Lists.GenericAnchors {
		a.genericAnchors[strings.ToLower(anchor)] = struct{}{}
	}
	for _, pt := range cfg.Lists.RiskyPageTypes {
		a.riskyPageTypes[strings.ToLower(pt)] = struct{}{}
	}
	for _, tld := range cfg.Lists.SuspiciousTLDs {
		a.suspiciousTLDs[strings.ToLower(strings.TrimPrefix(tld, "."))] = struct{}{}
	}
	return a, nil
}

// Config returns the configuration the analyzer was built with.
func (a *Analyzer) Config() Config { return a.cfg }

// NormalizeDomain strips scheme, www prefix, path, and whitespace so raw user
// input and extracted hosts compare equal.
func NormalizeDomain(domain string) string {
	domain = strings.TrimSpace(strings.ToLower(domain))
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "www.")
	if i := strings.IndexByte(domain, '/'); i >= 0 {
		domain = domain[:i]
	}
	return domain
}

// tldOf returns the final label of a domain name, without the dot.
func tldOf(domain string) string {
	domain = strings.TrimSuffix(domain, ".")
	if i := strings.LastIndexByte(domain, '.'); i >= 0 {
		return domain[i+1:]
	}
	return ""
}
