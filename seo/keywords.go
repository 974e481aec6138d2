package seo

import (
	"sort"
	"strings"
	"unicode"
)

// KeywordCount is one extracted keyword with its occurrence count.
type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// IsStopword reports whether word belongs to any stopword group. The check
// is against the lowercased word.
func (a *Analyzer) IsStopword(word string) bool {
	_, ok := a.stopwords[strings.ToLower(word)]
	return ok
}

// ExtractKeywords tokenizes text on non-alphanumeric boundaries, lowercases
// every token, drops tokens shorter than minLength or on the stopword list,
// and returns the topN most frequent keywords. Ties keep first-seen order.
// Empty or all-stopword input yields an empty result.
func (a *Analyzer) ExtractKeywords(text string, minLength, topN int) []KeywordCount {
	if topN <= 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string

	for _, tok := range tokenize(text) {
		if len(tok) < minLength {
			continue
		}
		if a.IsStopword(tok) {
			continue
		}
		if _, seen := counts[tok]; !seen {
			order = append(order, tok)
		}
		counts[tok]++
	}
	if len(order) == 0 {
		return nil
	}

	keywords := make([]KeywordCount, 0, len(order))
	for _, w := range order {
		keywords = append(keywords, KeywordCount{Word: w, Count: counts[w]})
	}
	// Stable sort keeps first-seen order among equal counts.
	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Count > keywords[j].Count
	})
	if len(keywords) > topN {
		keywords = keywords[:topN]
	}
	return keywords
}

// CountFilteredWords returns how many token occurrences survive the stopword
// and length filters. The tools layer reports it as total meaningful words.
func (a *Analyzer) CountFilteredWords(text string, minLength int) int {
	total := 0
	for _, tok := range tokenize(text) {
		if len(tok) < minLength || a.IsStopword(tok) {
			continue
		}
		total++
	}
	return total
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
