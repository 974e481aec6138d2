package seo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeywords_FiltersStopwords(t *testing.T) {
	a := newTestAnalyzer(t)

	keywords := a.ExtractKeywords("The digital marketing industry is great. I am very happy about it.", 3, 10)

	words := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		words = append(words, kw.Word)
	}

	assert.Subset(t, words, []string{"digital", "marketing", "industry"})
	for _, stop := range []string{"the", "i", "am", "is", "about", "it", "very"} {
		assert.NotContains(t, words, stop)
	}
}

func TestExtractKeywords_CountsAndRanks(t *testing.T) {
	a := newTestAnalyzer(t)

	keywords := a.ExtractKeywords("seo tools and seo tips, tools for seo", 3, 10)

	require.Len(t, keywords, 3)
	assert.Equal(t, KeywordCount{Word: "seo", Count: 3}, keywords[0])
	assert.Equal(t, KeywordCount{Word: "tools", Count: 2}, keywords[1])
	assert.Equal(t, KeywordCount{Word: "tips", Count: 1}, keywords[2])
}

func TestExtractKeywords_TiesKeepFirstSeenOrder(t *testing.T) {
	a := newTestAnalyzer(t)

	keywords := a.ExtractKeywords("alpha beta alpha beta gamma", 3, 10)

	require.Len(t, keywords, 3)
	assert.Equal(t, "alpha", keywords[0].Word)
	assert.Equal(t, "beta", keywords[1].Word)
	assert.Equal(t, "gamma", keywords[2].Word)
}

func TestExtractKeywords_SplitsOnNonAlphanumeric(t *testing.T) {
	a := newTestAnalyzer(t)

	keywords := a.ExtractKeywords("state-of-the-art design, really state-of-the-art!", 3, 10)

	require.Len(t, keywords, 4)
	assert.Equal(t, KeywordCount{Word: "state", Count: 2}, keywords[0])
	assert.Equal(t, KeywordCount{Word: "art", Count: 2}, keywords[1])
}

func TestExtractKeywords_MinLength(t *testing.T) {
	a := newTestAnalyzer(t)

	keywords := a.ExtractKeywords("go is ok", 3, 10)

	assert.Empty(t, keywords)
}

func TestExtractKeywords_TopNTruncates(t *testing.T) {
	a := newTestAnalyzer(t)

	keywords := a.ExtractKeywords("alpha alpha alpha beta beta gamma delta epsilon", 3, 2)

	require.Len(t, keywords, 2)
	assert.Equal(t, "alpha", keywords[0].Word)
	assert.Equal(t, "beta", keywords[1].Word)
}

func TestExtractKeywords_EmptyInput(t *testing.T) {
	a := newTestAnalyzer(t)

	assert.Empty(t, a.ExtractKeywords("", 3, 10))
	assert.Empty(t, a.ExtractKeywords("the a an", 3, 10))
	assert.Empty(t, a.ExtractKeywords("real words here", 3, 0))
}

func TestIsStopword(t *testing.T) {
	a := newTestAnalyzer(t)

	assert.True(t, a.IsStopword("the"))
	assert.True(t, a.IsStopword("The"))
	assert.True(t, a.IsStopword("BECAUSE"))
	assert.False(t, a.IsStopword("digital"))
	assert.False(t, a.IsStopword(""))
}

func TestCountFilteredWords(t *testing.T) {
	a := newTestAnalyzer(t)

	// "the" and "is" are stopwords, "ok" is too short; the rest count,
	// repeats included.
	total := a.CountFilteredWords("the keyword keyword is ok research", 3)

	assert.Equal(t, 3, total)
}
