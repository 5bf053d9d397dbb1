package romantic

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"moderation-service/internal/models"
)

func testCorpus() []models.RomanticEntry {
	return []models.RomanticEntry{
		{InputPhrase: "Tumhari smile meri day ban jati hai", Response: "Tumhara pyaar hi meri smile ka reason hai", Category: "compliments", Confidence: 0.95},
		{InputPhrase: "Missing you like crazy", Response: "Same here, time tumhare saath hi fast chalta hai", Category: "missing_you", Confidence: 0.95},
		{InputPhrase: "I love you so much", Response: "I love you more", Category: "romantic_messages", Confidence: 0.95},
		{InputPhrase: "Good morning sweetheart", Response: "Good morning!", Category: "general", Confidence: 0.9},
	}
}

func newTestMatcher(entries []models.RomanticEntry, threshold float64) *Matcher {
	m := NewMatcher(entries, threshold, zap.NewNop())
	m.SetRand(rand.New(rand.NewSource(7)))
	return m
}

func TestIsRomanticInput(t *testing.T) {
	m := newTestMatcher(testCorpus(), 0)

	assert.True(t, m.IsRomanticInput("I LOVE long walks"))
	assert.True(t, m.IsRomanticInput("tumhari yaad aa rahi hai"))
	assert.True(t, m.IsRomanticInput("want to grab a coffee?"))
	assert.False(t, m.IsRomanticInput("how do I learn Python?"))
	assert.False(t, m.IsRomanticInput(""))
}

func TestMatch_ExactWinsImmediately(t *testing.T) {
	m := newTestMatcher(testCorpus(), 0)

	match := m.Match("tumhari SMILE meri day ban jati hai")
	require.NotNil(t, match)
	assert.Equal(t, 1.0, match.Score)
	assert.Equal(t, "compliments", match.Entry.Category)
	assert.Equal(t, "Tumhara pyaar hi meri smile ka reason hai", match.Entry.Response)
}

func TestMatch_ExactPrecedesFuzzy(t *testing.T) {
	// A corpus where a near-duplicate of the input exists alongside an
	// exact entry: the exact one must win even though it scans later.
	entries := []models.RomanticEntry{
		{InputPhrase: "I love you so muchh", Response: "near", Category: "a"},
		{InputPhrase: "I love you so much", Response: "exact", Category: "b"},
	}
	m := newTestMatcher(entries, 0)

	match := m.Match("I love you so much")
	require.NotNil(t, match)
	assert.Equal(t, "exact", match.Entry.Response)
	assert.Equal(t, 1.0, match.Score)
}

func TestMatch_FuzzyAboveThreshold(t *testing.T) {
	m := newTestMatcher(testCorpus(), 0.6)

	// One typo away from the corpus phrase.
	match := m.Match("Missing you like crazyy")
	require.NotNil(t, match)
	assert.Equal(t, "missing_you", match.Entry.Category)
	assert.Greater(t, match.Score, 0.9)
	assert.Less(t, match.Score, 1.0)
}

func TestMatch_NothingClearsThreshold(t *testing.T) {
	m := newTestMatcher(testCorpus(), 0.6)
	assert.Nil(t, m.Match("completely unrelated database question"))
}

func TestMatch_ThresholdMonotonic(t *testing.T) {
	input := "Missing you like crazyy"

	loose := newTestMatcher(testCorpus(), 0.6)
	strict := newTestMatcher(testCorpus(), 0.99)

	require.NotNil(t, loose.Match(input))
	assert.Nil(t, strict.Match(input), "raising the threshold must never create a match")
}

func TestMatch_TieKeepsFirstEntry(t *testing.T) {
	// Both entries are one substitution from the input, so their scores are
	// equal; insertion order decides.
	entries := []models.RomanticEntry{
		{InputPhrase: "love ab", Response: "first", Category: "a"},
		{InputPhrase: "love ba", Response: "second", Category: "b"},
	}
	m := newTestMatcher(entries, 0.5)

	match := m.Match("love aa")
	require.NotNil(t, match)
	assert.Equal(t, "first", match.Entry.Response)
}

func TestProcessRomanticInput(t *testing.T) {
	m := newTestMatcher(testCorpus(), 0.6)

	result := m.ProcessRomanticInput("I love you so much")
	assert.True(t, result.Success)
	assert.Equal(t, "I love you more", result.Response)
	assert.Equal(t, "romantic_messages", result.Category)
	assert.Equal(t, 1.0, result.MatchScore)

	miss := m.ProcessRomanticInput("what time is it")
	assert.False(t, miss.Success)
	assert.Empty(t, miss.Response)
}

func TestRandomResponseByCategory(t *testing.T) {
	m := newTestMatcher(testCorpus(), 0)

	entry, err := m.RandomResponseByCategory("compliments")
	require.NoError(t, err)
	assert.Equal(t, "compliments", entry.Category)

	_, err = m.RandomResponseByCategory("nonexistent_category")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestRandomResponseByCategory_Seeded(t *testing.T) {
	entries := []models.RomanticEntry{
		{InputPhrase: "a", Response: "r1", Category: "x"},
		{InputPhrase: "b", Response: "r2", Category: "x"},
		{InputPhrase: "c", Response: "r3", Category: "x"},
	}

	m1 := NewMatcher(entries, 0, zap.NewNop())
	m1.SetRand(rand.New(rand.NewSource(99)))
	m2 := NewMatcher(entries, 0, zap.NewNop())
	m2.SetRand(rand.New(rand.NewSource(99)))

	for i := 0; i < 10; i++ {
		e1, err1 := m1.RandomResponseByCategory("x")
		e2, err2 := m2.RandomResponseByCategory("x")
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, e1.Response, e2.Response)
	}
}

func TestStatistics(t *testing.T) {
	m := newTestMatcher(testCorpus(), 0)
	stats := m.Statistics()

	assert.Equal(t, 4, stats.TotalRomanticResponses)
	assert.ElementsMatch(t, []string{"compliments", "missing_you", "romantic_messages", "general"}, stats.Categories)
	assert.Equal(t, 1, stats.ByCategory["compliments"])
}
