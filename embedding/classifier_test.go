package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	art, err := DefaultArtifact()
	require.NoError(t, err)
	return NewClassifier(art)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"price"}, Tokenize("price"))
	assert.Equal(t, []string{"unit_price", "unit", "price"}, Tokenize("unit_price"))
	assert.Equal(t, []string{"unitprice", "unit", "price"}, Tokenize("unitPrice"))
	assert.Equal(t, []string{"avatar-url", "avatar", "url"}, Tokenize("avatar-url"))
	assert.Equal(t, []string{"httpserver", "http", "server"}, Tokenize("HTTPServer"))
	assert.Equal(t, []string{"a.b/c", "a", "b", "c"}, Tokenize("a.b/c"))
	assert.Nil(t, Tokenize(""))
}

func TestTokenizeDeduplicates(t *testing.T) {
	assert.Equal(t, []string{"price_price", "price"}, Tokenize("price_price"))
}

func TestEmbedUnknownTokensIsNil(t *testing.T) {
	c := newTestClassifier(t)
	assert.Nil(t, c.Embed([]string{"xyznonexistent"}))
	assert.Nil(t, c.Embed(nil))
}

func TestEmbedIsNormalized(t *testing.T) {
	c := newTestClassifier(t)
	v := c.Embed(Tokenize("unit_price"))
	require.NotNil(t, v)
	assert.InDelta(t, 1.0, dot(v, v), 1e-4)
}

func TestClassifyKnownName(t *testing.T) {
	c := newTestClassifier(t)
	cat, score, ok := c.Classify("price")
	require.True(t, ok)
	assert.Equal(t, "price", cat)
	assert.Greater(t, score, 0.9)
}

func TestClassifyCommonNames(t *testing.T) {
	c := newTestClassifier(t)
	for name, want := range map[string]string{
		"rating":     "rating",
		"comment":    "description",
		"email":      "email",
		"thumbnail":  "image",
		"created_at": "date",
	} {
		cat, _, ok := c.Classify(name)
		require.True(t, ok, "classify %q", name)
		assert.Equal(t, want, cat, "classify %q", name)
	}
}

func TestClassifyUnknownNameFails(t *testing.T) {
	c := newTestClassifier(t)
	_, _, ok := c.Classify("xyznonexistent")
	assert.False(t, ok)
}

func TestScoresCachedAndInvalidated(t *testing.T) {
	c := newTestClassifier(t)
	a := c.Scores("price")
	b := c.Scores("price")
	require.NotNil(t, a)
	assert.Equal(t, a, b)

	c.Invalidate()
	c.mu.RLock()
	n := len(c.scores)
	c.mu.RUnlock()
	assert.Equal(t, 0, n)
}

func TestScoresRange(t *testing.T) {
	c := newTestClassifier(t)
	scores := c.Scores("rating")
	require.NotNil(t, scores)
	var sawOne, sawZero bool
	for _, s := range scores {
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
		if s == 1.0 {
			sawOne = true
		}
		if s == 0.0 {
			sawZero = true
		}
	}
	assert.True(t, sawOne)
	assert.True(t, sawZero)
}

func TestParseArtifactRejectsBadInput(t *testing.T) {
	_, err := ParseArtifact([]byte(`{`))
	assert.Error(t, err)

	_, err = ParseArtifact([]byte(`{"model":"m","dim":0,"centroids":{"a":[]}}`))
	assert.Error(t, err)

	_, err = ParseArtifact([]byte(`{"model":"m","dim":2,"vectors":{"t":[1]},"centroids":{"a":[1,0]}}`))
	assert.Error(t, err)
}
