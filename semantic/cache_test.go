package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apilens/apilens/fieldtype"
)

func TestCacheKeyStable(t *testing.T) {
	a := CacheKey("items.price", "price", fieldtype.Number, []any{1.0, 2.0}, nil)
	b := CacheKey("items.price", "price", fieldtype.Number, []any{1.0, 2.0}, nil)
	assert.Equal(t, a, b)
}

func TestCacheKeyTruncatesSamplesToThree(t *testing.T) {
	a := CacheKey("p", "f", fieldtype.Number, []any{1.0, 2.0, 3.0}, nil)
	b := CacheKey("p", "f", fieldtype.Number, []any{1.0, 2.0, 3.0, 4.0, 5.0}, nil)
	c := CacheKey("p", "f", fieldtype.Number, []any{1.0, 2.0}, nil)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestCacheKeyDistinguishesHints(t *testing.T) {
	a := CacheKey("p", "f", fieldtype.String, nil, nil)
	b := CacheKey("p", "f", fieldtype.String, nil, &Hints{Format: "email"})
	assert.NotEqual(t, a, b)
}

func TestCacheRoundTrip(t *testing.T) {
	c := NewCache()
	assert.Equal(t, 0, c.Size())
	assert.False(t, c.Has("k"))

	want := []Result{{Category: "price", Confidence: 0.9, Level: LevelHigh}}
	c.Set("k", want)
	assert.True(t, c.Has("k"))
	assert.Equal(t, 1, c.Size())

	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, want, got)

	c.Clear()
	assert.Equal(t, 0, c.Size())
	assert.False(t, c.Has("k"))
}
