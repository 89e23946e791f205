package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apilens/apilens/embedding"
	"github.com/apilens/apilens/importance"
	"github.com/apilens/apilens/layout"
	"github.com/apilens/apilens/schema"
	"github.com/apilens/apilens/semantic"
)

func newTestAnalyzer(t *testing.T, opts ...Option) *Analyzer {
	t.Helper()
	art, err := embedding.DefaultArtifact()
	require.NoError(t, err)
	scorer := semantic.NewScorer(semantic.StrategyEmbedding, embedding.NewClassifier(art))
	detector := semantic.NewDetector(semantic.NewRegistry(), scorer, semantic.NewCache())
	return New(detector, importance.NewAnalyzer(), opts...)
}

func TestAnalyzeReviewScenario(t *testing.T) {
	a := newTestAnalyzer(t)
	rep, err := a.Analyze([]byte(`[{"rating":5,"comment":"Great!"},{"rating":3,"comment":"Okay"}]`), "https://api.example.com/reviews")
	require.NoError(t, err)

	require.True(t, rep.Schema.Root.IsObjectArray())
	item := rep.Schema.Root.Items
	require.NotNil(t, item.FieldByName("rating"))
	require.NotNil(t, item.FieldByName("comment"))

	rating := rep.Semantics["$.rating"]
	assert.Equal(t, semantic.CategoryRating, rating.Category)
	assert.Equal(t, semantic.LevelHigh, rating.Level)
	assert.Equal(t, semantic.AppliedSmartDefault, rating.AppliedAt)

	assert.Equal(t, layout.CardList, rep.Root.Component)
	assert.Equal(t, 0.85, rep.Root.Confidence)
	assert.Equal(t, "review-pattern-detected", rep.Root.Reason)
}

func TestAnalyzeIdempotent(t *testing.T) {
	a := newTestAnalyzer(t)
	body := []byte(`[{"id":1,"title":"First","price":9.99},{"id":2,"title":"Second"}]`)

	one, err := a.Analyze(body, "test://items")
	require.NoError(t, err)
	two, err := a.Analyze(body, "test://items")
	require.NoError(t, err)

	assert.Equal(t, one.Semantics, two.Semantics)
	assert.Equal(t, one.Selections, two.Selections)
	assert.Equal(t, one.Root, two.Root)
	assert.Equal(t, one.Schema.Root, two.Schema.Root)
}

func TestAnalyzeObjectDocument(t *testing.T) {
	a := newTestAnalyzer(t)
	rep, err := a.Analyze([]byte(`{"name":"Ada Lovelace","email":"ada@example.com","phone":"+44 20 7946 0958","bio":"Mathematician"}`), "test://profile")
	require.NoError(t, err)

	assert.Equal(t, semantic.CategoryEmail, rep.Semantics["$.email"].Category)
	assert.Equal(t, layout.Hero, rep.Root.Component)
	assert.Equal(t, "profile-pattern", rep.Root.Reason)
}

func TestAnalyzeNestedSelections(t *testing.T) {
	a := newTestAnalyzer(t)
	body := []byte(`{"order":{"id":1},"lines":[{"sku":"A1","price":2.5,"name":"Tea"}],"notes":["short","tiny"]}`)
	rep, err := a.Analyze(body, "test://order")
	require.NoError(t, err)

	require.Contains(t, rep.Selections, "$.lines")
	require.Contains(t, rep.Selections, "$.order")
	require.Contains(t, rep.Selections, "$.notes")
	assert.Equal(t, layout.Chips, rep.Selections["$.notes"].Component)
}

func TestAnalyzeCompositeArraySemantics(t *testing.T) {
	a := newTestAnalyzer(t)
	body := []byte(`{"reviews":[{"rating":5,"comment":"Great stuff, loved it"},{"rating":2,"comment":"Not for me"}]}`)
	rep, err := a.Analyze(body, "test://product")
	require.NoError(t, err)

	arrayMeta, ok := rep.Semantics["$.reviews"]
	require.True(t, ok)
	assert.Equal(t, semantic.CategoryReviews, arrayMeta.Category)
	assert.Equal(t, layout.CardList, rep.Selections["$.reviews"].Component)
}

func TestAnalyzeWithHints(t *testing.T) {
	// "contact" has no vocabulary token, so the name signal is silent and the
	// OpenAPI format hint is what tips the ranking.
	body := []byte(`{"contact":"ada@example.com","x":1}`)

	plain, err := newTestAnalyzer(t).Analyze(body, "test://c")
	require.NoError(t, err)

	hinted, err := newTestAnalyzer(t, WithHints(map[string]*semantic.Hints{
		"$.contact": {Format: "email"},
	})).Analyze(body, "test://c")
	require.NoError(t, err)

	plainMeta := plain.Semantics["$.contact"]
	hintedMeta := hinted.Semantics["$.contact"]
	require.NotEmpty(t, hintedMeta.Alternatives)
	assert.Equal(t, semantic.CategoryEmail, hintedMeta.Alternatives[0].Category)
	assert.Greater(t, hintedMeta.Confidence, plainMeta.Confidence)
}

func TestAnalyzeMalformedInput(t *testing.T) {
	a := newTestAnalyzer(t)
	_, err := a.Analyze([]byte(`{"broken":`), "test://bad")
	assert.Error(t, err)
}

func TestAnalyzePrimitiveRoot(t *testing.T) {
	a := newTestAnalyzer(t)
	rep, err := a.Analyze([]byte(`42`), "test://n")
	require.NoError(t, err)
	assert.Equal(t, layout.Primitive, rep.Root.Component)
	assert.Equal(t, schema.KindPrimitive, rep.Schema.Root.Kind)
}
