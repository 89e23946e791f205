package importance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apilens/apilens/fieldtype"
	"github.com/apilens/apilens/schema"
	"github.com/apilens/apilens/semantic"
)

func TestAnalyzeTiers(t *testing.T) {
	fields := []schema.Field{
		{Name: "id", Type: schema.NewPrimitive(fieldtype.Number)},
		{Name: "title", Type: schema.NewPrimitive(fieldtype.String)},
		{Name: "price", Type: schema.NewPrimitive(fieldtype.Number)},
		{Name: "etag", Type: schema.NewPrimitive(fieldtype.String)},
		{Name: "owner_id", Type: schema.NewPrimitive(fieldtype.Number)},
	}
	semantics := map[string]semantic.Metadata{
		"id":    {Category: semantic.CategoryID},
		"title": {Category: semantic.CategoryTitle},
		"price": {Category: semantic.CategoryPrice},
	}

	scores := NewAnalyzer().Analyze(fields, semantics)

	assert.Equal(t, TierPrimary, scores["id"].Tier)
	assert.Equal(t, TierPrimary, scores["title"].Tier)
	assert.Equal(t, TierSecondary, scores["price"].Tier)
	assert.Equal(t, TierTertiary, scores["etag"].Tier)
	assert.Equal(t, TierTertiary, scores["owner_id"].Tier)
}

func TestAnalyzeUnclassifiedFields(t *testing.T) {
	fields := []schema.Field{
		{Name: "payload", Type: schema.NewObject(nil)},
		{Name: "misc", Type: schema.NewPrimitive(fieldtype.String), Optional: true},
		{Name: "code", Type: schema.NewPrimitive(fieldtype.String)},
	}
	scores := NewAnalyzer().Analyze(fields, nil)

	assert.Equal(t, TierTertiary, scores["payload"].Tier)
	assert.Equal(t, TierTertiary, scores["misc"].Tier)
	assert.Equal(t, TierSecondary, scores["code"].Tier)
}
