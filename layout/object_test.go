package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apilens/apilens/fieldtype"
	"github.com/apilens/apilens/importance"
	"github.com/apilens/apilens/schema"
	"github.com/apilens/apilens/semantic"
)

func TestSelectObjectProfile(t *testing.T) {
	node := schema.NewObject([]schema.Field{
		strField("name"),
		strField("email"),
		strField("phone"),
		strField("bio"),
	})
	ctx := ctxWith(map[string]string{
		"email": semantic.CategoryEmail,
		"phone": semantic.CategoryPhone,
	})

	sel := SelectObject(node, ctx)
	assert.Equal(t, Hero, sel.Component)
	assert.Equal(t, 0.85, sel.Confidence)
	assert.Equal(t, "profile-pattern", sel.Reason)
}

func TestSelectObjectOneContactIsNotProfile(t *testing.T) {
	node := schema.NewObject([]schema.Field{strField("name"), strField("email")})
	ctx := ctxWith(map[string]string{"email": semantic.CategoryEmail})

	sel := SelectObject(node, ctx)
	assert.NotEqual(t, Hero, sel.Component)
}

func TestSelectObjectComplexNested(t *testing.T) {
	node := schema.NewObject([]schema.Field{
		{Name: "billing", Type: schema.NewObject(nil)},
		{Name: "shipping", Type: schema.NewObject(nil)},
		{Name: "items", Type: schema.NewArray(schema.NewPrimitive(fieldtype.String))},
		numField("total"),
	})

	sel := SelectObject(node, &Context{})
	assert.Equal(t, Tabs, sel.Component)
	assert.Equal(t, 0.80, sel.Confidence)
}

func TestSelectObjectSplit(t *testing.T) {
	node := schema.NewObject([]schema.Field{
		strField("body"),
		strField("created_at"),
		strField("updated_at"),
		strField("etag"),
		strField("slug"),
	})
	ctx := &Context{
		Semantics: map[string]semantic.Metadata{},
		Importance: map[string]importance.Score{
			"body":       {Tier: importance.TierPrimary},
			"created_at": {Tier: importance.TierTertiary},
			"updated_at": {Tier: importance.TierTertiary},
			"etag":       {Tier: importance.TierTertiary},
			"slug":       {Tier: importance.TierSecondary},
		},
	}

	sel := SelectObject(node, ctx)
	assert.Equal(t, Split, sel.Component)
	assert.Equal(t, 0.75, sel.Confidence)
	assert.Equal(t, "split-content-metadata", sel.Reason)
}

func TestSelectObjectDefaultDetail(t *testing.T) {
	node := schema.NewObject([]schema.Field{numField("a"), numField("b")})
	sel := SelectObject(node, &Context{})
	assert.Equal(t, Detail, sel.Component)
	assert.Equal(t, 0.5, sel.Confidence)
}

func TestSelectObjectRejectsNonObjects(t *testing.T) {
	sel := SelectObject(schema.NewPrimitive(fieldtype.Number), &Context{})
	assert.Equal(t, JSONView, sel.Component)
}
