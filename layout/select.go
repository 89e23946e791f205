package layout

import (
	"regexp"

	"github.com/apilens/apilens/fieldtype"
	"github.com/apilens/apilens/schema"
	"github.com/apilens/apilens/semantic"
)

// SelectComponent maps a schema node to a component. Only array-of-object
// nodes go through the heuristic chain; primitive string arrays get the
// chips value heuristics; everything else maps through the fixed type-based
// default table. values are the node's raw sampled values, used only for
// value-shape checks.
func SelectComponent(node *schema.TypeSignature, ctx *Context, values []any) Selection {
	if node == nil {
		return Selection{Component: JSONView, Confidence: 0.3, Reason: "unknown-shape"}
	}

	switch node.Kind {
	case schema.KindArray:
		if node.IsObjectArray() {
			return selectObjectArray(node.Items.Fields, ctx)
		}
		if node.IsPrimitiveArray(fieldtype.String) {
			return selectStringArray(ctx, values)
		}
		return Selection{Component: PrimitiveList, Confidence: 0.5, Reason: "type-default"}
	case schema.KindObject:
		return Selection{Component: Detail, Confidence: 0.5, Reason: "type-default"}
	case schema.KindPrimitive:
		return Selection{Component: Primitive, Confidence: 0.5, Reason: "type-default"}
	default:
		return Selection{Component: JSONView, Confidence: 0.3, Reason: "unknown-shape"}
	}
}

type arrayHeuristic func(fields []schema.Field, ctx *Context) (Selection, bool)

// Fixed evaluation order; the first heuristic confident enough wins.
func selectObjectArray(fields []schema.Field, ctx *Context) Selection {
	for _, h := range []arrayHeuristic{reviewPattern, galleryPattern, timelinePattern} {
		if sel, ok := h(fields, ctx); ok && sel.Confidence >= AcceptThreshold {
			return sel
		}
	}
	return cardOrTableDefault(fields, ctx)
}

var reviewTextNames = regexp.MustCompile(`(?i)(comment|review|text|body)`)

func reviewPattern(fields []schema.Field, ctx *Context) (Selection, bool) {
	var hasRating, hasText bool
	for i := range fields {
		name := fields[i].Name
		switch ctx.CategoryOf(name) {
		case semantic.CategoryRating:
			hasRating = true
		case semantic.CategoryReviews, semantic.CategoryDescription:
			hasText = true
		}
		if !hasText && reviewTextNames.MatchString(name) && ctx.visible(name) {
			hasText = true
		}
	}
	if hasRating && hasText {
		return Selection{Component: CardList, Confidence: 0.85, Reason: "review-pattern-detected"}, true
	}
	return Selection{}, false
}

var imageCategories = map[string]bool{
	semantic.CategoryImage: true,
	"thumbnail":            true,
	"avatar":               true,
}

func galleryPattern(fields []schema.Field, ctx *Context) (Selection, bool) {
	hasImage := false
	for i := range fields {
		if imageCategories[ctx.CategoryOf(fields[i].Name)] {
			hasImage = true
			break
		}
	}
	if !hasImage {
		return Selection{}, false
	}
	if len(fields) <= 4 {
		return Selection{Component: Gallery, Confidence: 0.90, Reason: "image-gallery-compact"}, true
	}
	// Images mixed into many other fields read better as cards.
	return Selection{Component: CardList, Confidence: 0.75, Reason: "image-with-many-fields"}, true
}

func timelinePattern(fields []schema.Field, ctx *Context) (Selection, bool) {
	var hasWhen, hasNarrative bool
	for i := range fields {
		switch ctx.CategoryOf(fields[i].Name) {
		case semantic.CategoryDate, "timestamp":
			hasWhen = true
		case semantic.CategoryTitle, semantic.CategoryDescription:
			hasNarrative = true
		}
	}
	// Chronological ordering alone is not enough; a timeline needs a story.
	if hasWhen && hasNarrative {
		return Selection{Component: Timeline, Confidence: 0.80, Reason: "timeline-pattern"}, true
	}
	return Selection{}, false
}

var richCategories = map[string]bool{
	semantic.CategoryDescription: true,
	semantic.CategoryReviews:     true,
	semantic.CategoryImage:       true,
	semantic.CategoryTitle:       true,
}

func cardOrTableDefault(fields []schema.Field, ctx *Context) Selection {
	visibleCount := 0
	rich := false
	for i := range fields {
		name := fields[i].Name
		if ctx.visible(name) {
			visibleCount++
		}
		if richCategories[ctx.CategoryOf(name)] {
			rich = true
		}
	}

	switch {
	case rich && visibleCount <= 8:
		return Selection{Component: CardList, Confidence: 0.75, Reason: "card-rich-content"}
	case visibleCount >= 10:
		return Selection{Component: Table, Confidence: 0.80, Reason: "table-many-columns"}
	default:
		return Selection{Component: Table, Confidence: 0.50, Reason: "table-default"}
	}
}

const (
	chipsMaxItems  = 10
	chipsMaxAvgLen = 20
	chipsMaxLen    = 30
)

func selectStringArray(ctx *Context, values []any) Selection {
	if ctx != nil && ctx.Self != nil {
		switch ctx.Self.Category {
		case semantic.CategoryTags, semantic.CategoryStatus:
			return Selection{Component: Chips, Confidence: 0.90, Reason: "chips-semantic"}
		}
	}
	if chipsShaped(values) {
		return Selection{Component: Chips, Confidence: 0.80, Reason: "chips-short-values"}
	}
	return Selection{Component: PrimitiveList, Confidence: 0.5, Reason: "primitive-list-default"}
}

func chipsShaped(values []any) bool {
	if len(values) == 0 || len(values) > chipsMaxItems {
		return false
	}
	total := 0
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			return false
		}
		if len(s) > chipsMaxLen {
			return false
		}
		total += len(s)
	}
	return total/len(values) <= chipsMaxAvgLen
}
