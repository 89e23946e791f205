package layout

import (
	"regexp"

	"github.com/apilens/apilens/importance"
	"github.com/apilens/apilens/schema"
	"github.com/apilens/apilens/semantic"
)

// SelectObject is the entry point for single-object nodes. Same priority
// chain philosophy as the array selector: profile, then nesting, then
// content/metadata split, then the plain detail default.
func SelectObject(node *schema.TypeSignature, ctx *Context) Selection {
	if node == nil || node.Kind != schema.KindObject {
		return Selection{Component: JSONView, Confidence: 0.3, Reason: "unknown-shape"}
	}
	for _, h := range []arrayHeuristic{profilePattern, complexNestedPattern, splitPattern} {
		if sel, ok := h(node.Fields, ctx); ok && sel.Confidence >= AcceptThreshold {
			return sel
		}
	}
	return Selection{Component: Detail, Confidence: 0.5, Reason: "detail-default"}
}

var personNames = regexp.MustCompile(`(?i)^(name|title|full_?name|display_?name|username)$`)

var contactCategories = []string{
	semantic.CategoryEmail,
	semantic.CategoryPhone,
	semantic.CategoryAddress,
	semantic.CategoryURL,
}

func profilePattern(fields []schema.Field, ctx *Context) (Selection, bool) {
	hasName := false
	contacts := map[string]bool{}
	for i := range fields {
		name := fields[i].Name
		cat := ctx.CategoryOf(name)
		if cat == semantic.CategoryTitle || personNames.MatchString(name) {
			hasName = true
		}
		for _, c := range contactCategories {
			if cat == c {
				contacts[c] = true
			}
		}
	}
	if hasName && len(contacts) >= 2 {
		return Selection{Component: Hero, Confidence: 0.85, Reason: "profile-pattern"}, true
	}
	return Selection{}, false
}

func complexNestedPattern(fields []schema.Field, ctx *Context) (Selection, bool) {
	nested := 0
	for i := range fields {
		if t := fields[i].Type; t != nil && (t.Kind == schema.KindObject || t.Kind == schema.KindArray) {
			nested++
		}
	}
	if nested >= 3 {
		return Selection{Component: Tabs, Confidence: 0.80, Reason: "complex-nested"}, true
	}
	return Selection{}, false
}

var (
	contentNames  = regexp.MustCompile(`(?i)(description|body|content|text|article)`)
	metadataNames = regexp.MustCompile(`(?i)(^_|_id$|_at$|etag|version|revision|created|updated|meta|internal)`)
)

func splitPattern(fields []schema.Field, ctx *Context) (Selection, bool) {
	if len(fields) < 5 {
		return Selection{}, false
	}

	content := 0
	metadata := 0
	for i := range fields {
		name := fields[i].Name
		cat := ctx.CategoryOf(name)
		isContent := cat == semantic.CategoryDescription || cat == semantic.CategoryTitle || contentNames.MatchString(name)
		if isContent && ctx.TierOf(name) == importance.TierPrimary {
			content++
			continue
		}
		if ctx.TierOf(name) == importance.TierTertiary || metadataNames.MatchString(name) {
			metadata++
		}
	}
	if content == 1 && metadata >= 3 {
		return Selection{Component: Split, Confidence: 0.75, Reason: "split-content-metadata"}, true
	}
	return Selection{}, false
}
