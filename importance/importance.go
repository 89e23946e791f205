// Package importance ranks fields into coarse presentation tiers. The layout
// selector consumes tiers; it does not care how they were produced.
package importance

import (
	"regexp"

	"github.com/apilens/apilens/schema"
	"github.com/apilens/apilens/semantic"
)

type Tier string

const (
	TierPrimary   Tier = "primary"
	TierSecondary Tier = "secondary"
	TierTertiary  Tier = "tertiary"
)

// Score is the importance assigned to one field.
type Score struct {
	Tier   Tier    `json:"tier"`
	Weight float64 `json:"weight"`
}

var (
	primaryNames  = regexp.MustCompile(`(?i)^(id|name|title|label)$`)
	metadataNames = regexp.MustCompile(`(?i)(^_|_id$|etag|version|revision|internal|meta|checksum|hash|cursor|token)`)
)

var primaryCategories = map[string]bool{
	semantic.CategoryID:    true,
	semantic.CategoryTitle: true,
	semantic.CategoryImage: true,
}

var secondaryCategories = map[string]bool{
	semantic.CategoryDescription: true,
	semantic.CategoryPrice:       true,
	semantic.CategoryRating:      true,
	semantic.CategoryDate:        true,
	semantic.CategoryStatus:      true,
	semantic.CategoryEmail:       true,
	semantic.CategoryURL:         true,
	semantic.CategoryTags:        true,
}

// Analyzer produces per-field importance tiers from schema shape and the
// already-detected semantics.
type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze assigns a tier to every field. Semantics are keyed by field name
// and may be incomplete; fields without metadata fall back to name shape.
func (a *Analyzer) Analyze(fields []schema.Field, semantics map[string]semantic.Metadata) map[string]Score {
	out := make(map[string]Score, len(fields))
	for i := range fields {
		out[fields[i].Name] = a.scoreField(&fields[i], semantics[fields[i].Name])
	}
	return out
}

func (a *Analyzer) scoreField(f *schema.Field, meta semantic.Metadata) Score {
	if metadataNames.MatchString(f.Name) && !primaryNames.MatchString(f.Name) {
		return Score{Tier: TierTertiary, Weight: 0.2}
	}
	if primaryCategories[meta.Category] || primaryNames.MatchString(f.Name) {
		return Score{Tier: TierPrimary, Weight: 1.0}
	}
	if secondaryCategories[meta.Category] {
		return Score{Tier: TierSecondary, Weight: 0.6}
	}
	// Unclassified containers are rarely headline content.
	if f.Type != nil && f.Type.Kind != schema.KindPrimitive {
		return Score{Tier: TierTertiary, Weight: 0.2}
	}
	if f.Optional {
		return Score{Tier: TierTertiary, Weight: 0.3}
	}
	return Score{Tier: TierSecondary, Weight: 0.5}
}
