// Package semantic assigns meaning categories (price, email, rating, ...) to
// fields by combining name, type, value and format signals into weighted
// confidence scores.
package semantic

import (
	"regexp"

	"github.com/apilens/apilens/fieldtype"
)

// Core category identifiers. Plugin-declared categories use their own ids and
// compete in the same ranked list.
const (
	CategoryID          = "id"
	CategoryTitle       = "title"
	CategoryDescription = "description"
	CategoryPrice       = "price"
	CategoryCurrency    = "currency"
	CategoryQuantity    = "quantity"
	CategoryRating      = "rating"
	CategoryEmail       = "email"
	CategoryPhone       = "phone"
	CategoryURL         = "url"
	CategoryImage       = "image"
	CategoryDate        = "date"
	CategoryStatus      = "status"
	CategoryTags        = "tags"
	CategoryAddress     = "address"
	CategoryGeo         = "geo"

	CategoryReviews  = "reviews"
	CategoryProducts = "products"
	CategoryContacts = "contacts"
)

// NamePattern is one regex alternative for matching a field name. Weight is
// the match strength reported when the regex hits (1.0 for a full match).
type NamePattern struct {
	Regex  *regexp.Regexp
	Weight float64
}

// TypeConstraint limits a category to certain detected field types.
type TypeConstraint struct {
	Types  []fieldtype.FieldType
	Weight float64
}

// ValueValidator is a named predicate over sample values. A validator that
// panics counts as a non-match; one bad predicate cannot poison a scoring
// pass.
type ValueValidator struct {
	Name   string
	Weight float64
	Check  func(v any) bool
}

// FormatHint matches an OpenAPI-declared format string. Its weight enters the
// score denominator only when a hint is actually supplied.
type FormatHint struct {
	Format string
	Weight float64
}

// Thresholds are the per-pattern confidence cutoffs for high and medium.
type Thresholds struct {
	High   float64
	Medium float64
}

// Pattern is a declarative description of one semantic category. Patterns are
// built once at startup and shared read-only across all detection calls.
type Pattern struct {
	Category   string
	Names      []NamePattern
	Type       TypeConstraint
	Validators []ValueValidator
	Formats    []FormatHint
	Thresholds Thresholds

	// RegexOnly forces regex name matching for this pattern regardless of
	// the configured strategy. Plugin-derived patterns set this since their
	// categories have no embedding centroid.
	RegexOnly bool
}

// RequiredField is one structural requirement of a composite pattern: at
// least one item field must match the name regex and carry one of the types.
type RequiredField struct {
	Name  *regexp.Regexp
	Types []fieldtype.FieldType
}

// CompositePattern describes a whole array of objects rather than a single
// field (e.g. reviews = rating number + comment string).
type CompositePattern struct {
	Category   string
	Names      []NamePattern
	NameWeight float64
	Required   []RequiredField
	// Structural weight of the all-required-fields-present check.
	RequiredWeight float64
	MinItems       int
	Thresholds     Thresholds
}

func (t TypeConstraint) allows(ft fieldtype.FieldType) bool {
	for _, x := range t.Types {
		if x == ft {
			return true
		}
	}
	return false
}

func anyTypeMatches(types []fieldtype.FieldType, ft fieldtype.FieldType) bool {
	for _, x := range types {
		if x == ft {
			return true
		}
	}
	return false
}
