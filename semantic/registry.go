package semantic

import (
	"regexp"

	"github.com/apilens/apilens/fieldtype"
)

// Registry holds the declarative core patterns. Built once, read-only after.
type Registry struct {
	patterns   []Pattern
	composites []CompositePattern
}

func (r *Registry) Patterns() []Pattern {
	return r.patterns
}

func (r *Registry) Composites() []CompositePattern {
	return r.composites
}

// Find returns the pattern for a category id, or nil.
func (r *Registry) Find(category string) *Pattern {
	for i := range r.patterns {
		if r.patterns[i].Category == category {
			return &r.patterns[i]
		}
	}
	return nil
}

func name(expr string) NamePattern {
	return NamePattern{Regex: regexp.MustCompile(expr), Weight: 1.0}
}

var defaultThresholds = Thresholds{High: 0.7, Medium: 0.4}

// NewRegistry builds the core category patterns. Signal weights follow one
// shape throughout: name 0.40, type around 0.20, value validators 0.25-0.30,
// format hints 0.10-0.15.
func NewRegistry() *Registry {
	return &Registry{
		patterns: []Pattern{
			{
				Category: CategoryID,
				Names:    []NamePattern{name(`(?i)^(id|uuid|guid|identifier|pk)$`), name(`(?i)(_id|Id|ID)$`)},
				Type:     TypeConstraint{Types: []fieldtype.FieldType{fieldtype.String, fieldtype.Number}, Weight: 0.20},
				Validators: []ValueValidator{
					{Name: "uuid-or-integral", Weight: 0.25, Check: isUUIDOrIntegral},
				},
				Formats:    []FormatHint{{Format: "uuid", Weight: 0.15}},
				Thresholds: defaultThresholds,
			},
			{
				Category: CategoryTitle,
				Names:    []NamePattern{name(`(?i)^(title|name|label|heading|headline|subject|display_?name|full_?name)$`)},
				Type:     TypeConstraint{Types: []fieldtype.FieldType{fieldtype.String}, Weight: 0.20},
				Validators: []ValueValidator{
					{Name: "short-text", Weight: 0.25, Check: isShortText},
				},
				Thresholds: defaultThresholds,
			},
			{
				Category: CategoryDescription,
				Names:    []NamePattern{name(`(?i)(description|summary|comment|review|text|body|content|bio|notes|caption|message)`)},
				Type:     TypeConstraint{Types: []fieldtype.FieldType{fieldtype.String}, Weight: 0.20},
				Validators: []ValueValidator{
					{Name: "free-text", Weight: 0.25, Check: isFreeText},
				},
				Thresholds: Thresholds{High: 0.65, Medium: 0.35},
			},
			{
				Category: CategoryPrice,
				Names:    []NamePattern{name(`(?i)(price|cost|amount|total|fee|subtotal|msrp)`)},
				Type:     TypeConstraint{Types: []fieldtype.FieldType{fieldtype.Number}, Weight: 0.20},
				Validators: []ValueValidator{
					{Name: "non-negative-number", Weight: 0.30, Check: isNonNegativeNumber},
				},
				Formats:    []FormatHint{{Format: "double", Weight: 0.10}, {Format: "float", Weight: 0.10}},
				Thresholds: defaultThresholds,
			},
			{
				Category: CategoryCurrency,
				Names:    []NamePattern{name(`(?i)^(currency|currency_?code|ccy)$`)},
				Type:     TypeConstraint{Types: []fieldtype.FieldType{fieldtype.String}, Weight: 0.20},
				Validators: []ValueValidator{
					{Name: "iso-4217", Weight: 0.30, Check: isCurrencyCode},
				},
				Thresholds: defaultThresholds,
			},
			{
				Category: CategoryQuantity,
				Names:    []NamePattern{name(`(?i)^(quantity|qty|count|stock|inventory|units?)$`)},
				Type:     TypeConstraint{Types: []fieldtype.FieldType{fieldtype.Number}, Weight: 0.20},
				Validators: []ValueValidator{
					{Name: "non-negative-integral", Weight: 0.25, Check: isNonNegativeIntegral},
				},
				Formats:    []FormatHint{{Format: "int32", Weight: 0.10}, {Format: "int64", Weight: 0.10}},
				Thresholds: defaultThresholds,
			},
			{
				Category: CategoryRating,
				Names:    []NamePattern{name(`(?i)(rating|stars)`), name(`(?i)^score$`)},
				Type:     TypeConstraint{Types: []fieldtype.FieldType{fieldtype.Number}, Weight: 0.20},
				Validators: []ValueValidator{
					{Name: "bounded-rating", Weight: 0.30, Check: isBoundedRating},
				},
				Thresholds: defaultThresholds,
			},
			{
				Category: CategoryEmail,
				Names:    []NamePattern{name(`(?i)e-?mail`)},
				Type:     TypeConstraint{Types: []fieldtype.FieldType{fieldtype.String}, Weight: 0.20},
				Validators: []ValueValidator{
					{Name: "email-shape", Weight: 0.30, Check: isEmailShaped},
				},
				Formats:    []FormatHint{{Format: "email", Weight: 0.15}},
				Thresholds: defaultThresholds,
			},
			{
				Category: CategoryPhone,
				Names:    []NamePattern{name(`(?i)(phone|mobile|telephone|fax)`), name(`(?i)^tel$`)},
				Type:     TypeConstraint{Types: []fieldtype.FieldType{fieldtype.String}, Weight: 0.20},
				Validators: []ValueValidator{
					{Name: "phone-shape", Weight: 0.25, Check: isPhoneShaped},
				},
				Thresholds: defaultThresholds,
			},
			{
				Category: CategoryURL,
				Names:    []NamePattern{name(`(?i)(url|link|href|website|uri|homepage)`)},
				Type:     TypeConstraint{Types: []fieldtype.FieldType{fieldtype.String}, Weight: 0.20},
				Validators: []ValueValidator{
					{Name: "http-url", Weight: 0.30, Check: isHTTPURL},
				},
				Formats:    []FormatHint{{Format: "uri", Weight: 0.10}},
				Thresholds: defaultThresholds,
			},
			{
				Category: CategoryImage,
				Names:    []NamePattern{name(`(?i)(image|img|photo|picture|thumbnail|avatar|icon|logo|banner)`)},
				Type:     TypeConstraint{Types: []fieldtype.FieldType{fieldtype.String}, Weight: 0.20},
				Validators: []ValueValidator{
					{Name: "image-reference", Weight: 0.30, Check: isImageReference},
				},
				Thresholds: defaultThresholds,
			},
			{
				Category: CategoryDate,
				Names:    []NamePattern{name(`(?i)(date|time|timestamp|created|updated|modified|expires|published)`), name(`(?i)_at$`), name(`(?i)^at$`)},
				Type:     TypeConstraint{Types: []fieldtype.FieldType{fieldtype.Date, fieldtype.String, fieldtype.Number}, Weight: 0.20},
				Validators: []ValueValidator{
					{Name: "parses-as-date", Weight: 0.30, Check: isParseableDate},
				},
				Formats:    []FormatHint{{Format: "date-time", Weight: 0.15}, {Format: "date", Weight: 0.10}},
				Thresholds: defaultThresholds,
			},
			{
				Category: CategoryStatus,
				Names:    []NamePattern{name(`(?i)(status|state|visibility|availability)`), name(`(?i)^(active|enabled)$`)},
				Type:     TypeConstraint{Types: []fieldtype.FieldType{fieldtype.String, fieldtype.Boolean}, Weight: 0.20},
				Validators: []ValueValidator{
					{Name: "enum-like", Weight: 0.25, Check: isEnumLike},
				},
				Thresholds: defaultThresholds,
			},
			{
				Category: CategoryTags,
				Names:    []NamePattern{name(`(?i)^(tags?|categor(y|ies)|labels?|keywords?|topics?|genres?)$`)},
				Type:     TypeConstraint{Types: []fieldtype.FieldType{fieldtype.String}, Weight: 0.20},
				Validators: []ValueValidator{
					{Name: "short-token", Weight: 0.25, Check: isShortToken},
				},
				Thresholds: defaultThresholds,
			},
			{
				Category: CategoryAddress,
				Names:    []NamePattern{name(`(?i)(address|street|city|zip|postal|country|region|province)`)},
				Type:     TypeConstraint{Types: []fieldtype.FieldType{fieldtype.String}, Weight: 0.20},
				Validators: []ValueValidator{
					{Name: "non-empty-text", Weight: 0.25, Check: isNonEmptyText},
				},
				Thresholds: defaultThresholds,
			},
			{
				Category: CategoryGeo,
				Names:    []NamePattern{name(`(?i)^(lat|latitude|lng|lon|longitude|geo|coords?|coordinates|location)$`)},
				Type:     TypeConstraint{Types: []fieldtype.FieldType{fieldtype.Number, fieldtype.String}, Weight: 0.20},
				Validators: []ValueValidator{
					{Name: "coordinate-range", Weight: 0.30, Check: isCoordinate},
				},
				Thresholds: defaultThresholds,
			},
		},
		composites: []CompositePattern{
			{
				Category:       CategoryReviews,
				Names:          []NamePattern{name(`(?i)(reviews?|feedback|comments?|testimonials?)`)},
				NameWeight:     0.30,
				RequiredWeight: 0.40,
				Required: []RequiredField{
					{Name: regexp.MustCompile(`(?i)(rating|stars|score)`), Types: []fieldtype.FieldType{fieldtype.Number}},
					{Name: regexp.MustCompile(`(?i)(comment|review|text|body|message|feedback)`), Types: []fieldtype.FieldType{fieldtype.String}},
				},
				MinItems:   2,
				Thresholds: Thresholds{High: 0.55, Medium: 0.3},
			},
			{
				Category:       CategoryProducts,
				Names:          []NamePattern{name(`(?i)(products?|items|listings|catalog|offers?)`)},
				NameWeight:     0.30,
				RequiredWeight: 0.40,
				Required: []RequiredField{
					{Name: regexp.MustCompile(`(?i)(price|cost|amount)`), Types: []fieldtype.FieldType{fieldtype.Number}},
					{Name: regexp.MustCompile(`(?i)^(title|name|label)$`), Types: []fieldtype.FieldType{fieldtype.String}},
				},
				MinItems:   1,
				Thresholds: Thresholds{High: 0.55, Medium: 0.3},
			},
			{
				Category:       CategoryContacts,
				Names:          []NamePattern{name(`(?i)(users?|contacts?|members?|people|customers?|employees?)`)},
				NameWeight:     0.30,
				RequiredWeight: 0.40,
				Required: []RequiredField{
					{Name: regexp.MustCompile(`(?i)e-?mail`), Types: []fieldtype.FieldType{fieldtype.String}},
					{Name: regexp.MustCompile(`(?i)^(name|username|full_?name|display_?name)$`), Types: []fieldtype.FieldType{fieldtype.String}},
				},
				MinItems:   1,
				Thresholds: Thresholds{High: 0.55, Medium: 0.3},
			},
		},
	}
}
