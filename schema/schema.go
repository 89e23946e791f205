// Package schema infers structural type signatures from sampled JSON data.
package schema

import (
	"time"

	"github.com/apilens/apilens/fieldtype"
)

type Kind int

const (
	KindPrimitive Kind = 1
	KindArray     Kind = 2
	KindObject    Kind = 3
)

// Confidence is a coarse bucket derived from how often a field was present
// across sampled sibling items.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// TypeSignature is a tagged union over the three structural shapes. Exactly
// one of the branch fields is meaningful for a given Kind.
type TypeSignature struct {
	Kind      Kind                `json:"kind"`
	Primitive fieldtype.FieldType `json:"primitive,omitempty"`
	Items     *TypeSignature      `json:"items,omitempty"`
	Fields    []Field             `json:"fields,omitempty"`
}

// Field describes one object member. Optionality only emerges from merging
// array items; a field seen on a lone object is never optional.
type Field struct {
	Name       string         `json:"name"`
	Type       *TypeSignature `json:"type"`
	Optional   bool           `json:"optional"`
	Nullable   bool           `json:"nullable"`
	Confidence Confidence     `json:"confidence"`
	Samples    []any          `json:"samples,omitempty"`
}

// UnifiedSchema is the result of one inference run. It is never mutated after
// Infer returns; a later run produces a fresh value.
type UnifiedSchema struct {
	Root        *TypeSignature `json:"root"`
	SampleCount int            `json:"sampleCount"`
	Source      string         `json:"source"`
	InferredAt  time.Time      `json:"inferredAt"`
}

func NewPrimitive(t fieldtype.FieldType) *TypeSignature {
	return &TypeSignature{Kind: KindPrimitive, Primitive: t}
}

func NewArray(items *TypeSignature) *TypeSignature {
	return &TypeSignature{Kind: KindArray, Items: items}
}

func NewObject(fields []Field) *TypeSignature {
	return &TypeSignature{Kind: KindObject, Fields: fields}
}

// FieldByName returns the named field of an object signature, or nil.
func (t *TypeSignature) FieldByName(name string) *Field {
	if t == nil || t.Kind != KindObject {
		return nil
	}
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}
	return nil
}

// IsObjectArray reports whether t is an array whose items are objects.
func (t *TypeSignature) IsObjectArray() bool {
	return t != nil && t.Kind == KindArray && t.Items != nil && t.Items.Kind == KindObject
}

// IsPrimitiveArray reports whether t is an array of the given primitive type.
func (t *TypeSignature) IsPrimitiveArray(p fieldtype.FieldType) bool {
	return t != nil && t.Kind == KindArray && t.Items != nil &&
		t.Items.Kind == KindPrimitive && t.Items.Primitive == p
}

func confidenceFromRatio(r float64) Confidence {
	switch {
	case r >= 1.0:
		return ConfidenceHigh
	case r >= 0.5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
