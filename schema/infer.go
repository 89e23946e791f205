package schema

import (
	"time"

	"github.com/valyala/fastjson"

	"github.com/apilens/apilens/fieldtype"
)

const (
	// Recursion bound. Nodes at or beyond this depth collapse to unknown
	// instead of recursing further.
	maxDepth = 10

	// At most this many array items participate in the structural merge.
	maxArraySample = 100

	// Retained example values per merged field.
	maxFieldSamples = 5
)

// InferBytes parses b and infers a schema. The parse error is the only error
// this package ever returns; everything after a successful parse degrades to
// unknown types rather than failing.
func InferBytes(b []byte, source string) (*UnifiedSchema, error) {
	v, err := fastjson.ParseBytes(b)
	if err != nil {
		return nil, err
	}
	return Infer(v, source), nil
}

// Infer walks v and produces a fresh UnifiedSchema.
func Infer(v *fastjson.Value, source string) *UnifiedSchema {
	sampleCount := 1
	if v != nil && v.Type() == fastjson.TypeArray {
		if a, err := v.Array(); err == nil {
			sampleCount = len(a)
			if sampleCount > maxArraySample {
				sampleCount = maxArraySample
			}
		}
	}
	return &UnifiedSchema{
		Root:        inferValue(v, 0),
		SampleCount: sampleCount,
		Source:      source,
		InferredAt:  time.Now().UTC(),
	}
}

func inferValue(v *fastjson.Value, depth int) *TypeSignature {
	if v == nil {
		return NewPrimitive(fieldtype.Null)
	}
	if depth >= maxDepth {
		return NewPrimitive(fieldtype.Unknown)
	}

	switch v.Type() {
	case fastjson.TypeObject:
		o, err := v.Object()
		if err != nil {
			return NewPrimitive(fieldtype.Unknown)
		}
		return inferObject(o, depth)
	case fastjson.TypeArray:
		a, err := v.Array()
		if err != nil {
			return NewPrimitive(fieldtype.Unknown)
		}
		return inferArray(a, depth)
	default:
		return NewPrimitive(fieldtype.Detect(ValueToAny(v)))
	}
}

func inferObject(o *fastjson.Object, depth int) *TypeSignature {
	fields := make([]Field, 0, o.Len())
	o.Visit(func(key []byte, v *fastjson.Value) {
		f := Field{
			Name:       string(key),
			Type:       inferValue(v, depth+1),
			Nullable:   v.Type() == fastjson.TypeNull,
			Confidence: ConfidenceHigh,
		}
		if s := sampleValue(v); s != skipSample {
			f.Samples = append(f.Samples, s)
		}
		fields = append(fields, f)
	})
	return NewObject(fields)
}

func inferArray(vs []*fastjson.Value, depth int) *TypeSignature {
	if len(vs) == 0 {
		return NewArray(NewPrimitive(fieldtype.Unknown))
	}

	sample := vs
	if len(sample) > maxArraySample {
		sample = sample[:maxArraySample]
	}

	allObjects := true
	for _, v := range sample {
		if v.Type() != fastjson.TypeObject {
			allObjects = false
			break
		}
	}
	if allObjects {
		return NewArray(mergeObjectItems(sample, depth))
	}

	// Heterogeneous or primitive arrays take their element type from the
	// first sampled item only.
	return NewArray(inferValue(sample[0], depth+1))
}

// fieldAcc accumulates per-field observations across sampled array items.
type fieldAcc struct {
	typ     *TypeSignature
	present int
	nulls   int
	samples []any
}

func mergeObjectItems(items []*fastjson.Value, depth int) *TypeSignature {
	order := make([]string, 0, 8)
	accs := make(map[string]*fieldAcc)

	for _, item := range items {
		o, err := item.Object()
		if err != nil {
			continue
		}
		o.Visit(func(key []byte, v *fastjson.Value) {
			k := string(key)
			acc, ok := accs[k]
			if !ok {
				// The recorded type is the first occurrence's type.
				// Conflicting types in later items are not unioned.
				acc = &fieldAcc{typ: inferValue(v, depth+1)}
				accs[k] = acc
				order = append(order, k)
			}
			acc.present++
			if v.Type() == fastjson.TypeNull {
				acc.nulls++
			}
			if len(acc.samples) < maxFieldSamples {
				if s := sampleValue(v); s != skipSample {
					acc.samples = append(acc.samples, s)
				}
			}
		})
	}

	total := len(items)
	fields := make([]Field, 0, len(order))
	for _, k := range order {
		acc := accs[k]
		ratio := float64(acc.present) / float64(total)
		fields = append(fields, Field{
			Name:       k,
			Type:       acc.typ,
			Optional:   acc.present < total,
			Nullable:   acc.nulls > 0,
			Confidence: confidenceFromRatio(ratio),
			Samples:    acc.samples,
		})
	}
	return NewObject(fields)
}

// skipSample is a sentinel for values not worth retaining as samples.
type skipSampleType struct{}

var skipSample any = skipSampleType{}

func sampleValue(v *fastjson.Value) any {
	switch v.Type() {
	case fastjson.TypeObject, fastjson.TypeArray:
		return ValueToAny(v)
	case fastjson.TypeNull:
		return skipSample
	default:
		return ValueToAny(v)
	}
}

// ValueToAny converts a fastjson value into plain Go data: map[string]any,
// []any, string, float64, bool or nil.
func ValueToAny(v *fastjson.Value) any {
	if v == nil {
		return nil
	}
	switch v.Type() {
	case fastjson.TypeObject:
		o, err := v.Object()
		if err != nil {
			return nil
		}
		m := make(map[string]any, o.Len())
		o.Visit(func(key []byte, item *fastjson.Value) {
			m[string(key)] = ValueToAny(item)
		})
		return m
	case fastjson.TypeArray:
		a, err := v.Array()
		if err != nil {
			return nil
		}
		out := make([]any, 0, len(a))
		for _, item := range a {
			out = append(out, ValueToAny(item))
		}
		return out
	case fastjson.TypeString:
		b, err := v.StringBytes()
		if err != nil {
			return nil
		}
		return string(b)
	case fastjson.TypeNumber:
		f, err := v.Float64()
		if err != nil {
			return nil
		}
		return f
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeFalse:
		return false
	default:
		return nil
	}
}
