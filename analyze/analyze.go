// Package analyze runs the full pipeline: schema inference, semantic
// detection, importance ranking and component selection over one JSON
// document. Analysis is pure and idempotent; running it twice over identical
// input produces identical results apart from the inference timestamp.
package analyze

import (
	"github.com/valyala/fastjson"

	"github.com/apilens/apilens/fieldtype"
	"github.com/apilens/apilens/importance"
	"github.com/apilens/apilens/layout"
	"github.com/apilens/apilens/schema"
	"github.com/apilens/apilens/semantic"
)

// Report is the outcome of one analysis pass. Everything is plain data.
type Report struct {
	Schema     *schema.UnifiedSchema        `json:"schema"`
	Semantics  map[string]semantic.Metadata `json:"semantics"`
	Importance map[string]importance.Score  `json:"importance"`
	Selections map[string]layout.Selection  `json:"selections"`
	Root       layout.Selection             `json:"root"`
}

// Analyzer wires the pipeline stages together. Safe for concurrent use; the
// shared caches inside the detector tolerate concurrent readers and writers.
type Analyzer struct {
	detector *semantic.Detector
	ranker   *importance.Analyzer
	hints    map[string]*semantic.Hints
}

type Option func(*Analyzer)

// WithHints attaches OpenAPI-derived field hints, keyed by field path.
func WithHints(hints map[string]*semantic.Hints) Option {
	return func(a *Analyzer) { a.hints = hints }
}

func New(detector *semantic.Detector, ranker *importance.Analyzer, opts ...Option) *Analyzer {
	a := &Analyzer{detector: detector, ranker: ranker}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Detector exposes the underlying detector for strategy switches and cache
// inspection.
func (a *Analyzer) Detector() *semantic.Detector {
	return a.detector
}

// Analyze parses data, infers its schema and classifies every field.
func (a *Analyzer) Analyze(data []byte, source string) (*Report, error) {
	v, err := fastjson.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeValue(v, source), nil
}

// AnalyzeValue analyzes an already-parsed document.
func (a *Analyzer) AnalyzeValue(v *fastjson.Value, source string) *Report {
	rep := &Report{
		Schema:     schema.Infer(v, source),
		Semantics:  make(map[string]semantic.Metadata),
		Importance: make(map[string]importance.Score),
		Selections: make(map[string]layout.Selection),
	}
	rep.Root = a.walk(rep.Schema.Root, v, "$", "", rep)
	return rep
}

func (a *Analyzer) walk(node *schema.TypeSignature, v *fastjson.Value, path, name string, rep *Report) layout.Selection {
	var sel layout.Selection
	switch {
	case node == nil:
		sel = layout.SelectComponent(nil, nil, nil)
	case node.IsObjectArray():
		sel = a.analyzeObjectArray(node, v, path, name, rep)
	case node.Kind == schema.KindArray:
		sel = a.analyzePrimitiveArray(node, v, path, name, rep)
	case node.Kind == schema.KindObject:
		sel = a.analyzeObject(node, v, path, rep)
	default:
		sel = layout.SelectComponent(node, nil, nil)
	}
	rep.Selections[path] = sel
	return sel
}

func (a *Analyzer) analyzeObjectArray(node *schema.TypeSignature, v *fastjson.Value, path, name string, rep *Report) layout.Selection {
	fields := node.Items.Fields
	items := arrayItems(v)

	local := a.detectFields(fields, path, rep)
	scores := a.ranker.Analyze(fields, local)
	for fieldName, s := range scores {
		rep.Importance[joinPath(path, fieldName)] = s
	}

	var self *semantic.Metadata
	if comp := a.detector.DetectComposite(name, fields, items); comp != nil {
		m := semantic.Metadata{
			Category:   comp.Category,
			Confidence: comp.Confidence,
			Level:      comp.Level,
			AppliedAt:  semantic.AppliedSmartDefault,
		}
		self = &m
		rep.Semantics[path] = m
	}

	ctx := &layout.Context{Self: self, Semantics: local, Importance: scores}
	sel := layout.SelectComponent(node, ctx, items)

	a.recurseFields(fields, firstObjectItem(v), path, rep)
	return sel
}

func (a *Analyzer) analyzeObject(node *schema.TypeSignature, v *fastjson.Value, path string, rep *Report) layout.Selection {
	local := a.detectFields(node.Fields, path, rep)
	scores := a.ranker.Analyze(node.Fields, local)
	for fieldName, s := range scores {
		rep.Importance[joinPath(path, fieldName)] = s
	}

	ctx := &layout.Context{Semantics: local, Importance: scores}
	sel := layout.SelectObject(node, ctx)

	a.recurseFields(node.Fields, v, path, rep)
	return sel
}

func (a *Analyzer) analyzePrimitiveArray(node *schema.TypeSignature, v *fastjson.Value, path, name string, rep *Report) layout.Selection {
	items := arrayItems(v)

	var self *semantic.Metadata
	if name != "" && node.IsPrimitiveArray(fieldtype.String) {
		results := a.detector.Detect(path, name, fieldtype.String, items, a.hints[path])
		m := semantic.MetadataFromResults(results)
		self = &m
		rep.Semantics[path] = m
	}

	ctx := &layout.Context{Self: self}
	return layout.SelectComponent(node, ctx, items)
}

// detectFields classifies each field of an object node and records the
// metadata both globally (by path) and locally (by name) for the selector.
func (a *Analyzer) detectFields(fields []schema.Field, path string, rep *Report) map[string]semantic.Metadata {
	local := make(map[string]semantic.Metadata, len(fields))
	for i := range fields {
		f := &fields[i]
		fieldPath := joinPath(path, f.Name)
		ft, samples := detectionInput(f)
		results := a.detector.Detect(fieldPath, f.Name, ft, samples, a.hints[fieldPath])
		meta := semantic.MetadataFromResults(results)
		local[f.Name] = meta
		rep.Semantics[fieldPath] = meta
	}
	return local
}

func (a *Analyzer) recurseFields(fields []schema.Field, container *fastjson.Value, path string, rep *Report) {
	for i := range fields {
		f := &fields[i]
		if f.Type == nil || f.Type.Kind == schema.KindPrimitive {
			continue
		}
		var child *fastjson.Value
		if container != nil {
			child = container.Get(f.Name)
		}
		a.walk(f.Type, child, joinPath(path, f.Name), f.Name, rep)
	}
}

// detectionInput picks the field type and sample values handed to the
// detector. Primitive arrays are classified through their element type so
// "tags" style fields match string categories.
func detectionInput(f *schema.Field) (fieldtype.FieldType, []any) {
	t := f.Type
	if t == nil {
		return fieldtype.Unknown, f.Samples
	}
	switch t.Kind {
	case schema.KindPrimitive:
		return t.Primitive, f.Samples
	case schema.KindArray:
		if t.Items != nil && t.Items.Kind == schema.KindPrimitive {
			return t.Items.Primitive, flattenSamples(f.Samples)
		}
	}
	return fieldtype.Unknown, f.Samples
}

func flattenSamples(samples []any) []any {
	out := make([]any, 0, len(samples))
	for _, s := range samples {
		elems, ok := s.([]any)
		if !ok {
			continue
		}
		for _, e := range elems {
			if len(out) == 5 {
				return out
			}
			out = append(out, e)
		}
	}
	return out
}

func arrayItems(v *fastjson.Value) []any {
	if v == nil || v.Type() != fastjson.TypeArray {
		return nil
	}
	a, err := v.Array()
	if err != nil {
		return nil
	}
	out := make([]any, 0, len(a))
	for _, item := range a {
		out = append(out, schema.ValueToAny(item))
	}
	return out
}

func firstObjectItem(v *fastjson.Value) *fastjson.Value {
	if v == nil || v.Type() != fastjson.TypeArray {
		return nil
	}
	a, err := v.Array()
	if err != nil || len(a) == 0 {
		return nil
	}
	return a[0]
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
