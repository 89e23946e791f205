package semantic

import (
	"github.com/apilens/apilens/embedding"
	"github.com/apilens/apilens/fieldtype"
	"github.com/apilens/apilens/schema"
)

// Strategy selects how field names are matched against category patterns.
// It is a global mode of the detector, not a per-request option.
type Strategy int

const (
	StrategyEmbedding Strategy = iota
	StrategyRegex
)

// Fixed weight of the name signal. Individual patterns weight their own type,
// value and format signals.
const nameWeight = 0.40

// Level is the coarse confidence bucket derived from a numeric score.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
	LevelNone   Level = "none"
)

// Hints carries OpenAPI-declared metadata for a field.
type Hints struct {
	Format string `json:"format,omitempty"`
}

// SignalMatch records one signal's contribution to a score.
type SignalMatch struct {
	Name         string  `json:"name"`
	Matched      bool    `json:"matched"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// Result is the scored outcome of matching one field against one category.
type Result struct {
	Category   string        `json:"category"`
	Confidence float64       `json:"confidence"`
	Level      Level         `json:"level"`
	Signals    []SignalMatch `json:"signals"`
}

// Scorer combines independent signals into a single weighted confidence.
// The classifier may be nil, in which case embedding scores are all zero and
// only regex matching carries name signal.
type Scorer struct {
	strategy   Strategy
	classifier *embedding.Classifier
}

func NewScorer(strategy Strategy, classifier *embedding.Classifier) *Scorer {
	return &Scorer{strategy: strategy, classifier: classifier}
}

func (s *Scorer) Strategy() Strategy {
	return s.strategy
}

// setStrategy is only reachable through Detector.SetStrategy, which also
// invalidates the caches that depend on the previous mode.
func (s *Scorer) setStrategy(strategy Strategy) {
	s.strategy = strategy
}

// Score evaluates one (field, pattern) pair. Each signal contributes
// matchStrength*weight to the total and its weight to the maximum possible
// total; format hint weights enter the maximum only when a format hint was
// actually supplied, so hint-less inputs are not structurally penalized.
func (s *Scorer) Score(fieldName string, ft fieldtype.FieldType, samples []any, hints *Hints, p Pattern) Result {
	var total, maxPossible float64
	signals := make([]SignalMatch, 0, 2+len(p.Validators)+len(p.Formats))

	nameStrength := s.nameMatch(fieldName, p)
	maxPossible += nameWeight
	total += nameStrength * nameWeight
	signals = append(signals, SignalMatch{
		Name:         "name-match",
		Matched:      nameStrength > 0,
		Weight:       nameWeight,
		Contribution: nameStrength * nameWeight,
	})

	if p.Type.Weight > 0 {
		maxPossible += p.Type.Weight
		matched := p.Type.allows(ft)
		contrib := 0.0
		if matched {
			contrib = p.Type.Weight
		}
		total += contrib
		signals = append(signals, SignalMatch{
			Name:         "type-constraint",
			Matched:      matched,
			Weight:       p.Type.Weight,
			Contribution: contrib,
		})
	}

	for _, v := range p.Validators {
		maxPossible += v.Weight
		matched := anySampleMatches(samples, v.Check)
		contrib := 0.0
		if matched {
			contrib = v.Weight
		}
		total += contrib
		signals = append(signals, SignalMatch{
			Name:         v.Name,
			Matched:      matched,
			Weight:       v.Weight,
			Contribution: contrib,
		})
	}

	if hints != nil && hints.Format != "" {
		for _, f := range p.Formats {
			maxPossible += f.Weight
			matched := hints.Format == f.Format
			contrib := 0.0
			if matched {
				contrib = f.Weight
			}
			total += contrib
			signals = append(signals, SignalMatch{
				Name:         "format:" + f.Format,
				Matched:      matched,
				Weight:       f.Weight,
				Contribution: contrib,
			})
		}
	}

	confidence := 0.0
	if maxPossible > 0 {
		confidence = total / maxPossible
	}
	return Result{
		Category:   p.Category,
		Confidence: confidence,
		Level:      levelFor(confidence, p.Thresholds),
		Signals:    signals,
	}
}

// ScoreComposite evaluates a whole array-of-objects candidate against a
// composite pattern. The structural all-required-fields check replaces the
// per-value validators; too few items is a soft half-score penalty, not a
// hard fail. Composite names always match by regex since plugin and
// composite categories have no centroid.
func (s *Scorer) ScoreComposite(fieldName string, itemFields []schema.Field, sampleItems []any, cp CompositePattern) Result {
	var total, maxPossible float64
	signals := make([]SignalMatch, 0, 2)

	nameStrength := regexMatch(fieldName, cp.Names)
	maxPossible += cp.NameWeight
	total += nameStrength * cp.NameWeight
	signals = append(signals, SignalMatch{
		Name:         "name-match",
		Matched:      nameStrength > 0,
		Weight:       cp.NameWeight,
		Contribution: nameStrength * cp.NameWeight,
	})

	structural := requiredFieldsPresent(cp.Required, itemFields)
	maxPossible += cp.RequiredWeight
	contrib := 0.0
	if structural {
		contrib = cp.RequiredWeight
	}
	total += contrib
	signals = append(signals, SignalMatch{
		Name:         "required-fields",
		Matched:      structural,
		Weight:       cp.RequiredWeight,
		Contribution: contrib,
	})

	confidence := 0.0
	if maxPossible > 0 {
		confidence = total / maxPossible
	}
	if cp.MinItems > 0 && len(sampleItems) < cp.MinItems {
		confidence *= 0.5
	}
	return Result{
		Category:   cp.Category,
		Confidence: confidence,
		Level:      levelFor(confidence, cp.Thresholds),
		Signals:    signals,
	}
}

func (s *Scorer) nameMatch(fieldName string, p Pattern) float64 {
	if p.RegexOnly || s.strategy == StrategyRegex || s.classifier == nil {
		return regexMatch(fieldName, p.Names)
	}
	scores := s.classifier.Scores(fieldName)
	if scores == nil {
		return 0
	}
	return scores[p.Category]
}

func regexMatch(fieldName string, names []NamePattern) float64 {
	best := 0.0
	for _, n := range names {
		if n.Regex.MatchString(fieldName) && n.Weight > best {
			best = n.Weight
		}
	}
	return best
}

func requiredFieldsPresent(required []RequiredField, fields []schema.Field) bool {
	for _, req := range required {
		found := false
		for i := range fields {
			f := &fields[i]
			if !req.Name.MatchString(f.Name) {
				continue
			}
			if f.Type != nil && f.Type.Kind == schema.KindPrimitive && anyTypeMatches(req.Types, f.Type.Primitive) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// anySampleMatches runs check over samples, containing panics so one bad
// validator (including plugin-supplied ones) counts as a non-match instead
// of aborting the scoring pass.
func anySampleMatches(samples []any, check func(v any) bool) bool {
	for _, v := range samples {
		if safeCheck(check, v) {
			return true
		}
	}
	return false
}

func safeCheck(check func(v any) bool, v any) (matched bool) {
	defer func() {
		if r := recover(); r != nil {
			matched = false
		}
	}()
	return check(v)
}

func levelFor(confidence float64, t Thresholds) Level {
	switch {
	case confidence >= t.High:
		return LevelHigh
	case confidence >= t.Medium:
		return LevelMedium
	case confidence > 0:
		return LevelLow
	default:
		return LevelNone
	}
}
