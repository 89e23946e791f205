package semantic

import (
	"regexp"
	"sort"
	"sync"

	"github.com/apilens/apilens/fieldtype"
	"github.com/apilens/apilens/schema"
)

// Up to this many ranked alternatives are returned per field.
const maxResults = 3

// Plugin categories are forced onto regex name matching plus a validator and
// a loose type constraint at these weights.
const (
	pluginTypeWeight      = 0.10
	pluginValidatorWeight = 0.30
)

// PluginCategory is a category contributed by the application layer.
type PluginCategory struct {
	ID           string
	Name         string
	Description  string
	NamePatterns []*regexp.Regexp
	NameKeywords []string
	Validate     func(v any, ctx map[string]any) bool
}

// CategoryProvider supplies plugin categories. The detector re-derives its
// plugin patterns whenever the provider is replaced.
type CategoryProvider interface {
	ListCategories() []PluginCategory
}

// Detector orchestrates the registry, scorer and cache across core (tier 1)
// and plugin (tier 2) categories. Both tiers compete in one ranked list.
type Detector struct {
	registry *Registry
	scorer   *Scorer
	cache    *Cache

	mu       sync.RWMutex
	provider CategoryProvider
	plugins  []Pattern
}

func NewDetector(registry *Registry, scorer *Scorer, cache *Cache) *Detector {
	if cache == nil {
		cache = NewCache()
	}
	return &Detector{registry: registry, scorer: scorer, cache: cache}
}

// Cache exposes the detection cache for metrics and test isolation.
func (d *Detector) Cache() *Cache {
	return d.cache
}

// SetProvider installs (or replaces) the plugin category provider and drops
// every cached detection derived from the previous category set.
func (d *Detector) SetProvider(p CategoryProvider) {
	d.mu.Lock()
	d.provider = p
	d.plugins = derivePluginPatterns(p)
	d.mu.Unlock()
	d.cache.Clear()
}

// SetStrategy flips the global name-matching mode. The detection cache and
// the classifier's score cache are invalidated so results from the previous
// strategy cannot leak through.
func (d *Detector) SetStrategy(s Strategy) {
	d.mu.Lock()
	d.scorer.setStrategy(s)
	d.mu.Unlock()
	if d.scorer.classifier != nil {
		d.scorer.classifier.Invalidate()
	}
	d.cache.Clear()
}

// Detect scores fieldName against every registered category and returns up to
// three results ordered by descending confidence. Zero-confidence results are
// dropped entirely.
func (d *Detector) Detect(fieldPath, fieldName string, ft fieldtype.FieldType, samples []any, hints *Hints) []Result {
	key := CacheKey(fieldPath, fieldName, ft, samples, hints)
	if cached, ok := d.cache.Get(key); ok {
		return cached
	}

	d.mu.RLock()
	plugins := d.plugins
	d.mu.RUnlock()

	results := make([]Result, 0, maxResults)
	for _, p := range d.registry.Patterns() {
		if r := d.scorer.Score(fieldName, ft, samples, hints, p); r.Confidence > 0 {
			results = append(results, r)
		}
	}
	for _, p := range plugins {
		if r := d.scorer.Score(fieldName, ft, samples, hints, p); r.Confidence > 0 {
			results = append(results, r)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Confidence != results[j].Confidence {
			return results[i].Confidence > results[j].Confidence
		}
		return results[i].Category < results[j].Category
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	d.cache.Set(key, results)
	return results
}

// BestMatch returns the top result only when its level is exactly high.
// Medium and low matches fall back to type-based rendering rather than
// guessing: precision over recall.
func BestMatch(results []Result) *Result {
	if len(results) == 0 {
		return nil
	}
	if results[0].Level != LevelHigh {
		return nil
	}
	top := results[0]
	return &top
}

// DetectComposite evaluates the multi-field array patterns and returns the
// single best match with confidence > 0, or nil.
func (d *Detector) DetectComposite(fieldName string, itemFields []schema.Field, sampleItems []any) *Result {
	var best *Result
	for _, cp := range d.registry.Composites() {
		r := d.scorer.ScoreComposite(fieldName, itemFields, sampleItems, cp)
		if r.Confidence <= 0 {
			continue
		}
		if best == nil || r.Confidence > best.Confidence {
			tmp := r
			best = &tmp
		}
	}
	return best
}

func derivePluginPatterns(p CategoryProvider) []Pattern {
	if p == nil {
		return nil
	}
	cats := p.ListCategories()
	patterns := make([]Pattern, 0, len(cats))
	for _, c := range cats {
		names := make([]NamePattern, 0, len(c.NamePatterns)+len(c.NameKeywords))
		for _, re := range c.NamePatterns {
			if re != nil {
				names = append(names, NamePattern{Regex: re, Weight: 1.0})
			}
		}
		for _, kw := range c.NameKeywords {
			re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(kw))
			if err != nil {
				continue
			}
			names = append(names, NamePattern{Regex: re, Weight: 1.0})
		}

		pat := Pattern{
			Category: c.ID,
			Names:    names,
			Type: TypeConstraint{
				// Loose on purpose: plugins declare meaning, not shape.
				Types: []fieldtype.FieldType{
					fieldtype.String, fieldtype.Number, fieldtype.Boolean,
					fieldtype.Date, fieldtype.Null, fieldtype.Unknown,
				},
				Weight: pluginTypeWeight,
			},
			Thresholds: defaultThresholds,
			RegexOnly:  true,
		}
		if c.Validate != nil {
			validate := c.Validate
			pat.Validators = []ValueValidator{{
				Name:   "plugin:" + c.ID,
				Weight: pluginValidatorWeight,
				Check: func(v any) bool {
					return validate(v, nil)
				},
			}}
		}
		patterns = append(patterns, pat)
	}
	return patterns
}
