package embedding

import (
	"math"
	"sort"
	"strings"
	"sync"
	"unicode"
)

// Raw cosine similarities across centroids cluster tightly, so absolute
// thresholds do not discriminate between categories. Classification instead
// rescales similarities so the best centroid scores 1 and the worst 0. When
// the spread is below this bound the name carries no signal at all and every
// category scores 0.
const minSpread = 0.005

// Classifier computes field-name to category scores. Safe for concurrent use.
type Classifier struct {
	art        *Artifact
	categories []string

	mu     sync.RWMutex
	scores map[string]map[string]float64
}

func NewClassifier(art *Artifact) *Classifier {
	cats := make([]string, 0, len(art.Centroids))
	for c := range art.Centroids {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return &Classifier{
		art:        art,
		categories: cats,
		scores:     make(map[string]map[string]float64),
	}
}

// Categories lists the centroid categories in stable order.
func (c *Classifier) Categories() []string {
	return c.categories
}

// Invalidate drops all cached scores. Must be called when the surrounding
// matching strategy changes so stale cross-strategy results cannot leak.
func (c *Classifier) Invalidate() {
	c.mu.Lock()
	c.scores = make(map[string]map[string]float64)
	c.mu.Unlock()
}

// Tokenize splits a field name into lookup tokens. The lowercased whole name
// always comes first so single compound words hit the vocabulary directly;
// separator and camelCase parts follow, deduplicated in order.
func Tokenize(name string) []string {
	if name == "" {
		return nil
	}
	tokens := []string{strings.ToLower(name)}
	seen := map[string]struct{}{tokens[0]: {}}
	for _, part := range splitWords(name) {
		p := strings.ToLower(part)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		tokens = append(tokens, p)
	}
	return tokens
}

func splitWords(name string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = nil
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == '.' || r == '/':
			flush()
		case i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]):
			// camelCase boundary
			flush()
			cur = append(cur, r)
		case i > 0 && i+1 < len(runes) && unicode.IsUpper(r) && unicode.IsUpper(runes[i-1]) && unicode.IsLower(runes[i+1]):
			// acronym to word boundary: "HTTPServer" -> "HTTP", "Server"
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return words
}

// Embed averages the vectors of all vocabulary tokens and re-normalizes.
// Unknown tokens are skipped silently; if no token is known the result is
// nil, meaning "cannot classify", which is distinct from a zero score.
func (c *Classifier) Embed(tokens []string) []float32 {
	sum := make([]float32, c.art.Dim)
	known := 0
	for _, tok := range tokens {
		v, ok := c.art.Vectors[tok]
		if !ok {
			continue
		}
		for i, x := range v {
			sum[i] += x
		}
		known++
	}
	if known == 0 {
		return nil
	}
	inv := 1 / float32(known)
	var norm float64
	for i := range sum {
		sum[i] *= inv
		norm += float64(sum[i]) * float64(sum[i])
	}
	if norm == 0 {
		return nil
	}
	scale := float32(1 / math.Sqrt(norm))
	for i := range sum {
		sum[i] *= scale
	}
	return sum
}

// Scores returns the competitively normalized score of name against every
// category, or nil when the name cannot be embedded. Results are cached per
// field name.
func (c *Classifier) Scores(name string) map[string]float64 {
	c.mu.RLock()
	cached, ok := c.scores[name]
	c.mu.RUnlock()
	if ok {
		return cached
	}

	computed := c.computeScores(name)

	c.mu.Lock()
	c.scores[name] = computed
	c.mu.Unlock()
	return computed
}

func (c *Classifier) computeScores(name string) map[string]float64 {
	vec := c.Embed(Tokenize(name))
	if vec == nil {
		return nil
	}

	sims := make(map[string]float64, len(c.categories))
	min, max := 2.0, -2.0
	for _, cat := range c.categories {
		s := dot(vec, c.art.Centroids[cat])
		sims[cat] = s
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}

	out := make(map[string]float64, len(sims))
	if max-min < minSpread {
		// Equidistant from every centroid: no discrimination possible.
		for cat := range sims {
			out[cat] = 0
		}
		return out
	}
	spread := max - min
	for cat, s := range sims {
		out[cat] = (s - min) / spread
	}
	return out
}

// Classify returns the best-scoring category for name, or ok=false when the
// name has no known tokens or no category stands out.
func (c *Classifier) Classify(name string) (category string, score float64, ok bool) {
	scores := c.Scores(name)
	if scores == nil {
		return "", 0, false
	}
	best := ""
	bestScore := -1.0
	for _, cat := range c.categories {
		if s := scores[cat]; s > bestScore {
			best, bestScore = cat, s
		}
	}
	if bestScore <= 0 {
		return "", 0, false
	}
	return best, bestScore, true
}

func dot(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}
