package semantic

// AppliedAt records whether a field's presentation came from a semantic
// match or fell back to its structural type.
type AppliedAt string

const (
	AppliedSmartDefault AppliedAt = "smart-default"
	AppliedTypeBased    AppliedAt = "type-based"
)

// Alternative is a runner-up category kept alongside the applied one.
type Alternative struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// Metadata is the semantic outcome attached to one field path for the
// duration of an analysis pass.
type Metadata struct {
	Category     string        `json:"category,omitempty"`
	Confidence   float64       `json:"confidence"`
	Level        Level         `json:"level"`
	AppliedAt    AppliedAt     `json:"appliedAt"`
	Alternatives []Alternative `json:"alternatives,omitempty"`
}

// MetadataFromResults condenses a ranked result list into field metadata.
// Only a high-level best match assigns a category; everything else renders
// type-based with the runners-up retained for inspection.
func MetadataFromResults(results []Result) Metadata {
	m := Metadata{Level: LevelNone, AppliedAt: AppliedTypeBased}

	alternatives := results
	if best := BestMatch(results); best != nil {
		m.Category = best.Category
		m.Confidence = best.Confidence
		m.Level = best.Level
		m.AppliedAt = AppliedSmartDefault
		alternatives = results[1:]
	} else if len(results) > 0 {
		m.Confidence = results[0].Confidence
		m.Level = results[0].Level
	}

	for _, r := range alternatives {
		if len(m.Alternatives) == 2 {
			break
		}
		if r.Category == m.Category {
			continue
		}
		m.Alternatives = append(m.Alternatives, Alternative{Category: r.Category, Confidence: r.Confidence})
	}
	return m
}
