// Package embedding matches field names to semantic categories using
// pre-computed token vectors and category centroids.
package embedding

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
)

// Artifact is the versioned vector asset produced offline. Vectors and
// centroids are L2-normalized at build time; nothing here re-normalizes them.
type Artifact struct {
	Model     string               `json:"model"`
	Version   int                  `json:"version"`
	Dim       int                  `json:"dim"`
	Vectors   map[string][]float32 `json:"vectors"`
	Centroids map[string][]float32 `json:"centroids"`
}

//go:embed embedded/vectors.json
var embeddedArtifact []byte

// ParseArtifact decodes and validates a vector artifact.
func ParseArtifact(b []byte) (*Artifact, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	var a Artifact
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("embedding: parse artifact: %w", err)
	}
	if a.Dim <= 0 {
		return nil, fmt.Errorf("embedding: artifact %q has invalid dim %d", a.Model, a.Dim)
	}
	if len(a.Centroids) == 0 {
		return nil, fmt.Errorf("embedding: artifact %q has no centroids", a.Model)
	}
	for tok, v := range a.Vectors {
		if len(v) != a.Dim {
			return nil, fmt.Errorf("embedding: token %q has dim %d, want %d", tok, len(v), a.Dim)
		}
	}
	for cat, v := range a.Centroids {
		if len(v) != a.Dim {
			return nil, fmt.Errorf("embedding: centroid %q has dim %d, want %d", cat, len(v), a.Dim)
		}
	}
	return &a, nil
}

// DefaultArtifact returns the artifact compiled into the binary.
func DefaultArtifact() (*Artifact, error) {
	return ParseArtifact(embeddedArtifact)
}
