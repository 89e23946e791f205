// Package layout picks a presentation component for a schema node from weak,
// independent signals: detected semantics, importance tiers and value shape.
// Every heuristic is a pure function; nothing here mutates the context.
package layout

import (
	"github.com/apilens/apilens/importance"
	"github.com/apilens/apilens/semantic"
)

type ComponentType string

const (
	Table         ComponentType = "table"
	CardList      ComponentType = "card-list"
	Gallery       ComponentType = "gallery"
	Timeline      ComponentType = "timeline"
	Hero          ComponentType = "hero"
	Tabs          ComponentType = "tabs"
	Split         ComponentType = "split"
	Chips         ComponentType = "chips"
	PrimitiveList ComponentType = "primitive-list"
	Detail        ComponentType = "detail"
	Primitive     ComponentType = "primitive"
	JSONView      ComponentType = "json"
)

// A heuristic result below this confidence is "no strong opinion" and the
// chain keeps going.
const AcceptThreshold = 0.75

// Selection names the chosen component, how sure the chain is, and which
// heuristic fired.
type Selection struct {
	Component  ComponentType `json:"component"`
	Confidence float64       `json:"confidence"`
	Reason     string        `json:"reason"`
}

// Context is the read-only per-node view the heuristics consult. Semantics
// and importance are keyed by the node's local field names; Self describes
// the node itself (e.g. the array field holding the values).
type Context struct {
	Self       *semantic.Metadata
	Semantics  map[string]semantic.Metadata
	Importance map[string]importance.Score
}

// CategoryOf returns the applied semantic category of a field, or "".
func (c *Context) CategoryOf(name string) string {
	if c == nil {
		return ""
	}
	return c.Semantics[name].Category
}

// TierOf returns a field's importance tier. Fields with no computed
// importance count as secondary: visible, not headline.
func (c *Context) TierOf(name string) importance.Tier {
	if c == nil {
		return importance.TierSecondary
	}
	if s, ok := c.Importance[name]; ok {
		return s.Tier
	}
	return importance.TierSecondary
}

func (c *Context) visible(name string) bool {
	t := c.TierOf(name)
	return t == importance.TierPrimary || t == importance.TierSecondary
}
