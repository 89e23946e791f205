// Package fieldtype classifies single JSON primitive values into the small
// set of types the rest of the pipeline reasons about.
package fieldtype

import (
	"regexp"
	"time"
)

type FieldType string

const (
	String  FieldType = "string"
	Number  FieldType = "number"
	Boolean FieldType = "boolean"
	Date    FieldType = "date"
	Null    FieldType = "null"
	Unknown FieldType = "unknown"
)

// Shape check only. Calendar validity is left to time.Parse so that
// "2024-13-01" is rejected even though it matches the pattern.
var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([T ]\d{2}:\d{2}(:\d{2}(\.\d+)?)?(Z|[+-]\d{2}:\d{2})?)?$`)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Detect maps a decoded JSON value to its FieldType. It is pure and total:
// any input produces a result, nothing is ever raised. Arrays and objects
// passed here directly resolve to Unknown; callers are expected to have
// descended into containers already.
func Detect(v any) FieldType {
	switch x := v.(type) {
	case nil:
		return Null
	case bool:
		return Boolean
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Number
	case string:
		if IsDateString(x) {
			return Date
		}
		return String
	default:
		return Unknown
	}
}

// IsDateString reports whether s is an ISO-8601 date or datetime that also
// names a real calendar date.
func IsDateString(s string) bool {
	if !isoDatePattern.MatchString(s) {
		return false
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
