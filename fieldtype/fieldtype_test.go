package fieldtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectNull(t *testing.T) {
	assert.Equal(t, Null, Detect(nil))
}

func TestDetectBoolean(t *testing.T) {
	assert.Equal(t, Boolean, Detect(true))
	assert.Equal(t, Boolean, Detect(false))
}

func TestDetectNumber(t *testing.T) {
	assert.Equal(t, Number, Detect(float64(3.14)))
	assert.Equal(t, Number, Detect(int(42)))
	assert.Equal(t, Number, Detect(int64(-1)))
}

func TestDetectString(t *testing.T) {
	assert.Equal(t, String, Detect("hello"))
	assert.Equal(t, String, Detect(""))
}

func TestDetectDate(t *testing.T) {
	assert.Equal(t, Date, Detect("2024-02-01"))
	assert.Equal(t, Date, Detect("2024-02-01T12:00:00Z"))
	assert.Equal(t, Date, Detect("2024-02-01T12:00:00+02:00"))
	assert.Equal(t, Date, Detect("2024-02-01 12:00:00"))
}

func TestDetectInvalidCalendarDateIsString(t *testing.T) {
	// Shape matches but the month does not exist.
	assert.Equal(t, String, Detect("2024-13-01"))
	assert.Equal(t, String, Detect("2024-02-30"))
}

func TestDetectDateishStringsStayStrings(t *testing.T) {
	assert.Equal(t, String, Detect("2024"))
	assert.Equal(t, String, Detect("01/02/2024"))
	assert.Equal(t, String, Detect("yesterday"))
}

func TestDetectContainersAreUnknown(t *testing.T) {
	assert.Equal(t, Unknown, Detect([]any{1, 2}))
	assert.Equal(t, Unknown, Detect(map[string]any{"a": 1}))
}
