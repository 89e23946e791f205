package semantic

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/apilens/apilens/fieldtype"
)

var (
	emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneShape = regexp.MustCompile(`^\+?[0-9][0-9 ().\-]{5,}$`)
	iso4217    = regexp.MustCompile(`^[A-Z]{3}$`)
	imageExt   = regexp.MustCompile(`(?i)\.(png|jpe?g|gif|webp|svg|bmp|avif)(\?.*)?$`)
)

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func isUUIDOrIntegral(v any) bool {
	if s, ok := asString(v); ok {
		_, err := uuid.Parse(s)
		return err == nil
	}
	if n, ok := asNumber(v); ok {
		return n == float64(int64(n)) && n >= 0
	}
	return false
}

func isShortText(v any) bool {
	s, ok := asString(v)
	return ok && s != "" && len(s) <= 120 && !strings.ContainsRune(s, '\n')
}

func isFreeText(v any) bool {
	s, ok := asString(v)
	return ok && (strings.ContainsRune(s, ' ') || len(s) >= 15)
}

func isNonNegativeNumber(v any) bool {
	n, ok := asNumber(v)
	return ok && n >= 0
}

func isNonNegativeIntegral(v any) bool {
	n, ok := asNumber(v)
	return ok && n >= 0 && n == float64(int64(n))
}

func isBoundedRating(v any) bool {
	n, ok := asNumber(v)
	return ok && n >= 0 && n <= 10
}

func isEmailShaped(v any) bool {
	s, ok := asString(v)
	return ok && emailShape.MatchString(s)
}

func isPhoneShaped(v any) bool {
	s, ok := asString(v)
	return ok && phoneShape.MatchString(s)
}

func isHTTPURL(v any) bool {
	s, ok := asString(v)
	if !ok {
		return false
	}
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isImageReference(v any) bool {
	s, ok := asString(v)
	if !ok {
		return false
	}
	return imageExt.MatchString(s) || strings.Contains(s, "/image")
}

func isParseableDate(v any) bool {
	return fieldtype.Detect(v) == fieldtype.Date
}

func isCurrencyCode(v any) bool {
	s, ok := asString(v)
	return ok && iso4217.MatchString(s)
}

func isEnumLike(v any) bool {
	if _, ok := v.(bool); ok {
		return true
	}
	s, ok := asString(v)
	return ok && s != "" && len(s) <= 20 && !strings.ContainsRune(s, ' ')
}

func isShortToken(v any) bool {
	s, ok := asString(v)
	return ok && s != "" && len(s) <= 30
}

func isNonEmptyText(v any) bool {
	s, ok := asString(v)
	return ok && len(strings.TrimSpace(s)) >= 3
}

func isCoordinate(v any) bool {
	n, ok := asNumber(v)
	return ok && n >= -180 && n <= 180
}
