package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxCoordinate bounds every coordinate and size accepted from the outside.
// Values beyond it are almost certainly corrupt input and would make guide
// extents and grid rounding meaningless.
const MaxCoordinate = 1e7

// ValidateID validates a shape, link or connection point identifier.
//
// The rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or whitespace
//   - Maximum length of 128 characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "id too long (max 128 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "id %q contains invalid characters", id)
		}
	}
	return nil
}

// ValidateFinite rejects NaN, infinities and values beyond MaxCoordinate.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeDegenerateGeometry, "%s is not a finite number", name)
	}
	if math.Abs(v) > MaxCoordinate {
		return New(ErrCodeInvalidInput, "%s out of range: %g", name, v)
	}
	return nil
}

// ValidateSize checks a width/height pair for a box shape.
func ValidateSize(w, h float64) error {
	if err := ValidateFinite("width", w); err != nil {
		return err
	}
	if err := ValidateFinite("height", h); err != nil {
		return err
	}
	if w < 0 || h < 0 {
		return New(ErrCodeDegenerateGeometry, "size cannot be negative: %gx%g", w, h)
	}
	return nil
}

// ValidateFormat checks that format is one of allowed (case-insensitive).
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if strings.EqualFold(format, a) {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
}
