package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"uuid", "3f0e8a1c-8a4e-4c1b-9f0a-1f2e3d4c5b6a", false},
		{"connection point", "a1:top", false},
		{"short", "n1", false},

		{"empty", "", true},
		{"too long", strings.Repeat("x", 129), true},
		{"space", "a b", true},
		{"newline", "a\nb", true},
		{"null byte", "a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFinite(t *testing.T) {
	tests := []struct {
		name     string
		v        float64
		wantCode Code
	}{
		{"zero", 0, ""},
		{"negative", -250.5, ""},
		{"nan", math.NaN(), ErrCodeDegenerateGeometry},
		{"inf", math.Inf(1), ErrCodeDegenerateGeometry},
		{"huge", 1e9, ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFinite("x", tt.v)
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidateFinite(%v) code = %q, want %q", tt.v, got, tt.wantCode)
			}
		})
	}
}

func TestValidateSize(t *testing.T) {
	if err := ValidateSize(10, 0); err != nil {
		t.Errorf("zero height should be accepted for lines: %v", err)
	}
	if err := ValidateSize(-1, 10); !Is(err, ErrCodeDegenerateGeometry) {
		t.Errorf("negative width error = %v, want DEGENERATE_GEOMETRY", err)
	}
}

func TestValidateFormat(t *testing.T) {
	if err := ValidateFormat("SVG", "svg", "png"); err != nil {
		t.Errorf("ValidateFormat should be case-insensitive: %v", err)
	}
	err := ValidateFormat("gif", "svg", "png")
	if !Is(err, ErrCodeInvalidFormat) {
		t.Fatalf("ValidateFormat(gif) = %v, want INVALID_FORMAT", err)
	}
	if !strings.Contains(err.Error(), "svg, png") {
		t.Errorf("error should list allowed formats: %v", err)
	}
}
