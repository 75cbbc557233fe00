package cli

import (
	"slices"
	"testing"

	"github.com/matzehuels/snapboard/pkg/errors"
	"github.com/matzehuels/snapboard/pkg/geom"
	"github.com/matzehuels/snapboard/pkg/shape"
)

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		want    geom.Point
		wantErr bool
	}{
		{"10,20", geom.Pt(10, 20), false},
		{" -3.5 , 0 ", geom.Pt(-3.5, 0), false},
		{"10", geom.Point{}, true},
		{"a,b", geom.Point{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePoint(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("code = %s", errors.GetCode(err))
			}
		})
	}
}

func TestParseHandle(t *testing.T) {
	tests := []struct {
		in      string
		role    shape.Role
		index   int
		wantErr bool
	}{
		{"bottom-right", shape.RoleBottomRight, 0, false},
		{"Rotate", shape.RoleRotate, 0, false},
		{"manual:3", shape.RoleManual, 3, false},
		{"manual", "", 0, true},
		{"top:1", "", 0, true},
		{"manual:-1", "", 0, true},
		{"middle", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			role, idx, err := parseHandle(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if role != tt.role || idx != tt.index {
				t.Errorf("got %s:%d, want %s:%d", role, idx, tt.role, tt.index)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidRole) {
				t.Errorf("code = %s", errors.GetCode(err))
			}
		})
	}
}

func TestParseIDs(t *testing.T) {
	if got := parseIDs(" a, ,b,"); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("parseIDs = %v", got)
	}
	if got := parseIDs(""); got != nil {
		t.Errorf("parseIDs(\"\") = %v", got)
	}
}
