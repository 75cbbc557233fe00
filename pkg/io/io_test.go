package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/snapboard/pkg/errors"
	"github.com/matzehuels/snapboard/pkg/geom"
	"github.com/matzehuels/snapboard/pkg/scene"
	"github.com/matzehuels/snapboard/pkg/shape"
)

const sample = `{
  "version": 1,
  "grid": 20,
  "stage": {"x": 0, "y": 0, "width": 800, "height": 600},
  "shapes": [
    {"id": "a", "kind": "rectangle", "x": 0, "y": 0, "width": 100, "height": 60},
    {"id": "b", "kind": "polyline", "x": 200, "y": 0, "points": [{"x": 0, "y": 0}, {"x": 100, "y": 100}]}
  ],
  "links": [{"id": "l1", "from": "a:right", "to": "b:start"}]
}`

func TestReadJSON(t *testing.T) {
	sc, err := ReadJSON(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Len() != 2 || len(sc.Links()) != 1 {
		t.Fatalf("len=%d links=%d", sc.Len(), len(sc.Links()))
	}
	b, _ := sc.Shape("b")
	if w, h := b.Size(); w != 100 || h != 100 {
		t.Errorf("polyline size = %vx%v", w, h)
	}
	from, to, ok := sc.LinkEndpoints(sc.Links()[0])
	if !ok || from != geom.Pt(100, 30) || to != geom.Pt(200, 0) {
		t.Errorf("link = %v -> %v (%v)", from, to, ok)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"malformed", `{"shapes": [`, errors.ErrCodeInvalidDocument},
		{"unknown field", `{"shapes": [], "layers": 3}`, errors.ErrCodeInvalidDocument},
		{"bad kind", `{"shapes": [{"id": "a", "kind": "star", "width": 1, "height": 1}]}`, errors.ErrCodeInvalidDocument},
		{"dangling link", `{"shapes": [], "links": [{"id": "l", "from": "x:top", "to": "y:top"}]}`, errors.ErrCodeMissingReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.input)); !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	sc := scene.New()
	s := shape.NewBox(shape.KindEllipse, geom.Rect{X: 5, Y: 5, Width: 40, Height: 20})
	s.SetRotation(30)
	s.SetLabel("start")
	if err := sc.Add(s); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "scene.json")
	if err := ExportJSON(sc, path); err != nil {
		t.Fatal(err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	gs, ok := got.Shape(s.ID())
	if !ok || gs.Rotation() != 30 || gs.Label() != "start" || gs.Kind() != shape.KindEllipse {
		t.Errorf("imported shape = %+v", gs.Spec())
	}

	var a, b bytes.Buffer
	_ = WriteJSON(sc, &a)
	_ = WriteJSON(got, &b)
	if a.String() != b.String() {
		t.Errorf("re-export differs:\n%s\n%s", a.String(), b.String())
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}
