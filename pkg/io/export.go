package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/snapboard/pkg/scene"
)

// WriteDocument encodes a document as indented JSON.
func WriteDocument(doc scene.Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteJSON encodes a scene as JSON and writes it to w. The output can be
// re-imported with [ReadJSON].
func WriteJSON(sc *scene.Scene, w io.Writer) error {
	return WriteDocument(sc.Document(), w)
}

// ExportJSON writes a scene to a JSON file at path.
func ExportJSON(sc *scene.Scene, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(sc, f)
}
