package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/snapboard/pkg/errors"
	"github.com/matzehuels/snapboard/pkg/scene"
)

// maxDocumentSize caps how much input ReadJSON will decode.
const maxDocumentSize = 16 << 20

// DecodeDocument decodes a document from r without building a scene.
// Unknown fields are rejected.
func DecodeDocument(r io.Reader) (scene.Document, error) {
	var doc scene.Document
	dec := json.NewDecoder(io.LimitReader(r, maxDocumentSize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return scene.Document{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode")
	}
	if doc.Version == 0 {
		doc.Version = scene.DocumentVersion
	}
	return doc, nil
}

// ReadJSON decodes a JSON document from r into a scene.
//
// ReadJSON returns an error if the JSON is malformed, a shape fails
// validation, two shapes share an ID, or a link references an unknown
// connection point. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*scene.Scene, error) {
	doc, err := DecodeDocument(r)
	if err != nil {
		return nil, err
	}
	return scene.FromDocument(doc)
}

// ImportJSON reads a JSON file at path and returns the decoded scene.
func ImportJSON(path string) (*scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
