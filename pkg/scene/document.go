package scene

import (
	"github.com/matzehuels/snapboard/pkg/errors"
	"github.com/matzehuels/snapboard/pkg/geom"
	"github.com/matzehuels/snapboard/pkg/shape"
)

// DocumentVersion is the current document format version.
const DocumentVersion = 1

// Document is the serializable form of a scene. Selection, hover and guides
// are transient and not persisted.
type Document struct {
	Version int          `json:"version"`
	Grid    float64      `json:"grid,omitempty"`
	Stage   geom.Rect    `json:"stage"`
	Shapes  []shape.Spec `json:"shapes"`
	Links   []Link       `json:"links,omitempty"`
}

// Document captures the scene.
func (sc *Scene) Document() Document {
	doc := Document{
		Version: DocumentVersion,
		Grid:    sc.Grid,
		Stage:   sc.Stage,
		Shapes:  make([]shape.Spec, len(sc.shapes)),
		Links:   sc.Links(),
	}
	for i, s := range sc.shapes {
		doc.Shapes[i] = s.Spec()
	}
	return doc
}

// FromDocument builds a scene, validating shapes and link references.
func FromDocument(doc Document) (*Scene, error) {
	if doc.Version > DocumentVersion {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "unsupported document version %d", doc.Version)
	}
	if doc.Grid < 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "grid must not be negative")
	}
	sc := New()
	if doc.Grid > 0 {
		sc.Grid = doc.Grid
	}
	sc.Stage = doc.Stage
	for i, sp := range doc.Shapes {
		s, err := shape.FromSpec(sp)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "shape %d", i)
		}
		if err := sc.Add(s); err != nil {
			return nil, err
		}
	}
	for _, l := range doc.Links {
		if err := errors.ValidateID(l.ID); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "link")
		}
		if _, _, ok := sc.LinkEndpoints(l); !ok {
			return nil, errors.New(errors.ErrCodeMissingReference, "link %s: %s -> %s does not resolve", l.ID, l.From, l.To)
		}
		sc.links = append(sc.links, l)
	}
	sc.nextLink = len(sc.links)
	return sc, nil
}
