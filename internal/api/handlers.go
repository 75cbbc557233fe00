package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/snapboard/pkg/buildinfo"
	"github.com/matzehuels/snapboard/pkg/errors"
	"github.com/matzehuels/snapboard/pkg/geom"
	"github.com/matzehuels/snapboard/pkg/interact"
	"github.com/matzehuels/snapboard/pkg/render"
	"github.com/matzehuels/snapboard/pkg/scene"
	"github.com/matzehuels/snapboard/pkg/shape"
	"github.com/matzehuels/snapboard/pkg/snap"
)

// SnapRequest moves the Moving shapes by Delta world units. Shapes and Grid
// override the configured snap switches for this request.
type SnapRequest struct {
	Document scene.Document      `json:"document"`
	Moving   []string            `json:"moving"`
	Delta    geom.Point          `json:"delta"`
	View     *geom.ViewTransform `json:"view,omitempty"`
	Shapes   *bool               `json:"shapes,omitempty"`
	Grid     *bool               `json:"grid,omitempty"`
}

// SnapResponse reports the correction applied and the resulting document.
type SnapResponse struct {
	Offset   geom.Point     `json:"offset"`
	XSource  string         `json:"x_source"`
	YSource  string         `json:"y_source"`
	Guides   []snap.Guide   `json:"guides"`
	Document scene.Document `json:"document"`
}

// AdjustRequest drags one handle of Shape to Pointer, in screen pixels
// under View.
type AdjustRequest struct {
	Document  scene.Document      `json:"document"`
	Shape     string              `json:"shape"`
	Handle    string              `json:"handle"`
	Index     int                 `json:"index,omitempty"`
	Pointer   geom.Point          `json:"pointer"`
	View      *geom.ViewTransform `json:"view,omitempty"`
	AngleStep *float64            `json:"angle_step,omitempty"`
}

// AdjustResponse reports whether the shape changed, its new state and the
// resulting document.
type AdjustResponse struct {
	Changed  bool           `json:"changed"`
	Shape    shape.Spec     `json:"shape"`
	Document scene.Document `json:"document"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleSnap(w http.ResponseWriter, r *http.Request) {
	var req SnapRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	opts := s.cfg.Interaction()
	if req.Shapes != nil {
		opts.Snap.Shapes = *req.Shapes
	}
	if req.Grid != nil {
		opts.Snap.Grid = *req.Grid
	}
	c, err := s.controller(req.Document, req.View, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := c.MoveBy(r.Context(), req.Moving, req.Delta)
	if err != nil {
		writeError(w, err)
		return
	}
	guides := res.Guides
	if guides == nil {
		guides = []snap.Guide{}
	}
	writeJSON(w, http.StatusOK, SnapResponse{
		Offset:   res.Offset,
		XSource:  res.X.String(),
		YSource:  res.Y.String(),
		Guides:   guides,
		Document: c.Scene().Document(),
	})
}

func (s *Server) handleAdjust(w http.ResponseWriter, r *http.Request) {
	var req AdjustRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	role, ok := shape.ParseRole(req.Handle)
	if !ok {
		writeError(w, errors.New(errors.ErrCodeInvalidRole, "unknown handle %q", req.Handle))
		return
	}
	opts := s.cfg.Interaction()
	if req.AngleStep != nil {
		opts.AngleStep = *req.AngleStep
	}
	c, err := s.controller(req.Document, req.View, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	changed, err := c.DragHandle(r.Context(), req.Shape, role, req.Index, req.Pointer)
	if err != nil {
		writeError(w, err)
		return
	}
	sh, _ := c.Scene().Shape(req.Shape)
	writeJSON(w, http.StatusOK, AdjustResponse{
		Changed:  changed,
		Shape:    sh.Spec(),
		Document: c.Scene().Document(),
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := render.FormatSVG
	if v := q.Get("format"); v != "" {
		f, err := render.ParseFormat(v)
		if err != nil {
			writeError(w, err)
			return
		}
		format = f
	}
	opts := render.Options{
		Format:  format,
		Handles: queryBool(q.Get("handles")),
		Grid:    queryBool(q.Get("grid")),
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "scale must be a positive number"))
			return
		}
		opts.Scale = scale
	}

	var doc scene.Document
	if err := decode(w, r, &doc); err != nil {
		writeError(w, err)
		return
	}
	sc, err := s.scene(doc)
	if err != nil {
		writeError(w, err)
		return
	}
	if opts.Handles {
		// Handles are drawn for the selection; derive them for every shape.
		interact.New(sc, nil, s.cfg.Interaction())
		if v := q.Get("selected"); v != "" {
			ids := strings.Split(v, ",")
			for _, id := range ids {
				if _, ok := sc.Shape(id); !ok {
					writeError(w, errors.New(errors.ErrCodeMissingReference, "shape %q not found", id))
					return
				}
			}
			sc.Select(ids...)
		}
	}

	data, hit, err := s.renderer.Render(r.Context(), sc, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) scene(doc scene.Document) (*scene.Scene, error) {
	sc, err := scene.FromDocument(doc)
	if err != nil {
		return nil, err
	}
	s.cfg.ApplyScene(sc, doc)
	return sc, nil
}

func (s *Server) controller(doc scene.Document, view *geom.ViewTransform, opts interact.Options) (*interact.Controller, error) {
	sc, err := s.scene(doc)
	if err != nil {
		return nil, err
	}
	c := interact.New(sc, nil, opts)
	if view != nil {
		c.SetView(*view)
	}
	return c, nil
}

func queryBool(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}

// decode reads a JSON body, rejecting unknown fields and oversized bodies.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, errors.HTTPStatus(err), errorBody{Error: errorDetail{Code: code, Message: errors.UserMessage(err)}})
}
