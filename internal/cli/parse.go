package cli

import (
	"strconv"
	"strings"

	"github.com/matzehuels/snapboard/pkg/errors"
	"github.com/matzehuels/snapboard/pkg/geom"
	"github.com/matzehuels/snapboard/pkg/shape"
)

// parsePoint parses "x,y".
func parsePoint(s string) (geom.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geom.Point{}, errors.New(errors.ErrCodeInvalidInput, "point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return geom.Point{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "point %q", s)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return geom.Point{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "point %q", s)
	}
	return geom.Pt(x, y), nil
}

// parseHandle parses a handle name with an optional bend index, e.g.
// "bottom-right" or "manual:3".
func parseHandle(s string) (shape.Role, int, error) {
	name, idx, hasIdx := strings.Cut(s, ":")
	role, ok := shape.ParseRole(name)
	if !ok {
		return "", 0, errors.New(errors.ErrCodeInvalidRole, "unknown handle %q", name)
	}
	if !hasIdx {
		if role == shape.RoleManual {
			return "", 0, errors.New(errors.ErrCodeInvalidRole, "bend handle needs an index, e.g. manual:1")
		}
		return role, 0, nil
	}
	if role != shape.RoleManual {
		return "", 0, errors.New(errors.ErrCodeInvalidRole, "only bend handles take an index")
	}
	i, err := strconv.Atoi(idx)
	if err != nil || i < 0 {
		return "", 0, errors.New(errors.ErrCodeInvalidRole, "bend index %q must be a non-negative integer", idx)
	}
	return role, i, nil
}

// parseIDs splits a comma-separated ID list, dropping blanks.
func parseIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
