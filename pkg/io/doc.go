// Package io provides JSON import and export for snapboard scenes.
//
// # JSON Format
//
//	{
//	  "version": 1,
//	  "grid": 20,
//	  "stage": {"x": 0, "y": 0, "width": 1200, "height": 800},
//	  "shapes": [
//	    {"id": "a", "kind": "rectangle", "x": 0, "y": 0, "width": 100, "height": 60},
//	    {"id": "b", "kind": "polyline", "x": 200, "y": 0,
//	     "points": [{"x": 0, "y": 0}, {"x": 100, "y": 100}]}
//	  ],
//	  "links": [
//	    {"id": "l1", "from": "a:right", "to": "b:start"}
//	  ]
//	}
//
// Shape fields follow [shape.Spec]. Line points are local to the shape
// position; rotation is in degrees about the position.
//
// # Import
//
// Use [ImportJSON] to read a scene from a file path, or [ReadJSON] to read
// from any io.Reader. Both validate geometry and link references and return
// coded errors from pkg/errors.
//
// # Export
//
// Use [ExportJSON] to write a scene to a file, or [WriteJSON] to write to any
// io.Writer. Transient state (selection, hover, guides) is not exported.
//
// [shape.Spec]: github.com/matzehuels/snapboard/pkg/shape.Spec
package io
