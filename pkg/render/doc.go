// Package render draws scenes.
//
// # SVG
//
// [RenderSVG] writes every shape in paint order with its rotation, the links
// between connection points, and optionally the background grid, the handles
// of selected or hovered shapes, and the snap guides on screen:
//
//	svg := render.RenderSVG(sc, render.WithGrid(), render.WithGuides())
//
// Appearance is delegated to a [Style]; [Simple] is the default.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG through the external rsvg-convert tool
// (librsvg).
//
// # Topology
//
// [ToDOT] exports shapes and links as a Graphviz graph with every node
// pinned at its scene position, and [RenderDOT] lays it out with neato.
//
// # Caching
//
// A [Renderer] produces any [Format] and stores the bytes in a
// [cache.Cache], keyed by a hash of the document and the options.
package render
