package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/snapboard/pkg/errors"
	"github.com/matzehuels/snapboard/pkg/interact"
	"github.com/matzehuels/snapboard/pkg/render"
	"github.com/matzehuels/snapboard/pkg/scene"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string          // output file (single format) or base path
	formats  []render.Format // svg, png, pdf, dot, topology
	handles  bool            // draw handles of selected shapes
	selected []string        // shapes to select before rendering
	grid     bool            // draw the grid pattern
	scale    float64         // PNG scale factor
	noCache  bool            // bypass the artifact cache
}

func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr, selectStr string
	opts := renderOpts{scale: 1}

	cmd := &cobra.Command{
		Use:   "render <document.json>",
		Short: "Render a document to SVG, PNG, PDF or DOT",
		Long: `Render a scene document.

Formats:
  svg       the scene with labels and links (default)
  png, pdf  the SVG converted with rsvg-convert
  dot       Graphviz source of the link topology, node positions pinned
  topology  the DOT source laid out by Graphviz, as SVG`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := parseFormats(formatsStr)
			if err != nil {
				return err
			}
			opts.formats = formats
			opts.selected = parseIDs(selectStr)
			if opts.scale <= 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--scale must be positive")
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, topology (comma-separated)")
	cmd.Flags().BoolVar(&opts.handles, "handles", false, "draw handles of the selected shapes")
	cmd.Flags().StringVar(&selectStr, "select", "", "shape IDs to select (comma-separated)")
	cmd.Flags().BoolVar(&opts.grid, "grid", false, "draw the snap grid")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

// parseFormats parses the --format flag. An empty flag means svg.
func parseFormats(s string) ([]render.Format, error) {
	if s == "" {
		return []render.Format{render.FormatSVG}, nil
	}
	var out []render.Format
	for _, name := range strings.Split(s, ",") {
		f, err := render.ParseFormat(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output carries
// a format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if _, err := render.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath names the file for format f.
func outputPath(input string, f render.Format, opts *renderOpts) string {
	if len(opts.formats) == 1 && opts.output != "" {
		return opts.output
	}
	return basePath(opts.output, input) + f.Ext()
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	_, sc, err := c.loadDocument(input)
	if err != nil {
		return err
	}
	if err := prepareScene(sc, c.cfg.Interaction(), opts); err != nil {
		return err
	}
	logger.Debugf("Loaded %s: %d shapes, %d links", input, sc.Len(), len(sc.Links()))

	r, err := c.newRenderer(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer r.Cache.Close()

	for _, f := range opts.formats {
		if err := c.renderOne(ctx, r, sc, input, f, opts); err != nil {
			return err
		}
	}
	prog.done(fmt.Sprintf("Rendered %d file(s)", len(opts.formats)))
	return nil
}

// prepareScene derives handles and applies the selection so the handle
// overlay can be drawn.
func prepareScene(sc *scene.Scene, iopts interact.Options, opts *renderOpts) error {
	if !opts.handles {
		return nil
	}
	interact.New(sc, nil, iopts)
	for _, id := range opts.selected {
		if _, ok := sc.Shape(id); !ok {
			return errors.New(errors.ErrCodeMissingReference, "shape %q not found", id)
		}
	}
	sc.Select(opts.selected...)
	return nil
}

func (c *CLI) renderOne(ctx context.Context, r *render.Renderer, sc *scene.Scene, input string, f render.Format, opts *renderOpts) error {
	ropts := render.Options{Format: f, Handles: opts.handles, Grid: opts.grid, Scale: opts.scale}

	var (
		data []byte
		hit  bool
		err  error
	)
	run := func() error {
		data, hit, err = r.Render(ctx, sc, ropts)
		return err
	}
	if needsExternalTool(f) {
		err = withSpinner(ctx, fmt.Sprintf("Rendering %s...", f), run)
	} else {
		err = run()
	}
	if err != nil {
		return err
	}

	path := outputPath(input, f, opts)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write %s", path)
	}
	printFile(path)
	printRenderStats(f, len(data), hit)
	return nil
}

func needsExternalTool(f render.Format) bool {
	return f == render.FormatPNG || f == render.FormatPDF || f == render.FormatTopology
}
