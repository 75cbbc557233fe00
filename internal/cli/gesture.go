package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/snapboard/pkg/errors"
	"github.com/matzehuels/snapboard/pkg/geom"
	"github.com/matzehuels/snapboard/pkg/shape"
	"github.com/matzehuels/snapboard/pkg/snap"
)

// snapOpts holds the flags of the snap command.
type snapOpts struct {
	move     []string
	by       geom.Point
	zoom     float64
	noShapes bool
	noGrid   bool
	output   string
}

func (c *CLI) snapCommand() *cobra.Command {
	var moveStr, byStr string
	opts := snapOpts{zoom: 1}

	cmd := &cobra.Command{
		Use:   "snap <document.json>",
		Short: "Move shapes by a delta with snapping",
		Long: `Move one or more shapes as a group by a world-space delta, the way a
pointer drag would, and snap the group to other shapes, the grid and the
stage edges. The document is updated in place unless --output is given.`,
		Example: `  snapboard snap board.json --move b --by -97,0
  snapboard snap board.json --move a,b --by 40,15 --no-grid`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.move = parseIDs(moveStr)
			if len(opts.move) == 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--move needs at least one shape ID")
			}
			by, err := parsePoint(byStr)
			if err != nil {
				return err
			}
			opts.by = by
			if opts.zoom <= 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--zoom must be positive")
			}
			return c.runSnap(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&moveStr, "move", "", "shape IDs to move (comma-separated)")
	cmd.Flags().StringVar(&byStr, "by", "", "delta in world units, as dx,dy")
	cmd.Flags().Float64Var(&opts.zoom, "zoom", opts.zoom, "view scale used for the grid/stage threshold")
	cmd.Flags().BoolVar(&opts.noShapes, "no-shapes", false, "disable snapping to other shapes")
	cmd.Flags().BoolVar(&opts.noGrid, "no-grid", false, "disable grid and stage snapping")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the result here instead of in place")
	_ = cmd.MarkFlagRequired("move")
	_ = cmd.MarkFlagRequired("by")

	return cmd
}

func (c *CLI) runSnap(ctx context.Context, path string, opts *snapOpts) (err error) {
	iopts := c.cfg.Interaction()
	if opts.noShapes {
		iopts.Snap.Shapes = false
	}
	if opts.noGrid {
		iopts.Snap.Grid = false
	}
	s, err := c.openSession(ctx, path, iopts)
	if err != nil {
		return err
	}
	defer s.Close()
	s.ctrl.SetView(geom.ViewTransform{Scale: opts.zoom})

	res, err := s.ctrl.MoveBy(ctx, opts.move, opts.by)
	if err != nil && !isCommitFailure(err) {
		return err
	}
	if err != nil {
		loggerFromContext(ctx).Warn("history not recorded", "err", err)
	}
	if err := s.save(opts.output); err != nil {
		return err
	}

	printSuccess("Moved %d shape(s) by %s", len(opts.move), formatPoint(opts.by))
	printSnapResult(res)
	printFile(outputOr(opts.output, path))
	return nil
}

// adjustOpts holds the flags of the adjust command.
type adjustOpts struct {
	shape     string
	role      shape.Role
	index     int
	to        geom.Point
	zoom      float64
	angleStep float64
	output    string
}

func (c *CLI) adjustCommand() *cobra.Command {
	var handleStr, toStr string
	opts := adjustOpts{zoom: 1, angleStep: -1}

	cmd := &cobra.Command{
		Use:   "adjust <document.json>",
		Short: "Drag one handle of a shape",
		Long: `Drag a resize, rotate or line handle of a shape to a world-space point.

Box handles: top, bottom, left, right, top-left, top-right, bottom-left,
bottom-right, rotate. Line handles: start, end, manual:<index> for a bend.`,
		Example: `  snapboard adjust board.json --shape a --handle bottom-right --to 150,120
  snapboard adjust board.json --shape a --handle rotate --to 200,40 --angle-step 15`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, idx, err := parseHandle(handleStr)
			if err != nil {
				return err
			}
			opts.role, opts.index = role, idx
			if opts.to, err = parsePoint(toStr); err != nil {
				return err
			}
			if opts.zoom <= 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--zoom must be positive")
			}
			return c.runAdjust(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.shape, "shape", "", "shape ID")
	cmd.Flags().StringVar(&handleStr, "handle", "", "handle name, e.g. bottom-right or manual:1")
	cmd.Flags().StringVar(&toStr, "to", "", "target point in world units, as x,y")
	cmd.Flags().Float64Var(&opts.zoom, "zoom", opts.zoom, "view scale used for the snap threshold")
	cmd.Flags().Float64Var(&opts.angleStep, "angle-step", opts.angleStep, "rotation snap step in degrees (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the result here instead of in place")
	_ = cmd.MarkFlagRequired("shape")
	_ = cmd.MarkFlagRequired("handle")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func (c *CLI) runAdjust(ctx context.Context, path string, opts *adjustOpts) error {
	iopts := c.cfg.Interaction()
	if opts.angleStep >= 0 {
		iopts.AngleStep = opts.angleStep
	}
	s, err := c.openSession(ctx, path, iopts)
	if err != nil {
		return err
	}
	defer s.Close()
	view := geom.ViewTransform{Scale: opts.zoom}
	s.ctrl.SetView(view)

	changed, err := s.ctrl.DragHandle(ctx, opts.shape, opts.role, opts.index, view.ToScreen(opts.to))
	if err != nil && !isCommitFailure(err) {
		return err
	}
	if err != nil {
		loggerFromContext(ctx).Warn("history not recorded", "err", err)
	}
	if !changed {
		printInfo("Shape %s unchanged", opts.shape)
		return nil
	}
	if err := s.save(opts.output); err != nil {
		return err
	}

	sh, _ := s.ctrl.Scene().Shape(opts.shape)
	w, h := sh.Size()
	printSuccess("Adjusted %s via %s", opts.shape, opts.role)
	printKeyValue("position", formatPoint(sh.Position()))
	printKeyValue("size", fmt.Sprintf("%g x %g", w, h))
	if r := sh.Rotation(); r != 0 {
		printKeyValue("rotation", fmt.Sprintf("%g°", r))
	}
	printFile(outputOr(opts.output, path))
	return nil
}

// isCommitFailure reports whether err only says the finished gesture could
// not be recorded in history.
func isCommitFailure(err error) bool {
	return errors.Is(err, errors.ErrCodeStorage)
}

func printSnapResult(res snap.Result) {
	printKeyValue("offset", formatPoint(res.Offset))
	printKeyValue("x", res.X.String())
	printKeyValue("y", res.Y.String())
	if n := len(res.Guides); n > 0 {
		printDetail("%d alignment guide(s)", n)
	}
}

func formatPoint(p geom.Point) string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

func outputOr(output, path string) string {
	if output != "" {
		return output
	}
	return path
}
