package render

import (
	"context"
	"time"

	"github.com/matzehuels/snapboard/pkg/cache"
	"github.com/matzehuels/snapboard/pkg/errors"
	"github.com/matzehuels/snapboard/pkg/scene"
	"github.com/matzehuels/snapboard/pkg/snap"
)

// Format is an output format.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
	FormatDOT Format = "dot"
	// FormatTopology is the DOT export laid out by Graphviz, as SVG.
	FormatTopology Format = "topology"
)

// Formats lists every supported format.
var Formats = []Format{FormatSVG, FormatPNG, FormatPDF, FormatDOT, FormatTopology}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want svg, png, pdf, dot or topology)", s)
}

// Ext returns the file extension for f.
func (f Format) Ext() string {
	if f == FormatTopology {
		return ".topology.svg"
	}
	return "." + string(f)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "image/svg+xml"
	}
}

// Options select the output and which overlays to draw.
type Options struct {
	Format  Format
	Handles bool
	Guides  bool
	Grid    bool
	// Scale applies to PNG only.
	Scale float64
}

// KeyOpts returns the cache key options for o.
func (o Options) KeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:  string(o.Format),
		Handles: o.Handles,
		Guides:  o.Guides,
		Grid:    o.Grid,
		Scale:   o.Scale,
	}
}

func (o Options) svgOptions() []SVGOption {
	var opts []SVGOption
	if o.Handles {
		opts = append(opts, WithHandles())
	}
	if o.Guides {
		opts = append(opts, WithGuides())
	}
	if o.Grid {
		opts = append(opts, WithGrid())
	}
	return opts
}

// Render produces one artifact without caching.
func Render(ctx context.Context, sc *scene.Scene, opts Options) ([]byte, error) {
	switch opts.Format {
	case FormatSVG, "":
		return RenderSVG(sc, opts.svgOptions()...), nil
	case FormatPNG:
		return ToPNG(ctx, RenderSVG(sc, opts.svgOptions()...), opts.Scale)
	case FormatPDF:
		return ToPDF(ctx, RenderSVG(sc, opts.svgOptions()...))
	case FormatDOT:
		return []byte(ToDOT(sc)), nil
	case FormatTopology:
		return RenderDOT(ctx, ToDOT(sc))
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", opts.Format)
}

// Renderer renders with an artifact cache.
// It holds no scene state, so one Renderer can serve concurrent requests
// as long as each passes its own scene.
type Renderer struct {
	Cache cache.Cache
	Keyer cache.Keyer
	TTL   time.Duration
}

// NewRenderer creates a renderer. A nil cache disables caching and a nil
// keyer selects the default one.
func NewRenderer(c cache.Cache, keyer cache.Keyer, ttl time.Duration) *Renderer {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Renderer{Cache: c, Keyer: keyer, TTL: ttl}
}

// cacheInput is everything besides the options that changes the output.
type cacheInput struct {
	Document scene.Document `json:"document"`
	Selected []string       `json:"selected,omitempty"`
	Hovered  string         `json:"hovered,omitempty"`
	Guides   []snap.Guide   `json:"guides,omitempty"`
}

// Key returns the cache key for rendering sc with opts.
func (r *Renderer) Key(sc *scene.Scene, opts Options) (string, error) {
	in := cacheInput{Document: sc.Document(), Hovered: sc.Hovered()}
	for _, s := range sc.Selected() {
		in.Selected = append(in.Selected, s.ID())
	}
	if opts.Guides {
		in.Guides = sc.Overlay().Guides()
	}
	h, err := cache.HashJSON(in)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "serialize scene for cache key")
	}
	return r.Keyer.ArtifactKey(h, opts.KeyOpts()), nil
}

// Render returns the artifact and whether it came from the cache. Cache
// failures fall through to rendering.
func (r *Renderer) Render(ctx context.Context, sc *scene.Scene, opts Options) ([]byte, bool, error) {
	if opts.Format == "" {
		opts.Format = FormatSVG
	}
	key, err := r.Key(sc, opts)
	if err != nil {
		return nil, false, err
	}
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		return data, true, nil
	}

	data, err := Render(ctx, sc, opts)
	if err != nil {
		return nil, false, err
	}
	_ = r.Cache.Set(ctx, key, data, r.TTL)
	return data, false, nil
}
