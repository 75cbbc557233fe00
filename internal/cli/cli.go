package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/snapboard/pkg/buildinfo"
	"github.com/matzehuels/snapboard/pkg/cache"
	"github.com/matzehuels/snapboard/pkg/config"
	"github.com/matzehuels/snapboard/pkg/observability"
	"github.com/matzehuels/snapboard/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "snapboard"

	// cachePrefix scopes artifact keys in a shared Redis.
	cachePrefix = appName + ":"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Config returns the loaded settings.
func (c *CLI) Config() config.Config { return c.cfg }

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Snapboard edits diagram documents with snapping and resize handles",
		Long:         `Snapboard moves, resizes and rotates the shapes of a JSON diagram document with node, grid and stage snapping, keeps an undo journal, and renders the result as SVG, PNG, PDF or Graphviz DOT.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/snapboard/config.toml)")

	root.AddCommand(c.snapCommand())
	root.AddCommand(c.adjustCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config and wires the logger into the context and the
// observability hooks.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.Logger.Debug("config loaded", "path", c.configPath, "history", cfg.History.Backend, "grid", cfg.GridSize)

	hooks := newHookLogger(c.Logger)
	observability.SetGestureHooks(hooks)
	observability.SetSnapHooks(hooks)
	observability.SetHistoryHooks(hooks)

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Factories
// =============================================================================

// newRenderer creates an artifact renderer backed by the configured cache.
func (c *CLI) newRenderer(ctx context.Context, noCache bool) (*render.Renderer, error) {
	ac, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return render.NewRenderer(ac, cache.NewScopedKeyer(nil, cachePrefix), c.cfg.Cache.TTL.Duration), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.cfg.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	if addr := c.cfg.Cache.RedisAddr; addr != "" {
		rc, err := cache.DialRedisCache(ctx, addr)
		if err != nil {
			c.Logger.Warn("artifact cache unavailable, rendering uncached", "redis", addr, "err", err)
			return cache.NewNullCache(), nil
		}
		return rc, nil
	}
	dir := c.cfg.Cache.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/snapboard/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
