package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/matzehuels/snapboard/internal/api"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the snap, adjust and render HTTP API",
		Long: `Serve the engine over HTTP. Each request carries the whole document:

  POST /v1/snap     {"document", "moving", "delta", "view"?, "shapes"?, "grid"?}
  POST /v1/adjust   {"document", "shape", "handle", "index"?, "pointer", "view"?}
  POST /v1/render   document body; ?format=svg|png|pdf|dot|topology&handles&grid&selected
  GET  /healthz, /version`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.Serve.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	logger := loggerFromContext(ctx)
	r, err := c.newRenderer(ctx, noCache)
	if err != nil {
		return err
	}
	defer r.Cache.Close()

	srv := api.New(c.cfg, r, logger)
	logger.Info("Listening", "addr", addr)
	err = srv.ListenAndServe(ctx, addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	if err == nil {
		logger.Info("Server stopped")
	}
	return err
}
