package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sergeyitaly/tfdiagram/internal/server"
	"github.com/sergeyitaly/tfdiagram/pkg/cache"
	"github.com/sergeyitaly/tfdiagram/pkg/pipeline"
)

// defaultListenAddr is used when neither flag nor config set an address.
const defaultListenAddr = ":8080"

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		noCache   bool
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server exposing the diagram pipeline.

Endpoints:
  POST /api/v1/diagram   generate a positioned diagram
  POST /api/v1/graph     extract the dependency graph
  GET  /healthz          health check
  GET  /version          build information

With --redis the result cache is shared across replicas; otherwise the
local file cache is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				printWarning("Ignoring config: %v", err)
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			if addr == "" {
				addr = defaultListenAddr
			}
			if redisAddr == "" {
				redisAddr = cfg.Server.RedisAddr
			}
			return c.runServe(cmd.Context(), addr, redisAddr, cfg.Server, noCache, timeout)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for a shared cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultTimeout, "per-request timeout")

	return cmd
}

// runServe builds the cache backend and blocks serving requests.
func (c *CLI) runServe(ctx context.Context, addr, redisAddr string, cfg ServerConfig, noCache bool, timeout time.Duration) error {
	store, err := c.serverCache(ctx, redisAddr, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	runner := pipeline.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	srv := server.New(server.Config{
		Addr:           addr,
		RequestTimeout: timeout,
	}, runner, c.Logger)

	printInfo("Serving on %s", addr)
	return srv.ListenAndServe(ctx)
}

func (c *CLI) serverCache(ctx context.Context, redisAddr string, cfg ServerConfig, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     redisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}
	return newCache(false)
}
