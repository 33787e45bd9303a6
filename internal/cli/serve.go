package cli

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ratioplot/pkg/cache"
	"github.com/matzehuels/ratioplot/pkg/observability"
	"github.com/matzehuels/ratioplot/pkg/observability/prom"
	"github.com/matzehuels/ratioplot/pkg/pipeline"
	"github.com/matzehuels/ratioplot/pkg/server"
)

type serveOpts struct {
	addr          string
	redisAddr     string
	redisPassword string
	redisDB       int
	noCache       bool
	noMetrics     bool
	timeout       time.Duration
	maxBody       int64
}

// serveCommand creates the serve command for the HTTP render service.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render pipeline over HTTP",
		Long: `Start the HTTP render service.

POST /v1/render takes a JSON render request (or a YAML document with options
in the query string) and answers with the rendered artifact. Rendered
artifacts are cached on disk, or in Redis when --redis is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for the render cache (host:port)")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.noMetrics, "no-metrics", false, "disable Prometheus metrics")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", server.DefaultTimeout, "per-request timeout")
	cmd.Flags().Int64Var(&opts.maxBody, "max-body", server.DefaultMaxBodyBytes, "maximum request body in bytes")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	store, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, "v1:"), c.Logger)
	defer runner.Close()

	cfg := server.Config{
		Addr:         opts.addr,
		MaxBodyBytes: opts.maxBody,
		Timeout:      opts.timeout,
	}
	metrics := "off"
	if !opts.noMetrics {
		metrics = "/metrics"
		m := prom.New(prometheus.DefaultRegisterer)
		observability.SetPipelineHooks(m)
		observability.SetCacheHooks(m)
		observability.SetHTTPHooks(m)
		defer observability.Reset()
		cfg.Metrics = promhttp.Handler()
	}

	printSuccess("Listening on %s", opts.addr)
	printKeyValue("cache", cacheKind(opts))
	printKeyValue("metrics", metrics)

	return server.New(runner, c.Logger, cfg).ListenAndServe(ctx)
}

// serveCache picks the render cache: Redis when configured, else the file
// cache unless disabled.
func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	if opts.noCache {
		printWarning("render cache disabled")
	}
	if opts.noCache || opts.redisAddr == "" {
		return newCache(opts.noCache)
	}
	rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
		Addr:     opts.redisAddr,
		Password: opts.redisPassword,
		DB:       opts.redisDB,
	})
	if err != nil {
		return nil, err
	}
	c.Logger.Info("using redis cache", "addr", opts.redisAddr)
	return rc, nil
}

func cacheKind(opts serveOpts) string {
	switch {
	case opts.noCache:
		return "off"
	case opts.redisAddr != "":
		return "redis " + opts.redisAddr
	default:
		return "file"
	}
}
