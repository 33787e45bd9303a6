package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/ratioplot/pkg/cache"
	"github.com/matzehuels/ratioplot/pkg/observability"
)

const keyTypeRender = "render"

// Runner encapsulates pipeline execution with caching.
// Both CLI and HTTP service use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options; each run builds its own plot.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		ID:        uuid.NewString(),
		InputHash: r.Keyer.InputKey(opts.Input),
	}
	logger := opts.Logger.With("run", result.ID)

	if !opts.Refresh {
		if artifacts, ok := r.lookup(ctx, result.InputHash, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			logger.Debug("served from cache", "formats", opts.Formats)
			return result, nil
		}
	}

	// Stage 1: Parse
	parseStart := time.Now()
	in, err := Parse(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.Bins = len(in.Primary.Binning()) - 1

	logger.Info("parsed document",
		"bins", result.Stats.Bins,
		"duration", result.Stats.ParseTime)

	// Stage 2: Build
	buildStart := time.Now()
	rp, scene, err := Build(ctx, in, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Plot, result.Scene = rp, scene
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Points = rp.RatioSeries().Len()

	logger.Info("built plot",
		"mode", rp.Mode(),
		"points", result.Stats.Points,
		"duration", result.Stats.BuildTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := Render(ctx, scene, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	r.store(ctx, result.InputHash, opts, artifacts)
	return result, nil
}

// lookup returns the cached artifacts if every requested format is present.
func (r *Runner) lookup(ctx context.Context, inputKey string, opts Options) (map[string][]byte, bool) {
	hooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.RenderKey(inputKey, opts.RenderKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		}
		if err != nil || !hit {
			hooks.OnCacheMiss(ctx, keyTypeRender)
			return nil, false
		}
		hooks.OnCacheHit(ctx, keyTypeRender)
		artifacts[format] = data
	}
	return artifacts, true
}

func (r *Runner) store(ctx context.Context, inputKey string, opts Options, artifacts map[string][]byte) {
	for format, data := range artifacts {
		key := r.Keyer.RenderKey(inputKey, opts.RenderKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, keyTypeRender, len(data))
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
