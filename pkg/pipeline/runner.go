package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sergeyitaly/tfdiagram/pkg/cache"
	"github.com/sergeyitaly/tfdiagram/pkg/connections"
	"github.com/sergeyitaly/tfdiagram/pkg/depgraph"
	"github.com/sergeyitaly/tfdiagram/pkg/diagram"
	"github.com/sergeyitaly/tfdiagram/pkg/layout"
	"github.com/sergeyitaly/tfdiagram/pkg/resource"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Generate runs the complete extract → layout → connect pipeline with
// caching.
func (r *Runner) Generate(ctx context.Context, resources []resource.Record, opts Options) (*Result, error) {
	if err := opts.Diagram.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	result := &Result{
		ResourcesHash: hashResources(resources),
	}
	result.Stats.ResourceCount = len(resources)

	extractStart := time.Now()
	var (
		deps     map[string][]string
		graphHit bool
		err      error
	)
	if opts.Dependencies != nil {
		deps = opts.Dependencies
	} else {
		deps, graphHit, err = r.ExtractWithCacheInfo(ctx, resources, result.ResourcesHash, opts)
		if err != nil {
			return nil, fmt.Errorf("extract: %w", err)
		}
	}
	result.Deps = deps
	result.Stats.ExtractTime = time.Since(extractStart)
	result.Stats.EdgeCount = edgeCount(deps)
	result.CacheInfo.GraphHit = graphHit

	logger.Info("extracted dependencies",
		"resources", len(resources),
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.ExtractTime)

	d, diagramHit, err := r.buildWithCacheInfo(ctx, resources, deps, result, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Diagram = d
	result.Stats.ConnectionCount = len(d.Connections)
	result.CacheInfo.DiagramHit = diagramHit

	logger.Info("generated diagram",
		"layout", opts.Diagram.Layout,
		"nodes", len(d.Nodes),
		"connections", len(d.Connections),
		"duration", result.Stats.LayoutTime+result.Stats.ConnectTime)

	return result, nil
}

// ExtractWithCacheInfo builds the dependency graph with caching and
// reports whether the cache served it.
func (r *Runner) ExtractWithCacheInfo(ctx context.Context, resources []resource.Record, resourcesHash string, opts Options) (map[string][]string, bool, error) {
	graphOpts := opts.GraphOptions()
	cacheKey := r.Keyer.GraphKey(resourcesHash, cache.GraphKeyOpts{
		MaxPerResource:       graphOpts.MaxPerResource,
		HideImplicit:         graphOpts.HideImplicit,
		HideCrossEnvironment: graphOpts.HideCrossEnvironment,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var deps map[string][]string
			if err := json.Unmarshal(data, &deps); err == nil {
				return deps, true, nil
			}
		}
	}

	deps := depgraph.Extract(resources, graphOpts)

	if data, err := json.Marshal(deps); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLGraph)
	}

	return deps, false, nil
}

// Extract is a convenience wrapper that discards the cache hit info.
func (r *Runner) Extract(ctx context.Context, resources []resource.Record, opts Options) (map[string][]string, error) {
	deps, _, err := r.ExtractWithCacheInfo(ctx, resources, hashResources(resources), opts)
	return deps, err
}

// buildWithCacheInfo runs the layout and connect stages with caching,
// filling the per-stage timings on result.
func (r *Runner) buildWithCacheInfo(ctx context.Context, resources []resource.Record, deps map[string][]string, result *Result, opts Options) (diagram.Diagram, bool, error) {
	cacheKey := r.Keyer.DiagramKey(result.ResourcesHash, diagramKeyOpts(opts.Diagram))
	if opts.Dependencies != nil {
		// Caller-supplied graphs are not part of the key, so they bypass
		// the cache entirely.
		cacheKey = ""
	}

	if cacheKey != "" && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := diagram.Unmarshal(data); err == nil {
				return cached, true, nil
			}
		}
	}

	layoutStart := time.Now()
	nodes := layout.Build(resources, deps, opts.Diagram)
	nodes = layout.Style(nodes, opts.Diagram)
	layout.Normalize(nodes, opts.Diagram)
	result.Stats.LayoutTime = time.Since(layoutStart)

	connectStart := time.Now()
	conns := connections.Derive(nodes, deps, opts.Diagram)
	result.Stats.ConnectTime = time.Since(connectStart)

	d := diagram.Diagram{
		Width:       opts.Diagram.Width,
		Height:      opts.Diagram.Height,
		Nodes:       nodes,
		Connections: conns,
	}

	if cacheKey != "" {
		if data, err := diagram.Marshal(d); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLDiagram)
		}
	}

	return d, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// logger resolves the effective logger for a run.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// edgeCount totals the edges in a dependency map.
func edgeCount(deps map[string][]string) int {
	n := 0
	for _, targets := range deps {
		n += len(targets)
	}
	return n
}

// hashResources computes the cache identity of a resource set.
func hashResources(resources []resource.Record) string {
	data, _ := json.Marshal(resources)
	return cache.Hash(data)
}

// diagramKeyOpts projects the layout options into the cache key schema.
func diagramKeyOpts(o diagram.Options) cache.DiagramKeyOpts {
	return cache.DiagramKeyOpts{
		Layout:               o.Layout,
		FlowDirection:        o.FlowDirection,
		GroupBy:              o.GroupBy,
		Theme:                o.Theme,
		ShowZones:            o.ShowZones,
		CompactMode:          o.CompactMode,
		MaxConnections:       o.MaxConnectionsPerResource,
		HideImplicit:         o.HideImplicitDependencies,
		HideCrossEnvironment: o.HideCrossEnvironment,
		Width:                o.Width,
		Height:               o.Height,
		Padding:              o.Padding,
	}
}
