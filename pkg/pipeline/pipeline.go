// Package pipeline provides the complete extract → layout → connect
// pipeline shared by the CLI and the HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Extract: scan resource attributes for references and build the
//     pruned dependency graph
//  2. Layout: position every resource on the canvas with the selected
//     strategy, then style and normalize the result
//  3. Connect: derive typed, styled connection records from the graph
//     and the final node positions
//
// Each stage can be run independently or as part of the complete
// pipeline.
//
// # Usage
//
// Create a Runner and generate a diagram:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Diagram: diagram.DefaultOptions()}
//	result, err := runner.Generate(ctx, resources, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, _ := diagram.Marshal(result.Diagram)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/sergeyitaly/tfdiagram/pkg/depgraph"
	"github.com/sergeyitaly/tfdiagram/pkg/diagram"
)

// Options configures a pipeline run.
type Options struct {
	// Diagram holds the layout options. Zero-value fields are resolved
	// to defaults during validation.
	Diagram diagram.Options

	// Dependencies, when non-nil, is used verbatim instead of running
	// extraction. Inputs carrying a pre-computed graph set this.
	Dependencies map[string][]string

	// Refresh bypasses the cache and recomputes every stage.
	Refresh bool

	// Logger receives per-stage progress. Defaults to the runner's
	// logger.
	Logger *log.Logger
}

// GraphOptions derives the extraction options from the layout options.
func (o Options) GraphOptions() depgraph.Options {
	return depgraph.Options{
		MaxPerResource:       o.Diagram.MaxConnectionsPerResource,
		HideImplicit:         o.Diagram.HideImplicitDependencies,
		HideCrossEnvironment: o.Diagram.HideCrossEnvironment,
	}
}

// Stats aggregates per-stage counters and timings.
type Stats struct {
	ResourceCount   int           `json:"resource_count"`
	EdgeCount       int           `json:"edge_count"`
	ConnectionCount int           `json:"connection_count"`
	ExtractTime     time.Duration `json:"extract_time"`
	LayoutTime      time.Duration `json:"layout_time"`
	ConnectTime     time.Duration `json:"connect_time"`
}

// CacheInfo reports which stages were served from cache.
type CacheInfo struct {
	GraphHit   bool `json:"graph_hit"`
	DiagramHit bool `json:"diagram_hit"`
}

// Result holds the output of a complete pipeline run.
type Result struct {
	// Diagram is the laid-out diagram with styled nodes and derived
	// connections.
	Diagram diagram.Diagram

	// Deps is the pruned dependency graph the connections were derived
	// from.
	Deps map[string][]string

	// ResourcesHash identifies the input resource set, for cache keys
	// and API responses.
	ResourcesHash string

	Stats     Stats
	CacheInfo CacheInfo
}
