// Package pkg provides the core libraries for tfdiagram infrastructure
// diagram generation.
//
// # Overview
//
// tfdiagram turns a list of declared infrastructure resources into a fully
// positioned 2-D diagram: boxes with coordinates, nested grouping
// containers, and typed, directed connections ready for rendering. The pkg
// directory is organized into five main areas:
//
//  1. [resource] / [taxonomy] / [zone] - Input contract and classification
//  2. [depgraph] - Dependency graph extraction and pruning
//  3. [layout] - Spatial layout strategies plus normalization and styling
//  4. [connections] - Connection derivation with arrow geometry
//  5. [pipeline] - Orchestration with caching ([cache], [export], [errors])
//
// # Architecture
//
// The typical data flow through tfdiagram:
//
//	Resource list (extractor output)
//	         ↓
//	    [depgraph] package (build and prune dependency edges)
//	         ↓
//	    [layout] package (place nodes, synthesize containers, normalize)
//	         ↓
//	    [connections] package (score, classify and orient edges)
//	         ↓
//	    [diagram] JSON output
//
// # Quick Start
//
// Generate a diagram from a resource list:
//
//	import (
//	    "github.com/sergeyitaly/tfdiagram/pkg/connections"
//	    "github.com/sergeyitaly/tfdiagram/pkg/depgraph"
//	    "github.com/sergeyitaly/tfdiagram/pkg/diagram"
//	    "github.com/sergeyitaly/tfdiagram/pkg/layout"
//	)
//
//	opts := diagram.DefaultOptions()
//	deps := depgraph.Extract(records, depgraph.Options{})
//	nodes := layout.Build(records, deps, opts)
//	layout.Style(nodes, opts)
//	layout.Normalize(nodes, opts)
//	conns := connections.Derive(nodes, deps, opts)
//
// Or run the whole thing through the [pipeline] runner, which adds caching,
// logging and stage timing:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Generate(ctx, records, pipeline.Options{Diagram: opts})
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//
// [resource]: https://pkg.go.dev/github.com/sergeyitaly/tfdiagram/pkg/resource
// [taxonomy]: https://pkg.go.dev/github.com/sergeyitaly/tfdiagram/pkg/taxonomy
// [zone]: https://pkg.go.dev/github.com/sergeyitaly/tfdiagram/pkg/zone
// [depgraph]: https://pkg.go.dev/github.com/sergeyitaly/tfdiagram/pkg/depgraph
// [layout]: https://pkg.go.dev/github.com/sergeyitaly/tfdiagram/pkg/layout
// [connections]: https://pkg.go.dev/github.com/sergeyitaly/tfdiagram/pkg/connections
// [diagram]: https://pkg.go.dev/github.com/sergeyitaly/tfdiagram/pkg/diagram
// [pipeline]: https://pkg.go.dev/github.com/sergeyitaly/tfdiagram/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/sergeyitaly/tfdiagram/pkg/cache
// [export]: https://pkg.go.dev/github.com/sergeyitaly/tfdiagram/pkg/export
// [errors]: https://pkg.go.dev/github.com/sergeyitaly/tfdiagram/pkg/errors
package pkg
