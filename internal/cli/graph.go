package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sergeyitaly/tfdiagram/pkg/depgraph"
	"github.com/sergeyitaly/tfdiagram/pkg/export"
	"github.com/sergeyitaly/tfdiagram/pkg/resource"
)

// Output formats for the graph command.
const (
	graphFormatJSON = "json"
	graphFormatDOT  = "dot"
	graphFormatSVG  = "svg"
)

// graphCommand creates the graph inspection command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output string
		format string
		opts   depgraph.Options
	)

	cmd := &cobra.Command{
		Use:   "graph [resources.json]",
		Short: "Inspect the extracted dependency graph",
		Long: `Extract the dependency graph from a resource export without laying
anything out. Useful for checking what the reference scanner found before
generating a diagram.

Formats:
  json   resource id to dependency list mapping (default)
  dot    Graphviz DOT with zone-colored nodes
  svg    rendered SVG of the DOT graph

Examples:
  tfdiagram graph resources.json
  tfdiagram graph resources.json -f dot
  tfdiagram graph resources.json -f svg -o graph.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runGraph(ctx, args[0], opts, format, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout for json/dot, <input>.svg for svg)")
	cmd.Flags().StringVarP(&format, "format", "f", graphFormatJSON, "output format: json (default), dot, svg")
	cmd.Flags().IntVar(&opts.MaxPerResource, "max-connections", depgraph.DefaultMaxPerResource, "maximum dependencies kept per resource")
	cmd.Flags().BoolVar(&opts.HideImplicit, "hide-implicit", false, "ignore references found by attribute scanning")
	cmd.Flags().BoolVar(&opts.HideCrossEnvironment, "hide-cross-env", false, "drop edges between different environment tags")

	return cmd
}

// runGraph extracts the dependency graph and writes it in the requested
// format.
func (c *CLI) runGraph(ctx context.Context, input string, opts depgraph.Options, format, output string) error {
	logger := loggerFromContext(ctx)

	in, err := resource.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load resources %s: %w", input, err)
	}

	p := newProgress(logger)
	deps := in.Dependencies
	if deps == nil {
		deps = depgraph.Extract(in.Resources, opts)
	}
	p.done(fmt.Sprintf("Extracted %d dependency lists", len(deps)))

	switch format {
	case graphFormatJSON:
		return writeGraphJSON(deps, output)
	case graphFormatDOT:
		return writeOutput([]byte(export.ToDOT(in.Resources, deps)), output)
	case graphFormatSVG:
		dot := export.ToDOT(in.Resources, deps)
		svg, err := export.RenderSVG(ctx, dot)
		if err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
		if output == "" {
			output = strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
		}
		if err := writeOutput(svg, output); err != nil {
			return err
		}
		printSuccess("Graph rendered")
		printFile(output)
		return nil
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// writeGraphJSON prints the mapping sorted by source id for stable diffs.
func writeGraphJSON(deps map[string][]string, output string) error {
	sources := make([]string, 0, len(deps))
	for s := range deps {
		sources = append(sources, s)
	}
	sort.Strings(sources)

	var b strings.Builder
	b.WriteString("{\n")
	for i, s := range sources {
		b.WriteString(fmt.Sprintf("  %q: [", s))
		for j, t := range deps[s] {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(fmt.Sprintf("%q", t))
		}
		b.WriteString("]")
		if i < len(sources)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return writeOutput([]byte(b.String()), output)
}

// writeOutput writes data to the output file, or stdout when no file is
// given.
func writeOutput(data []byte, output string) error {
	if output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	return nil
}
