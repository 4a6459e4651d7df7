package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sergeyitaly/tfdiagram/pkg/diagram"
	"github.com/sergeyitaly/tfdiagram/pkg/pipeline"
	"github.com/sergeyitaly/tfdiagram/pkg/resource"
)

// generateCommand creates the generate command, the main entry point of
// the CLI.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		output      string
		noCache     bool
		refresh     bool
		interactive bool
	)

	cfg, cfgErr := loadConfig()
	opts := baseOptions(cfg)

	cmd := &cobra.Command{
		Use:   "generate [resources.json]",
		Short: "Generate a positioned diagram from a resource export",
		Long: `Generate a positioned infrastructure diagram from a Terraform resource export.

The input is a JSON file listing resources (type, name, attributes) and
optional explicit dependencies. The output is a diagram.json with styled,
positioned nodes and typed connections, ready for rendering.

Results are cached locally for faster subsequent runs.

Examples:
  tfdiagram generate resources.json
  tfdiagram generate resources.json -l microservices -o diagram.json
  tfdiagram generate resources.json --group-by resourceGroup --theme dark`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				printWarning("Ignoring config: %v", cfgErr)
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			if interactive {
				layout, ok, err := pickLayout(opts.Layout)
				if err != nil {
					return err
				}
				if !ok {
					return context.Canceled
				}
				opts.Layout = layout
			}
			return c.runGenerate(ctx, args[0], opts, output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.diagram.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and recompute")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick the layout strategy interactively")

	cmd.Flags().StringVarP(&opts.Layout, "layout", "l", opts.Layout, "layout strategy: flow (default), layered, zones, microservices")
	cmd.Flags().StringVarP(&opts.FlowDirection, "direction", "d", opts.FlowDirection, "flow direction: left-right (default), top-bottom, right-left, bottom-top")
	cmd.Flags().StringVar(&opts.GroupBy, "group-by", opts.GroupBy, "grouping mode: none (default), zone, function, layer, resourceGroup")
	cmd.Flags().StringVar(&opts.Theme, "theme", opts.Theme, "color theme: light (default), dark, blueprint")
	cmd.Flags().BoolVar(&opts.ShowZones, "show-zones", opts.ShowZones, "draw zone containers")
	cmd.Flags().BoolVar(&opts.CompactMode, "compact", opts.CompactMode, "use compact node sizes")
	cmd.Flags().IntVar(&opts.MaxConnectionsPerResource, "max-connections", opts.MaxConnectionsPerResource, "maximum connections kept per resource")
	cmd.Flags().BoolVar(&opts.HideImplicitDependencies, "hide-implicit", opts.HideImplicitDependencies, "ignore references found by attribute scanning")
	cmd.Flags().BoolVar(&opts.HideCrossEnvironment, "hide-cross-env", opts.HideCrossEnvironment, "drop edges between different environment tags")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "canvas height")
	cmd.Flags().Float64Var(&opts.Padding, "padding", opts.Padding, "canvas padding")

	return cmd
}

// runGenerate loads the resources, runs the pipeline, and writes output.
func (c *CLI) runGenerate(ctx context.Context, input string, opts diagram.Options, output string, noCache, refresh bool) error {
	logger := loggerFromContext(ctx)

	in, err := resource.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load resources %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %s diagram...", opts.Layout))
	spinner.Start()

	result, err := runner.Generate(ctx, in.Resources, pipeline.Options{
		Diagram:      opts,
		Dependencies: in.Dependencies,
		Refresh:      refresh,
		Logger:       logger,
	})
	if err != nil {
		spinner.StopWithError("Generation failed")
		return fmt.Errorf("generate diagram: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".diagram.json"
	}

	if err := diagram.WriteFile(result.Diagram, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Diagram complete")
	printFile(outputPath)
	printStats(len(result.Diagram.Nodes), len(result.Diagram.Connections), result.CacheInfo.DiagramHit)
	printNewline()
	printNextStep("Inspect the graph", appName+" graph "+input)

	return nil
}
