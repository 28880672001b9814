package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sigdoc/pkg/pipeline"
)

// graphCommand renders the reference graph between documented entries.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		format  string
		modules []string
		output  string
		refresh bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "graph <docs.json>",
		Short: "Render which declarations reference which",
		Long: `Graph draws one node per documented entry and an edge from every entry to
the types its signature mentions. The output is Graphviz DOT, or SVG laid
out with the embedded Graphviz.`,
		Example: `  sigdoc graph docs.json | dot -Tpng > refs.png
  sigdoc graph docs.json -f svg -o refs.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			src, err := runner.Load(ctx, args[0])
			if err != nil {
				return err
			}

			var spinner *Spinner
			if format == pipeline.GraphFormatSVG && output != "" {
				spinner = newSpinnerWithContext(ctx, "Laying out graph...")
				spinner.Start()
			}
			out, hit, err := runner.Graph(ctx, src, pipeline.GraphOptions{
				Format:  format,
				Modules: modules,
				Refresh: refresh,
			})
			if err != nil {
				if spinner != nil {
					spinner.StopWithError("Graph layout failed")
				}
				return err
			}
			if spinner != nil {
				spinner.Stop()
			}

			if err := writeOutput(output, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			if output != "" && output != "-" {
				printSuccess("Rendered reference graph")
				printFile(output)
				printStats(len(src.Modules), 0, hit)
				if format == pipeline.GraphFormatDOT {
					printNextStep("Lay it out", "dot -Tsvg -O "+output)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", pipeline.GraphFormatDOT, "output format: dot, svg")
	cmd.Flags().StringSliceVarP(&modules, "module", "m", nil, "only these modules")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached output")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	cmd.ValidArgsFunction = completeDocsFile
	_ = cmd.RegisterFlagCompletionFunc("module", completeModules)
	_ = cmd.RegisterFlagCompletionFunc("format", completeValues(pipeline.GraphFormatDOT, pipeline.GraphFormatSVG))

	return cmd
}
