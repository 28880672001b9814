package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sigdoc/pkg/sink"
)

// renderCommand creates the render command for printing documentation.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags  renderFlags
		format string
		title  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "render <docs.json>",
		Short: "Render documentation as ansi, text, html or json",
		Long: `Render every declaration of a docs.json file.

Value signatures longer than the threshold are broken into one argument per
line, record aliases print one field per line, and module qualifiers are
stripped. Type names declared in the same module become links in the html
and json output.`,
		Example: `  # Colored output in the terminal
  sigdoc render docs.json

  # A single module as a standalone HTML page
  sigdoc render docs.json -m Maybe -f html -o maybe.html

  # Token stream for other tools
  sigdoc render docs.json -f json --threshold 100`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(flags, format)
			if title != "" {
				opts.Title = title
			}

			runner, err := c.newRunner(cmd.Context(), flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			result, err := runner.Execute(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			if err := writeOutput(output, result.Output); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			if output != "" && output != "-" {
				prog.done(fmt.Sprintf("Rendered %d modules", result.Stats.ModuleCount))
				printSuccess("Rendered documentation")
				printFile(output)
				printStats(result.Stats.ModuleCount, result.Stats.EntryCount, result.CacheHit)
				if opts.Format == sink.FormatHTML {
					printNextStep("Serve it instead", "sigdoc serve "+args[0])
				}
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: "+strings.Join(sink.Formats(), ", ")+" (default from config)")
	cmd.Flags().StringVar(&title, "title", "", "HTML page title")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	_ = cmd.RegisterFlagCompletionFunc("format", completeValues(sink.Formats()...))

	return cmd
}
