package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sigdoc/pkg/printer"
	"github.com/matzehuels/sigdoc/pkg/signature"
	"github.com/matzehuels/sigdoc/pkg/sink"
	"github.com/matzehuels/sigdoc/pkg/styled"
)

// inspectCommand shows how a single signature is scanned and laid out.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		name      string
		threshold int
	)

	cmd := &cobra.Command{
		Use:   "inspect <signature>",
		Short: "Show how a signature is split and printed",
		Long: `Inspect runs a single signature through the scanner and the printer and
shows each step: the normalized text, the top-level arguments, the record
fields, and the final layout.`,
		Example: `  sigdoc inspect 'Maybe.Maybe a -> (a -> b) -> List.List b'
  sigdoc inspect --name point '{ x : Float, y : Float }'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if threshold <= 0 {
				threshold = c.Config.Render.Threshold
			}
			report := inspectSignature(name, args[0], threshold)

			printKeyValue("Normalized", report.Normalized)
			printKeyValue("Width", fmt.Sprintf("%d / %d (%s)", report.Width, threshold, report.Layout))
			printKeyValue("Grouped", strconv.FormatBool(report.Grouped))
			printNewline()

			printInfo("Arguments (%d)", len(report.Args))
			for i, a := range report.Args {
				printDetail("%d  %s", i+1, a)
			}
			if report.Fields != nil {
				printInfo("Record fields (%d)", len(report.Fields))
				for _, f := range report.Fields {
					printDetail("%s", f)
				}
			}
			printNewline()

			theme := sink.NewTheme(c.Config.Theme)
			fmt.Fprintln(cmd.OutOrStdout(), theme.Document(report.Rendered))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "f", "value name to print the signature under")
	cmd.Flags().IntVar(&threshold, "threshold", 0, "line width at which the signature breaks (default from config)")

	return cmd
}

// signatureReport is what inspect prints.
type signatureReport struct {
	Normalized string
	Args       []string
	Fields     []string // nil unless the signature is a record
	Grouped    bool
	Width      int
	Layout     string
	Rendered   styled.Document
}

func inspectSignature(name, sig string, threshold int) signatureReport {
	p := printer.New(printer.Options{Threshold: threshold})
	norm := signature.Normalize(sig)

	r := signatureReport{
		Normalized: norm,
		Args:       signature.SplitArgs(norm),
		Grouped:    signature.IsGrouped(norm),
		Width:      printer.Width(name, sig),
		Layout:     "multi-line",
		Rendered:   p.Value(name, sig),
	}
	if signature.IsRecord(norm) {
		r.Fields = signature.SplitRecord(norm)
	}
	if p.Inline(name, sig) {
		r.Layout = "inline"
	}
	return r
}
