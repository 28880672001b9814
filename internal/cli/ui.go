package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// uiOut receives all human-facing status output. Rendered documentation is
// written by writeOutput and never goes through here.
var uiOut io.Writer = os.Stdout

// =============================================================================
// Palette
// =============================================================================

var (
	colorAccent = lipgloss.Color("36")  // same teal as the default keyword color
	colorOK     = lipgloss.Color("35")  // green
	colorWarn   = lipgloss.Color("220") // amber
	colorFail   = lipgloss.Color("167") // soft red
	colorLink   = lipgloss.Color("75")  // same blue as type links
	colorText   = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle is used for the browser heading.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// StyleHighlight marks the active filter in the browser.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)

	// StyleLink renders URLs printed by serve.
	StyleLink = lipgloss.NewStyle().Foreground(colorLink).Underline(true)

	// StyleDim is used for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	styleValue   = lipgloss.NewStyle().Foreground(colorText)
	styleKey     = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	styleCommand = lipgloss.NewStyle().Foreground(colorLink)
	styleSpinner = lipgloss.NewStyle().Foreground(colorAccent)
)

// =============================================================================
// Status lines
// =============================================================================

// status is the kind of a one-line message.
type status int

const (
	statusOK status = iota
	statusFail
	statusWarn
	statusInfo
)

var statusMarks = [...]struct {
	mark  string
	style lipgloss.Style
}{
	statusOK:   {"✓", lipgloss.NewStyle().Foreground(colorOK)},
	statusFail: {"✗", lipgloss.NewStyle().Foreground(colorFail)},
	statusWarn: {"!", lipgloss.NewStyle().Foreground(colorWarn)},
	statusInfo: {"›", lipgloss.NewStyle().Foreground(colorMuted)},
}

func printStatus(s status, format string, args ...any) {
	m := statusMarks[s]
	msg := fmt.Sprintf(format, args...)
	if s == statusWarn {
		msg = m.style.Render(msg)
	}
	fmt.Fprintln(uiOut, m.style.Render(m.mark)+" "+msg)
}

func printSuccess(format string, args ...any) { printStatus(statusOK, format, args...) }
func printError(format string, args ...any)   { printStatus(statusFail, format, args...) }
func printWarning(format string, args ...any) { printStatus(statusWarn, format, args...) }
func printInfo(format string, args ...any)    { printStatus(statusInfo, format, args...) }

// printDetail prints an indented secondary line under a status.
func printDetail(format string, args ...any) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a written output file.
func printFile(path string) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render("→")+" "+styleValue.Render(path))
}

// printKeyValue prints one row of the inspect report.
func printKeyValue(key, value string) {
	fmt.Fprintln(uiOut, styleKey.Render(key)+" "+styleValue.Render(value))
}

// printStats summarizes a render: "2 modules · 10 entries · cached".
// Zero counts are left out.
func printStats(moduleCount, entryCount int, cached bool) {
	var parts []string
	if moduleCount > 0 {
		parts = append(parts, plural(moduleCount, "module"))
	}
	if entryCount > 0 {
		parts = append(parts, plural(entryCount, "entry"))
	}
	if cached {
		parts = append(parts, statusMarks[statusOK].style.Render("cached"))
	} else {
		parts = append(parts, "fresh")
	}
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(strings.Join(parts, " · ")))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	if strings.HasSuffix(noun, "y") {
		return fmt.Sprintf("%d %sies", n, strings.TrimSuffix(noun, "y"))
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(uiOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(uiOut)
}
