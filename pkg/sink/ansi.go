package sink

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/sigdoc/pkg/styled"
)

// Colors names the ANSI colors of a theme. Values are anything
// lipgloss.Color accepts ("36", "#5fafaf").
type Colors struct {
	Keyword string `toml:"keyword"`
	Link    string `toml:"link"`
	Type    string `toml:"type"`
	Comment string `toml:"comment"`
	Heading string `toml:"heading"`
}

// DefaultColors is the built-in palette.
func DefaultColors() Colors {
	return Colors{
		Keyword: "36",  // Teal
		Link:    "75",  // Light blue
		Type:    "255", // Bright white
		Comment: "245", // Gray
		Heading: "36",
	}
}

// Theme holds the lipgloss styles for each token role.
type Theme struct {
	Keyword lipgloss.Style
	Link    lipgloss.Style
	Anchor  lipgloss.Style
	Type    lipgloss.Style
	Comment lipgloss.Style
	Heading lipgloss.Style
	Fixity  lipgloss.Style
}

// NewTheme builds a theme from a palette. Empty colors fall back to the
// default palette.
func NewTheme(c Colors) Theme {
	d := DefaultColors()
	pick := func(v, def string) lipgloss.Color {
		if v == "" {
			return lipgloss.Color(def)
		}
		return lipgloss.Color(v)
	}
	keyword := pick(c.Keyword, d.Keyword)
	link := pick(c.Link, d.Link)
	comment := pick(c.Comment, d.Comment)

	return Theme{
		Keyword: lipgloss.NewStyle().Foreground(keyword),
		Link:    lipgloss.NewStyle().Foreground(link).Underline(true),
		Anchor:  lipgloss.NewStyle().Bold(true).Foreground(link),
		Type:    lipgloss.NewStyle().Foreground(pick(c.Type, d.Type)),
		Comment: lipgloss.NewStyle().Foreground(comment),
		Heading: lipgloss.NewStyle().Bold(true).Foreground(pick(c.Heading, d.Heading)),
		Fixity:  lipgloss.NewStyle().Foreground(comment).Italic(true),
	}
}

// DefaultTheme returns the theme for DefaultColors.
func DefaultTheme() Theme { return NewTheme(DefaultColors()) }

// Style returns the style for a token.
func (t Theme) Style(tok styled.Token) lipgloss.Style {
	switch {
	case tok.Role == styled.RoleLink && tok.Strong:
		return t.Anchor
	case tok.Role == styled.RoleLink:
		return t.Link
	case tok.Role == styled.RoleKeyword:
		return t.Keyword
	}
	return t.Type
}

// Document renders a styled document as ANSI text.
func (t Theme) Document(d styled.Document) string {
	var b strings.Builder
	for _, tok := range d.Tokens() {
		b.WriteString(styleLines(t.Style(tok), tok.Text))
	}
	return b.String()
}

// styleLines styles each line separately. lipgloss pads multi-line blocks
// to a common width, which would break the signature layout.
func styleLines(s lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = s.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

// RenderANSI renders pages for a terminal.
func RenderANSI(pages []Page, opts ...Option) []byte {
	c := newConfig(opts)
	var b strings.Builder

	for i, p := range pages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(c.theme.Heading.Render(p.Module))
		b.WriteString("\n")
		if comment := CleanComment(p.Comment); comment != "" {
			b.WriteString(styleLines(c.theme.Comment, comment))
			b.WriteString("\n")
		}

		for _, e := range p.Entries {
			b.WriteString("\n")
			b.WriteString(c.theme.Document(e.Signature))
			if e.Fixity != nil {
				b.WriteString(c.theme.Fixity.Render(fixityText(e.Fixity)))
			}
			b.WriteString("\n")
			if e.Comment != "" {
				b.WriteString(styleLines(c.theme.Comment, indentLines(e.Comment, "    ")))
				b.WriteString("\n")
			}
		}
	}
	return []byte(b.String())
}
