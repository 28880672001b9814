package sink

import "strings"

// RenderText renders pages as plain text with the printer's layout intact.
func RenderText(pages []Page) []byte {
	var b strings.Builder
	for i, p := range pages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(p.Module)
		b.WriteString("\n")
		if comment := CleanComment(p.Comment); comment != "" {
			b.WriteString(comment)
			b.WriteString("\n")
		}

		for _, e := range p.Entries {
			b.WriteString("\n")
			b.WriteString(e.Signature.Text())
			b.WriteString(fixityText(e.Fixity))
			b.WriteString("\n")
			if e.Comment != "" {
				b.WriteString(indentLines(e.Comment, "    "))
				b.WriteString("\n")
			}
		}
	}
	return []byte(b.String())
}
