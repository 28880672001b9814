package sink

import (
	"encoding/json"

	"github.com/matzehuels/sigdoc/pkg/docs"
	"github.com/matzehuels/sigdoc/pkg/printer"
	"github.com/matzehuels/sigdoc/pkg/styled"
)

type jsonPage struct {
	Module  string      `json:"module"`
	Comment string      `json:"comment,omitempty"`
	Entries []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	Name      string         `json:"name"`
	Kind      string         `json:"kind"`
	Text      string         `json:"text"`
	Signature []styled.Token `json:"signature"`
	Fixity    *docs.Fixity   `json:"fixity,omitempty"`
	Comment   string         `json:"comment,omitempty"`
}

// RenderJSON exports pages as JSON. Each entry carries its token stream so a
// consumer can apply its own styling, plus the unstyled text for convenience.
func RenderJSON(pages []Page) ([]byte, error) {
	out := make([]jsonPage, len(pages))
	for i, p := range pages {
		jp := jsonPage{
			Module:  p.Module,
			Comment: CleanComment(p.Comment),
			Entries: make([]jsonEntry, len(p.Entries)),
		}
		for j, e := range p.Entries {
			jp.Entries[j] = newJSONEntry(e)
		}
		out[i] = jp
	}
	return json.MarshalIndent(out, "", "  ")
}

// RenderEntryJSON exports a single entry in the same shape RenderJSON uses.
func RenderEntryJSON(e printer.Rendered) ([]byte, error) {
	return json.MarshalIndent(newJSONEntry(e), "", "  ")
}

func newJSONEntry(e printer.Rendered) jsonEntry {
	return jsonEntry{
		Name:      e.Name,
		Kind:      e.Kind.String(),
		Text:      e.Signature.Text(),
		Signature: e.Signature.Tokens(),
		Fixity:    e.Fixity,
		Comment:   e.Comment,
	}
}
