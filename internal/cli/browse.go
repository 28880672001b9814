package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sigdoc/pkg/printer"
	"github.com/matzehuels/sigdoc/pkg/sink"
)

// browseCommand opens an interactive entry browser.
func (c *CLI) browseCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "browse <docs.json>",
		Short: "Browse documentation interactively",
		Long: `Browse lists every entry of a docs.json file. Move with the arrow keys or
j/k, press / to filter by name, and q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(flags, "")
			runner, err := c.newRunner(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer runner.Close()

			src, err := runner.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			modules, err := src.Select(opts.Modules)
			if err != nil {
				return err
			}
			pages, err := runner.Pages(cmd.Context(), modules, printer.Options{
				Threshold: opts.Threshold,
				Links:     !opts.NoLinks,
			})
			if err != nil {
				return err
			}

			m := newBrowseModel(pages, sink.NewTheme(opts.Theme))
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

// Browser styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorText)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailPaneStyle   = lipgloss.NewStyle().PaddingLeft(2).BorderStyle(lipgloss.NormalBorder()).BorderLeft(true).BorderForeground(colorDim)
)

const listWidth = 36

// =============================================================================
// browseModel - Interactive entry browser
// =============================================================================

type browseItem struct {
	module string
	entry  printer.Rendered
}

func (it browseItem) label() string {
	return it.module + "." + it.entry.Name
}

// browseModel is the bubbletea model for the entry browser.
type browseModel struct {
	all      []browseItem
	items    []browseItem // all, narrowed by filter
	theme    sink.Theme
	cursor   int
	offset   int
	height   int
	filter   string
	filterOn bool
}

func newBrowseModel(pages []sink.Page, theme sink.Theme) browseModel {
	var items []browseItem
	for _, p := range pages {
		for _, e := range p.Entries {
			items = append(items, browseItem{module: p.Module, entry: e})
		}
	}
	return browseModel{all: items, items: items, theme: theme, height: 15}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filterOn {
			return m.updateFilter(msg), nil
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "home", "g":
			m.move(-len(m.items))
		case "end", "G":
			m.move(len(m.items))
		case "/":
			m.filterOn = true
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
		m.move(0)
	}
	return m, nil
}

func (m browseModel) updateFilter(msg tea.KeyMsg) browseModel {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.filterOn = false
		return m
	case tea.KeyBackspace:
		if r := []rune(m.filter); len(r) > 0 {
			m.filter = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.filter += string(msg.Runes)
	default:
		return m
	}
	m.applyFilter()
	return m
}

func (m *browseModel) applyFilter() {
	if m.filter == "" {
		m.items = m.all
	} else {
		needle := strings.ToLower(m.filter)
		m.items = nil
		for _, it := range m.all {
			if strings.Contains(strings.ToLower(it.label()), needle) {
				m.items = append(m.items, it)
			}
		}
	}
	m.cursor, m.offset = 0, 0
}

// move shifts the cursor by delta and keeps it inside the visible window.
func (m *browseModel) move(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m browseModel) selected() (browseItem, bool) {
	if m.cursor < len(m.items) {
		return m.items[m.cursor], true
	}
	return browseItem{}, false
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Documentation"))
	b.WriteString("\n")
	if m.filterOn || m.filter != "" {
		b.WriteString(listDimStyle.Render("filter: ") + StyleHighlight.Render(m.filter))
		if m.filterOn {
			b.WriteString(StyleHighlight.Render("▏"))
		}
	} else {
		b.WriteString(listDimStyle.Render("↑/↓ navigate  / filter  q quit"))
	}
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.listView(), detailPaneStyle.Render(m.detailView())))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.cursor+1, len(m.items)), len(m.items))))

	return b.String()
}

func (m browseModel) listView() string {
	if len(m.items) == 0 {
		return lipgloss.NewStyle().Width(listWidth).Render(listDimStyle.Render("no matches"))
	}

	end := min(m.offset+m.height, len(m.items))
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		label := truncate(m.items[i].label(), listWidth-2)
		if i == m.cursor {
			lines = append(lines, listSelectedStyle.Render("▸ "+label))
		} else {
			lines = append(lines, listNormalStyle.Render("  "+label))
		}
	}
	return lipgloss.NewStyle().Width(listWidth).Render(strings.Join(lines, "\n"))
}

func (m browseModel) detailView() string {
	it, ok := m.selected()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleDim.Render(it.module + " · " + it.entry.Kind.String()))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Document(it.entry.Signature))
	if it.entry.Fixity != nil {
		b.WriteString(m.theme.Fixity.Render("    " + it.entry.Fixity.String()))
	}
	if it.entry.Comment != "" {
		b.WriteString("\n\n")
		b.WriteString(m.theme.Comment.Render(it.entry.Comment))
	}
	return b.String()
}

// truncate shortens s to n runes with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
