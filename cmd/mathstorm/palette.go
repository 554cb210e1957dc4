package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dshills/mathstorm/internal/engine/tree"
	"github.com/dshills/mathstorm/internal/input/palette"
)

func newPaletteCmd() *cobra.Command {
	var category string
	var limit int

	cmd := &cobra.Command{
		Use:   "palette [query]",
		Short: "List or search the symbol palette",
		Long: `List palette entries grouped by category, or fuzzy-search them.

Examples:
  mathstorm palette                    # everything, by category
  mathstorm palette --category greek   # one category
  mathstorm palette sq --limit 3       # best three matches for "sq"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := palette.Builtin()
			pl := newPaletteList(cmd.OutOrStdout())

			if len(args) == 1 {
				results := p.Search(args[0], limit)
				if len(results) == 0 {
					return fmt.Errorf("no palette entry matches %q", args[0])
				}
				entries := make([]*palette.Entry, len(results))
				for i, r := range results {
					entries[i] = r.Entry
				}
				pl.write(fmt.Sprintf("matches for %q", args[0]), entries)
				return nil
			}

			cats := p.Categories()
			if category != "" {
				cats = []palette.Category{palette.Category(category)}
			}
			for _, cat := range cats {
				entries := p.ByCategory(cat)
				if len(entries) == 0 {
					return fmt.Errorf("unknown category %q", category)
				}
				if limit > 0 && len(entries) > limit {
					entries = entries[:limit]
				}
				pl.write(string(cat), entries)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only list this category")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum entries per group (0 for all)")
	return cmd
}

// paletteList renders entry tables.
type paletteList struct {
	out    io.Writer
	header lipgloss.Style
	id     lipgloss.Style
	title  lipgloss.Style
	markup lipgloss.Style
}

func newPaletteList(out io.Writer) *paletteList {
	r := lipgloss.NewRenderer(out)
	return &paletteList{
		out:    out,
		header: r.NewStyle().Bold(true).Underline(true),
		id:     r.NewStyle().Width(16).Foreground(lipgloss.Color("12")),
		title:  r.NewStyle().Width(28),
		markup: r.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

func (pl *paletteList) write(heading string, entries []*palette.Entry) {
	var sb strings.Builder
	sb.WriteString(pl.header.Render(heading))
	sb.WriteByte('\n')
	for _, e := range entries {
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			pl.id.Render(e.ID),
			pl.title.Render(e.Title),
			pl.markup.Render(preview(e)),
		))
		sb.WriteByte('\n')
	}
	fmt.Fprintln(pl.out, sb.String())
}

// preview is the markup the entry inserts into an empty expression.
func preview(e *palette.Entry) string {
	expr := tree.New(tree.WithColors(tree.SingleColor("red")))
	return expr.NodeMarkup(e.Build(expr))
}
