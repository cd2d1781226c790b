package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/phanxgames/hero"
	"github.com/phanxgames/hero/internal/content"
)

func newPlanCmd() *cobra.Command {
	var sections int

	cmd := &cobra.Command{
		Use:   "plan [content-file]",
		Short: "Print the letter and color shown for each section",
		Long: `Print the letter and color shown for each section.

With a content file the sections and palette come from the file; otherwise
--sections one-screen sections are listed with the default palette.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pal := hero.DefaultPalette()
			names := sectionNames(sections)
			source := "default palette"
			if len(args) == 1 {
				source = args[0]
				doc, err := content.Load(args[0])
				if err != nil {
					return err
				}
				cfg := doc.ViewConfig()
				if cfg.Palette != nil {
					pal = *cfg.Palette
				}
				if cfg.SectionHeights != nil {
					names = sectionNames(len(cfg.SectionHeights) + 1)
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, StyleTitle.Render("Section plan"))
			printKeyValue(out, "source", source)
			fmt.Fprintln(out, renderPlan(pal, names))
			return nil
		},
	}
	cmd.Flags().IntVarP(&sections, "sections", "n", 4, "number of sections including the hero")
	return cmd
}

// sectionNames names n sections the way the view does: the hero first,
// then section-1, section-2, ...
func sectionNames(n int) []string {
	if n < 1 {
		n = 1
	}
	names := make([]string, n)
	for i := range names {
		names[i] = hero.SectionName(i)
	}
	return names
}

// renderPlan renders one table row per section with its letter, color and
// a swatch.
func renderPlan(pal hero.Palette, names []string) string {
	rows := make([][]string, len(names))
	swatches := make([]lipgloss.Style, len(names))
	for i, name := range names {
		d := pal.Display(i)
		hex := d.Color.Hex()
		rows[i] = []string{strconv.Itoa(i), name, d.Letter, hex, "    "}
		swatches[i] = lipgloss.NewStyle().Background(lipgloss.Color(hex))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Section", "Letter", "Color", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if col == 4 && row >= 0 && row < len(swatches) {
				return swatches[row]
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.String()
}
