package cmd

import (
	"io"
	"os"
	"strconv"

	"github.com/ginjaninja78/erc721-metadata/internal/validation"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// renderTraitTable renders one line per trait. Rounded box drawing is used on
// terminals, plain ASCII everywhere else.
func renderTraitTable(w io.Writer, summaries []validation.TraitSummary) string {
	tw := table.NewWriter()
	if isTerminal(w) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	tw.AppendHeader(table.Row{"#", "Trait", "Distinct", "Most Common", "Count"})
	for i, s := range summaries {
		tw.AppendRow(table.Row{
			strconv.Itoa(i),
			s.TraitType,
			strconv.Itoa(s.Distinct),
			s.MostCommon,
			strconv.Itoa(s.MostCommonSeen),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
