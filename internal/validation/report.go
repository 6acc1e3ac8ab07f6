package validation

import (
	"sort"

	"github.com/ginjaninja78/erc721-metadata/internal/types"
)

// TraitSummary describes the values seen in one header column.
type TraitSummary struct {
	TraitType      string
	Distinct       int
	MostCommon     string
	MostCommonSeen int
}

// Summarize counts the values of each trait across well-formed data rows.
// Rows that fail ValidateRow are skipped. Ties for the most common value go
// to the value that appears first in the file.
func Summarize(table *types.Table) []TraitSummary {
	header := table.Header()
	if len(header) == 0 {
		return nil
	}

	counts := make([]map[string]int, len(header))
	order := make([][]string, len(header))
	for j := range header {
		counts[j] = make(map[string]int)
	}

	for i, row := range table.DataRows() {
		if ValidateRow(i, header, row) != nil {
			continue
		}
		for j, value := range row {
			if counts[j][value] == 0 {
				order[j] = append(order[j], value)
			}
			counts[j][value]++
		}
	}

	summaries := make([]TraitSummary, len(header))
	for j, trait := range header {
		s := TraitSummary{TraitType: trait, Distinct: len(counts[j])}

		values := append([]string(nil), order[j]...)
		sort.SliceStable(values, func(a, b int) bool {
			return counts[j][values[a]] > counts[j][values[b]]
		})
		if len(values) > 0 {
			s.MostCommon = values[0]
			s.MostCommonSeen = counts[j][values[0]]
		}
		summaries[j] = s
	}
	return summaries
}
