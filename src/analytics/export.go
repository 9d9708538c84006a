package analytics

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// WriteCSV renders the stats in the export layout the frontend offers for
// download: a metric block, a papers-per-year block, and a top-cited block,
// separated by blank rows.
func WriteCSV(stats Stats) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"Metric", "Value"},
		{"Total Papers", strconv.Itoa(stats.TotalPapers)},
		{"Total Citations", strconv.Itoa(stats.TotalCitations)},
		{"h-index", strconv.Itoa(stats.HIndex)},
		{"Average Citations per Paper", strconv.FormatFloat(stats.AvgCitationsPerPaper, 'f', 1, 64)},
		{"Papers This Year", strconv.Itoa(stats.PapersThisYear)},
		{"Years Active", strconv.Itoa(len(stats.PapersByYear))},
		{},
		{"Year", "Papers"},
	}
	for _, yc := range stats.PapersByYear {
		rows = append(rows, []string{strconv.Itoa(yc.Year), strconv.Itoa(yc.Count)})
	}
	rows = append(rows, []string{}, []string{"Paper", "Citations"})
	for _, paper := range stats.TopCitedPapers {
		rows = append(rows, []string{paper.Title, strconv.Itoa(paper.Citations)})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
