package analytics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholaria/scholaria-backend/src/models"
)

func paper(title string, year, citations int) models.Paper {
	return models.Paper{Title: title, PublishedYear: year, CitationCount: citations}
}

func TestComputeEmpty(t *testing.T) {
	stats := Compute(nil, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))

	assert.Zero(t, stats.TotalPapers)
	assert.Zero(t, stats.TotalCitations)
	assert.Zero(t, stats.HIndex)
	assert.Zero(t, stats.AvgCitationsPerPaper)
	assert.Empty(t, stats.PapersByYear)
	assert.Empty(t, stats.TopCitedPapers)
}

func TestComputeAggregates(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	papers := []models.Paper{
		paper("Graphs", 2024, 10),
		paper("Trees", 2024, 4),
		paper("Heaps", 2025, 2),
		paper("Queues", 2026, 0),
	}

	stats := Compute(papers, now)

	assert.Equal(t, 4, stats.TotalPapers)
	assert.Equal(t, 16, stats.TotalCitations)
	assert.Equal(t, 4.0, stats.AvgCitationsPerPaper)
	assert.Equal(t, 1, stats.PapersThisYear)
	assert.Equal(t, []YearCount{{2024, 2}, {2025, 1}, {2026, 1}}, stats.PapersByYear)

	require.NotEmpty(t, stats.TopCitedPapers)
	assert.Equal(t, "Graphs", stats.TopCitedPapers[0].Title)
}

func TestHIndex(t *testing.T) {
	cases := []struct {
		name      string
		citations []int
		want      int
	}{
		{"none", nil, 0},
		{"all zero", []int{0, 0}, 0},
		{"classic", []int{10, 8, 5, 4, 3}, 4},
		{"uniform", []int{3, 3, 3}, 3},
		{"single high", []int{100}, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, hIndex(tc.citations))
		})
	}
}

func TestWriteCSVLayout(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	stats := Compute([]models.Paper{
		paper("Graphs", 2024, 10),
		paper("Trees", 2025, 4),
	}, now)

	data, err := WriteCSV(stats)
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, "Metric,Value\n"))
	assert.Contains(t, out, "Total Papers,2\n")
	assert.Contains(t, out, "Total Citations,14\n")
	assert.Contains(t, out, "h-index,2\n")
	assert.Contains(t, out, "Year,Papers\n2024,1\n2025,1\n")
	assert.Contains(t, out, "Paper,Citations\nGraphs,10\nTrees,4\n")
}
