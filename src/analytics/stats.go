// Package analytics aggregates a scholar's paper statistics for the dashboard
// and the CSV export. Everything here is pure computation over the paper set.
package analytics

import (
	"sort"
	"time"

	"github.com/scholaria/scholaria-backend/src/models"
)

const topCitedLimit = 5

type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

type CitedPaper struct {
	Title     string `json:"title"`
	Citations int    `json:"citations"`
}

type Stats struct {
	TotalPapers          int          `json:"totalPapers"`
	TotalCitations       int          `json:"totalCitations"`
	HIndex               int          `json:"hIndex"`
	AvgCitationsPerPaper float64      `json:"avgCitationsPerPaper"`
	PapersThisYear       int          `json:"papersThisYear"`
	PapersByYear         []YearCount  `json:"papersByYear"`
	TopCitedPapers       []CitedPaper `json:"topCitedPapers"`
}

// Compute aggregates the stats for a paper set. "now" is injected so the
// papers-this-year figure is testable.
func Compute(papers []models.Paper, now time.Time) Stats {
	stats := Stats{
		TotalPapers:    len(papers),
		PapersByYear:   []YearCount{},
		TopCitedPapers: []CitedPaper{},
	}

	citations := make([]int, 0, len(papers))
	byYear := make(map[int]int)
	currentYear := now.Year()

	for _, paper := range papers {
		stats.TotalCitations += paper.CitationCount
		citations = append(citations, paper.CitationCount)

		year := paper.PublishedYear
		if year == 0 {
			year = paper.CreatedAt.Year()
		}
		byYear[year]++
		if year == currentYear {
			stats.PapersThisYear++
		}
	}

	if len(papers) > 0 {
		stats.AvgCitationsPerPaper = float64(stats.TotalCitations) / float64(len(papers))
	}
	stats.HIndex = hIndex(citations)

	for year, count := range byYear {
		stats.PapersByYear = append(stats.PapersByYear, YearCount{Year: year, Count: count})
	}
	sort.Slice(stats.PapersByYear, func(i, j int) bool {
		return stats.PapersByYear[i].Year < stats.PapersByYear[j].Year
	})

	sorted := make([]models.Paper, len(papers))
	copy(sorted, papers)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].CitationCount != sorted[j].CitationCount {
			return sorted[i].CitationCount > sorted[j].CitationCount
		}
		return sorted[i].Title < sorted[j].Title
	})
	for i, paper := range sorted {
		if i == topCitedLimit {
			break
		}
		stats.TopCitedPapers = append(stats.TopCitedPapers, CitedPaper{
			Title:     paper.Title,
			Citations: paper.CitationCount,
		})
	}

	return stats
}

// hIndex is the largest h such that h papers have at least h citations each.
func hIndex(citations []int) int {
	sort.Sort(sort.Reverse(sort.IntSlice(citations)))
	h := 0
	for i, c := range citations {
		if c >= i+1 {
			h = i + 1
		} else {
			break
		}
	}
	return h
}
