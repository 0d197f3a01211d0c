package worklist

import (
	"sort"
	"strings"

	"bms-board/internal/storage"
)

const unclassified = "미지정"

// CategoryStat holds, for one category, how many attributed rows fall on
// each first-level classification in the selected month. Feeds the pie
// charts under the worklist table.
type CategoryStat struct {
	Category string         `json:"category"`
	Total    int            `json:"total"`
	Counts   map[string]int `json:"counts"`
}

// FirstClass extracts the first level of a composed classification label.
func FirstClass(label string) string {
	first := strings.TrimSpace(strings.SplitN(label, " > ", 2)[0])
	if first == "" {
		return unclassified
	}
	return first
}

func rowMonth(r storage.AttributedRow) string {
	if len(r.Received) < 7 {
		return ""
	}
	return r.Received[:7]
}

// Months lists the distinct months (YYYY-MM) present in the attributed rows,
// most recent first.
func Months(rows []storage.AttributedRow) []string {
	seen := make(map[string]bool)
	for _, r := range rows {
		if m := rowMonth(r); m != "" {
			seen[m] = true
		}
	}

	months := make([]string, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// MonthlyStats counts first-level classifications per category for one month.
// All three categories are always present so the chart columns line up.
func MonthlyStats(rows []storage.AttributedRow, month string) []CategoryStat {
	stats := []CategoryStat{
		{Category: CategoryLensAS, Counts: make(map[string]int)},
		{Category: CategoryFrameAS, Counts: make(map[string]int)},
		{Category: CategoryFitting, Counts: make(map[string]int)},
	}

	byCategory := make(map[string]*CategoryStat, len(stats))
	for i := range stats {
		byCategory[stats[i].Category] = &stats[i]
	}

	for _, r := range rows {
		if rowMonth(r) != month {
			continue
		}
		st, ok := byCategory[r.Category]
		if !ok {
			continue
		}
		st.Counts[FirstClass(r.Class)]++
		st.Total++
	}

	return stats
}
