// Package analytics computes chart-ready aggregates from a goal
// snapshot. Everything here is a pure function of its input.
package analytics

import (
	"sort"

	"github.com/achievify/goaltrack/internal/model"
)

// CategoryCount is one bar of the category distribution.
type CategoryCount struct {
	Category model.Category
	Count    int
}

// CategoryCounts groups the full, unfiltered snapshot by category.
// Categories with zero members are omitted rather than reported as
// zero. The result is ordered by descending count, then by the
// canonical category order for ties.
func CategoryCounts(goals []model.Goal) []CategoryCount {
	counts := make(map[model.Category]int)
	for _, g := range goals {
		counts[model.NormalizeCategory(g.Category)]++
	}

	order := make(map[model.Category]int, len(model.Categories))
	for i, c := range model.Categories {
		order[c] = i
	}

	out := make([]CategoryCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, CategoryCount{Category: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return order[out[i].Category] < order[out[j].Category]
	})
	return out
}

// Summary is the headline progress line shown above the goal list.
type Summary struct {
	Total     int
	Completed int
	Pending   int
	// Percent is completed over total, 0 when the snapshot is empty.
	Percent float64
}

// Summarize computes the progress summary for a snapshot.
func Summarize(goals []model.Goal) Summary {
	s := Summary{Total: len(goals)}
	for _, g := range goals {
		if g.Completed {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.Percent = float64(s.Completed) / float64(s.Total) * 100
	}
	return s
}
