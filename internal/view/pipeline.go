// Package view derives the render-ready goal list from a store
// snapshot. The pipeline is pure: search, filter, and sort never touch
// the store or the network, and identical inputs always yield
// identical output.
package view

import (
	"sort"
	"strings"

	"github.com/achievify/goaltrack/internal/model"
)

// Filter selects goals by completion state.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
)

// Filters lists the filter modes in cycle order.
var Filters = []Filter{FilterAll, FilterCompleted, FilterPending}

// Sort selects the ordering of the derived list.
type Sort string

const (
	SortNewest   Sort = "newest"
	SortOldest   Sort = "oldest"
	SortPriority Sort = "priority"
	SortDueDate  Sort = "due-date"
)

// Sorts lists the sort modes in cycle order.
var Sorts = []Sort{SortNewest, SortOldest, SortPriority, SortDueDate}

// Params are the view controls applied to a snapshot.
type Params struct {
	// Query is matched case-insensitively against goal text. Empty
	// matches everything.
	Query string

	// Filter is the completion filter; an empty value means all.
	Filter Filter

	// Sort is the ordering mode; an empty value means newest first.
	Sort Sort
}

// Apply runs the snapshot through search, filter, and sort and returns
// a new ordered slice. The result may be empty but is never nil.
func Apply(goals []model.Goal, p Params) []model.Goal {
	query := strings.ToLower(strings.TrimSpace(p.Query))

	out := make([]model.Goal, 0, len(goals))
	for _, g := range goals {
		if query != "" && !strings.Contains(strings.ToLower(g.Text), query) {
			continue
		}
		switch p.Filter {
		case FilterCompleted:
			if !g.Completed {
				continue
			}
		case FilterPending:
			if g.Completed {
				continue
			}
		}
		out = append(out, g)
	}

	sortGoals(out, p.Sort)
	return out
}

// sortGoals orders the list in place. All sorts are stable so that
// ties keep their relative order from the prior stage.
func sortGoals(goals []model.Goal, mode Sort) {
	switch mode {
	case SortPriority:
		sort.SliceStable(goals, func(i, j int) bool {
			return goals[i].Priority.Weight() > goals[j].Priority.Weight()
		})

	case SortDueDate:
		// Goals without a due date sort after every goal that has
		// one, regardless of direction.
		sort.SliceStable(goals, func(i, j int) bool {
			a, b := goals[i].DueDate, goals[j].DueDate
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.Before(b.Time)
			}
		})

	case SortOldest:
		sort.SliceStable(goals, func(i, j int) bool {
			return goals[i].SortKey() < goals[j].SortKey()
		})

	default: // SortNewest
		sort.SliceStable(goals, func(i, j int) bool {
			return goals[i].SortKey() > goals[j].SortKey()
		})
	}
}
