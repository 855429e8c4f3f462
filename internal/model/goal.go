package model

import "time"

// Category classifies a goal for filtering and analytics.
type Category string

const (
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryFitness  Category = "Fitness"
	CategoryLearning Category = "Learning"
	CategoryOther    Category = "Other"
)

// Categories lists all known categories in display order.
var Categories = []Category{
	CategoryWork,
	CategoryPersonal,
	CategoryFitness,
	CategoryLearning,
	CategoryOther,
}

// NormalizeCategory maps unknown category values to CategoryOther.
func NormalizeCategory(c Category) Category {
	for _, known := range Categories {
		if c == known {
			return c
		}
	}
	return CategoryOther
}

// Priority levels as transmitted on the wire.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Weight returns the numeric sort weight for a priority. Unknown
// values weigh zero and sort after every known priority.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// NormalizePriority maps unknown priority values to PriorityMedium.
func NormalizePriority(p Priority) Priority {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p
	default:
		return PriorityMedium
	}
}

// Goal is a tracked goal or habit belonging to the authenticated user.
// The ID is assigned by the server on creation and is never generated
// locally.
type Goal struct {
	ID        string     `json:"_id"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	Category  Category   `json:"category,omitempty"`
	Priority  Priority   `json:"priority,omitempty"`
	DueDate   *Date      `json:"dueDate,omitempty"`
	CreatedAt *Timestamp `json:"created_at,omitempty"`

	// Measurable goals track numeric progress against a target and
	// auto-complete when CurrentValue reaches TargetValue.
	IsMeasurable bool    `json:"isMeasurable,omitempty"`
	CurrentValue float64 `json:"currentValue,omitempty"`
	TargetValue  float64 `json:"targetValue,omitempty"`
}

// SortKey returns the creation-ordering key used by the oldest/newest
// sorts. When the server supplied no explicit timestamp the id is used
// instead; its intrinsic ordering follows creation order.
func (g Goal) SortKey() string {
	if g.CreatedAt != nil {
		return g.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return g.ID
}

// IsOverdue reports whether the goal has a due date in the past and is
// still pending.
func (g Goal) IsOverdue() bool {
	return g.DueDate != nil && g.DueDate.Before(time.Now()) && !g.Completed
}

// DeriveCompletion returns the completion state implied by a measurable
// goal's progress. Non-measurable goals keep their explicit flag.
func (g Goal) DeriveCompletion() bool {
	if g.IsMeasurable {
		return g.CurrentValue == g.TargetValue
	}
	return g.Completed
}
