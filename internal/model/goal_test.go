package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, CategoryWork, NormalizeCategory("Work"))
	assert.Equal(t, CategoryOther, NormalizeCategory("Chores"))
	assert.Equal(t, CategoryOther, NormalizeCategory(""))
}

func TestNormalizePriority(t *testing.T) {
	assert.Equal(t, PriorityHigh, NormalizePriority("high"))
	assert.Equal(t, PriorityMedium, NormalizePriority("urgent"))
	assert.Equal(t, PriorityMedium, NormalizePriority(""))
}

func TestPriorityWeight(t *testing.T) {
	assert.Equal(t, 3, PriorityHigh.Weight())
	assert.Equal(t, 2, PriorityMedium.Weight())
	assert.Equal(t, 1, PriorityLow.Weight())
	assert.Equal(t, 0, Priority("urgent").Weight())
}

func TestSortKeyFallsBackToID(t *testing.T) {
	stamped := Goal{
		ID:        "z",
		CreatedAt: &Timestamp{Time: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)},
	}
	bare := Goal{ID: "a"}

	assert.Equal(t, "2026-08-01T12:00:00Z", stamped.SortKey())
	assert.Equal(t, "a", bare.SortKey())
}

func TestDeriveCompletion(t *testing.T) {
	measurableDone := Goal{IsMeasurable: true, CurrentValue: 5, TargetValue: 5}
	measurablePartial := Goal{IsMeasurable: true, CurrentValue: 4, TargetValue: 5}
	plain := Goal{Completed: true}

	assert.True(t, measurableDone.DeriveCompletion())
	assert.False(t, measurablePartial.DeriveCompletion())
	assert.True(t, plain.DeriveCompletion())
}

func TestIsOverdue(t *testing.T) {
	past := NewDate(time.Now().AddDate(0, 0, -2))
	future := NewDate(time.Now().AddDate(0, 0, 2))

	assert.True(t, Goal{DueDate: &past}.IsOverdue())
	assert.False(t, Goal{DueDate: &past, Completed: true}.IsOverdue())
	assert.False(t, Goal{DueDate: &future}.IsOverdue())
	assert.False(t, Goal{}.IsOverdue())
}

func TestDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2026-09-05")
	assert.NoError(t, err)

	data, err := json.Marshal(d)
	assert.NoError(t, err)
	assert.Equal(t, `"2026-09-05"`, string(data))
}

func TestDateUnmarshalAcceptsServerTimestamps(t *testing.T) {
	var d Date
	err := json.Unmarshal([]byte(`"Tue, 01 Sep 2026 10:30:00 GMT"`), &d)
	assert.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.September, d.Month())

	err = json.Unmarshal([]byte(`"not a date"`), &d)
	assert.Error(t, err)
}

func TestTimestampUnmarshalLenientLayouts(t *testing.T) {
	for _, raw := range []string{
		`"2026-09-01T10:30:00Z"`,
		`"Tue, 01 Sep 2026 10:30:00 GMT"`,
		`"2026-09-01"`,
	} {
		var ts Timestamp
		err := json.Unmarshal([]byte(raw), &ts)
		assert.NoError(t, err, raw)
		assert.Equal(t, 2026, ts.Year(), raw)
	}
}

func TestGoalJSONFieldNames(t *testing.T) {
	raw := `{"_id":"abc123","text":"drink water","completed":false,` +
		`"category":"Fitness","priority":"high","dueDate":"2026-09-10",` +
		`"isMeasurable":true,"currentValue":3,"targetValue":8}`

	var g Goal
	err := json.Unmarshal([]byte(raw), &g)
	assert.NoError(t, err)
	assert.Equal(t, "abc123", g.ID)
	assert.Equal(t, CategoryFitness, g.Category)
	assert.Equal(t, PriorityHigh, g.Priority)
	assert.NotNil(t, g.DueDate)
	assert.True(t, g.IsMeasurable)
	assert.Equal(t, 8.0, g.TargetValue)
}
