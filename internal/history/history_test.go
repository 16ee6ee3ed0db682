package history_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/aitrainer/internal/history"
)

type record struct {
	id        int
	goal      string
	createdAt time.Time
}

func (r record) EntryID() int              { return r.id }
func (r record) EntryGoal() string         { return r.goal }
func (r record) EntryCreatedAt() time.Time { return r.createdAt }

var now = time.Date(2025, time.March, 14, 18, 30, 0, 0, time.UTC)

func testRecords() []record {
	return []record{
		{id: 9, goal: "weight loss", createdAt: now.Add(-1 * time.Hour)},
		{id: 8, goal: "muscle gain", createdAt: now.Add(-3 * time.Hour)},
		{id: 7, goal: "weight loss", createdAt: now.Add(-26 * time.Hour)},
		{id: 5, goal: "endurance", createdAt: now.Add(-27 * time.Hour)},
		{id: 2, goal: "muscle gain", createdAt: now.Add(-10 * 24 * time.Hour)},
	}
}

func TestFilterByGoal(t *testing.T) {
	records := testRecords()

	assert.Equal(t, records, history.FilterByGoal(records, history.AllGoals))
	assert.Equal(t, records, history.FilterByGoal(records, ""))

	filtered := history.FilterByGoal(records, "muscle gain")
	assert.Equal(t, []int{8, 2}, history.IDs(filtered))

	assert.Empty(t, history.FilterByGoal(records, "flexibility"))
}

func TestGoals(t *testing.T) {
	assert.Equal(t,
		[]string{history.AllGoals, "weight loss", "muscle gain", "endurance"},
		history.Goals(testRecords()),
	)
	assert.Equal(t, []string{history.AllGoals}, history.Goals([]record{}))
}

func TestDayLabel(t *testing.T) {
	assert.Equal(t, "Today", history.DayLabel(now.Add(-18*time.Hour), now))
	assert.Equal(t, "Mar 13, 2025", history.DayLabel(now.Add(-19*time.Hour), now))
	assert.Equal(t, "Dec 31, 2024", history.DayLabel(time.Date(2024, time.December, 31, 23, 0, 0, 0, time.UTC), now))

	// the calendar day is the one of the viewer
	belgrade := time.FixedZone("CET", 3600)
	lateUTC := time.Date(2025, time.March, 13, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "Today", history.DayLabel(lateUTC, now.In(belgrade)))
}

func TestGroupByDay(t *testing.T) {
	groups := history.GroupByDay(testRecords(), now)
	require.Len(t, groups, 3)

	assert.Equal(t, "Today", groups[0].Label)
	assert.Equal(t, []int{9, 8}, groups[0].IDs())
	assert.Equal(t, "Mar 13, 2025", groups[1].Label)
	assert.Equal(t, []int{7, 5}, groups[1].IDs())
	assert.Equal(t, "Mar 4, 2025", groups[2].Label)
	assert.Equal(t, []int{2}, groups[2].IDs())

	assert.Empty(t, history.GroupByDay([]record{}, now))
}

func TestWithout(t *testing.T) {
	kept := history.Without(testRecords(), []int{8, 5, 100})
	assert.Equal(t, []int{9, 7, 2}, history.IDs(kept))
}
