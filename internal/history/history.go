package history

import (
	"time"
)

const AllGoals = "All Goals"

const dayLabelLayout = "Jan 2, 2006"

// Entry is a past plan record as shown in the history views.
type Entry interface {
	EntryID() int
	EntryGoal() string
	EntryCreatedAt() time.Time
}

type DayGroup[T Entry] struct {
	Label   string
	Entries []T
}

func (g DayGroup[T]) IDs() []int {
	ids := make([]int, 0, len(g.Entries))
	for _, e := range g.Entries {
		ids = append(ids, e.EntryID())
	}
	return ids
}

// FilterByGoal keeps the entries with the given goal, AllGoals (or an empty goal) keeps everything.
func FilterByGoal[T Entry](entries []T, goal string) []T {
	if goal == "" || goal == AllGoals {
		return entries
	}

	filtered := make([]T, 0, len(entries))
	for _, e := range entries {
		if e.EntryGoal() == goal {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Goals lists AllGoals followed by the distinct goals in order of first appearance.
func Goals[T Entry](entries []T) []string {
	goals := []string{AllGoals}
	seen := make(map[string]bool)
	for _, e := range entries {
		g := e.EntryGoal()
		if seen[g] {
			continue
		}
		seen[g] = true
		goals = append(goals, g)
	}
	return goals
}

// DayLabel is "Today" for timestamps on the same calendar day as now, otherwise a short date.
// The calendar day is taken in now's location.
func DayLabel(t, now time.Time) string {
	t = t.In(now.Location())
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	if ty == ny && tm == nm && td == nd {
		return "Today"
	}
	return t.Format(dayLabelLayout)
}

// GroupByDay groups the entries by calendar day. Groups and the entries within them
// keep the order in which they appear in the input.
func GroupByDay[T Entry](entries []T, now time.Time) []DayGroup[T] {
	var groups []DayGroup[T]
	index := make(map[string]int)
	for _, e := range entries {
		label := DayLabel(e.EntryCreatedAt(), now)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, DayGroup[T]{Label: label})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}

// Without drops the entries whose ids are in the given list, used after a batch delete.
func Without[T Entry](entries []T, ids []int) []T {
	drop := make(map[int]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := make([]T, 0, len(entries))
	for _, e := range entries {
		if !drop[e.EntryID()] {
			kept = append(kept, e)
		}
	}
	return kept
}

func IDs[T Entry](entries []T) []int {
	ids := make([]int, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.EntryID())
	}
	return ids
}
