package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/2beens/aitrainer/internal/history"
)

// selectionFlags are the ways a history listing can be narrowed down for a batch delete.
type selectionFlags struct {
	ids  []int
	days []string
	all  bool
}

func (f selectionFlags) empty() bool {
	return len(f.ids) == 0 && len(f.days) == 0 && !f.all
}

// selectEntries applies the flags to the (goal filtered) entries the same way the
// history screen does: ids toggle, day labels toggle a whole day, all selects everything.
func selectEntries[T history.Entry](entries []T, flags selectionFlags, now time.Time) ([]int, error) {
	selection := history.NewSelection()
	if flags.all {
		selection.SelectAll(history.IDs(entries))
	}

	known := make(map[int]bool, len(entries))
	for _, e := range entries {
		known[e.EntryID()] = true
	}
	for _, id := range flags.ids {
		if !known[id] {
			return nil, fmt.Errorf("no record with id %d in the listing", id)
		}
		selection.Toggle(id)
	}

	if len(flags.days) > 0 {
		groups := history.GroupByDay(entries, now)
		for _, day := range flags.days {
			found := false
			for _, g := range groups {
				if strings.EqualFold(g.Label, day) {
					selection.ToggleDay(g.IDs())
					found = true
					break
				}
			}
			if !found {
				return nil, fmt.Errorf("no records on day %q", day)
			}
		}
	}

	return selection.IDs(), nil
}

func printGrouped[T history.Entry](entries []T, now time.Time, line func(T) string) {
	if len(entries) == 0 {
		color.Yellow("nothing here yet")
		return
	}
	for _, group := range history.GroupByDay(entries, now) {
		printHeader("%s (%d)", group.Label, len(group.Entries))
		for _, e := range group.Entries {
			fmt.Println("  " + line(e))
		}
	}
}

func printGoals[T history.Entry](entries []T) {
	fmt.Printf("goals: %s\n", strings.Join(history.Goals(entries), " | "))
}

func firstLine(s string, max int) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len([]rune(s)) > max {
		s = string([]rune(s)[:max]) + "..."
	}
	return s
}
