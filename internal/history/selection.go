package history

import "slices"

// Selection is the set of record ids picked for a batch action. Ids are reported in
// the order they were selected. The zero value is an empty selection ready to use.
type Selection struct {
	ids []int
	set map[int]bool
}

func NewSelection() *Selection {
	return &Selection{
		set: make(map[int]bool),
	}
}

func (s *Selection) add(id int) {
	if s.set[id] {
		return
	}
	if s.set == nil {
		s.set = make(map[int]bool)
	}
	s.set[id] = true
	s.ids = append(s.ids, id)
}

func (s *Selection) remove(ids ...int) {
	removed := false
	for _, id := range ids {
		if s.set[id] {
			delete(s.set, id)
			removed = true
		}
	}
	if removed {
		s.ids = slices.DeleteFunc(s.ids, func(id int) bool {
			return !s.set[id]
		})
	}
}

func (s *Selection) IsSelected(id int) bool {
	return s.set[id]
}

func (s *Selection) Toggle(id int) {
	if s.set[id] {
		s.remove(id)
		return
	}
	s.add(id)
}

// AllSelected reports whether every id is selected, an empty list is never fully selected.
func (s *Selection) AllSelected(ids []int) bool {
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		if !s.set[id] {
			return false
		}
	}
	return true
}

// ToggleDay deselects the ids of a day group when all of them are selected,
// otherwise it adds the missing ones.
func (s *Selection) ToggleDay(ids []int) {
	if s.AllSelected(ids) {
		s.remove(ids...)
		return
	}
	for _, id := range ids {
		s.add(id)
	}
}

// SelectAll replaces the selection with the given ids.
func (s *Selection) SelectAll(ids []int) {
	s.Clear()
	for _, id := range ids {
		s.add(id)
	}
}

func (s *Selection) Clear() {
	s.ids = nil
	clear(s.set)
}

func (s *Selection) Len() int {
	return len(s.ids)
}

func (s *Selection) IDs() []int {
	return slices.Clone(s.ids)
}
