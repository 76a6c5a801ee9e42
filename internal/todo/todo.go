package todo

import (
	"fmt"
	"slices"
	"time"
)

// StorageKey is the storage key of the to-do list.
const StorageKey = "todo"

// NotFocused is the focused id while no record is being edited.
const NotFocused int64 = 0

// Todo is one record.
type Todo struct {
	ID          int64  `json:"id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"isCompleted"`
}

// Display is the list filter.
type Display string

const (
	DisplayAll         Display = "all"
	DisplayCompleted   Display = "completed"
	DisplayUncompleted Display = "uncompleted"
)

// ParseDisplay parses a display filter name.
func ParseDisplay(s string) (Display, error) {
	switch d := Display(s); d {
	case DisplayAll, DisplayCompleted, DisplayUncompleted:
		return d, nil
	}
	return "", fmt.Errorf("todo: unknown display %q", s)
}

// Add returns todos with t appended.
func Add(todos []Todo, t Todo) []Todo {
	out := make([]Todo, 0, len(todos)+1)
	out = append(out, todos...)
	return append(out, t)
}

// Remove returns todos without the record with the given id.
func Remove(todos []Todo, id int64) []Todo {
	return slices.DeleteFunc(slices.Clone(todos), func(t Todo) bool {
		return t.ID == id
	})
}

// ToggleCompleted returns todos with the completion of record id flipped.
func ToggleCompleted(todos []Todo, id int64) []Todo {
	return updateByID(todos, id, func(t Todo) Todo {
		t.IsCompleted = !t.IsCompleted
		return t
	})
}

// UpdateText returns todos with the text of record id replaced.
func UpdateText(todos []Todo, id int64, text string) []Todo {
	return updateByID(todos, id, func(t Todo) Todo {
		t.Text = text
		return t
	})
}

func updateByID(todos []Todo, id int64, fn func(Todo) Todo) []Todo {
	out := make([]Todo, len(todos))
	for i, t := range todos {
		if t.ID == id {
			t = fn(t)
		}
		out[i] = t
	}
	return out
}

// Filter returns the records shown under display, in list order.
func Filter(todos []Todo, display Display) []Todo {
	switch display {
	case DisplayCompleted:
		return slices.DeleteFunc(slices.Clone(todos), func(t Todo) bool { return !t.IsCompleted })
	case DisplayUncompleted:
		return slices.DeleteFunc(slices.Clone(todos), func(t Todo) bool { return t.IsCompleted })
	default:
		return slices.Clone(todos)
	}
}

// Find returns the record with the given id.
func Find(todos []Todo, id int64) (Todo, bool) {
	i := slices.IndexFunc(todos, func(t Todo) bool { return t.ID == id })
	if i < 0 {
		return Todo{}, false
	}
	return todos[i], true
}

// CountCompleted returns the number of completed records.
func CountCompleted(todos []Todo) int {
	n := 0
	for _, t := range todos {
		if t.IsCompleted {
			n++
		}
	}
	return n
}

// idSource hands out record ids: the clock in milliseconds, bumped past the
// last id when the clock has not moved.
type idSource struct {
	now  func() time.Time
	last int64
}

func newIDSource(now func() time.Time, todos []Todo) *idSource {
	s := &idSource{now: now}
	for _, t := range todos {
		s.last = max(s.last, t.ID)
	}
	return s
}

func (s *idSource) next() int64 {
	id := max(s.now().UnixMilli(), s.last+1)
	s.last = id
	return id
}
