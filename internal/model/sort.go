package model

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortMode selects the display ordering of a todo list.
type SortMode string

const (
	SortLatest     SortMode = "latest" // newest first (descending id)
	SortOldest     SortMode = "oldest" // ascending id
	SortAZ         SortMode = "az"
	SortZA         SortMode = "za"
	SortUnfinished SortMode = "unfinished" // open todos first
)

// SortModes lists all modes in the order the sort selector cycles
// through them.
func SortModes() []SortMode {
	return []SortMode{SortLatest, SortOldest, SortAZ, SortZA, SortUnfinished}
}

func (m SortMode) Valid() bool {
	switch m {
	case SortLatest, SortOldest, SortAZ, SortZA, SortUnfinished:
		return true
	}
	return false
}

// Next returns the mode after m in the cycle, wrapping around.
func (m SortMode) Next() SortMode {
	modes := SortModes()
	for i, mode := range modes {
		if mode == m {
			return modes[(i+1)%len(modes)]
		}
	}
	return SortLatest
}

// Display returns the label shown in the sort selector.
func (m SortMode) Display() string {
	switch m {
	case SortOldest:
		return "Terlama"
	case SortAZ:
		return "A-Z"
	case SortZA:
		return "Z-A"
	case SortUnfinished:
		return "Belum Selesai"
	}
	return "Terbaru"
}

// SortTodos orders todos in place for display. The sort is pure with
// respect to its inputs and carries no state between calls; ties are
// broken arbitrarily. Unknown modes fall back to latest-first, since id
// is the server's monotonic creation order.
func SortTodos(todos []Todo, mode SortMode) {
	c := collate.New(language.Und)
	sort.Slice(todos, func(i, j int) bool {
		a, b := todos[i], todos[j]
		switch mode {
		case SortOldest:
			return a.ID < b.ID
		case SortAZ:
			return c.CompareString(a.Title, b.Title) < 0
		case SortZA:
			return c.CompareString(b.Title, a.Title) < 0
		case SortUnfinished:
			return a.IsActive > b.IsActive
		default:
			return a.ID > b.ID
		}
	})
}
