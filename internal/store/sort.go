package store

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/idilsaglam/tasks/internal/model"
)

// SortKey selects the field a sort orders by.
type SortKey string

const (
	SortByID   SortKey = "id"
	SortByName SortKey = "name"
)

// Direction is the order a sort runs in.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseSortKey accepts "id" or "name", in any case.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortByID:
		return SortByID, nil
	case SortByName:
		return SortByName, nil
	}
	return "", fmt.Errorf("unknown sort key %q (want id or name)", s)
}

// ParseDirection accepts "asc"/"ascending" and "desc"/"descending".
// An empty string means ascending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return "", fmt.Errorf("unknown sort direction %q (want asc or desc)", s)
}

func compareFunc(key SortKey, dir Direction) (func(a, b model.Task) int, error) {
	var base func(a, b model.Task) int
	switch key {
	case SortByID:
		base = func(a, b model.Task) int { return cmp.Compare(a.ID, b.ID) }
	case SortByName:
		base = func(a, b model.Task) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	default:
		return nil, fmt.Errorf("unknown sort key %q", key)
	}
	switch dir {
	case Ascending:
		return base, nil
	case Descending:
		return func(a, b model.Task) int { return base(b, a) }, nil
	}
	return nil, fmt.Errorf("unknown sort direction %q", dir)
}
