package store

import "fmt"

// IndexError is returned when an entry position is outside the live sequence.
type IndexError struct {
	Section string
	Index   int
	Len     int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index %d out of range (len %d)", e.Section, e.Index, e.Len)
}

// NotFoundError is returned when an entry id does not resolve to a live entry.
type NotFoundError struct {
	Section string
	ID      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s entry not found: %s", e.Section, e.ID)
}

// CategoryError is returned for an unknown skill category.
type CategoryError struct {
	Category string
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("unknown skill category: %q", e.Category)
}
