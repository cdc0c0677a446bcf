package user

import (
	"fmt"
	"strings"
)

const (
	DefaultPage     = 1
	MaxPageLimit    = 500
	DefaultPageSize = MaxPageLimit
)

// SortableFields lists the columns accepted by the sort query parameter.
var SortableFields = []string{"id", "lastname", "firstname", "created_at", "updated_at", "deleted_at"}

type Sort struct {
	Field string
	Desc  bool
}

func (s Sort) String() string {
	if s.Desc {
		return s.Field + " DESC"
	}
	return s.Field + " ASC"
}

type Pagination struct {
	Page  int
	Limit int
	Sorts []Sort
}

// NewPagination clamps page to >= 1 and limit to 1..500, out-of-range limits falling back to 500.
func NewPagination(page, limit int, sorts []Sort) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 || limit > MaxPageLimit {
		limit = DefaultPageSize
	}
	return Pagination{Page: page, Limit: limit, Sorts: sorts}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParseSorts reads "+lastname,-created_at"; a field without sign sorts ascending.
// Fields outside SortableFields are rejected.
func ParseSorts(raw string) ([]Sort, error) {
	var sorts []Sort
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		s := Sort{Field: part}
		switch part[0] {
		case '-':
			s.Desc = true
			s.Field = part[1:]
		case '+':
			s.Field = part[1:]
		}
		if !sortable(s.Field) {
			return nil, fmt.Errorf("invalid sort field %q", s.Field)
		}
		sorts = append(sorts, s)
	}
	return sorts, nil
}

func sortable(field string) bool {
	for _, f := range SortableFields {
		if f == field {
			return true
		}
	}
	return false
}
