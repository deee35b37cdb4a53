package directory

import (
	"fmt"
	"slices"

	"ninja-fellowship/internal/domain"
)

type ViewType string

const (
	ViewGrid ViewType = "grid"
	ViewList ViewType = "list"
)

func ParseViewType(s string) (ViewType, error) {
	switch ViewType(s) {
	case ViewGrid, ViewList:
		return ViewType(s), nil
	}
	return "", fmt.Errorf("unknown view type %q (expected grid|list)", s)
}

type SortMode string

const (
	NameAscending    SortMode = "nameAscending"
	NameDescending   SortMode = "nameDescending"
	OfficeAscending  SortMode = "officeAscending"
	OfficeDescending SortMode = "officeDescending"
)

var SortModes = []SortMode{NameAscending, NameDescending, OfficeAscending, OfficeDescending}

func ParseSortMode(s string) (SortMode, error) {
	if slices.Contains(SortModes, SortMode(s)) {
		return SortMode(s), nil
	}
	return "", fmt.Errorf("unknown sort mode %q (expected one of %v)", s, SortModes)
}

// OfficeSet is the set of selected office filters. Empty means no filter.
type OfficeSet map[string]struct{}

func NewOfficeSet(offices ...string) OfficeSet {
	s := make(OfficeSet, len(offices))
	for _, o := range offices {
		s[o] = struct{}{}
	}
	return s
}

func (s OfficeSet) Has(office string) bool {
	_, ok := s[office]
	return ok
}

// Toggle adds office when absent and removes it when present.
func (s OfficeSet) Toggle(office string) {
	if s.Has(office) {
		delete(s, office)
		return
	}
	s[office] = struct{}{}
}

func (s OfficeSet) Clone() OfficeSet {
	out := make(OfficeSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// Sorted lists the selected offices in byte order.
func (s OfficeSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// State is the ephemeral view state. Employees stays nil until loaded.
type State struct {
	Employees     []domain.Employee
	ViewType      ViewType
	SortMode      SortMode
	SearchQuery   string
	OfficeFilters OfficeSet
}

func DefaultState() State {
	return State{
		ViewType:      ViewGrid,
		SortMode:      NameAscending,
		OfficeFilters: OfficeSet{},
	}
}
