package directory

import (
	"slices"
	"sync"

	"ninja-fellowship/internal/domain"
)

// Model owns a State and caches its derived View. The cache is dropped
// whenever employees, office filters, search query or sort mode change;
// the view type is a pure layout choice and is applied without recomputing.
type Model struct {
	mu      sync.Mutex
	state   State
	cached  *View
	derives int
}

func NewModel() *Model {
	return &Model{state: DefaultState()}
}

func (m *Model) invalidate() {
	m.cached = nil
}

func (m *Model) SetEmployees(emps []domain.Employee) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Employees = emps
	m.invalidate()
}

func (m *Model) SetViewType(v ViewType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.ViewType = v
}

func (m *Model) SetSortMode(mode SortMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.SortMode == mode {
		return
	}
	m.state.SortMode = mode
	m.invalidate()
}

func (m *Model) SetSearchQuery(q string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.SearchQuery == q {
		return
	}
	m.state.SearchQuery = q
	m.invalidate()
}

// ToggleOffice flips one office filter; search and sort are left alone.
func (m *Model) ToggleOffice(office string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.OfficeFilters == nil {
		m.state.OfficeFilters = OfficeSet{}
	}
	m.state.OfficeFilters.Toggle(office)
	m.invalidate()
}

// State returns a copy of the current state.
func (m *Model) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.state
	s.OfficeFilters = m.state.OfficeFilters.Clone()
	return s
}

func (m *Model) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cached == nil {
		v := Derive(m.state)
		m.cached = &v
		m.derives++
	}
	v := *m.cached
	if m.state.ViewType != "" {
		v.ViewType = m.state.ViewType
	}
	v.Offices = slices.Clone(v.Offices)
	v.Employees = slices.Clone(v.Employees)
	return v
}
