package directory

import (
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"ninja-fellowship/internal/domain"
)

// AvailableOffices lists the distinct office labels in byte order.
func AvailableOffices(emps []domain.Employee) []string {
	seen := make(map[string]struct{}, len(emps))
	out := make([]string, 0)
	for _, e := range emps {
		label := e.OfficeLabel()
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	slices.Sort(out)
	return out
}

// FilterByOffices keeps employees whose office label is selected.
// An empty selection keeps everyone.
func FilterByOffices(emps []domain.Employee, offices OfficeSet) []domain.Employee {
	if len(offices) == 0 {
		return slices.Clone(emps)
	}
	out := make([]domain.Employee, 0, len(emps))
	for _, e := range emps {
		if offices.Has(e.OfficeLabel()) {
			out = append(out, e)
		}
	}
	return out
}

// SearchPattern compiles the name search for query: a case-insensitive
// match of query followed by at least one more character up to the end of
// the name. A query that is not a valid expression is matched literally.
// It returns nil for a blank query.
func SearchPattern(query string) *regexp.Regexp {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil
	}
	re, err := regexp.Compile("(?i)" + q + ".+$")
	if err != nil {
		re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(q) + ".+$")
	}
	return re
}

// FilterBySearch keeps employees whose name matches SearchPattern(query).
func FilterBySearch(emps []domain.Employee, query string) []domain.Employee {
	re := SearchPattern(query)
	if re == nil {
		return slices.Clone(emps)
	}
	out := make([]domain.Employee, 0, len(emps))
	for _, e := range emps {
		if re.MatchString(e.Name) {
			out = append(out, e)
		}
	}
	return out
}

// Comparator returns the ordering for mode. Descending modes are the exact
// negation of their ascending counterpart. The returned func is not safe
// for concurrent use.
func Comparator(mode SortMode) func(a, b domain.Employee) int {
	col := collate.New(language.Und)
	byName := func(a, b domain.Employee) int { return col.CompareString(a.Name, b.Name) }
	byOffice := func(a, b domain.Employee) int { return col.CompareString(a.OfficeSortKey(), b.OfficeSortKey()) }

	switch mode {
	case NameDescending:
		return func(a, b domain.Employee) int { return -1 * byName(a, b) }
	case OfficeAscending:
		return byOffice
	case OfficeDescending:
		return func(a, b domain.Employee) int { return -1 * byOffice(a, b) }
	default:
		return byName
	}
}

// Sort returns a stably sorted copy of emps.
func Sort(emps []domain.Employee, mode SortMode) []domain.Employee {
	out := slices.Clone(emps)
	slices.SortStableFunc(out, Comparator(mode))
	return out
}

// View is what gets rendered for a State.
type View struct {
	Loaded    bool
	ViewType  ViewType
	Offices   []string
	Employees []domain.Employee
}

// Derive runs the pipeline: office list, office filter, search filter, sort.
func Derive(s State) View {
	v := View{ViewType: s.ViewType}
	if v.ViewType == "" {
		v.ViewType = ViewGrid
	}
	if s.Employees == nil {
		return v
	}

	v.Loaded = true
	v.Offices = AvailableOffices(s.Employees)

	visible := FilterByOffices(s.Employees, s.OfficeFilters)
	visible = FilterBySearch(visible, s.SearchQuery)
	v.Employees = Sort(visible, s.SortMode)
	return v
}
