// Package render draws the directory view as terminal cards.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ninja-fellowship/internal/directory"
	"ninja-fellowship/internal/domain"
)

const (
	DefaultColumns   = 3
	DefaultCardWidth = 44
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#dce0e5")).
			Padding(0, 1)

	nameStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#101F38"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
)

type Options struct {
	Columns   int
	CardWidth int
	// Reachable holds portrait probe results. Nil means portraits were not
	// probed and every present portrait URL is shown.
	Reachable map[string]bool
}

func (o Options) columns() int {
	if o.Columns <= 0 {
		return DefaultColumns
	}
	return o.Columns
}

func (o Options) cardWidth() int {
	if o.CardWidth <= 0 {
		return DefaultCardWidth
	}
	return o.CardWidth
}

func (o Options) showPortrait(e domain.Employee) bool {
	if !e.HasPortrait() {
		return false
	}
	if o.Reachable == nil {
		return true
	}
	return o.Reachable[e.ImagePortraitURL]
}

// Card renders one employee: name, raw office, the portrait when shown and
// the links that are present.
func Card(e domain.Employee, opts Options) string {
	lines := []string{
		nameStyle.Render(e.Name),
		"Office: " + e.OfficeText(),
	}
	if opts.showPortrait(e) {
		lines = append(lines, mutedStyle.Render("Portrait: ")+e.ImagePortraitURL)
	}
	for _, l := range e.Links() {
		lines = append(lines, mutedStyle.Render(string(l.Kind)+": ")+l.URL)
	}
	return strings.Join(lines, "\n")
}

// Employees renders the employee section. It is empty when the list has
// not been loaded.
func Employees(v directory.View, opts Options) string {
	if !v.Loaded || len(v.Employees) == 0 {
		return ""
	}

	if v.ViewType == directory.ViewList {
		cards := make([]string, 0, len(v.Employees))
		for _, e := range v.Employees {
			cards = append(cards, cardStyle.Render(Card(e, opts)))
		}
		return lipgloss.JoinVertical(lipgloss.Left, cards...)
	}

	style := cardStyle.Width(opts.cardWidth())
	cols := opts.columns()
	rows := make([]string, 0, (len(v.Employees)+cols-1)/cols)
	for start := 0; start < len(v.Employees); start += cols {
		end := min(start+cols, len(v.Employees))
		cards := make([]string, 0, end-start)
		for _, e := range v.Employees[start:end] {
			cards = append(cards, style.Render(Card(e, opts)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Offices renders the office list, marking the ones in the filter.
func Offices(offices []string, filters directory.OfficeSet) string {
	lines := make([]string, 0, len(offices))
	for _, o := range offices {
		if filters.Has(o) {
			lines = append(lines, activeStyle.Render("[x] "+o))
			continue
		}
		lines = append(lines, "[ ] "+o)
	}
	return strings.Join(lines, "\n")
}

// View renders the office list followed by the employee section.
func View(v directory.View, filters directory.OfficeSet, opts Options) string {
	if !v.Loaded {
		return ""
	}
	parts := []string{Offices(v.Offices, filters)}
	if section := Employees(v, opts); section != "" {
		parts = append(parts, section)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
