package app

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"
)

// Page is one tab of the dashboard. Render returns the page body as a
// string; HandleKey reports whether the key was consumed.
type Page interface {
	Title() string
	Render(m *Model, width, height int) string
	HandleKey(m *Model, msg tea.KeyMsg) bool
	Priority() int
}

// Registry collects pages and orders them for the tab strip: ascending
// priority, registration order breaking ties.
type Registry struct {
	pages []Page
}

// Register appends a page. Pages register themselves from init funcs,
// so the ordering contract matters more than the call order.
func (r *Registry) Register(p Page) {
	r.pages = append(r.pages, p)
}

// OrderedPages returns the pages sorted by (priority, insertion order).
func (r *Registry) OrderedPages() []Page {
	out := make([]Page, len(r.pages))
	copy(out, r.pages)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority() < out[j].Priority()
	})
	return out
}

// defaultRegistry is the process-wide registry used by page init funcs.
var defaultRegistry Registry

// Register adds a page to the default registry.
func Register(p Page) { defaultRegistry.Register(p) }

// OrderedPages lists the default registry's pages in tab order.
func OrderedPages() []Page { return defaultRegistry.OrderedPages() }
