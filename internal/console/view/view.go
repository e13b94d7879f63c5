// Package view models the dashboard content region as a renderer-agnostic
// node tree. Actions build nodes; a Surface materializes them. Builders are
// pure: no I/O, no shared state.
package view

// Node is one renderable fragment of the content region.
type Node interface {
	node()
}

// Card groups related fragments under a title.
type Card struct {
	Title    string
	Subtitle string
	Children []Node
}

// Metric is a single labelled value in a metric grid.
type Metric struct {
	Label string
	Value string
}

// Metrics is a compact grid of labelled values.
type Metrics struct {
	Items []Metric
}

// Column maps a row key to a display label.
type Column struct {
	Key   string
	Label string
}

// Row holds one table row keyed by column key. Missing cells render as "-".
type Row map[string]string

// Table is a columnar listing.
type Table struct {
	Columns []Column
	Rows    []Row
}

// List is a plain bullet list.
type List struct {
	Items []string
}

// Chips is a row of short status pills.
type Chips struct {
	Items []string
}

// Text is a free-form paragraph.
type Text struct {
	Body string
}

func (Card) node()    {}
func (Metrics) node() {}
func (Table) node()   {}
func (List) node()    {}
func (Chips) node()   {}
func (Text) node()    {}

// Surface receives the content region. Replace implements single-view
// semantics: the previous content is discarded entirely, never stacked.
type Surface interface {
	Replace(nodes []Node)
}

// NewCard builds a card wrapping the given children.
func NewCard(title, subtitle string, children ...Node) Card {
	return Card{Title: title, Subtitle: subtitle, Children: children}
}

// Cell returns the row value for a column, substituting "-" when absent.
func (r Row) Cell(key string) string {
	if v, ok := r[key]; ok && v != "" {
		return v
	}
	return "-"
}
