package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Terminal renders node trees as plain text. It satisfies Surface.
type Terminal struct {
	W io.Writer
}

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{W: w}
}

// Replace clears the content region (a separator line stands in for the
// cleared screen area) and renders the new nodes.
func (t *Terminal) Replace(nodes []Node) {
	fmt.Fprintln(t.W, strings.Repeat("─", 72))
	for _, n := range nodes {
		t.render(n, 0)
	}
}

func (t *Terminal) render(n Node, depth int) {
	pad := strings.Repeat("  ", depth)
	switch v := n.(type) {
	case Card:
		fmt.Fprintf(t.W, "%s%s\n", pad, strings.ToUpper(v.Title))
		if v.Subtitle != "" {
			fmt.Fprintf(t.W, "%s%s\n", pad, v.Subtitle)
		}
		for _, child := range v.Children {
			t.render(child, depth+1)
		}
		fmt.Fprintln(t.W)
	case Metrics:
		for _, m := range v.Items {
			fmt.Fprintf(t.W, "%s%-24s %s\n", pad, m.Label, m.Value)
		}
	case Table:
		tw := tabwriter.NewWriter(t.W, 2, 4, 2, ' ', 0)
		labels := make([]string, len(v.Columns))
		for i, c := range v.Columns {
			labels[i] = c.Label
		}
		fmt.Fprintf(tw, "%s%s\n", pad, strings.Join(labels, "\t"))
		for _, row := range v.Rows {
			cells := make([]string, len(v.Columns))
			for i, c := range v.Columns {
				cells[i] = row.Cell(c.Key)
			}
			fmt.Fprintf(tw, "%s%s\n", pad, strings.Join(cells, "\t"))
		}
		_ = tw.Flush()
	case List:
		for _, item := range v.Items {
			fmt.Fprintf(t.W, "%s• %s\n", pad, item)
		}
	case Chips:
		if len(v.Items) > 0 {
			fmt.Fprintf(t.W, "%s[%s]\n", pad, strings.Join(v.Items, "] ["))
		}
	case Text:
		fmt.Fprintf(t.W, "%s%s\n", pad, v.Body)
	}
}
