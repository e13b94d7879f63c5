package view

import (
	"strings"
	"testing"
)

func TestTerminal_RendersCardWithTable(t *testing.T) {
	var sb strings.Builder
	term := NewTerminal(&sb)

	term.Replace([]Node{
		NewCard("Lecturers", "",
			Table{
				Columns: []Column{{Key: "staff_id", Label: "ID"}, {Key: "full_name", Label: "Name"}},
				Rows: []Row{
					{"staff_id": "4", "full_name": "A. Okafor"},
					{"staff_id": "7"},
				},
			},
		),
	})

	out := sb.String()
	for _, want := range []string{"LECTURERS", "ID", "Name", "A. Okafor"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	// Missing cells render as "-".
	if !strings.Contains(out, "-") {
		t.Fatalf("absent cell placeholder missing:\n%s", out)
	}
}

func TestTerminal_ReplaceDiscardsNothingStacks(t *testing.T) {
	var sb strings.Builder
	term := NewTerminal(&sb)

	term.Replace([]Node{Text{Body: "first"}})
	first := sb.String()
	term.Replace([]Node{Text{Body: "second"}})

	// The renderer emits a fresh separator per replacement; the second
	// replacement must not re-render prior nodes.
	tail := strings.TrimPrefix(sb.String(), first)
	if strings.Contains(tail, "first") {
		t.Fatalf("stale content re-rendered:\n%s", tail)
	}
	if !strings.Contains(tail, "second") {
		t.Fatalf("new content missing:\n%s", tail)
	}
}

func TestRowCell(t *testing.T) {
	r := Row{"a": "1", "b": ""}
	if r.Cell("a") != "1" {
		t.Fatalf("Cell(a) = %q", r.Cell("a"))
	}
	if r.Cell("b") != "-" || r.Cell("missing") != "-" {
		t.Fatalf("absent cells must render as dash")
	}
}
