package hierarchy

import (
	"errors"
	"reflect"
	"testing"

	"github.com/nlitools/almagraph/internal/tabular"
)

func buildTable(t *testing.T, columns []string, rows [][]string) *Graph {
	t.Helper()
	g, _, err := Build(tabular.New(columns, rows))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func TestBuildMultiParentSplitting(t *testing.T) {
	g := buildTable(t,
		[]string{"MMS Child ID", "MMS Parent IDs"},
		[][]string{{"99000050", "99000100 ||| 99000200 ||| 99000300"}},
	)

	if got, want := g.Parents("99000050"), []string{"99000100", "99000200", "99000300"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Parents = %v, want %v", got, want)
	}
	for _, p := range []string{"99000100", "99000200", "99000300"} {
		if got := g.Children(p); !reflect.DeepEqual(got, []string{"99000050"}) {
			t.Errorf("Children(%s) = %v, want [99000050]", p, got)
		}
	}
}

func TestBuildBidirectionalInvariant(t *testing.T) {
	g := buildTable(t,
		[]string{"child", "parent"},
		[][]string{
			{"99000011", "99000022 ||| 99000033"},
			{"99000044", "99000022"},
			{"99000055", ""},
			{"99000011", "99000066"}, // same child again: union, not overwrite
		},
	)

	for child := range g.childToParents {
		for parent := range g.childToParents[child] {
			if _, ok := g.parentToChildren[parent][child]; !ok {
				t.Errorf("edge (%s,%s) missing from parentToChildren", child, parent)
			}
		}
	}
	for parent := range g.parentToChildren {
		for child := range g.parentToChildren[parent] {
			if _, ok := g.childToParents[child][parent]; !ok {
				t.Errorf("edge (%s,%s) missing from childToParents", child, parent)
			}
		}
	}

	if got, want := g.Parents("99000011"), []string{"99000022", "99000033", "99000066"}; !reflect.DeepEqual(got, want) {
		t.Errorf("accumulated parents = %v, want %v", got, want)
	}
}

func TestBuildEmptyParentChildRetained(t *testing.T) {
	g := buildTable(t,
		[]string{"child", "parent"},
		[][]string{{"99000077", ""}},
	)

	if !g.KnownChild("99000077") {
		t.Fatal("child with empty parent field should still be a key")
	}
	if g.IsChild("99000077") {
		t.Error("child with no parents should not classify as is_child")
	}
	if g.Parents("99000077") != nil {
		t.Errorf("Parents = %v, want nil", g.Parents("99000077"))
	}
}

func TestBuildSkipsMalformedRows(t *testing.T) {
	g, stats, err := Build(tabular.New(
		[]string{"child", "parent"},
		[][]string{
			{"not an id", "99000022"},
			{"", "99000033"},
			{"99000044", "garbage ||| 99000055"},
		},
	))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if stats.SkippedRows != 2 {
		t.Errorf("SkippedRows = %d, want 2", stats.SkippedRows)
	}
	if g.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", g.NumChildren())
	}
	// Malformed parent segments are discarded, valid ones survive.
	if got, want := g.Parents("99000044"), []string{"99000055"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Parents = %v, want %v", got, want)
	}
	// The parents of skipped rows must not leak into the graph.
	if g.IsParent("99000022") || g.IsParent("99000033") {
		t.Error("parents from skipped rows should not be recorded")
	}
}

func TestBuildNoisyCells(t *testing.T) {
	g := buildTable(t,
		[]string{"Child MMS", "Parent MMS"},
		[][]string{{"'99000011 ", " 9900 0022‏ ||| '99000033"}},
	)

	if got, want := g.Parents("99000011"), []string{"99000022", "99000033"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Parents = %v, want %v", got, want)
	}
}

func TestBuildSchemaError(t *testing.T) {
	_, _, err := Build(tabular.New([]string{"id", "title"}, nil))
	var schemaErr *tabular.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}

func TestGraphCounts(t *testing.T) {
	g := buildTable(t,
		[]string{"child", "parent"},
		[][]string{
			{"99000011", "99000022 ||| 99000033"},
			{"99000044", "99000022"},
		},
	)

	if g.NumChildren() != 2 {
		t.Errorf("NumChildren = %d, want 2", g.NumChildren())
	}
	if g.NumParents() != 2 {
		t.Errorf("NumParents = %d, want 2", g.NumParents())
	}
	if g.NumEdges() != 3 {
		t.Errorf("NumEdges = %d, want 3", g.NumEdges())
	}
}
