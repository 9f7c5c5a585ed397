// Package hierarchy builds and queries the two-level parent/child relation
// between ALMA records.
package hierarchy

import "sort"

// Graph is the bidirectional parent/child adjacency structure. It is built
// once and treated as an immutable snapshot; accessors return copies so
// callers can never mutate the shared maps.
//
// Invariant: p is in Parents(c) exactly when c is in Children(p).
type Graph struct {
	childToParents   map[string]map[string]struct{}
	parentToChildren map[string]map[string]struct{}
}

func newGraph() *Graph {
	return &Graph{
		childToParents:   make(map[string]map[string]struct{}),
		parentToChildren: make(map[string]map[string]struct{}),
	}
}

// addChild records an observed child, creating its (possibly empty) parent
// set. A child with no parents on record still becomes a key, distinguishing
// it from an identifier never seen as a child.
func (g *Graph) addChild(child string) {
	if _, ok := g.childToParents[child]; !ok {
		g.childToParents[child] = make(map[string]struct{})
	}
}

// addEdge inserts a (child, parent) pair into both mappings.
func (g *Graph) addEdge(child, parent string) {
	g.addChild(child)
	g.childToParents[child][parent] = struct{}{}
	if _, ok := g.parentToChildren[parent]; !ok {
		g.parentToChildren[parent] = make(map[string]struct{})
	}
	g.parentToChildren[parent][child] = struct{}{}
}

// Parents returns the sorted parents of id, or nil when id has none on
// record.
func (g *Graph) Parents(id string) []string {
	return sortedKeys(g.childToParents[id])
}

// Children returns the sorted children of id, or nil when id has none on
// record.
func (g *Graph) Children(id string) []string {
	return sortedKeys(g.parentToChildren[id])
}

// IsChild reports whether id appears as a child with at least one parent.
func (g *Graph) IsChild(id string) bool {
	return len(g.childToParents[id]) > 0
}

// IsParent reports whether id appears as a parent with at least one child.
func (g *Graph) IsParent(id string) bool {
	return len(g.parentToChildren[id]) > 0
}

// KnownChild reports whether id was observed in the child column at all,
// even with an empty parent set.
func (g *Graph) KnownChild(id string) bool {
	_, ok := g.childToParents[id]
	return ok
}

// NumChildren returns the number of observed child keys.
func (g *Graph) NumChildren() int { return len(g.childToParents) }

// NumParents returns the number of observed parent keys.
func (g *Graph) NumParents() int { return len(g.parentToChildren) }

// NumEdges returns the number of distinct (child, parent) pairs.
func (g *Graph) NumEdges() int {
	n := 0
	for _, parents := range g.childToParents {
		n += len(parents)
	}
	return n
}

func sortedKeys(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
