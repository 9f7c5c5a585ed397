package model

import "time"

// Report represents the complete result of classifying a batch of ALMA
// identifiers against the hierarchy graph and the reference sets.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`     // When the classification ran
	Source      string    `json:"source,omitempty"` // Input file or request that produced the batch
	Input       []string  `json:"input"`            // Deduplicated identifiers, first-seen order

	Reference []SetPartition    `json:"reference"`       // Membership per reference set
	Roles     RolePartition     `json:"roles"`           // Mutually exclusive hierarchy roles
	TopLevel  TopLevelPartition `json:"top_level"`       // Second view over the same input
	Parents   DerivedParents    `json:"derived_parents"` // One-hop parent summary

	Dataset DatasetStats `json:"dataset"` // Snapshot the batch was classified against
}

// SetPartition splits the input by membership in one named reference set.
type SetPartition struct {
	Set   string   `json:"set"`    // Reference set name (e.g., "genizah")
	In    []string `json:"in"`     // Members, input order
	NotIn []string `json:"not_in"` // Non-members, input order
}

// RolePartition holds the mutually exclusive hierarchy roles. Identifiers
// that are neither child nor parent are deliberately absent from all three.
type RolePartition struct {
	ParentsOnly        []string `json:"parents_only"`
	ChildrenAndParents []string `json:"children_and_parents"`
	ChildrenOnly       []string `json:"children_only"`
}

// TopLevelPartition covers the no-parent half of the input: records with
// children (top-level parents) and records with neither relation
// (standalone). The has-parent cases are covered by RolePartition.
type TopLevelPartition struct {
	TopLevelParents []string `json:"top_level_parents"`
	Standalone      []string `json:"standalone"`
}

// DerivedParents summarizes the parents reachable in one hop from the
// submitted children, for audit display.
type DerivedParents struct {
	SubmittedChildren []string      `json:"submitted_children"` // children_only + children_and_parents, input order
	UniqueParents     []string      `json:"unique_parents"`     // sorted union of their parents
	Ranked            []ParentCount `json:"ranked"`             // parents ranked by submitted-child count
	Mapping           []ChildLink   `json:"mapping"`            // child -> parents, restricted to submitted children
}

// ParentCount ranks a parent by how many submitted children map to it.
type ParentCount struct {
	Parent   string `json:"parent"`
	Children int    `json:"children_in_upload"`
}

// ChildLink records one submitted child and its sorted parents.
type ChildLink struct {
	Child   string   `json:"child"`
	Parents []string `json:"parents"`
}

// DatasetStats describes the loaded background data.
type DatasetStats struct {
	Children int            `json:"children"` // child keys in the graph
	Parents  int            `json:"parents"`  // parent keys in the graph
	Edges    int            `json:"edges"`    // distinct (child, parent) pairs
	Sets     map[string]int `json:"sets"`     // reference set sizes by name
	Catalog  bool           `json:"catalog"`  // whether the catalog index is available
}

// Lookup represents the result of a single-identifier query.
type Lookup struct {
	ID         string          `json:"id"`
	Membership map[string]bool `json:"membership"`        // per reference set
	Parents    []string        `json:"parents"`           // sorted, as child
	Children   []string        `json:"children"`          // sorted, as parent
	IsChild    bool            `json:"is_child"`
	IsParent   bool            `json:"is_parent"`
	Role       string          `json:"role"`              // "Parent", "Child", "Both", or "—"
	Catalog    *CatalogRecord  `json:"catalog,omitempty"` // present when the catalog index holds the record
}
