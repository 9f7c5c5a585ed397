// Package classify partitions batches of ALMA identifiers against the
// hierarchy graph and the reference sets.
package classify

import (
	"errors"
	"sort"
	"time"

	"github.com/nlitools/almagraph/internal/hierarchy"
	"github.com/nlitools/almagraph/internal/model"
	"github.com/nlitools/almagraph/internal/refset"
)

// ErrEmptyInput reports that a batch yielded zero valid identifiers after
// normalization. It is a user-facing condition, not a system fault.
var ErrEmptyInput = errors.New("no valid ALMA identifiers in input")

// Classifier computes classification partitions. It holds no state of its
// own: every partition is a pure function of the input sequence and the
// immutable graph/reference-set snapshot, so one Classifier may serve any
// number of concurrent requests.
type Classifier struct {
	graph    *hierarchy.Graph
	refSets  map[string]refset.Set
	setNames []string
}

// NewClassifier creates a classifier over an immutable graph snapshot and a
// collection of named reference sets.
func NewClassifier(graph *hierarchy.Graph, refSets map[string]refset.Set) *Classifier {
	names := make([]string, 0, len(refSets))
	for name := range refSets {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Classifier{
		graph:    graph,
		refSets:  refSets,
		setNames: names,
	}
}

// Partition classifies an ordered, deduplicated batch of identifiers.
// Deduplication happens at the ingestion boundary (ident.ParseBatch), not
// here. The returned report never aliases shared state.
func (c *Classifier) Partition(ids []string) (*model.Report, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyInput
	}

	report := &model.Report{
		GeneratedAt: time.Now().UTC(),
		Input:       append([]string(nil), ids...),
		Reference:   c.referencePartitions(ids),
		Roles:       c.rolePartition(ids),
		TopLevel:    c.topLevelPartition(ids),
	}
	report.Parents = c.derivedParents(report.Roles)

	return report, nil
}

// Lookup resolves a single identifier against the same snapshot.
func (c *Classifier) Lookup(id string) *model.Lookup {
	membership := make(map[string]bool, len(c.setNames))
	for _, name := range c.setNames {
		membership[name] = c.refSets[name].Contains(id)
	}

	isChild := c.graph.IsChild(id)
	isParent := c.graph.IsParent(id)

	return &model.Lookup{
		ID:         id,
		Membership: membership,
		Parents:    c.graph.Parents(id),
		Children:   c.graph.Children(id),
		IsChild:    isChild,
		IsParent:   isParent,
		Role:       roleLabel(isChild, isParent),
	}
}

// roleLabel renders the role shown in catalog views. Records with no
// relation display as an em-dash rather than "Neither".
func roleLabel(isChild, isParent bool) string {
	switch {
	case isChild && isParent:
		return "Both"
	case isParent:
		return "Parent"
	case isChild:
		return "Child"
	default:
		return "—"
	}
}

func (c *Classifier) referencePartitions(ids []string) []model.SetPartition {
	parts := make([]model.SetPartition, 0, len(c.setNames))
	for _, name := range c.setNames {
		set := c.refSets[name]
		part := model.SetPartition{Set: name}
		for _, id := range ids {
			if set.Contains(id) {
				part.In = append(part.In, id)
			} else {
				part.NotIn = append(part.NotIn, id)
			}
		}
		parts = append(parts, part)
	}
	return parts
}

func (c *Classifier) rolePartition(ids []string) model.RolePartition {
	var part model.RolePartition
	for _, id := range ids {
		isChild := c.graph.IsChild(id)
		isParent := c.graph.IsParent(id)

		switch {
		case isParent && !isChild:
			part.ParentsOnly = append(part.ParentsOnly, id)
		case isParent && isChild:
			part.ChildrenAndParents = append(part.ChildrenAndParents, id)
		case isChild:
			part.ChildrenOnly = append(part.ChildrenOnly, id)
		}
		// Identifiers with no relation are intentionally left out.
	}
	return part
}

func (c *Classifier) topLevelPartition(ids []string) model.TopLevelPartition {
	var part model.TopLevelPartition
	for _, id := range ids {
		hasParents := c.graph.IsChild(id)
		hasChildren := c.graph.IsParent(id)

		switch {
		case !hasParents && hasChildren:
			part.TopLevelParents = append(part.TopLevelParents, id)
		case !hasParents && !hasChildren:
			part.Standalone = append(part.Standalone, id)
		}
		// The has-parents cases are covered by the role partition.
	}
	return part
}

// derivedParents collects the one-hop parent union over the submitted
// children, with per-parent counts of submitted children and the restricted
// child-to-parents mapping for audit display.
func (c *Classifier) derivedParents(roles model.RolePartition) model.DerivedParents {
	submitted := make([]string, 0, len(roles.ChildrenOnly)+len(roles.ChildrenAndParents))
	submitted = append(submitted, roles.ChildrenOnly...)
	submitted = append(submitted, roles.ChildrenAndParents...)

	unique := make(map[string]struct{})
	counts := make(map[string]int)
	var mapping []model.ChildLink

	for _, child := range submitted {
		parents := c.graph.Parents(child)
		if len(parents) == 0 {
			continue
		}
		for _, p := range parents {
			unique[p] = struct{}{}
			counts[p]++
		}
		mapping = append(mapping, model.ChildLink{Child: child, Parents: parents})
	}

	uniqueSorted := make([]string, 0, len(unique))
	for p := range unique {
		uniqueSorted = append(uniqueSorted, p)
	}
	sort.Strings(uniqueSorted)

	ranked := make([]model.ParentCount, 0, len(counts))
	for p, n := range counts {
		ranked = append(ranked, model.ParentCount{Parent: p, Children: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Children != ranked[j].Children {
			return ranked[i].Children > ranked[j].Children
		}
		return ranked[i].Parent < ranked[j].Parent
	})

	return model.DerivedParents{
		SubmittedChildren: submitted,
		UniqueParents:     uniqueSorted,
		Ranked:            ranked,
		Mapping:           mapping,
	}
}
