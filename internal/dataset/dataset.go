// Package dataset builds and owns the long-lived background data: the
// hierarchy graph, the reference sets, and the optional catalog index.
package dataset

import (
	"context"

	"github.com/nlitools/almagraph/internal/catalog"
	"github.com/nlitools/almagraph/internal/hierarchy"
	"github.com/nlitools/almagraph/internal/model"
	"github.com/nlitools/almagraph/internal/refset"
)

// Dataset is the immutable context object shared read-only across requests.
// It is built exactly once per process; no writer exists after construction.
type Dataset struct {
	Graph   *hierarchy.Graph
	RefSets map[string]refset.Set
	Catalog *catalog.Store // nil when the catalog source is absent

	BuildStats hierarchy.BuildStats
	Warnings   []string // optional sources that fell back (absent file)
}

// Stats summarizes the snapshot for status displays.
func (d *Dataset) Stats() model.DatasetStats {
	sets := make(map[string]int, len(d.RefSets))
	for name, set := range d.RefSets {
		sets[name] = set.Len()
	}
	return model.DatasetStats{
		Children: d.Graph.NumChildren(),
		Parents:  d.Graph.NumParents(),
		Edges:    d.Graph.NumEdges(),
		Sets:     sets,
		Catalog:  d.Catalog != nil,
	}
}

// LookupCatalog fetches the catalog record for id, or nil when the catalog
// source is absent or has no record for id.
func (d *Dataset) LookupCatalog(ctx context.Context, id string) *model.CatalogRecord {
	if d.Catalog == nil {
		return nil
	}
	rec, err := d.Catalog.Lookup(ctx, id)
	if err != nil {
		return nil
	}
	return rec
}

// Close releases resources held by the dataset.
func (d *Dataset) Close() error {
	if d.Catalog != nil {
		return d.Catalog.Close()
	}
	return nil
}
