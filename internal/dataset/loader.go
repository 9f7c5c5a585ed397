package dataset

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/nlitools/almagraph/internal/catalog"
	"github.com/nlitools/almagraph/internal/hierarchy"
	"github.com/nlitools/almagraph/internal/model"
	"github.com/nlitools/almagraph/internal/refset"
	"github.com/nlitools/almagraph/internal/tabular"
)

// Loader builds the dataset on first use and memoizes the result. Concurrent
// first access is collapsed into a single load; later calls return the cached
// snapshot. A failed load is not memoized, so a corrected source file can be
// picked up on the next attempt.
type Loader struct {
	sources model.SourcesConfig
	strict  bool

	group singleflight.Group

	mu     sync.RWMutex
	loaded *Dataset
}

// NewLoader creates a loader for the configured sources. When strict is set,
// every configured source is mandatory regardless of the optional list.
func NewLoader(sources model.SourcesConfig, strict bool) *Loader {
	return &Loader{sources: sources, strict: strict}
}

// Get returns the dataset, loading it on first call.
func (l *Loader) Get(ctx context.Context) (*Dataset, error) {
	l.mu.RLock()
	if ds := l.loaded; ds != nil {
		l.mu.RUnlock()
		return ds, nil
	}
	l.mu.RUnlock()

	v, err, _ := l.group.Do("dataset", func() (interface{}, error) {
		ds, err := l.load(ctx)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.loaded = ds
		l.mu.Unlock()
		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Dataset), nil
}

// optional reports whether the named source may be absent.
func (l *Loader) optional(name string) bool {
	return !l.strict && l.sources.IsOptional(name)
}

func (l *Loader) load(ctx context.Context) (*Dataset, error) {
	ds := &Dataset{RefSets: make(map[string]refset.Set)}

	// The child/parent table is always mandatory: nothing works without the
	// graph.
	table, err := tabular.ReadFile(l.sources.ChildParentTable)
	if err != nil {
		return nil, fmt.Errorf("load %s source: %w", model.SourceGraph, err)
	}
	graph, stats, err := hierarchy.Build(table)
	if err != nil {
		return nil, fmt.Errorf("build hierarchy graph: %w", err)
	}
	ds.Graph = graph
	ds.BuildStats = stats

	if err := l.loadSet(ds, model.SourceGenizah, l.sources.GenizahList); err != nil {
		return nil, err
	}
	if err := l.loadSet(ds, model.SourceManuscripts, l.sources.ManuscriptsList); err != nil {
		return nil, err
	}

	if l.sources.CatalogDB != "" {
		store, err := catalog.Open(l.sources.CatalogDB)
		switch {
		case err == nil:
			ds.Catalog = store
		case errors.Is(err, catalog.ErrSourceMissing) && l.optional(model.SourceCatalog):
			ds.Warnings = append(ds.Warnings,
				fmt.Sprintf("%s source absent, catalog display disabled", model.SourceCatalog))
		default:
			return nil, fmt.Errorf("load %s source: %w", model.SourceCatalog, err)
		}
	}

	return ds, nil
}

// loadSet loads one reference list, applying the optional-source fallback:
// an absent optional list becomes an explicit empty set with a warning, an
// absent mandatory list fails the load.
func (l *Loader) loadSet(ds *Dataset, name, path string) error {
	if path == "" {
		if !l.optional(name) {
			return fmt.Errorf("%s source not configured", name)
		}
		ds.RefSets[name] = make(refset.Set)
		ds.Warnings = append(ds.Warnings, fmt.Sprintf("%s source not configured", name))
		return nil
	}

	set, err := refset.LoadFile(path)
	if err != nil {
		if errors.Is(err, refset.ErrSourceMissing) && l.optional(name) {
			ds.RefSets[name] = make(refset.Set)
			ds.Warnings = append(ds.Warnings,
				fmt.Sprintf("%s source absent, using empty set", name))
			return nil
		}
		return fmt.Errorf("load %s source: %w", name, err)
	}
	ds.RefSets[name] = set
	return nil
}
