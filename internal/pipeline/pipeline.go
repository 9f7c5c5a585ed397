// Package pipeline orchestrates the complete lookup and classification flow:
// dataset loading, ingestion, partitioning, and rendering.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/nlitools/almagraph/internal/classify"
	"github.com/nlitools/almagraph/internal/dataset"
	"github.com/nlitools/almagraph/internal/ident"
	"github.com/nlitools/almagraph/internal/model"
	"github.com/nlitools/almagraph/internal/report"
)

// Pipeline ties the dataset loader to the classifier and the renderers. It is
// safe for concurrent use: the dataset is an immutable snapshot and every
// classification is a pure function over it.
type Pipeline struct {
	loader   *dataset.Loader
	renderer *report.Renderer
	config   *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	return &Pipeline{
		loader:   dataset.NewLoader(cfg.Sources, cfg.Schema.Strict),
		renderer: report.NewRenderer(),
		config:   cfg,
	}
}

// Dataset returns the loaded background data, loading it on first call.
func (p *Pipeline) Dataset(ctx context.Context) (*dataset.Dataset, error) {
	return p.loader.Get(ctx)
}

// Renderer exposes the report renderer.
func (p *Pipeline) Renderer() *report.Renderer { return p.renderer }

// LookupID resolves a single raw identifier: normalize, query the graph and
// reference sets, and attach the catalog record when available.
func (p *Pipeline) LookupID(ctx context.Context, raw string) (*model.Lookup, error) {
	id, ok := ident.Normalize(raw)
	if !ok {
		return nil, fmt.Errorf("%q: %w", raw, classify.ErrEmptyInput)
	}

	ds, err := p.loader.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	result := classify.NewClassifier(ds.Graph, ds.RefSets).Lookup(id)
	result.Catalog = ds.LookupCatalog(ctx, id)
	return result, nil
}

// ClassifyBatch ingests a raw multi-line blob and classifies the resulting
// batch. source labels the report (file name, request id).
func (p *Pipeline) ClassifyBatch(ctx context.Context, text string, source string) (*model.Report, error) {
	ds, err := p.loader.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	ids := ident.ParseBatch(text)
	rep, err := classify.NewClassifier(ds.Graph, ds.RefSets).Partition(ids)
	if err != nil {
		return nil, err
	}
	rep.Source = source
	rep.Dataset = ds.Stats()
	return rep, nil
}

// ClassifyFile reads an uploaded TXT list from disk and classifies it.
func (p *Pipeline) ClassifyFile(ctx context.Context, path string) (*model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}
	return p.ClassifyBatch(ctx, string(data), path)
}

// RenderReport renders the report to the configured outputs.
func (p *Pipeline) RenderReport(rep *model.Report, jsonPath, yamlPath, outDir string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(rep, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if yamlPath != "" {
		if err := p.renderer.RenderYAML(rep, yamlPath); err != nil {
			return fmt.Errorf("render YAML: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote YAML: %s\n", yamlPath)
		}
	}

	if outDir != "" {
		if err := report.WritePartitions(outDir, rep); err != nil {
			return fmt.Errorf("write partitions: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote partition exports: %s\n", outDir)
		}
	}

	return nil
}
