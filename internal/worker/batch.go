package worker

import (
	"context"

	"github.com/nlitools/almagraph/internal/model"
)

// Classifier defines the interface for classifying one batch file.
type Classifier interface {
	ClassifyFile(ctx context.Context, path string) (*model.Report, error)
}

// ClassifyJob classifies one uploaded list file.
type ClassifyJob struct {
	Path       string
	Classifier Classifier
}

// Execute executes the classify job
func (j *ClassifyJob) Execute(ctx context.Context) Result {
	rep, err := j.Classifier.ClassifyFile(ctx, j.Path)
	return &ClassifyResult{
		Path:   j.Path,
		Report: rep,
		Error:  err,
	}
}

// ClassifyResult represents the result of classifying one file.
type ClassifyResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the error from the classify result
func (r *ClassifyResult) GetError() error {
	return r.Error
}

// BatchProcessor classifies multiple list files concurrently.
type BatchProcessor struct {
	classifier  Classifier
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(classifier Classifier, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		classifier:  classifier,
		concurrency: concurrency,
	}
}

// ProcessFiles classifies the given files concurrently. Results are keyed by
// path; submission order is not preserved.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*ClassifyResult {
	if len(paths) == 0 {
		return []*ClassifyResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&ClassifyJob{
			Path:       path,
			Classifier: b.classifier,
		})
	}

	results := pool.Wait()

	classifyResults := make([]*ClassifyResult, len(results))
	for i, result := range results {
		classifyResults[i] = result.(*ClassifyResult)
	}

	return classifyResults
}
