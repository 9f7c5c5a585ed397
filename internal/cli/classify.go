package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nlitools/almagraph/internal/pipeline"
	"github.com/nlitools/almagraph/internal/worker"
)

var (
	concurrency     int
	outputDir       string
	classifyTimeout time.Duration
	outJSON         string
	outYAML         string
	noExports       bool
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify <file> [file...]",
	Short: "Classify batches of ALMA identifiers from TXT lists",
	Long: `Classify partitions every identifier in the given list files:
- Parse and normalize the lists (blank lines and # comments skipped)
- Split by reference list membership (Genizah / not Genizah)
- Split by hierarchy role (parents only / children and parents / children only)
- Split by top-level status (top-level parents / standalone)
- Derive the one-hop parents of the submitted children

Each input file gets a full set of partition exports plus optional
JSON/YAML reports. Multiple files are processed in parallel.

Example:
  almagraph classify upload.txt
  almagraph classify upload.txt --json report.json --output-dir ./out
  almagraph classify a.txt b.txt c.txt --concurrency 4`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	classifyCmd.Flags().StringVar(&outputDir, "output-dir", "", "output directory for partition exports (default from config)")
	classifyCmd.Flags().DurationVar(&classifyTimeout, "timeout", 10*time.Minute, "total timeout for classification")
	classifyCmd.Flags().StringVar(&outJSON, "json", "", "output JSON report path (single input only)")
	classifyCmd.Flags().StringVar(&outYAML, "yaml", "", "output YAML report path (single input only)")
	classifyCmd.Flags().BoolVar(&noExports, "no-exports", false, "skip the TXT/CSV partition exports")

	// Source overrides shared with lookup
	classifyCmd.Flags().StringVar(&graphPath, "graph", "", "child/parent table path (overrides config)")
	classifyCmd.Flags().StringVar(&genizahPath, "genizah", "", "Genizah list path (overrides config)")
	classifyCmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog index path (overrides config)")
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), classifyTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applySourceOverrides(cfg)
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if len(args) > 1 && (outJSON != "" || outYAML != "") {
		return fmt.Errorf("--json/--yaml apply to a single input file only")
	}

	p := pipeline.NewPipeline(cfg)

	if len(args) == 1 {
		return classifyOne(ctx, p, args[0], cfg.Output.Dir)
	}
	return classifyMany(ctx, p, args, cfg.Output.Dir)
}

func classifyOne(ctx context.Context, p *pipeline.Pipeline, path, outDir string) error {
	if verbose {
		fmt.Fprintf(os.Stderr, "Classifying: %s\n\n", path)
	}

	rep, err := p.ClassifyFile(ctx, path)
	if err != nil {
		return fmt.Errorf("classify failed: %w", err)
	}

	if verbose {
		if ds, dsErr := p.Dataset(ctx); dsErr == nil {
			for _, warning := range ds.Warnings {
				fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
			}
			if ds.BuildStats.SkippedRows > 0 {
				fmt.Fprintf(os.Stderr, "Skipped %d table rows with no child identifier\n", ds.BuildStats.SkippedRows)
			}
		}
	}

	if err := p.Renderer().RenderSummary(os.Stdout, rep); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}

	exportDir := outDir
	if noExports {
		exportDir = ""
	}
	if err := p.RenderReport(rep, outJSON, outYAML, exportDir, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return nil
}

func classifyMany(ctx context.Context, p *pipeline.Pipeline, paths []string, outDir string) error {
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Almagraph Batch Classification\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input files:  %d\n", len(paths))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outDir)
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	processor := worker.NewBatchProcessor(p, concurrency)
	results := processor.ProcessFiles(ctx, paths)

	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}
		successCount++

		slug := listSlug(result.Path)
		perFileDir := filepath.Join(outDir, slug)
		jsonPath := filepath.Join(outDir, slug+".json")

		exportDir := perFileDir
		if noExports {
			exportDir = ""
		}
		if err := p.RenderReport(result.Report, jsonPath, "", exportDir, verbose); err != nil {
			failureCount++
			successCount--
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, err)
			continue
		}
		fmt.Fprintf(os.Stderr, "✓ %s (%d identifiers)\n", result.Path, len(result.Report.Input))
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d files\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outDir)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d files failed", failureCount, len(results))
	}
	return nil
}

// listSlug derives a per-file output name from an input list path.
func listSlug(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" || base == "." {
		base = "list"
	}
	return base
}
