package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/nlitools/almagraph/internal/model"
	"github.com/nlitools/almagraph/internal/pipeline"
)

var (
	lookupJSON    bool
	lookupTimeout time.Duration
	graphPath     string
	genizahPath   string
	catalogPath   string
)

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup <alma-id>",
	Short: "Resolve a single ALMA identifier",
	Long: `Lookup resolves one ALMA identifier against the loaded dataset:
- Normalize the raw input (strip prefixes, invisible characters, noise)
- Check membership in each reference list
- List its parents and children in the hierarchy
- Show the catalog record and rights badge when the index is available

Example:
  almagraph lookup 990012345670205171
  almagraph lookup "alma:990012345670205171" --json
  almagraph lookup 990012345670205171 --graph ./child_parent_alma.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "emit the result as JSON on stdout")
	lookupCmd.Flags().DurationVar(&lookupTimeout, "timeout", 30*time.Second, "overall lookup timeout")

	// Source overrides
	lookupCmd.Flags().StringVar(&graphPath, "graph", "", "child/parent table path (overrides config)")
	lookupCmd.Flags().StringVar(&genizahPath, "genizah", "", "Genizah list path (overrides config)")
	lookupCmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog index path (overrides config)")
}

func runLookup(cmd *cobra.Command, args []string) error {
	raw := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applySourceOverrides(cfg)

	if verbose {
		fmt.Fprintf(os.Stderr, "Looking up: %s\n", raw)
		fmt.Fprintf(os.Stderr, "Graph source: %s\n", cfg.Sources.ChildParentTable)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)

	result, err := p.LookupID(ctx, raw)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	if lookupJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	setNames := make([]string, 0, len(result.Membership))
	for name := range result.Membership {
		setNames = append(setNames, name)
	}
	sort.Strings(setNames)
	p.Renderer().RenderLookup(os.Stdout, result, setNames)
	return nil
}

// applySourceOverrides lets flags trump the config file for data locations.
func applySourceOverrides(cfg *model.Config) {
	if graphPath != "" {
		cfg.Sources.ChildParentTable = graphPath
	}
	if genizahPath != "" {
		cfg.Sources.GenizahList = genizahPath
	}
	if catalogPath != "" {
		cfg.Sources.CatalogDB = catalogPath
	}
}
