// Package report renders classification results: TXT partition exports,
// JSON/YAML reports, and audit tables.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nlitools/almagraph/internal/hierarchy"
	"github.com/nlitools/almagraph/internal/model"
)

// ToText renders a partition as newline-joined UTF-8 text with a trailing
// newline iff the partition is non-empty. This is the interchange format for
// "download as text" interactions.
func ToText(ids []string) []byte {
	if len(ids) == 0 {
		return []byte{}
	}
	return []byte(strings.Join(ids, "\n") + "\n")
}

// WritePartitions writes every partition of a report into dir as TXT files,
// plus the child-to-parents audit mapping as CSV. File names follow the
// historical download names of the front ends.
func WritePartitions(dir string, report *model.Report) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	files := map[string][]string{
		"PARENTS_ONLY.txt":         report.Roles.ParentsOnly,
		"CHILDREN_AND_PARENTS.txt": report.Roles.ChildrenAndParents,
		"CHILDREN_ONLY.txt":        report.Roles.ChildrenOnly,
		"TOP_LEVEL_PARENTS.txt":    report.TopLevel.TopLevelParents,
		"STANDALONE.txt":           report.TopLevel.Standalone,
		"UNIQUE_PARENTS.txt":       report.Parents.UniqueParents,
	}
	for _, part := range report.Reference {
		upper := strings.ToUpper(part.Set)
		files[upper+".txt"] = part.In
		files["NOT_"+upper+".txt"] = part.NotIn
	}

	for name, ids := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, ToText(ids), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	if len(report.Parents.Mapping) > 0 {
		if err := writeMappingCSV(filepath.Join(dir, "CHILD_TO_PARENTS.csv"), report.Parents.Mapping); err != nil {
			return err
		}
	}

	return nil
}

// writeMappingCSV exports the restricted child-to-parents mapping, parents
// joined by the table's separator token.
func writeMappingCSV(path string, mapping []model.ChildLink) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Child", "Parents"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, link := range mapping {
		joined := strings.Join(link.Parents, " "+hierarchy.ParentSeparator+" ")
		if err := w.Write([]string{link.Child, joined}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
