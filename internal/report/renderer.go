package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nlitools/almagraph/internal/model"
)

// Renderer writes reports in the supported output formats.
type Renderer struct{}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}
	return nil
}

// RenderYAML writes the report as YAML.
func (r *Renderer) RenderYAML(report *model.Report, path string) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write YAML report: %w", err)
	}
	return nil
}

// RenderSummary writes the human-readable classification summary: partition
// counts, the ranked parents table, and the audit mapping.
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) error {
	fmt.Fprintf(w, "Input identifiers: %d\n", len(report.Input))
	fmt.Fprintln(w)

	for _, part := range report.Reference {
		fmt.Fprintf(w, "%s: %d in, %d not in\n", part.Set, len(part.In), len(part.NotIn))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Hierarchy roles:\n")
	fmt.Fprintf(w, "  parents only:         %d\n", len(report.Roles.ParentsOnly))
	fmt.Fprintf(w, "  children and parents: %d\n", len(report.Roles.ChildrenAndParents))
	fmt.Fprintf(w, "  children only:        %d\n", len(report.Roles.ChildrenOnly))
	fmt.Fprintf(w, "  top-level parents:    %d\n", len(report.TopLevel.TopLevelParents))
	fmt.Fprintf(w, "  standalone:           %d\n", len(report.TopLevel.Standalone))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "From %d submitted children, %d unique parents.\n",
		len(report.Parents.SubmittedChildren), len(report.Parents.UniqueParents))

	if len(report.Parents.Ranked) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, RankedParentsTable(report.Parents.Ranked))
	}
	if len(report.Parents.Mapping) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, MappingTable(report.Parents.Mapping))
	}

	return nil
}

// RenderLookup writes a single-identifier result in the layout of the lookup
// front end.
func (r *Renderer) RenderLookup(w io.Writer, l *model.Lookup, setNames []string) {
	fmt.Fprintf(w, "ALMA ID: %s\n\n", l.ID)

	fmt.Fprintln(w, "List membership:")
	for _, name := range setNames {
		mark := "NO"
		if l.Membership[name] {
			mark = "YES"
		}
		fmt.Fprintf(w, "  %-12s %s\n", name+":", mark)
	}
	fmt.Fprintln(w)

	if len(l.Parents) > 0 {
		fmt.Fprintf(w, "As child, %d parent(s):\n%s", len(l.Parents), ToText(l.Parents))
	} else {
		fmt.Fprintln(w, "Does not appear as a child (no parents listed).")
	}
	if len(l.Children) > 0 {
		fmt.Fprintf(w, "As parent, %d child(ren):\n%s", len(l.Children), ToText(l.Children))
	} else {
		fmt.Fprintln(w, "Does not appear as a parent (no children listed).")
	}

	fmt.Fprintf(w, "\nRole: %s\n", l.Role)

	if l.Catalog != nil {
		fmt.Fprintln(w)
		RenderCatalogRecord(w, l.Catalog)
	}
}

// RenderCatalogRecord writes the catalog fields with the rights badge.
func RenderCatalogRecord(w io.Writer, rec *model.CatalogRecord) {
	title := rec.Title
	if rec.TitleRemainder != "" {
		title = rec.Title + " — " + rec.TitleRemainder
	}
	fmt.Fprintf(w, "Description: %s\n", dash(title))
	fmt.Fprintf(w, "Library:     %s\n", dash(rec.Library))
	fmt.Fprintf(w, "Shelfmark:   %s\n", dash(rec.Shelfmark))

	loc := rec.City
	if rec.Country != "" {
		if loc != "" {
			loc += ", "
		}
		loc += rec.Country
	}
	fmt.Fprintf(w, "Location:    %s\n", dash(loc))
	fmt.Fprintf(w, "Rights:      %s %s\n", rec.Rights.Badge(), dash(rec.TermsName))
	if rec.TermsURL != "" {
		fmt.Fprintf(w, "Terms:       %s\n", rec.TermsURL)
	}
}

func dash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
