package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nlitools/almagraph/internal/model"
)

func TestToText(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want string
	}{
		{"empty has no trailing newline", nil, ""},
		{"single", []string{"99000011"}, "99000011\n"},
		{"multiple", []string{"99000011", "99000022"}, "99000011\n99000022\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(ToText(tt.ids)); got != tt.want {
				t.Errorf("ToText(%v) = %q, want %q", tt.ids, got, tt.want)
			}
		})
	}
}

func sampleReport() *model.Report {
	return &model.Report{
		GeneratedAt: time.Now().UTC(),
		Input:       []string{"99000011", "99000022", "99000033"},
		Reference: []model.SetPartition{{
			Set:   "genizah",
			In:    []string{"99000011"},
			NotIn: []string{"99000022", "99000033"},
		}},
		Roles: model.RolePartition{
			ChildrenOnly: []string{"99000011"},
			ParentsOnly:  []string{"99000022"},
		},
		TopLevel: model.TopLevelPartition{
			TopLevelParents: []string{"99000022"},
			Standalone:      []string{"99000033"},
		},
		Parents: model.DerivedParents{
			SubmittedChildren: []string{"99000011"},
			UniqueParents:     []string{"99000100", "99000200"},
			Ranked: []model.ParentCount{
				{Parent: "99000100", Children: 1},
				{Parent: "99000200", Children: 1},
			},
			Mapping: []model.ChildLink{
				{Child: "99000011", Parents: []string{"99000100", "99000200"}},
			},
		},
	}
}

func TestWritePartitions(t *testing.T) {
	dir := t.TempDir()
	if err := WritePartitions(dir, sampleReport()); err != nil {
		t.Fatalf("WritePartitions: %v", err)
	}

	checks := map[string]string{
		"GENIZAH.txt":           "99000011\n",
		"NOT_GENIZAH.txt":       "99000022\n99000033\n",
		"CHILDREN_ONLY.txt":     "99000011\n",
		"PARENTS_ONLY.txt":      "99000022\n",
		"TOP_LEVEL_PARENTS.txt": "99000022\n",
		"STANDALONE.txt":        "99000033\n",
		"UNIQUE_PARENTS.txt":    "99000100\n99000200\n",
		// Empty partitions still produce (empty) files.
		"CHILDREN_AND_PARENTS.txt": "",
	}
	for name, want := range checks {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if string(data) != want {
			t.Errorf("%s = %q, want %q", name, data, want)
		}
	}

	csvData, err := os.ReadFile(filepath.Join(dir, "CHILD_TO_PARENTS.csv"))
	if err != nil {
		t.Fatalf("missing mapping csv: %v", err)
	}
	if !strings.Contains(string(csvData), "99000100 ||| 99000200") {
		t.Errorf("mapping csv = %q", csvData)
	}
}

func TestRenderJSONAndYAML(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer()

	jsonPath := filepath.Join(dir, "report.json")
	if err := r.RenderJSON(sampleReport(), jsonPath); err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	jsonData, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(jsonData), `"children_only"`) {
		t.Errorf("JSON report missing fields: %s", jsonData)
	}

	yamlPath := filepath.Join(dir, "report.yaml")
	if err := r.RenderYAML(sampleReport(), yamlPath); err != nil {
		t.Fatalf("RenderYAML: %v", err)
	}
	yamlData, err := os.ReadFile(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(yamlData), "childrenonly") && !strings.Contains(string(yamlData), "children") {
		t.Errorf("YAML report missing fields: %s", yamlData)
	}
}

func TestRenderSummary(t *testing.T) {
	var sb strings.Builder
	if err := NewRenderer().RenderSummary(&sb, sampleReport()); err != nil {
		t.Fatalf("RenderSummary: %v", err)
	}
	out := sb.String()

	for _, want := range []string{
		"Input identifiers: 3",
		"genizah: 1 in, 2 not in",
		"99000100",
		"Child",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRankedParentsTable(t *testing.T) {
	out := RankedParentsTable([]model.ParentCount{{Parent: "99000100", Children: 3}})
	if !strings.Contains(out, "99000100") || !strings.Contains(out, "3") {
		t.Errorf("table = %q", out)
	}
}
