package ident

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseBatchDedupPreservesOrder(t *testing.T) {
	text := "990000111\n990000222\n990000111\n#comment 990000999\n\n990000333"
	got := ParseBatch(text)
	want := []string{"990000111", "990000222", "990000333"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseBatch = %v, want %v", got, want)
	}
}

func TestParseBatchNoisyLines(t *testing.T) {
	text := strings.Join([]string{
		"'990000111",
		"  990000222\t",
		"record 990000333 (superseded by 990000444)",
		"no id on this line",
		"# 990000555 commented out",
	}, "\n")

	got := ParseBatch(text)
	want := []string{"990000111", "990000222", "990000333", "990000444"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseBatch = %v, want %v", got, want)
	}
}

func TestParseBatchEmpty(t *testing.T) {
	for _, text := range []string{"", "\n\n", "# only comments\n#more", "junk without digits"} {
		if got := ParseBatch(text); len(got) != 0 {
			t.Errorf("ParseBatch(%q) = %v, want empty", text, got)
		}
	}
}

func TestParseBatchReader(t *testing.T) {
	got, err := ParseBatchReader(strings.NewReader("990000111\r\n990000222\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"990000111", "990000222"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseBatchReader = %v, want %v", got, want)
	}
}
