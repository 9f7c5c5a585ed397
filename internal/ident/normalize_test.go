package ident

import (
	"reflect"
	"testing"
)

// The normalization policy is digit-run extraction: after cleanup, the
// identifier is the first run of at least MinDigitRun consecutive digits.
// Inputs with extra non-digit characters still match as long as they carry
// such a run; inputs without one normalize to absent.

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"plain id", "990000907150205000", "990000907150205000", true},
		{"surrounding whitespace", "  990000907150205000  ", "990000907150205000", true},
		{"embedded spaces and tabs", "9900 0090\t7150205000", "990000907150205000", true},
		{"force-text apostrophe", "'990000907150205000", "990000907150205000", true},
		{"rtl and ltr marks", "‏990000907150205000‎", "990000907150205000", true},
		{"leading bom", "\uFEFF990000907150205000", "990000907150205000", true},
		{"id embedded in text", "see record 990000907150205000 (old)", "990000907150205000", true},
		{"first of several runs", "990000111 then 990000222", "990000111", true},
		{"leading zeros preserved", "000123456789", "000123456789", true},
		{"run too short", "1234567", "", false},
		{"no digits", "not an id", "", false},
		{"empty", "", "", false},
		{"whitespace only", "   \t  ", "", false},
		{"apostrophe only", "'", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.in)
			if ok != tt.ok {
				t.Fatalf("Normalize(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"990000907150205000",
		"'990000907150205000",
		"  9900 00907150205000‏",
		"record 990000111222333 in list",
	}

	for _, in := range inputs {
		first, ok := Normalize(in)
		if !ok {
			t.Fatalf("Normalize(%q) unexpectedly absent", in)
		}
		second, ok := Normalize(first)
		if !ok {
			t.Fatalf("Normalize(%q) absent on second pass", first)
		}
		if first != second {
			t.Errorf("normalization not idempotent: %q -> %q -> %q", in, first, second)
		}
	}
}

func TestExtractAll(t *testing.T) {
	got := ExtractAll("990000111 ||| 990000222, and 990000333")
	want := []string{"990000111", "990000222", "990000333"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractAll = %v, want %v", got, want)
	}

	if got := ExtractAll("no ids here"); got != nil {
		t.Errorf("ExtractAll on id-free text = %v, want nil", got)
	}
}

func TestClean(t *testing.T) {
	if got := Clean("' 9900 0011‏\t"); got != "99000011" {
		t.Errorf("Clean = %q, want %q", got, "99000011")
	}
}
