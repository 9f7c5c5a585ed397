package catalog

import (
	"testing"

	"github.com/nlitools/almagraph/internal/model"
)

func TestClassifyRights(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.RightsClass
	}{
		{"public domain", "Public Domain material", model.RightsOpen},
		{"no restrictions", "Access with no restrictions", model.RightsOpen},
		{"hebrew public domain", "היצירה נחלת הכלל", model.RightsOpen},
		{"hebrew no limits", "שימוש ללא מגבלות", model.RightsOpen},
		{"contract terms", "Use governed by contract with depositor", model.RightsLimited},
		{"attribution", "Free use with attribution", model.RightsLimited},
		{"restricted", "Restricted access", model.RightsRestricted},
		{"permission required", "Copying requires permission", model.RightsRestricted},
		{"hebrew forbidden", "העתקה אסורה", model.RightsRestricted},
		{"unrecognized", "see reading-room desk", model.RightsUnknown},
		{"empty", "", model.RightsUnknown},
		// Openness wins when phrases from several tiers appear.
		{"open beats restricted", "public domain, copying requires permission", model.RightsOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyRights(tt.text); got != tt.want {
				t.Errorf("ClassifyRights(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestRightsBadges(t *testing.T) {
	badges := map[model.RightsClass]string{
		model.RightsOpen:       "🟢",
		model.RightsLimited:    "🟡",
		model.RightsRestricted: "🔴",
		model.RightsUnknown:    "⚪",
	}
	for class, want := range badges {
		if got := class.Badge(); got != want {
			t.Errorf("Badge(%v) = %q, want %q", class, got, want)
		}
	}
}
