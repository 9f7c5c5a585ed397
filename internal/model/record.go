package model

// CatalogRecord holds the descriptive catalog fields for one ALMA record, as
// exported from the catalog index.
type CatalogRecord struct {
	ALMA           string `json:"alma"`
	Title          string `json:"title,omitempty"`
	TitleRemainder string `json:"title_remainder,omitempty"`
	Library        string `json:"library,omitempty"`
	Shelfmark      string `json:"shelfmark,omitempty"`
	City           string `json:"city,omitempty"`
	Country        string `json:"country,omitempty"`
	RightsNote     string `json:"rights_note,omitempty"`
	AccessLevel    string `json:"access_level,omitempty"`
	TermsName      string `json:"terms_name,omitempty"`
	TermsURL       string `json:"terms_url,omitempty"`

	Rights RightsClass `json:"rights"` // badge derived from the rights text
}

// RightsText joins the fields the rights badge heuristic inspects.
func (r *CatalogRecord) RightsText() string {
	switch {
	case r.AccessLevel != "" && r.RightsNote != "":
		return r.AccessLevel + " " + r.RightsNote
	case r.AccessLevel != "":
		return r.AccessLevel
	default:
		return r.RightsNote
	}
}

// RightsClass is the cosmetic access badge shown alongside a catalog record.
// It has no structural consequence for classification.
type RightsClass string

const (
	RightsOpen       RightsClass = "open"       // public domain, no restrictions
	RightsLimited    RightsClass = "limited"    // contract or attribution terms
	RightsRestricted RightsClass = "restricted" // permission required
	RightsUnknown    RightsClass = "unknown"
)

// Badge returns the display glyph used by the front ends.
func (c RightsClass) Badge() string {
	switch c {
	case RightsOpen:
		return "🟢"
	case RightsLimited:
		return "🟡"
	case RightsRestricted:
		return "🔴"
	default:
		return "⚪"
	}
}
