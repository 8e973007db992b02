// Package drug defines the typed catalog records of the dashboard: search
// summaries, detail rows, chemical property rows and interaction edges.
// Nullable catalog columns are pointer fields.
package drug

import (
	"strings"
)

// DefaultTopLimit is the size of the ranked initial suggestion list.
const DefaultTopLimit = 50

// DefaultSearchLimit caps the number of search suggestions.
const DefaultSearchLimit = 10

// MaxInteractions caps the rows returned by an interaction lookup.
const MaxInteractions = 50

// DrugSummary is a search or suggestion row.
type DrugSummary struct {
	Name     string `json:"drug_name"`
	MaxPhase *int   `json:"max_phase"`
}

// Phase returns the development phase, or -1 when unknown.
func (s DrugSummary) Phase() int {
	if s.MaxPhase == nil {
		return -1
	}
	return *s.MaxPhase
}

// DrugDetail is the details panel row of molecule_dictionary.
type DrugDetail struct {
	Name            string  `json:"drug_name"`
	MaxPhase        *int    `json:"max_phase"`
	TherapeuticFlag *bool   `json:"therapeutic_flag"`
	MoleculeType    *string `json:"molecule_type"`
	FirstApproval   *int    `json:"first_approval"`
	Oral            *bool   `json:"oral"`
	Parenteral      *bool   `json:"parenteral"`
	Topical         *bool   `json:"topical"`
	BlackBoxWarning *bool   `json:"black_box_warning"`
	NaturalProduct  *bool   `json:"natural_product"`
	FirstInClass    *bool   `json:"first_in_class"`
	Chirality       *int    `json:"chirality"`
}

// Routes lists the administration routes flagged for the drug.
func (d *DrugDetail) Routes() []string {
	var routes []string
	if isTrue(d.Oral) {
		routes = append(routes, "oral")
	}
	if isTrue(d.Parenteral) {
		routes = append(routes, "parenteral")
	}
	if isTrue(d.Topical) {
		routes = append(routes, "topical")
	}
	return routes
}

// ChiralityLabel decodes the ChEMBL chirality code.
func (d *DrugDetail) ChiralityLabel() string {
	if d.Chirality == nil {
		return "unknown"
	}
	switch *d.Chirality {
	case 0:
		return "racemic mixture"
	case 1:
		return "single stereoisomer"
	case 2:
		return "achiral"
	default:
		return "unknown"
	}
}

func isTrue(b *bool) bool { return b != nil && *b }

// PropertyRecord is a compound_properties row for one drug.
type PropertyRecord struct {
	Name          string   `json:"drug_name"`
	ALogP         *float64 `json:"alogp"`
	HBA           *int     `json:"hba"`
	HBD           *int     `json:"hbd"`
	PSA           *float64 `json:"psa"`
	AromaticRings *int     `json:"aromatic_rings"`
	QEDWeighted   *float64 `json:"qed_weighted"`
	MWFreebase    *float64 `json:"mw_freebase"`
	FullMWT       *float64 `json:"full_mwt"`
}

// InteractionEdge is one row of an interaction lookup: a peer of the selected
// drug sharing a mechanism of action, with the target recorded for that
// mechanism entry.
type InteractionEdge struct {
	SelectedDrug    string  `json:"drug_name"`
	InteractingDrug string  `json:"interacting_drug"`
	Mechanism       string  `json:"mechanism_of_action"`
	ActionType      *string `json:"action_type"`
	TargetName      *string `json:"target_name"`
	TargetOrganism  *string `json:"target_organism"`
}

// Target returns the target name or "" when the row has none.
func (e InteractionEdge) Target() string {
	if e.TargetName == nil {
		return ""
	}
	return *e.TargetName
}

// NormalizeName trims surrounding whitespace from a user-supplied name.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// SameDrug compares two preferred names case-insensitively.
func SameDrug(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

//Personal.AI order the ending
