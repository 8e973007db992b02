package client

import "time"

// DrugSummary is one row of a search or the top list.
type DrugSummary struct {
	Name     string `json:"drug_name"`
	MaxPhase *int   `json:"max_phase"`
}

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

// Interaction links the queried drug to another drug sharing a mechanism.
type Interaction struct {
	SelectedDrug    string  `json:"drug_name"`
	InteractingDrug string  `json:"interacting_drug"`
	Mechanism       string  `json:"mechanism_of_action"`
	ActionType      *string `json:"action_type"`
	TargetName      *string `json:"target_name"`
	TargetOrganism  *string `json:"target_organism"`
}

type RuleCompliance struct {
	Rule      string  `json:"rule"`
	Passed    int     `json:"passed"`
	Evaluated int     `json:"evaluated"`
	Percent   float64 `json:"percent"`
}

type Assessment struct {
	Name       string   `json:"drug_name"`
	Violations []string `json:"violations"`
	Unknown    []string `json:"unknown,omitempty"`
	DrugLike   bool     `json:"drug_like"`
}

type PropertyStats struct {
	Count       int      `json:"count"`
	MeanMW      *float64 `json:"mean_full_mwt"`
	MeanLogP    *float64 `json:"mean_alogp"`
	MeanPSA     *float64 `json:"mean_psa"`
	DrugLikeCnt int      `json:"drug_like_count"`
}

// DrugLikeness is the Lipinski summary over a search population.
type DrugLikeness struct {
	Compliance  []RuleCompliance `json:"compliance"`
	Assessments []Assessment     `json:"assessments"`
	Stats       PropertyStats    `json:"stats"`
}

type Node struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Kind        string `json:"kind"`
	Color       string `json:"color"`
	BorderColor string `json:"border_color,omitempty"`
	BorderWidth int    `json:"border_width,omitempty"`
	Shape       string `json:"shape"`
	Size        int    `json:"size"`
	Title       string `json:"title"`
	Group       int    `json:"group"`
	Drug        string `json:"drug,omitempty"`
	Mechanism   string `json:"mechanism,omitempty"`
}

type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Color string `json:"color"`
}

type Graph struct {
	Selected   string   `json:"selected"`
	Policy     string   `json:"policy"`
	Mechanisms []string `json:"mechanisms"`
	Nodes      []Node   `json:"nodes"`
	Edges      []Edge   `json:"edges"`
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Layout struct {
	Width     int                 `json:"width"`
	Height    int                 `json:"height"`
	Positions map[string]Position `json:"positions"`
}

// NetworkView is the graph of a drug with its layout. Graph is nil and
// Message set when the drug has no interactions.
type NetworkView struct {
	Graph   *Graph  `json:"graph"`
	Layout  *Layout `json:"layout,omitempty"`
	Message string  `json:"message,omitempty"`
}

type MirrorStats struct {
	Mechanisms int `json:"mechanisms"`
	Links      int `json:"links"`
}

// ExportResult describes a network document stored by the server.
type ExportResult struct {
	Drug        string       `json:"drug"`
	Key         string       `json:"key"`
	Size        int64        `json:"size"`
	ContentType string       `json:"content_type"`
	URL         string       `json:"url"`
	ExpiresAt   time.Time    `json:"expires_at"`
	Mirrored    *MirrorStats `json:"mirrored,omitempty"`
	Announced   bool         `json:"announced"`
}

//Personal.AI order the ending
