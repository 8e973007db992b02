package drug

// Lipinski rule-of-five thresholds.
const (
	MaxMolecularWeight = 500.0
	MaxLogP            = 5.0
	MaxHBondAcceptors  = 10
	MaxHBondDonors     = 5
)

// Rule names, in display order.
const (
	RuleMolecularWeight = "Molecular Weight ≤ 500"
	RuleLogP            = "LogP ≤ 5"
	RuleHBA             = "Hydrogen Bond Acceptors ≤ 10"
	RuleHBD             = "Hydrogen Bond Donors ≤ 5"
)

// RuleOrder lists the Lipinski rules in display order.
var RuleOrder = []string{RuleMolecularWeight, RuleLogP, RuleHBA, RuleHBD}

// RuleCompliance is the share of a population satisfying one rule. Records
// missing the property are left out of Evaluated.
type RuleCompliance struct {
	Rule      string  `json:"rule"`
	Passed    int     `json:"passed"`
	Evaluated int     `json:"evaluated"`
	Percent   float64 `json:"percent"`
}

// Assessment is the rule-of-five verdict for one drug.
type Assessment struct {
	Name       string   `json:"drug_name"`
	Violations []string `json:"violations"`
	// Unknown lists rules that could not be evaluated.
	Unknown []string `json:"unknown,omitempty"`
	// DrugLike allows at most one violation.
	DrugLike bool `json:"drug_like"`
}

// PropertyStats summarises the population for the scatter panels.
type PropertyStats struct {
	Count       int      `json:"count"`
	MeanMW      *float64 `json:"mean_full_mwt"`
	MeanLogP    *float64 `json:"mean_alogp"`
	MeanPSA     *float64 `json:"mean_psa"`
	DrugLikeCnt int      `json:"drug_like_count"`
}

// DrugLikeness is the drug-likeness dashboard for a set of property records.
type DrugLikeness struct {
	Compliance  []RuleCompliance `json:"compliance"`
	Assessments []Assessment     `json:"assessments"`
	Stats       PropertyStats    `json:"stats"`
}

// ruleCheck returns (passed, known) for one rule on one record.
type ruleCheck func(p PropertyRecord) (bool, bool)

var ruleChecks = map[string]ruleCheck{
	RuleMolecularWeight: func(p PropertyRecord) (bool, bool) {
		if p.FullMWT == nil {
			return false, false
		}
		return *p.FullMWT <= MaxMolecularWeight, true
	},
	RuleLogP: func(p PropertyRecord) (bool, bool) {
		if p.ALogP == nil {
			return false, false
		}
		return *p.ALogP <= MaxLogP, true
	},
	RuleHBA: func(p PropertyRecord) (bool, bool) {
		if p.HBA == nil {
			return false, false
		}
		return *p.HBA <= MaxHBondAcceptors, true
	},
	RuleHBD: func(p PropertyRecord) (bool, bool) {
		if p.HBD == nil {
			return false, false
		}
		return *p.HBD <= MaxHBondDonors, true
	},
}

// Assess evaluates the rule of five for a single record.
func Assess(p PropertyRecord) Assessment {
	a := Assessment{Name: p.Name, Violations: []string{}}
	for _, rule := range RuleOrder {
		passed, known := ruleChecks[rule](p)
		switch {
		case !known:
			a.Unknown = append(a.Unknown, rule)
		case !passed:
			a.Violations = append(a.Violations, rule)
		}
	}
	a.DrugLike = len(a.Violations) <= 1
	return a
}

// EvaluateDrugLikeness computes per-rule compliance percentages, per-drug
// assessments and summary statistics over records.
func EvaluateDrugLikeness(records []PropertyRecord) DrugLikeness {
	out := DrugLikeness{
		Compliance:  make([]RuleCompliance, 0, len(RuleOrder)),
		Assessments: make([]Assessment, 0, len(records)),
	}

	for _, rule := range RuleOrder {
		rc := RuleCompliance{Rule: rule}
		for _, p := range records {
			passed, known := ruleChecks[rule](p)
			if !known {
				continue
			}
			rc.Evaluated++
			if passed {
				rc.Passed++
			}
		}
		if rc.Evaluated > 0 {
			rc.Percent = float64(rc.Passed) / float64(rc.Evaluated) * 100
		}
		out.Compliance = append(out.Compliance, rc)
	}

	var mw, logp, psa mean
	for _, p := range records {
		a := Assess(p)
		if a.DrugLike {
			out.Stats.DrugLikeCnt++
		}
		out.Assessments = append(out.Assessments, a)
		mw.add(p.FullMWT)
		logp.add(p.ALogP)
		psa.add(p.PSA)
	}
	out.Stats.Count = len(records)
	out.Stats.MeanMW = mw.value()
	out.Stats.MeanLogP = logp.value()
	out.Stats.MeanPSA = psa.value()
	return out
}

type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v *float64) {
	if v == nil {
		return
	}
	m.sum += *v
	m.n++
}

func (m *mean) value() *float64 {
	if m.n == 0 {
		return nil
	}
	v := m.sum / float64(m.n)
	return &v
}

//Personal.AI order the ending
