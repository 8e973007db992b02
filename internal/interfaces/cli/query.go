package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/catalog"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/domain/drug"
	"github.com/sboesen2/Drug-Interaction-Dashboard/pkg/errors"
)

const notAvailable = "N/A"

// runWithServices connects the backends, runs fn under the command timeout
// and closes them again.
func runWithServices(cmd *cobra.Command, fn func(ctx context.Context, c *CLIContext, s *Services) error) error {
	c, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd, c)
	defer cancel()

	s, err := c.Services(ctx)
	if err != nil {
		return err
	}
	defer c.close()
	return fn(ctx, c, s)
}

// drugArg joins the positional arguments so multi-word names need no quotes.
func drugArg(args []string) (string, error) {
	name := drug.NormalizeName(strings.Join(args, " "))
	if name == "" {
		return "", errors.New(errors.ErrCodeDrugNameRequired, "drug name is required")
	}
	return name, nil
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [term]",
		Short: "Search drugs by name",
		Long:  "List up to 10 therapeutic drugs whose name contains term, ignoring case. A blank term lists the head of the top list.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, func(ctx context.Context, _ *CLIContext, s *Services) error {
				res := s.Catalog.Search(ctx, strings.Join(args, " "))
				if res.Empty() {
					PrintInfo(cmd, catalog.NoDataMessage)
					return nil
				}
				return PrintResult(cmd, summaryTable(res.Data()))
			})
		},
	}
}

func newTopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "top",
		Short: "List the top phase 3 and 4 drugs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, func(ctx context.Context, _ *CLIContext, s *Services) error {
				res := s.Catalog.TopDrugs(ctx)
				if res.Empty() {
					PrintInfo(cmd, catalog.NoDataMessage)
					return nil
				}
				return PrintResult(cmd, summaryTable(res.Data()))
			})
		},
	}
}

func newDetailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detail <drug>",
		Short: "Show the detail record of a drug",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := drugArg(args)
			if err != nil {
				return err
			}
			return runWithServices(cmd, func(ctx context.Context, _ *CLIContext, s *Services) error {
				res := s.Catalog.Detail(ctx, name)
				if res.Empty() {
					PrintInfo(cmd, catalog.NoDataMessage)
					return nil
				}
				return PrintResult(cmd, detailView{res.Data()})
			})
		},
	}
}

func newPropertiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "properties <drug>",
		Short: "Show physicochemical properties and the rule-of-five verdict",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := drugArg(args)
			if err != nil {
				return err
			}
			return runWithServices(cmd, func(ctx context.Context, _ *CLIContext, s *Services) error {
				res := s.Catalog.Properties(ctx, name)
				if res.Empty() {
					PrintInfo(cmd, catalog.NoDataMessage)
					return nil
				}
				p := res.Data()
				a := drug.Assess(*p)
				return PrintResult(cmd, propertiesView{Properties: p, Assessment: &a})
			})
		},
	}
}

func newInteractionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactions <drug>",
		Short: "List drugs sharing a mechanism of action",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := drugArg(args)
			if err != nil {
				return err
			}
			return runWithServices(cmd, func(ctx context.Context, _ *CLIContext, s *Services) error {
				res := s.Catalog.Interactions(ctx, name)
				if res.Empty() {
					PrintInfo(cmd, catalog.NoDataMessage)
					return nil
				}
				return PrintResult(cmd, interactionTable(res.Data()))
			})
		},
	}
}

func newDrugLikenessCmd() *cobra.Command {
	var details bool
	cmd := &cobra.Command{
		Use:   "druglikeness [term]",
		Short: "Summarize Lipinski compliance over the search results for term",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, func(ctx context.Context, c *CLIContext, s *Services) error {
				dl, err := s.Dashboard.DrugLikeness(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				if c.OutputFormat == FormatJSON {
					return printJSON(cmd, dl)
				}
				if err := PrintResult(cmd, complianceTable(dl.Compliance)); err != nil {
					return err
				}
				if details {
					if err := PrintResult(cmd, assessmentTable(dl.Assessments)); err != nil {
						return err
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), statsLine(dl.Stats))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&details, "details", false, "list the verdict of every drug")
	return cmd
}

type summaryTable []drug.DrugSummary

func (t summaryTable) TableHeaders() []string { return []string{"Drug", "Max Phase"} }

func (t summaryTable) TableRows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, d := range t {
		rows = append(rows, []string{d.Name, phaseString(d.MaxPhase)})
	}
	return rows
}

type detailView struct {
	*drug.DrugDetail
}

func (detailView) TableHeaders() []string { return []string{"Field", "Value"} }

func (v detailView) TableRows() [][]string {
	d := v.DrugDetail
	return [][]string{
		{"Name", d.Name},
		{"Max Phase", phaseString(d.MaxPhase)},
		{"Therapeutic", flagString(d.TherapeuticFlag)},
		{"Molecule Type", strString(d.MoleculeType)},
		{"First Approval", intString(d.FirstApproval)},
		{"Oral", flagString(d.Oral)},
		{"Parenteral", flagString(d.Parenteral)},
		{"Topical", flagString(d.Topical)},
		{"Black Box Warning", warnFlag(d.BlackBoxWarning)},
		{"Natural Product", flagString(d.NaturalProduct)},
		{"First In Class", flagString(d.FirstInClass)},
		{"Chirality", intString(d.Chirality)},
	}
}

type propertiesView struct {
	Properties *drug.PropertyRecord `json:"properties"`
	Assessment *drug.Assessment     `json:"assessment"`
}

func (propertiesView) TableHeaders() []string { return []string{"Property", "Value", "Limit"} }

func (v propertiesView) TableRows() [][]string {
	p := v.Properties
	rows := [][]string{
		limitRow("Molecular Weight", floatString(p.FullMWT), p.FullMWT != nil && *p.FullMWT > drug.MaxMolecularWeight, "≤ 500"),
		{"Molecular Weight (freebase)", floatString(p.MWFreebase), ""},
		limitRow("AlogP", floatString(p.ALogP), p.ALogP != nil && *p.ALogP > drug.MaxLogP, "≤ 5"),
		limitRow("Hydrogen Bond Acceptors", intString(p.HBA), p.HBA != nil && *p.HBA > drug.MaxHBondAcceptors, "≤ 10"),
		limitRow("Hydrogen Bond Donors", intString(p.HBD), p.HBD != nil && *p.HBD > drug.MaxHBondDonors, "≤ 5"),
		{"Polar Surface Area", floatString(p.PSA), ""},
		{"Aromatic Rings", intString(p.AromaticRings), ""},
		{"QED Weighted", floatString(p.QEDWeighted), ""},
	}
	if v.Assessment != nil {
		verdict := color.GreenString("drug-like")
		if !v.Assessment.DrugLike {
			verdict = color.RedString("not drug-like")
		}
		rows = append(rows, []string{"Rule of Five", verdict, fmt.Sprintf("%d violation(s)", len(v.Assessment.Violations))})
	}
	return rows
}

func limitRow(label, value string, over bool, limit string) []string {
	if over {
		value = color.RedString(value)
	}
	return []string{label, value, limit}
}

type interactionTable []drug.InteractionEdge

func (interactionTable) TableHeaders() []string {
	return []string{"Interacting Drug", "Mechanism", "Action Type", "Target", "Organism"}
}

func (t interactionTable) TableRows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, e := range t {
		rows = append(rows, []string{
			e.InteractingDrug,
			truncate(e.Mechanism, 50),
			strString(e.ActionType),
			truncate(strString(e.TargetName), 40),
			strString(e.TargetOrganism),
		})
	}
	return rows
}

type complianceTable []drug.RuleCompliance

func (complianceTable) TableHeaders() []string {
	return []string{"Rule", "Passed", "Evaluated", "Compliance"}
}

func (t complianceTable) TableRows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, rc := range t {
		pct := fmt.Sprintf("%.1f%%", rc.Percent)
		switch {
		case rc.Evaluated == 0:
			pct = notAvailable
		case rc.Percent >= 80:
			pct = color.GreenString(pct)
		case rc.Percent >= 50:
			pct = color.YellowString(pct)
		default:
			pct = color.RedString(pct)
		}
		rows = append(rows, []string{rc.Rule, strconv.Itoa(rc.Passed), strconv.Itoa(rc.Evaluated), pct})
	}
	return rows
}

type assessmentTable []drug.Assessment

func (assessmentTable) TableHeaders() []string { return []string{"Drug", "Drug-like", "Violations"} }

func (t assessmentTable) TableRows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, a := range t {
		verdict := color.GreenString("Yes")
		if !a.DrugLike {
			verdict = color.RedString("No")
		}
		violations := strings.Join(a.Violations, "; ")
		if violations == "" {
			violations = "-"
		}
		rows = append(rows, []string{a.Name, verdict, violations})
	}
	return rows
}

func statsLine(s drug.PropertyStats) string {
	return fmt.Sprintf("Drugs: %d  Drug-like: %d  Mean MW: %s  Mean LogP: %s  Mean PSA: %s",
		s.Count, s.DrugLikeCnt, floatString(s.MeanMW), floatString(s.MeanLogP), floatString(s.MeanPSA))
}

func phaseString(p *int) string {
	if p == nil {
		return "Unknown"
	}
	if *p >= 4 {
		return color.GreenString(strconv.Itoa(*p))
	}
	return strconv.Itoa(*p)
}

func strString(s *string) string {
	if s == nil || *s == "" {
		return notAvailable
	}
	return *s
}

func intString(n *int) string {
	if n == nil {
		return notAvailable
	}
	return strconv.Itoa(*n)
}

func floatString(f *float64) string {
	if f == nil {
		return notAvailable
	}
	return strconv.FormatFloat(*f, 'f', 2, 64)
}

func flagString(b *bool) string {
	switch {
	case b == nil:
		return notAvailable
	case *b:
		return "Yes"
	default:
		return "No"
	}
}

func warnFlag(b *bool) string {
	if b != nil && *b {
		return color.RedString("Yes")
	}
	return flagString(b)
}

//Personal.AI order the ending
