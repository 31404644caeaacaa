package report

import (
	"fmt"
	"strings"

	"github.com/tuumbleweed/xerr"
)

// Section names a standalone print of one part of the report.
type Section string

const (
	SectionFundSources  Section = "fund-sources"
	SectionTransactions Section = "transactions"
	SectionBudget       Section = "budget"
	SectionCharts       Section = "charts"
)

// Sections in report order.
var Sections = []Section{SectionFundSources, SectionTransactions, SectionBudget, SectionCharts}

var sectionAliases = map[string]Section{
	"fund-sources": SectionFundSources,
	"sources":      SectionFundSources,
	"sumber-dana":  SectionFundSources,
	"transactions": SectionTransactions,
	"transaksi":    SectionTransactions,
	"budget":       SectionBudget,
	"seksi":        SectionBudget,
	"charts":       SectionCharts,
	"grafik":       SectionCharts,
}

// ParseSection accepts the section names and their Indonesian aliases, case-insensitively.
func ParseSection(raw string) (section Section, e *xerr.Error) {
	section, ok := sectionAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return section, xerr.NewError(fmt.Errorf("section is '%s'", raw), "unknown report section", Sections)
	}
	return section, nil
}

func sectionPlan(section Section, bundle Bundle) (stages []stage, e *xerr.Error) {
	switch section {
	case SectionFundSources:
		return []stage{{kind: stageFundSources, title: "Fund Sources"}}, nil
	case SectionTransactions:
		stages = []stage{{kind: stageTransactions, title: "Transactions"}}
		return append(stages, proofStages(bundle)...), nil
	case SectionBudget:
		return []stage{{kind: stageBudget, title: "Budget per Section"}}, nil
	case SectionCharts:
		return []stage{{kind: stageCharts, title: "Charts & Proportions"}}, nil
	}
	return nil, xerr.NewError(fmt.Errorf("section is '%s'", section), "unknown report section", Sections)
}
