// Package report renders the result screen shown once the wizard completes:
// every entered field echoed verbatim with its unit, then the computed figures.
package report

import (
	"fmt"
	"strings"

	"lg/tdee-wizard/internal/tdee"
	"lg/tdee-wizard/internal/wizard"
)

// Line is one label/value row of the result screen.
type Line struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Summary is the result screen for one completed profile.
type Summary struct {
	Title  string      `json:"title"`
	Fields []Line      `json:"fields"`
	Result tdee.Result `json:"result"`
}

// Build pairs the entered draft with its computed result.
func Build(d wizard.Draft, res tdee.Result) Summary {
	s := Summary{Title: "Results", Result: res}
	for _, p := range wizard.Prompts() {
		v := d.Get(p.Field)
		if p.Kind == wizard.KindDate {
			if t, err := tdee.ParseDate(v); err == nil {
				v = tdee.FormatShortDate(t)
			}
		}
		if p.Unit != "" {
			v = v + " " + p.Unit
		}
		s.Fields = append(s.Fields, Line{Label: p.Label, Value: v})
	}
	return s
}

// Lines renders the summary as display rows, e.g. "TDEE: 2594.31 kcal/day".
func (s Summary) Lines() []string {
	out := make([]string, 0, len(s.Fields)+5)
	for _, l := range s.Fields {
		out = append(out, l.Label+": "+l.Value)
	}
	out = append(out,
		"TDEE: "+tdee.FormatKcal(s.Result.TDEE)+" kcal/day",
		"Target Calories: "+tdee.FormatKcal(s.Result.TargetCalories)+" kcal/day",
	)
	if s.Result.ProjectedGoalDate != nil && s.Result.WeeksToGoal != nil {
		out = append(out, fmt.Sprintf("Projected Goal Date: %s (%.1f weeks)",
			tdee.FormatShortDate(*s.Result.ProjectedGoalDate), *s.Result.WeeksToGoal))
	}
	for _, w := range s.Result.Warnings {
		out = append(out, "Note: "+w.Message)
	}
	return out
}

func (s Summary) String() string {
	return s.Title + "\n" + strings.Join(s.Lines(), "\n")
}
