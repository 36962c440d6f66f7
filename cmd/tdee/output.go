package main

import (
	"encoding/json"
	"fmt"
	"io"

	"lg/tdee-wizard/internal/report"
	"lg/tdee-wizard/internal/tdee"
	"lg/tdee-wizard/internal/wizard"
)

// jsonResult is the --json output: the entered fields and the computed figures.
type jsonResult struct {
	Fields map[string]string `json:"fields"`
	Result tdee.Result       `json:"result"`
	Lines  []string          `json:"display"`
}

// writeResult prints the completed wizard as the result screen or as JSON.
func writeResult(out io.Writer, draft wizard.Draft, res tdee.Result, asJSON bool) error {
	s := report.Build(draft, res)
	if !asJSON {
		_, err := fmt.Fprintln(out, "\n"+s.String())
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonResult{Fields: draft.Map(), Result: res, Lines: s.Lines()})
}
