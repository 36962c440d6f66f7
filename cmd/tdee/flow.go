package main

import (
	"errors"
	"time"

	"lg/tdee-wizard/internal/apperr"
	"lg/tdee-wizard/internal/tdee"
	"lg/tdee-wizard/internal/wizard"
)

// flow is one terminal pass through the wizard. After the calculator rejects
// a field, editing names it until a corrected value is entered.
type flow struct {
	state   wizard.State
	editing wizard.Field
	result  *tdee.Result
}

func newFlow() flow {
	return flow{state: wizard.New()}
}

// prompt returns the question to ask next; ok is false on Welcome and once done.
func (f flow) prompt() (wizard.Prompt, bool) {
	if f.result != nil {
		return wizard.Prompt{}, false
	}
	if f.editing != "" {
		return wizard.PromptForField(f.editing)
	}
	return f.state.Prompt()
}

// start leaves the Welcome screen.
func (f flow) start() (flow, error) {
	next, err := wizard.Apply(f.state, wizard.GetStarted{})
	if err != nil {
		return f, err
	}
	f.state = next
	return f, nil
}

// defaultValue is the text to prefill for p: the draft value, or today's date
// for an empty date field.
func (f flow) defaultValue(p wizard.Prompt, today time.Time) string {
	v := f.state.Draft.Get(p.Field)
	if v == "" && p.Kind == wizard.KindDate {
		v = today.Format(tdee.DateLayout)
	}
	return v
}

// commit records value for the current prompt and moves on: Next on a field
// step, Finish on the last one or after a correction. On error f is returned
// unchanged apart from the recorded value, and editing points at the field
// the calculator rejected.
func (f flow) commit(value string) (flow, error) {
	p, ok := f.prompt()
	if !ok {
		return f, apperr.New(apperr.InvalidAction, "nothing to enter at step "+f.state.Step.String())
	}
	next, err := wizard.Apply(f.state, wizard.SetField{Field: p.Field, Value: value})
	if err != nil {
		return f, err
	}
	f.state = next

	if f.editing == "" && f.state.Step != wizard.StepActivityLevel {
		next, err := wizard.Apply(f.state, wizard.Next{})
		if err != nil {
			return f, err
		}
		f.state = next
		return f, nil
	}
	return f.finish()
}

func (f flow) finish() (flow, error) {
	done, res, err := wizard.Finish(f.state)
	if err != nil {
		f.editing = ""
		var ae *apperr.Error
		if errors.As(err, &ae) && ae.Field != "" {
			if field, ok := wizard.ParseField(ae.Field); ok {
				f.editing = field
			}
		}
		return f, err
	}
	f.state, f.editing, f.result = done, "", &res
	return f, nil
}

// errorText renders err for the terminal, prefixed with the field's label.
func errorText(err error) string {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		return err.Error()
	}
	if field, ok := wizard.ParseField(ae.Field); ok {
		if p, ok := wizard.PromptForField(field); ok {
			return p.Label + ": " + ae.Message
		}
	}
	return ae.Message
}
