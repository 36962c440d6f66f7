// Package wizard is the step-by-step onboarding questionnaire that collects a
// user profile one field at a time. It is a pure state machine: Apply takes a
// State and an Action and returns the next State. Rendering, animation and
// input widgets belong to whichever presentation layer drives it.
package wizard

import (
	"fmt"
	"strings"

	"lg/tdee-wizard/internal/apperr"
	"lg/tdee-wizard/internal/tdee"
)

// Step is the wizard position: Welcome, one of the eight field steps, or Complete.
type Step int

const (
	StepWelcome Step = iota
	StepStartDate
	StepWeight
	StepGoalWeight
	StepGoalChange
	StepHeight
	StepAge
	StepGender
	StepActivityLevel
	StepComplete
)

// FieldCount is the number of field steps between Welcome and Complete.
const FieldCount = int(StepActivityLevel)

func (s Step) String() string {
	switch s {
	case StepWelcome:
		return "welcome"
	case StepComplete:
		return "complete"
	}
	if p, ok := PromptFor(s); ok {
		return string(p.Field)
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// IsField reports whether s collects a field.
func (s Step) IsField() bool { return s >= StepStartDate && s <= StepActivityLevel }

// State is the whole wizard: the current step and the profile being built.
// It is a value; Apply never mutates its argument.
type State struct {
	Step  Step  `json:"step"`
	Draft Draft `json:"draft"`
}

// New returns a wizard at the Welcome step with an empty draft.
func New() State {
	return State{Step: StepWelcome, Draft: NewDraft()}
}

// Done reports whether the wizard reached Complete.
func (s State) Done() bool { return s.Step == StepComplete }

// Prompt returns the prompt for the current step; ok is false on Welcome and Complete.
func (s State) Prompt() (Prompt, bool) { return PromptFor(s.Step) }

// Profile hands off the collected draft. ok is false until the wizard is Complete.
func (s State) Profile() (Draft, bool) {
	if !s.Done() {
		return Draft{}, false
	}
	return s.Draft, true
}

// Apply runs a on s. On error the returned State is s, unchanged.
func Apply(s State, a Action) (State, error) {
	next, err := a.apply(s)
	if err != nil {
		return s, err
	}
	return next, nil
}

// Finish submits s and runs the calculator on the completed draft. The
// Complete state is returned only when the calculator accepts the draft;
// otherwise the error is returned with s unchanged so the offending field can
// be corrected with SetField and Finish retried.
func Finish(s State) (State, tdee.Result, error) {
	next, err := Apply(s, Submit{})
	if err != nil {
		return s, tdee.Result{}, err
	}
	res, err := tdee.CalculateFields(next.Draft.Fields())
	if err != nil {
		return s, tdee.Result{}, err
	}
	return next, res, nil
}

// Action is a discrete user intent: GetStarted, SetField, Next or Submit.
type Action interface {
	Name() string
	apply(State) (State, error)
}

// GetStarted leaves the Welcome screen for the first field step.
type GetStarted struct{}

// SetField records the text entered for a field. It never moves the step.
type SetField struct {
	Field Field
	Value string
}

// Next advances one step when the current field is filled in.
type Next struct{}

// Submit finishes the wizard from the last step when every field is filled in.
type Submit struct{}

func (GetStarted) Name() string { return "get_started" }
func (SetField) Name() string   { return "set_field" }
func (Next) Name() string       { return "next" }
func (Submit) Name() string     { return "submit" }

func (GetStarted) apply(s State) (State, error) {
	if s.Step != StepWelcome {
		return s, invalidAction("get_started", s.Step)
	}
	s.Step = StepStartDate
	return s, nil
}

func (a SetField) apply(s State) (State, error) {
	if s.Step == StepWelcome || s.Step == StepComplete {
		return s, invalidAction("set_field", s.Step)
	}
	draft, err := s.Draft.With(a.Field, a.Value)
	if err != nil {
		return s, err
	}
	s.Draft = draft
	return s, nil
}

func (Next) apply(s State) (State, error) {
	if !s.Step.IsField() || s.Step == StepActivityLevel {
		return s, invalidAction("next", s.Step)
	}
	p, _ := PromptFor(s.Step)
	if isBlank(s.Draft.Get(p.Field)) {
		return s, apperr.Field(apperr.MissingField, string(p.Field), "please fill in the field")
	}
	s.Step++
	return s, nil
}

func (Submit) apply(s State) (State, error) {
	if s.Step != StepActivityLevel {
		return s, invalidAction("submit", s.Step)
	}
	if missing := s.Draft.Missing(); len(missing) > 0 {
		return s, apperr.Field(apperr.MissingField, string(missing[0]), "please fill in all fields")
	}
	s.Step = StepComplete
	return s, nil
}

func invalidAction(action string, at Step) error {
	return apperr.New(apperr.InvalidAction, fmt.Sprintf("%s is not allowed at step %s", action, at))
}

func isBlank(v string) bool { return strings.TrimSpace(v) == "" }
