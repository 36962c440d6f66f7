package main

import (
	"time"

	"lg/tdee-wizard/internal/apperr"
	"lg/tdee-wizard/internal/report"
	"lg/tdee-wizard/internal/tdee"
	"lg/tdee-wizard/internal/wizard"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(tdee.DateLayout) + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"`+tdee.DateLayout+`"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

/* ─── Wizard responses ───────────────────────────────────────────────── */

// wizardResponse is the shape of every wizard session endpoint. Prompt is
// omitted on the Welcome step; NextAction tells the client which button to show.
type wizardResponse struct {
	ID         string            `json:"id"`
	Step       int               `json:"step"`
	StepName   string            `json:"step_name"`
	TotalSteps int               `json:"total_steps"`
	NextAction string            `json:"next_action"`
	Prompt     *wizard.Prompt    `json:"prompt,omitempty"`
	Draft      map[string]string `json:"draft"`
}

func newWizardResponse(id string, s wizard.State) wizardResponse {
	resp := wizardResponse{
		ID:         id,
		Step:       int(s.Step),
		StepName:   s.Step.String(),
		TotalSteps: wizard.FieldCount,
		NextAction: nextAction(s.Step),
		Draft:      s.Draft.Map(),
	}
	if p, ok := s.Prompt(); ok {
		resp.Prompt = &p
	}
	return resp
}

func nextAction(s wizard.Step) string {
	switch s {
	case wizard.StepWelcome:
		return wizard.GetStarted{}.Name()
	case wizard.StepActivityLevel:
		return wizard.Submit{}.Name()
	case wizard.StepComplete:
		return ""
	default:
		return wizard.Next{}.Name()
	}
}

// setFieldRequest is the request body for PUT /api/wizard/:id/fields/:field.
// Value is a pointer so an omitted value is rejected while "" clears the field.
type setFieldRequest struct {
	Value *string `json:"value" binding:"required"`
}

/* ─── Result responses ───────────────────────────────────────────────── */

// resultResponse is returned by POST /api/tdee and POST /api/wizard/:id/submit.
// Numbers are exact; Display holds the result screen rows fixed to two places.
type resultResponse struct {
	StartDate         DateOnly          `json:"start_date"`
	Fields            map[string]string `json:"fields"`
	BMR               float64           `json:"bmr"`
	TDEE              float64           `json:"tdee"`
	TargetCalories    float64           `json:"target_calories"`
	Multiplier        float64           `json:"multiplier"`
	WeeksToGoal       *float64          `json:"weeks_to_goal,omitempty"`
	ProjectedGoalDate *DateOnly         `json:"projected_goal_date,omitempty"`
	Warnings          []*apperr.Error   `json:"warnings,omitempty"`
	Display           []string          `json:"display"`
}

func newResultResponse(d wizard.Draft, res tdee.Result) resultResponse {
	resp := resultResponse{
		Fields:         d.Map(),
		BMR:            res.BMR,
		TDEE:           res.TDEE,
		TargetCalories: res.TargetCalories,
		Multiplier:     res.Multiplier,
		WeeksToGoal:    res.WeeksToGoal,
		Warnings:       res.Warnings,
		Display:        report.Build(d, res).Lines(),
	}
	// The draft already passed the calculator, so the date parses.
	if t, err := tdee.ParseDate(d.Get(wizard.FieldStartDate)); err == nil {
		resp.StartDate = DateOnly{t}
	}
	if res.ProjectedGoalDate != nil {
		resp.ProjectedGoalDate = &DateOnly{*res.ProjectedGoalDate}
	}
	return resp
}

// activityLevelResponse is one row of GET /api/activity-levels.
type activityLevelResponse struct {
	Level      string  `json:"level"`
	Label      string  `json:"label"`
	Multiplier float64 `json:"multiplier"`
}
