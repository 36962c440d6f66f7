// Package tdee estimates Basal Metabolic Rate and Total Daily Energy
// Expenditure from a user profile using the Mifflin-St Jeor equation in
// metric units (kilograms, centimeters).
package tdee

import (
	"math"
	"strconv"
	"time"

	"lg/tdee-wizard/internal/apperr"
)

// caloriesPerUnitWeekly converts a weekly weight change into a daily calorie
// surplus or deficit: ±500 kcal/day per unit/week.
const caloriesPerUnitWeekly = 500

// maxAge bounds plausible ages; anything outside 1..maxAge is invalid input.
const maxAge = 130

// maxWeeksToGoal caps the goal projection at 100 years; slower paces get none.
const maxWeeksToGoal = 52 * 100

// Profile is the fully parsed user profile the calculator works on.
type Profile struct {
	StartDate           time.Time
	WeightKG            float64
	GoalWeightKG        float64
	GoalChangePerWeekKG float64
	HeightCM            float64
	Age                 int
	Gender              Gender
	ActivityLevel       ActivityLevel
}

// Result is derived from a Profile and never mutated after it is returned.
type Result struct {
	BMR            float64 `json:"bmr"`
	TDEE           float64 `json:"tdee"`
	TargetCalories float64 `json:"target_calories"`
	Multiplier     float64 `json:"multiplier"`

	// Set only when the weekly change points toward the goal weight.
	WeeksToGoal       *float64   `json:"weeks_to_goal,omitempty"`
	ProjectedGoalDate *time.Time `json:"projected_goal_date,omitempty"`

	// Non-fatal notes coded apperr.UnrecognizedEnum, e.g. an unrecognized
	// activity level that fell back to moderate.
	Warnings []*apperr.Error `json:"warnings,omitempty"`
}

// BMR computes basal metabolic rate via Mifflin-St Jeor. Other uses the mean
// of the male and female sex constants.
func BMR(weightKG, heightCM float64, age int, g Gender) float64 {
	return 10*weightKG + 6.25*heightCM - 5*float64(age) + g.constant()
}

// Calculate computes BMR, TDEE and target calories for p. It fails with
// apperr.InvalidInput instead of returning a result tainted by NaN, Inf or
// implausible values, whether they come from the inputs or from the figures.
func Calculate(p Profile) (Result, error) {
	if err := p.validate(); err != nil {
		return Result{}, err
	}

	mult := multipliers[p.ActivityLevel]
	bmr := BMR(p.WeightKG, p.HeightCM, p.Age, p.Gender)
	tdee := bmr * mult

	res := Result{
		BMR:            bmr,
		TDEE:           tdee,
		TargetCalories: tdee + p.GoalChangePerWeekKG*caloriesPerUnitWeekly,
		Multiplier:     mult,
	}
	if err := res.check(p); err != nil {
		return Result{}, err
	}

	if weeks, ok := weeksToGoal(p.WeightKG, p.GoalWeightKG, p.GoalChangePerWeekKG); ok {
		date := p.StartDate.AddDate(0, 0, int(math.Ceil(weeks*7)))
		res.WeeksToGoal = &weeks
		res.ProjectedGoalDate = &date
	}
	return res, nil
}

// CalculateFields parses raw text fields and calculates in one step. Warnings
// from parsing are carried on the result.
func CalculateFields(f Fields) (Result, error) {
	p, warnings, err := ParseProfile(f)
	if err != nil {
		return Result{}, err
	}
	res, err := Calculate(p)
	if err != nil {
		return Result{}, err
	}
	res.Warnings = warnings
	return res, nil
}

// weeksToGoal returns how many weeks the weekly change needs to reach the goal.
// ok is false when the change is zero or points away from the goal.
func weeksToGoal(current, goal, perWeek float64) (float64, bool) {
	delta := goal - current
	if delta == 0 {
		return 0, true
	}
	if perWeek == 0 || math.Signbit(delta) != math.Signbit(perWeek) {
		return 0, false
	}
	weeks := math.Abs(delta) / math.Abs(perWeek)
	if !finite(weeks) || weeks > maxWeeksToGoal {
		return 0, false
	}
	return weeks, true
}

// check rejects figures that overflowed or a BMR that is not positive. The
// error names the input the figure is most sensitive to.
func (r Result) check(p Profile) error {
	if !finite(r.BMR) || !finite(r.TDEE) {
		field := FieldWeight
		if !finite(6.25 * p.HeightCM) {
			field = FieldHeight
		}
		return apperr.Field(apperr.InvalidInput, field, "is too large to calculate with")
	}
	if r.BMR <= 0 {
		return apperr.Field(apperr.InvalidInput, FieldWeight, "gives a BMR of zero or less for this height and age")
	}
	if !finite(r.TargetCalories) {
		return apperr.Field(apperr.InvalidInput, FieldGoalChange, "is too large to calculate with")
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func (p Profile) validate() error {
	checks := []struct {
		field string
		v     float64
	}{
		{FieldWeight, p.WeightKG},
		{FieldGoalWeight, p.GoalWeightKG},
		{FieldHeight, p.HeightCM},
	}
	for _, c := range checks {
		if !finite(c.v) || c.v <= 0 {
			return apperr.Field(apperr.InvalidInput, c.field, "must be a positive number")
		}
	}
	if !finite(p.GoalChangePerWeekKG) {
		return apperr.Field(apperr.InvalidInput, FieldGoalChange, "must be a number")
	}
	if p.Age < 1 || p.Age > maxAge {
		return apperr.Field(apperr.InvalidInput, FieldAge, "must be a whole number between 1 and 130")
	}
	if _, ok := multipliers[p.ActivityLevel]; !ok {
		return apperr.Field(apperr.InvalidInput, FieldActivityLevel, "unknown activity level")
	}
	return nil
}

// FormatKcal renders a calorie figure fixed to two decimal places.
func FormatKcal(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
