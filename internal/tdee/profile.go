package tdee

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"lg/tdee-wizard/internal/apperr"
)

// Field names, shared with the wizard and the HTTP API.
const (
	FieldStartDate     = "start_date"
	FieldWeight        = "weight"
	FieldGoalWeight    = "goal_weight"
	FieldGoalChange    = "goal_change_per_week"
	FieldHeight        = "height"
	FieldAge           = "age"
	FieldGender        = "gender"
	FieldActivityLevel = "activity_level"
)

// DateLayout is the canonical start date format.
const DateLayout = "2006-01-02"

// shortDateLayout is the localized short date the output surface echoes,
// also accepted on input.
const shortDateLayout = "1/2/2006"

// Fields holds the raw text of the eight profile inputs as the user typed them.
type Fields struct {
	StartDate         string `json:"start_date"`
	Weight            string `json:"weight"`
	GoalWeight        string `json:"goal_weight"`
	GoalChangePerWeek string `json:"goal_change_per_week"`
	Height            string `json:"height"`
	Age               string `json:"age"`
	Gender            string `json:"gender"`
	ActivityLevel     string `json:"activity_level"`
}

// ParseProfile converts raw fields into a Profile. Numeric and date fields that
// fail to parse yield apperr.InvalidInput naming the field. Unrecognized gender
// or activity text is not fatal: it falls back (Other, Moderate) and is reported
// in the returned warnings.
func ParseProfile(f Fields) (Profile, []*apperr.Error, error) {
	var p Profile
	var err error

	if p.StartDate, err = ParseDate(f.StartDate); err != nil {
		return Profile{}, nil, apperr.Wrap(apperr.InvalidInput, FieldStartDate, err, "must be a date like 2026-01-31")
	}
	if p.WeightKG, err = parseNumber(FieldWeight, f.Weight); err != nil {
		return Profile{}, nil, err
	}
	if p.GoalWeightKG, err = parseNumber(FieldGoalWeight, f.GoalWeight); err != nil {
		return Profile{}, nil, err
	}
	if p.GoalChangePerWeekKG, err = parseNumber(FieldGoalChange, f.GoalChangePerWeek); err != nil {
		return Profile{}, nil, err
	}
	if p.HeightCM, err = parseNumber(FieldHeight, f.Height); err != nil {
		return Profile{}, nil, err
	}
	age, convErr := strconv.Atoi(strings.TrimSpace(f.Age))
	if convErr != nil {
		return Profile{}, nil, apperr.Wrap(apperr.InvalidInput, FieldAge, convErr, "must be a whole number")
	}
	p.Age = age

	var warnings []*apperr.Error
	var ok bool
	if p.Gender, ok = ParseGender(f.Gender); !ok {
		warnings = append(warnings, apperr.Field(apperr.UnrecognizedEnum, FieldGender,
			fmt.Sprintf("gender %q not recognized, using the neutral formula", f.Gender)))
	}
	if p.ActivityLevel, ok = ParseActivityLevel(f.ActivityLevel); !ok {
		warnings = append(warnings, apperr.Field(apperr.UnrecognizedEnum, FieldActivityLevel,
			fmt.Sprintf("activity level %q not recognized, using %s", f.ActivityLevel, DefaultActivityLevel)))
	}

	if err := p.validate(); err != nil {
		return Profile{}, nil, err
	}
	return p, warnings, nil
}

// ParseDate accepts YYYY-MM-DD or M/D/YYYY.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(shortDateLayout, s)
}

// FormatShortDate renders t as a localized short date (M/D/YYYY).
func FormatShortDate(t time.Time) string {
	return t.Format(shortDateLayout)
}

func parseNumber(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, apperr.Wrap(apperr.InvalidInput, field, err, "must be a number")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperr.Field(apperr.InvalidInput, field, "must be a finite number")
	}
	return v, nil
}
