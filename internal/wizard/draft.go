package wizard

import (
	"encoding/json"

	"lg/tdee-wizard/internal/apperr"
	"lg/tdee-wizard/internal/tdee"
)

// Field names one profile input.
type Field string

const (
	FieldStartDate     Field = tdee.FieldStartDate
	FieldWeight        Field = tdee.FieldWeight
	FieldGoalWeight    Field = tdee.FieldGoalWeight
	FieldGoalChange    Field = tdee.FieldGoalChange
	FieldHeight        Field = tdee.FieldHeight
	FieldAge           Field = tdee.FieldAge
	FieldGender        Field = tdee.FieldGender
	FieldActivityLevel Field = tdee.FieldActivityLevel
)

// Draft is the profile in progress, held as the text last entered per field.
type Draft struct {
	values tdee.Fields
}

// NewDraft returns an empty draft with the activity level preselected.
func NewDraft() Draft {
	return Draft{values: tdee.Fields{ActivityLevel: string(tdee.DefaultActivityLevel)}}
}

// DraftFrom builds a draft from a complete form submitted in one go. A blank
// activity level keeps the preselected default.
func DraftFrom(f tdee.Fields) Draft {
	if isBlank(f.ActivityLevel) {
		f.ActivityLevel = string(tdee.DefaultActivityLevel)
	}
	return Draft{values: f}
}

// ParseField resolves a field name; ok is false when it is not one of the eight.
func ParseField(name string) (Field, bool) {
	f := Field(name)
	if _, ok := fieldRef(&tdee.Fields{}, f); ok {
		return f, true
	}
	return "", false
}

// Get returns the text stored for f, or "" for unknown fields.
func (d Draft) Get(f Field) string {
	if p, ok := fieldRef(&d.values, f); ok {
		return *p
	}
	return ""
}

// With returns a copy of d with f set to v.
func (d Draft) With(f Field, v string) (Draft, error) {
	p, ok := fieldRef(&d.values, f)
	if !ok {
		return d, apperr.Field(apperr.InvalidInput, string(f), "unknown field")
	}
	*p = v
	return d, nil
}

// Missing lists the blank fields in step order.
func (d Draft) Missing() []Field {
	var out []Field
	for _, p := range Prompts() {
		if isBlank(d.Get(p.Field)) {
			out = append(out, p.Field)
		}
	}
	return out
}

// Fields returns the raw values in the form the calculator parses.
func (d Draft) Fields() tdee.Fields { return d.values }

// Map returns the values keyed by field name.
func (d Draft) Map() map[string]string {
	out := make(map[string]string, FieldCount)
	for _, p := range Prompts() {
		out[string(p.Field)] = d.Get(p.Field)
	}
	return out
}

func (d Draft) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.values)
}

func fieldRef(v *tdee.Fields, f Field) (*string, bool) {
	switch f {
	case FieldStartDate:
		return &v.StartDate, true
	case FieldWeight:
		return &v.Weight, true
	case FieldGoalWeight:
		return &v.GoalWeight, true
	case FieldGoalChange:
		return &v.GoalChangePerWeek, true
	case FieldHeight:
		return &v.Height, true
	case FieldAge:
		return &v.Age, true
	case FieldGender:
		return &v.Gender, true
	case FieldActivityLevel:
		return &v.ActivityLevel, true
	}
	return nil, false
}
