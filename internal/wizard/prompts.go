package wizard

import "lg/tdee-wizard/internal/tdee"

// Kind tells a presentation layer which input widget a prompt needs.
type Kind string

const (
	KindDate   Kind = "date"
	KindNumber Kind = "number"
	KindChoice Kind = "choice"
)

// Choice is one selectable option of a KindChoice prompt.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Prompt describes how a field step asks for its value.
type Prompt struct {
	Step        Step     `json:"step"`
	Field       Field    `json:"field"`
	Label       string   `json:"label"`
	Unit        string   `json:"unit,omitempty"`
	Kind        Kind     `json:"kind"`
	Placeholder string   `json:"placeholder,omitempty"`
	Choices     []Choice `json:"choices,omitempty"`
}

var prompts = []Prompt{
	{Step: StepStartDate, Field: FieldStartDate, Label: "Start Date", Kind: KindDate, Placeholder: "YYYY-MM-DD"},
	{Step: StepWeight, Field: FieldWeight, Label: "Starting Weight", Unit: "kg", Kind: KindNumber, Placeholder: "Weight"},
	{Step: StepGoalWeight, Field: FieldGoalWeight, Label: "Goal Weight", Unit: "kg", Kind: KindNumber, Placeholder: "Goal Weight"},
	{Step: StepGoalChange, Field: FieldGoalChange, Label: "Goal Change per Week", Unit: "kg/week", Kind: KindNumber, Placeholder: "-0.5"},
	{Step: StepHeight, Field: FieldHeight, Label: "Height", Unit: "cm", Kind: KindNumber, Placeholder: "Height"},
	{Step: StepAge, Field: FieldAge, Label: "Age", Unit: "years", Kind: KindNumber, Placeholder: "Age"},
	{Step: StepGender, Field: FieldGender, Label: "Gender", Kind: KindChoice, Choices: genderChoices()},
	{Step: StepActivityLevel, Field: FieldActivityLevel, Label: "Activity Level", Kind: KindChoice, Choices: activityChoices()},
}

// Prompts lists the eight field prompts in step order.
func Prompts() []Prompt {
	out := make([]Prompt, len(prompts))
	copy(out, prompts)
	return out
}

// PromptFor returns the prompt of a field step.
func PromptFor(s Step) (Prompt, bool) {
	if !s.IsField() {
		return Prompt{}, false
	}
	return prompts[int(s)-1], true
}

// PromptForField returns the prompt that collects f.
func PromptForField(f Field) (Prompt, bool) {
	for _, p := range prompts {
		if p.Field == f {
			return p, true
		}
	}
	return Prompt{}, false
}

func genderChoices() []Choice {
	var out []Choice
	for _, g := range tdee.Genders() {
		out = append(out, Choice{Value: g.Label(), Label: g.Label()})
	}
	return out
}

var activityLabels = map[tdee.ActivityLevel]string{
	tdee.Sedentary:  "Sedentary (little or no exercise)",
	tdee.Light:      "Light (1-3 days/week)",
	tdee.Moderate:   "Moderate (3-5 days/week)",
	tdee.Active:     "Active (6-7 days/week)",
	tdee.VeryActive: "Very Active (hard exercise daily)",
}

func activityChoices() []Choice {
	var out []Choice
	for _, l := range tdee.ActivityLevels() {
		out = append(out, Choice{Value: string(l), Label: activityLabels[l]})
	}
	return out
}
