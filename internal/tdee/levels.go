package tdee

import (
	"sort"
	"strings"
)

// Gender selects the sex constant of the BMR equation.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

func (g Gender) constant() float64 {
	switch g {
	case Male:
		return 5
	case Female:
		return -161
	default:
		return (5 + -161) / 2.0
	}
}

// Label is the capitalized form shown on prompts.
func (g Gender) Label() string {
	switch g {
	case Male:
		return "Male"
	case Female:
		return "Female"
	default:
		return "Other"
	}
}

// Genders lists the accepted genders in prompt order.
func Genders() []Gender { return []Gender{Male, Female, Other} }

var genderAliases = map[string]Gender{
	"male":   Male,
	"m":      Male,
	"female": Female,
	"f":      Female,
	"other":  Other,
	"o":      Other,
}

// ParseGender matches s case-insensitively. ok is false for unrecognized text,
// in which case Other is returned.
func ParseGender(s string) (Gender, bool) {
	g, ok := genderAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Other, false
	}
	return g, true
}

// ActivityLevel is a lifestyle intensity label with a fixed TDEE multiplier.
type ActivityLevel string

const (
	Sedentary  ActivityLevel = "sedentary"
	Light      ActivityLevel = "light"
	Moderate   ActivityLevel = "moderate"
	Active     ActivityLevel = "active"
	VeryActive ActivityLevel = "very_active"
)

// multipliers maps activity levels to their TDEE multiplier. It is never
// written after init; Multipliers hands out copies.
var multipliers = map[ActivityLevel]float64{
	Sedentary:  1.2,
	Light:      1.375,
	Moderate:   1.55,
	Active:     1.725,
	VeryActive: 1.9,
}

// Labels used by the picker-based variant of the form.
var activityAliases = map[string]ActivityLevel{
	"low":     Sedentary,
	"high":    Active,
	"extreme": VeryActive,
}

// DefaultActivityLevel is used for unrecognized input.
const DefaultActivityLevel = Moderate

// ActivityLevels lists the canonical levels from least to most active.
func ActivityLevels() []ActivityLevel {
	levels := make([]ActivityLevel, 0, len(multipliers))
	for l := range multipliers {
		levels = append(levels, l)
	}
	sort.Slice(levels, func(i, j int) bool { return multipliers[levels[i]] < multipliers[levels[j]] })
	return levels
}

// Multipliers returns a copy of the activity multiplier table.
func Multipliers() map[ActivityLevel]float64 {
	out := make(map[ActivityLevel]float64, len(multipliers))
	for k, v := range multipliers {
		out[k] = v
	}
	return out
}

// ParseActivityLevel normalizes s (case, spaces, hyphens) and resolves aliases.
// ok is false for unrecognized text, in which case DefaultActivityLevel is returned.
func ParseActivityLevel(s string) (ActivityLevel, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if _, ok := multipliers[ActivityLevel(key)]; ok {
		return ActivityLevel(key), true
	}
	if l, ok := activityAliases[key]; ok {
		return l, true
	}
	return DefaultActivityLevel, false
}

// ActivityMultiplier returns the multiplier for label, falling back to the
// moderate multiplier (1.55) when the label is not recognized.
func ActivityMultiplier(label string) float64 {
	l, _ := ParseActivityLevel(label)
	return multipliers[l]
}

// Multiplier returns the level's constant.
func (l ActivityLevel) Multiplier() float64 {
	if m, ok := multipliers[l]; ok {
		return m
	}
	return multipliers[DefaultActivityLevel]
}
