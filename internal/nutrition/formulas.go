package nutrition

import (
	"errors"
	"fmt"
	"time"

	"github.com/fitvibe/fitvibe/internal/users"
)

// ErrOutOfDomain marks a categorical value no formula is defined for.
// It signals bad stored data or a programming error, not a user mistake.
var ErrOutOfDomain = errors.New("value out of computation domain")

// Mifflin-St Jeor: BMR = 10*weightKg + 6.25*heightCm - 5*age + genderOffset
const (
	bmrWeightFactor = 10.0
	bmrHeightFactor = 6.25
	bmrAgeFactor    = 5.0
	bmrMaleOffset   = 5.0
	bmrFemaleOffset = -161.0
)

// activityMultipliers follows the standard Mifflin-St Jeor companion table,
// ordered sedentary < light < moderate < active < very_active.
var activityMultipliers = map[users.ActivityLevel]float64{
	users.ActivitySedentary:  1.2,
	users.ActivityLight:      1.375,
	users.ActivityModerate:   1.55,
	users.ActivityActive:     1.725,
	users.ActivityVeryActive: 1.9,
}

// goalCalorieOffsets: a flat daily deficit for losing, a modest surplus for
// gaining, TDEE unchanged for maintaining.
var goalCalorieOffsets = map[users.Goal]float64{
	users.GoalLose:     -500,
	users.GoalMaintain: 0,
	users.GoalGain:     300,
}

type Macro string

const (
	MacroProtein Macro = "protein"
	MacroCarbs   Macro = "carbs"
	MacroFat     Macro = "fat"
)

const (
	kcalPerGramProtein = 4.0
	kcalPerGramCarbs   = 4.0
	kcalPerGramFat     = 9.0
)

// macroCalorieShare splits the calorie target by percentage of calories:
// 30% protein, 40% carbs, 30% fat. Shares sum to 1.
var macroCalorieShare = map[Macro]float64{
	MacroProtein: 0.30,
	MacroCarbs:   0.40,
	MacroFat:     0.30,
}

// CalculateBMR computes the basal metabolic rate in kcal/day via Mifflin-St Jeor.
func CalculateBMR(gender users.Gender, weightKg, heightCm float64, ageYears int) (float64, error) {
	base := bmrWeightFactor*weightKg + bmrHeightFactor*heightCm - bmrAgeFactor*float64(ageYears)
	switch gender {
	case users.GenderMale:
		return base + bmrMaleOffset, nil
	case users.GenderFemale:
		return base + bmrFemaleOffset, nil
	default:
		return 0, fmt.Errorf("%w: unknown gender %q", ErrOutOfDomain, gender)
	}
}

// CalculateTDEE scales BMR by the activity level multiplier.
func CalculateTDEE(bmr float64, activityLevel users.ActivityLevel) (float64, error) {
	multiplier, ok := activityMultipliers[activityLevel]
	if !ok {
		return 0, fmt.Errorf("%w: unknown activity level %q", ErrOutOfDomain, activityLevel)
	}
	return bmr * multiplier, nil
}

// CalorieIntake applies the goal offset to TDEE.
func CalorieIntake(goal users.Goal, tdee float64) (float64, error) {
	offset, ok := goalCalorieOffsets[goal]
	if !ok {
		return 0, fmt.Errorf("%w: unknown goal %q", ErrOutOfDomain, goal)
	}
	return tdee + offset, nil
}

// CalculateDailyGoals splits the calorie target into macro gram targets:
// grams = share * calorieTarget / kcalPerGram.
func CalculateDailyGoals(calorieTarget float64) (map[Macro]float64, error) {
	if calorieTarget <= 0 {
		return nil, fmt.Errorf("%w: calorie target must be positive, got %f", ErrOutOfDomain, calorieTarget)
	}

	return map[Macro]float64{
		MacroProtein: macroCalorieShare[MacroProtein] * calorieTarget / kcalPerGramProtein,
		MacroCarbs:   macroCalorieShare[MacroCarbs] * calorieTarget / kcalPerGramCarbs,
		MacroFat:     macroCalorieShare[MacroFat] * calorieTarget / kcalPerGramFat,
	}, nil
}

// AgeAt returns whole calendar years between dateOfBirth and now,
// decremented by one when the birthday has not yet occurred in now's year.
func AgeAt(dateOfBirth, now time.Time) int {
	age := now.Year() - dateOfBirth.Year()
	if now.Month() < dateOfBirth.Month() ||
		(now.Month() == dateOfBirth.Month() && now.Day() < dateOfBirth.Day()) {
		age--
	}
	return age
}
