package users

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrMetricsNotFound = errors.New("user metrics not found")
	// ErrConcurrentUpdate is returned by the conditional last-quote-timestamp
	// update when another request committed in between.
	ErrConcurrentUpdate = errors.New("concurrent user update")
)

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	// LastQuoteGeneratedAt is nil until the first successful quote generation.
	LastQuoteGeneratedAt *time.Time `json:"lastQuoteGeneratedAt,omitempty"`
}

// Metrics holds the biometric and activity inputs the calorie pipeline reads.
type Metrics struct {
	UserID        int           `json:"-"`
	Gender        Gender        `json:"gender"`
	WeightKg      float64       `json:"weight"`
	HeightCm      float64       `json:"height"`
	DateOfBirth   time.Time     `json:"dateOfBirth"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	// Goals is ordered, the first entry is the authoritative one.
	Goals []Goal `json:"goals"`
}

func (m *Metrics) Validate() error {
	if m.WeightKg <= 0 {
		return fmt.Errorf("weight must be positive, got %f", m.WeightKg)
	}
	if m.HeightCm <= 0 {
		return fmt.Errorf("height must be positive, got %f", m.HeightCm)
	}
	return nil
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(s) {
	case "male", "m":
		return GenderMale, nil
	case "female", "f":
		return GenderFemale, nil
	default:
		return "", fmt.Errorf("unknown gender: %s", s)
	}
}

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// ActivityLevels is ordered from least to most active.
var ActivityLevels = []ActivityLevel{
	ActivitySedentary,
	ActivityLight,
	ActivityModerate,
	ActivityActive,
	ActivityVeryActive,
}

func ParseActivityLevel(s string) (ActivityLevel, error) {
	normalized := strings.ReplaceAll(strings.ToLower(s), "-", "_")
	for _, level := range ActivityLevels {
		if normalized == string(level) {
			return level, nil
		}
	}
	return "", fmt.Errorf("unknown activity level: %s", s)
}

type Goal string

const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

func ParseGoal(s string) (Goal, error) {
	switch strings.ToLower(s) {
	case "lose", "lose weight", "lose fat":
		return GoalLose, nil
	case "maintain", "maintain weight":
		return GoalMaintain, nil
	case "gain", "gain muscle", "gain weight":
		return GoalGain, nil
	default:
		return "", fmt.Errorf("unknown goal: %s", s)
	}
}

func ParseGoals(raw []string) ([]Goal, error) {
	goals := make([]Goal, 0, len(raw))
	for _, s := range raw {
		goal, err := ParseGoal(s)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, nil
}
