package food

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

var ErrFoodNotFound = errors.New("food not found")

// Macros holds the nutrient values of a single saved food, per serving.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Sodium   float64 `json:"sodium"`
	Sugar    float64 `json:"sugar"`
}

type Food struct {
	ID        int       `json:"id"`
	UserID    int       `json:"-"`
	Name      string    `json:"foodName"`
	Type      string    `json:"foodType"`
	Category  string    `json:"foodCategory"`
	Macros    Macros    `json:"foodMacros"`
	CreatedAt time.Time `json:"createdAt"`
}

var nonNumericChars = regexp.MustCompile(`[^\d.-]`)

// ParseMacroValue reads a macro value coming from lookup results, where
// values arrive as strings with units attached, e.g. "23g" or "150mg".
// Empty input yields zero.
func ParseMacroValue(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	cleaned := nonNumericChars.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0, nil
	}
	val, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, err
	}
	return val, nil
}
