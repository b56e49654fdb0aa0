package exercises

import "time"

type Exercise struct {
	ID             int       `json:"id"`
	UserID         int       `json:"-"`
	Name           string    `json:"exerciseName"`
	Type           string    `json:"exerciseType"`
	DurationMin    int       `json:"exerciseDuration"`
	CaloriesBurned float64   `json:"caloriesBurned"`
	CreatedAt      time.Time `json:"createdAt"`
}
