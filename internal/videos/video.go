package videos

import (
	"errors"
	"time"
)

var ErrVideoNotFound = errors.New("video not found")

// Video is one entry of the exercise video library. The library is
// read-only from the API standpoint, content gets seeded separately.
type Video struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}
