package todo

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewID returns a random v4 UUID, or the current Unix time in milliseconds
// when the system randomness source is unavailable.
func NewID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
	return id.String()
}
