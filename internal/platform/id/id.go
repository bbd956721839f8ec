package id

import (
	"strings"

	"github.com/google/uuid"
)

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

type UUID struct{}

func (UUID) New() string {
	return uuid.NewString()
}

// Short returns the first n hex characters of a random UUID.
func Short(n int) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n <= 0 || n > len(raw) {
		return raw
	}
	return raw[:n]
}
