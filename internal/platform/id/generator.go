package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque ids, e.g. collection run ids.
type Generator interface {
	NewID() (string, error)
}

// TimeOrdered issues version 7 UUIDs behind an optional prefix. Ids from
// one generator sort in creation order, so run ids list oldest first.
type TimeOrdered struct {
	prefix string
}

func NewTimeOrdered(prefix string) TimeOrdered {
	return TimeOrdered{prefix: prefix}
}

func (g TimeOrdered) NewID() (string, error) {
	v, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return g.prefix + v.String(), nil
}

// Parse strips prefix and validates the rest as a UUID.
func Parse(prefix, raw string) (uuid.UUID, error) {
	if len(raw) <= len(prefix) || raw[:len(prefix)] != prefix {
		return uuid.Nil, fmt.Errorf("id %q lacks prefix %q", raw, prefix)
	}
	return uuid.Parse(raw[len(prefix):])
}
