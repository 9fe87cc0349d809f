// Package uuid names scratch files and play records.
package uuid

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/podplay/internal/common/uuid UUID

import "github.com/google/uuid"

// UUID generates unique identifiers
type UUID interface {
	NewUUID() string
}

// Random generates version 4 UUIDs
type Random struct{}

// New returns a random UUID generator
func New() *Random {
	return &Random{}
}

func (Random) NewUUID() string {
	return uuid.NewString()
}
