package id

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator creates opaque IDs suitable for request correlation.
type Generator interface {
	NewID() (string, error)
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}

	return value.String(), nil
}

// Sequence hands out fixture ids for a single aggregation pass: 1, 2, 3, ...
type Sequence struct {
	last atomic.Int64
}

func NewSequence() *Sequence {
	return &Sequence{}
}

func (s *Sequence) Next() int64 {
	return s.last.Add(1)
}

// Issued reports how many ids were handed out so far.
func (s *Sequence) Issued() int64 {
	return s.last.Load()
}
