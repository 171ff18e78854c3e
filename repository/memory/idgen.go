package memory

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator hands out record ids. Implementations must be safe for
// concurrent use and never repeat an id.
type IDGenerator interface {
	NewID() string
}

const (
	IDStrategySequence = "sequence"
	IDStrategyUUID     = "uuid"
)

// Sequence yields "1", "2", ... and never reuses a value, even after deletes.
type Sequence struct {
	last atomic.Int64
}

func (s *Sequence) NewID() string {
	return strconv.FormatInt(s.last.Add(1), 10)
}

// UUIDs yields random RFC 4122 ids.
type UUIDs struct{}

func (UUIDs) NewID() string {
	return uuid.NewString()
}

// GeneratorFactory builds one generator per collection.
type GeneratorFactory func() IDGenerator

// NewGeneratorFactory resolves a strategy name.
func NewGeneratorFactory(strategy string) (GeneratorFactory, error) {
	switch strategy {
	case "", IDStrategySequence:
		return func() IDGenerator { return &Sequence{} }, nil
	case IDStrategyUUID:
		return func() IDGenerator { return UUIDs{} }, nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}
