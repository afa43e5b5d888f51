// Package engine implements the test session engine: session creation,
// answer grading, navigation, and result aggregation. Sessions live in
// memory and are owned by a single interactive caller at a time.
package engine

import (
	"context"
	"errors"
	"math/rand/v2"
)

var (
	// ErrEmptySource is returned when a session is built from zero cards.
	ErrEmptySource = errors.New("cannot create test session: no cards available")
	// ErrNoCurrentQuestion indicates a submission against a completed
	// session or an out-of-range question pointer.
	ErrNoCurrentQuestion = errors.New("no current question found")
	// ErrSessionNotCompleted is returned when a result is requested
	// before the session reaches completion.
	ErrSessionNotCompleted = errors.New("test session is not completed")
	// ErrNothingToRetry is returned when a retry session is requested
	// but the result has no incorrect questions.
	ErrNothingToRetry = errors.New("no incorrect questions to retry")
)

// Judge decides whether two free-text answers mean the same thing.
// An error means the judge could not be reached; the engine then falls
// back to local matching rather than failing the submission.
type Judge interface {
	Equivalent(ctx context.Context, candidate, reference string) (bool, error)
}

// Service coordinates session building, grading, navigation, and result
// aggregation. A nil judge is valid: type-answer grading then always
// uses the local fallback.
type Service struct {
	judge Judge
	rng   *rand.Rand
}

// New creates a Service using the process-wide random source for shuffles.
func New(j Judge) *Service {
	return &Service{judge: j}
}

// NewSeeded creates a Service with a deterministic random source.
// Intended for tests that assert on shuffle and sampling outcomes.
func NewSeeded(j Judge, seed1, seed2 uint64) *Service {
	return &Service{judge: j, rng: rand.New(rand.NewPCG(seed1, seed2))}
}

func (s *Service) shuffle(n int, swap func(i, j int)) {
	if s.rng != nil {
		s.rng.Shuffle(n, swap)
		return
	}
	rand.Shuffle(n, swap)
}
