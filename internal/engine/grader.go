package engine

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pavelanni/flashquiz/internal/model"
)

// Grade decides whether answer matches reference under the given mode.
// Flashcard and multiple-choice use normalized exact match. Type-answer
// asks the semantic judge and degrades to local matching if the judge is
// unreachable; it never fails.
func (s *Service) Grade(ctx context.Context, answer, reference string, mode model.TestMode) bool {
	switch mode {
	case model.ModeTypeAnswer:
		return s.gradeSemantic(ctx, answer, reference)
	default:
		return normalize(answer) == normalize(reference)
	}
}

func (s *Service) gradeSemantic(ctx context.Context, answer, reference string) bool {
	if s.judge != nil {
		equivalent, err := s.judge.Equivalent(ctx, answer, reference)
		if err == nil {
			return equivalent
		}
		slog.Warn("semantic judge unavailable, falling back to local match", "error", err)
	}
	return fallbackMatch(answer, reference)
}

// fallbackMatch is the lenient local heuristic used when the judge is
// unavailable: normalized exact match, or either answer contained in
// the other.
func fallbackMatch(answer, reference string) bool {
	a := normalize(answer)
	r := normalize(reference)
	return a == r || strings.Contains(a, r) || strings.Contains(r, a)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
