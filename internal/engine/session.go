package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pavelanni/flashquiz/internal/model"
)

// StartSession projects a set of cards into an ordered test session.
// The caller supplies pre-fetched cards; the engine never touches the
// card store itself. Fails with ErrEmptySource on an empty card list.
func (s *Service) StartSession(setID int64, setName string, cards []model.Card, settings model.TestSettings) (*model.TestSession, error) {
	if len(cards) == 0 {
		return nil, ErrEmptySource
	}

	questions := make([]model.TestQuestion, 0, len(cards))
	for _, c := range cards {
		questions = append(questions, model.TestQuestion{
			ID:            c.ID,
			Prompt:        c.Front,
			CorrectAnswer: c.Back,
		})
	}

	if settings.ShuffleQuestions {
		s.shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
	}

	return &model.TestSession{
		ID:             newSessionID(),
		SetID:          setID,
		SetName:        setName,
		Questions:      questions,
		CurrentIndex:   0,
		Score:          0,
		TotalQuestions: len(questions),
		Mode:           settings.Mode,
		Settings:       settings,
		StartTime:      time.Now(),
		IsCompleted:    false,
	}, nil
}

// SubmitAnswer grades the answer for the current question and records it.
// Resubmission is safe: the score always equals the live count of
// questions marked correct, no matter how often a question is answered.
// The judge is consulted before any session field is written, so a slow
// or failed judge call never leaves the session half-mutated.
func (s *Service) SubmitAnswer(ctx context.Context, sess *model.TestSession, answer string, timeSpentSec int) error {
	if sess.IsCompleted {
		return ErrNoCurrentQuestion
	}
	q := sess.CurrentQuestion()
	if q == nil {
		return ErrNoCurrentQuestion
	}

	wasCorrectBefore := q.IsCorrect != nil && *q.IsCorrect
	isCorrect := s.Grade(ctx, answer, q.CorrectAnswer, sess.Mode)

	q.UserAnswer = &answer
	q.IsCorrect = &isCorrect
	q.TimeSpentSec = &timeSpentSec
	q.AttemptCount++

	switch {
	case isCorrect && !wasCorrectBefore:
		sess.Score++
	case !isCorrect && wasCorrectBefore:
		sess.Score--
	}

	return nil
}

// Advance moves the pointer to the next question, or completes the
// session when called on the last one. Completion is terminal: EndTime
// is set once and further Advance calls are no-ops.
func (s *Service) Advance(sess *model.TestSession) {
	if sess.IsCompleted {
		return
	}
	if sess.CurrentIndex < sess.TotalQuestions-1 {
		sess.CurrentIndex++
		return
	}
	now := time.Now()
	sess.IsCompleted = true
	sess.EndTime = &now
}

// Retreat moves the pointer back one question; no-op at the first
// question or once the session is completed. Recorded answers are
// preserved so the caller can redisplay them.
func (s *Service) Retreat(sess *model.TestSession) {
	if sess.IsCompleted {
		return
	}
	if sess.CurrentIndex > 0 {
		sess.CurrentIndex--
	}
}

// newSessionID returns an identifier unique in practice: millisecond
// timestamp plus a random suffix.
func newSessionID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("test_%d_%s", time.Now().UnixMilli(), suffix)
}
