package engine

import (
	"math"
	"time"

	"github.com/pavelanni/flashquiz/internal/model"
)

// Complete reduces a completed session into an immutable result
// snapshot. Calling it on a session that has not reached completion is
// a sequencing error and fails with ErrSessionNotCompleted.
func (s *Service) Complete(sess *model.TestSession) (model.TestResult, error) {
	if !sess.IsCompleted {
		return model.TestResult{}, ErrSessionNotCompleted
	}

	timeSpent := 0
	completedAt := time.Now()
	if sess.EndTime != nil {
		timeSpent = int(sess.EndTime.Sub(sess.StartTime).Seconds())
		completedAt = *sess.EndTime
	}

	var incorrect []model.TestQuestion
	for _, q := range sess.Questions {
		if q.IsCorrect != nil && !*q.IsCorrect {
			incorrect = append(incorrect, q)
		}
	}

	percentage := int(math.Round(float64(sess.Score) / float64(sess.TotalQuestions) * 100))

	return model.TestResult{
		SessionID:          sess.ID,
		SetID:              sess.SetID,
		SetName:            sess.SetName,
		Mode:               sess.Mode,
		Score:              sess.Score,
		TotalQuestions:     sess.TotalQuestions,
		Percentage:         percentage,
		TimeSpentSec:       timeSpent,
		CompletedAt:        completedAt,
		IncorrectQuestions: incorrect,
	}, nil
}

// RetrySession builds a fresh session from the questions missed in a
// prior result. The full card pool is narrowed to the missed IDs; the
// mode carries over from the result and the questions are always
// reshuffled. Fails with ErrNothingToRetry when nothing was missed.
func (s *Service) RetrySession(settings model.TestSettings, result model.TestResult, pool []model.Card) (*model.TestSession, error) {
	missed := make(map[int64]bool, len(result.IncorrectQuestions))
	for _, q := range result.IncorrectQuestions {
		missed[q.ID] = true
	}

	var cards []model.Card
	for _, c := range pool {
		if missed[c.ID] {
			cards = append(cards, c)
		}
	}
	if len(cards) == 0 {
		return nil, ErrNothingToRetry
	}

	retrySettings := settings
	retrySettings.Mode = result.Mode
	retrySettings.ShuffleQuestions = true
	return s.StartSession(result.SetID, result.SetName, cards, retrySettings)
}
