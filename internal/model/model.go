package model

import "time"

// TestMode represents the grading/interaction style of a test session.
type TestMode string

const (
	// ModeFlashcard is self-graded: the UI submits the reference answer
	// ("I got it right") or a sentinel ("I need to review") on the user's behalf.
	ModeFlashcard TestMode = "flashcard"
	// ModeMultipleChoice grades by exact match against a closed option set.
	ModeMultipleChoice TestMode = "multiple-choice"
	// ModeTypeAnswer grades free-text answers via the semantic judge.
	ModeTypeAnswer TestMode = "type-answer"
)

// ReviewSentinel is the answer the UI submits for "I need to review" in
// flashcard mode. It is guaranteed never to match a reference answer.
const ReviewSentinel = "\x00review"

// CardSet is a named collection of flashcards.
type CardSet struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Card is a single question/answer pair belonging to a set.
type Card struct {
	ID        int64     `json:"id"`
	SetID     int64     `json:"set_id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// TestQuestion is a card projected into a session, plus attempt state.
// UserAnswer, IsCorrect and TimeSpentSec are nil until the first submission.
type TestQuestion struct {
	ID            int64   `json:"id"`
	Prompt        string  `json:"prompt"`
	CorrectAnswer string  `json:"correct_answer"`
	UserAnswer    *string `json:"user_answer,omitempty"`
	IsCorrect     *bool   `json:"is_correct,omitempty"`
	TimeSpentSec  *int    `json:"time_spent_seconds,omitempty"`
	AttemptCount  int     `json:"attempt_count"`
}

// TestSettings is caller-supplied session configuration.
// TimeLimitMinutes is advisory display state; the engine never enforces it.
type TestSettings struct {
	Mode              TestMode `json:"mode"`
	ShuffleQuestions  bool     `json:"shuffle_questions"`
	TimeLimitMinutes  int      `json:"time_limit_minutes,omitempty"`
	ShowCorrectAnswer bool     `json:"show_correct_answer"`
	AllowRetry        bool     `json:"allow_retry"`
}

// TestSession is one run through an ordered set of questions.
// It is owned by a single interactive caller for its lifetime and is not
// persisted across restarts.
type TestSession struct {
	ID             string         `json:"id"`
	SetID          int64          `json:"set_id"`
	SetName        string         `json:"set_name"`
	Questions      []TestQuestion `json:"questions"`
	CurrentIndex   int            `json:"current_question_index"`
	Score          int            `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	Mode           TestMode       `json:"mode"`
	Settings       TestSettings   `json:"settings"`
	StartTime      time.Time      `json:"start_time"`
	EndTime        *time.Time     `json:"end_time,omitempty"`
	IsCompleted    bool           `json:"is_completed"`
}

// CurrentQuestion returns the question under the session pointer, or nil
// if the pointer is out of range.
func (s *TestSession) CurrentQuestion() *TestQuestion {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.CurrentIndex]
}

// TestResult is an immutable snapshot of a completed session.
type TestResult struct {
	SessionID          string         `json:"session_id"`
	SetID              int64          `json:"set_id"`
	SetName            string         `json:"set_name"`
	Mode               TestMode       `json:"mode"`
	Score              int            `json:"score"`
	TotalQuestions     int            `json:"total_questions"`
	Percentage         int            `json:"percentage"`
	TimeSpentSec       int            `json:"time_spent_seconds"`
	CompletedAt        time.Time      `json:"completed_at"`
	IncorrectQuestions []TestQuestion `json:"incorrect_questions"`
}

// CardImport is a single card in an imported set file.
type CardImport struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// SetImport is the JSON structure for loading card sets from files.
type SetImport struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Cards       []CardImport `json:"cards"`
}

// AppConfig holds runtime parameters set via CLI flags.
type AppConfig struct {
	Lang         string // UI language (en, ru)
	JudgeVariant string // Judge prompt variant (strict, standard, lenient)
	OptionCount  int    // Multiple-choice options per question
}
