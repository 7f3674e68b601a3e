package model

import (
	"time"

	"github.com/google/uuid"
)

// Submission is one graded written-round answer, kept as an append-only log.
type Submission struct {
	ID              uuid.UUID `json:"id"`
	TeamID          uuid.UUID `json:"team_id"`
	QuestionID      string    `json:"question_id"`
	SubmittedAnswer string    `json:"submitted_answer"`
	IsCorrect       bool      `json:"is_correct"`
	PointsAwarded   int       `json:"points_awarded"`
	CreatedAt       time.Time `json:"created_at"`
}

// SubmitAnswerRequest is the payload for a map-round answer submission.
type SubmitAnswerRequest struct {
	Answer string `json:"answer" binding:"required,min=1,max=500"`
}

// WrittenAnswer is a single entry in a written-round submission batch.
type WrittenAnswer struct {
	QuestionID string `json:"question_id" binding:"required,min=1,max=40"`
	Answer     string `json:"answer" binding:"max=2000"`
}

// WrittenSubmitRequest is the payload for submitting the written round.
type WrittenSubmitRequest struct {
	RoundNumber int             `json:"round_number" binding:"required,min=1,max=10"`
	Answers     []WrittenAnswer `json:"answers" binding:"required,min=1,dive"`
}
