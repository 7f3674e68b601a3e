package model

// Question represents a single map-region puzzle.
//
// SolvedBy holds team IDs in solve order; a team's index in the slice is its
// solve rank and fixes the score it earned. CurrentScore and Solved are
// derived from SolvedBy and MaxScore through the scoring schedule. Version
// guards concurrent solve-state updates (conditional write).
type Question struct {
	ID           string   `json:"id"`
	StateCode    string   `json:"state_code"`
	StateName    string   `json:"state_name"`
	Title        string   `json:"title"`
	Image        string   `json:"image"`
	Answer       string   `json:"-"`
	Hint         string   `json:"hint"`
	MaxScore     int      `json:"max_score"`
	CurrentScore int      `json:"current_score"`
	Solved       bool     `json:"solved"`
	SolvedBy     []string `json:"solved_by"`
	RoundNumber  int      `json:"round_number"`
	Version      int64    `json:"-"`
}

// AdminQuestion is the admin-facing view of a question, answer spec included.
type AdminQuestion struct {
	Question
	Answer string `json:"answer"`
}

// NewAdminQuestion wraps a question for admin serialization.
func NewAdminQuestion(q Question) AdminQuestion {
	return AdminQuestion{Question: q, Answer: q.Answer}
}

// CreateQuestionRequest is the payload for creating a question.
type CreateQuestionRequest struct {
	ID          string `json:"id" binding:"required,min=1,max=40"`
	StateCode   string `json:"state_code" binding:"required,min=2,max=10"`
	StateName   string `json:"state_name" binding:"required,min=1,max=100"`
	Title       string `json:"title" binding:"required,min=1,max=4000"`
	Image       string `json:"image" binding:"max=500"`
	Answer      string `json:"answer" binding:"required,min=1,max=1000"`
	Hint        string `json:"hint" binding:"max=1000"`
	MaxScore    int    `json:"max_score" binding:"required,min=1,max=100000"`
	RoundNumber int    `json:"round_number" binding:"min=0"`
}

// UpdateQuestionRequest is the payload for a partial question update.
// Nil fields are left untouched. Changing MaxScore resets the displayed
// score to the new maximum.
type UpdateQuestionRequest struct {
	Title    *string `json:"title" binding:"omitempty,min=1,max=4000"`
	Image    *string `json:"image" binding:"omitempty,max=500"`
	Answer   *string `json:"answer" binding:"omitempty,min=1,max=1000"`
	Hint     *string `json:"hint" binding:"omitempty,max=1000"`
	MaxScore *int    `json:"max_score" binding:"omitempty,min=1,max=100000"`
}
