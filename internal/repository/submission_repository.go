package repository

import (
	"context"

	"github.com/Ayush-Repositories/decyber-v2/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SubmissionRepository handles the append-only written-round submission log.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository creates a new SubmissionRepository.
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

// Insert appends a graded submission row.
func (r *SubmissionRepository) Insert(ctx context.Context, s *model.Submission) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO submissions (team_id, question_id, submitted_answer, is_correct, points_awarded)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		s.TeamID, s.QuestionID, s.SubmittedAnswer, s.IsCorrect, s.PointsAwarded,
	).Scan(&s.ID, &s.CreatedAt)
}

// ExistsForRound reports whether a team has any logged submission for
// questions in the given round.
func (r *SubmissionRepository) ExistsForRound(ctx context.Context, teamID string, round int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM submissions s
		   JOIN questions q ON q.id = s.question_id
		   WHERE s.team_id = $1 AND q.round_number = $2
		 )`, teamID, round,
	).Scan(&exists)
	return exists, err
}
