package repository

import (
	"context"

	"github.com/Ayush-Repositories/decyber-v2/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

const questionColumns = `id, state_code, state_name, title, image, answer, hint,
	max_score, current_score, solved, solved_by, round_number, version`

// Create inserts a new question in the unsolved state.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO questions (id, state_code, state_name, title, image, answer, hint,
		                        max_score, current_score, solved, solved_by, round_number, version)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8, false, '{}', $9, 0)`,
		q.ID, q.StateCode, q.StateName, q.Title, q.Image, q.Answer, q.Hint,
		q.MaxScore, q.RoundNumber,
	)
	if err != nil {
		return err
	}
	q.CurrentScore = q.MaxScore
	q.Solved = false
	q.SolvedBy = []string{}
	return nil
}

// GetByID retrieves a question including its version counter.
func (r *QuestionRepository) GetByID(ctx context.Context, id string) (*model.Question, error) {
	q := &model.Question{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.StateCode, &q.StateName, &q.Title, &q.Image, &q.Answer, &q.Hint,
		&q.MaxScore, &q.CurrentScore, &q.Solved, &q.SolvedBy, &q.RoundNumber, &q.Version)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// List retrieves all questions ordered by ID.
func (r *QuestionRepository) List(ctx context.Context) ([]model.Question, error) {
	return r.queryMany(ctx, `SELECT `+questionColumns+` FROM questions ORDER BY id`)
}

// ListByRound retrieves all questions belonging to a round.
func (r *QuestionRepository) ListByRound(ctx context.Context, round int) ([]model.Question, error) {
	return r.queryMany(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE round_number = $1 ORDER BY id`, round)
}

func (r *QuestionRepository) queryMany(ctx context.Context, sql string, args ...any) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.StateCode, &q.StateName, &q.Title, &q.Image, &q.Answer, &q.Hint,
			&q.MaxScore, &q.CurrentScore, &q.Solved, &q.SolvedBy, &q.RoundNumber, &q.Version); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// Update applies a partial edit. A max score change also resets the
// displayed score to the new maximum, matching admin expectations.
func (r *QuestionRepository) Update(ctx context.Context, id string, req *model.UpdateQuestionRequest) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE questions SET
		   title         = COALESCE($2, title),
		   image         = COALESCE($3, image),
		   answer        = COALESCE($4, answer),
		   hint          = COALESCE($5, hint),
		   max_score     = COALESCE($6, max_score),
		   current_score = CASE WHEN $6::int IS NULL THEN current_score ELSE $6 END
		 WHERE id = $1`,
		id, req.Title, req.Image, req.Answer, req.Hint, req.MaxScore,
	)
	return err
}

// Delete removes a question.
func (r *QuestionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	return err
}

// CompareAndSwapSolveState conditionally writes a new solver list, displayed
// score and solved flag. The write succeeds only if the row's version still
// equals the version observed at read time; a false return means another
// submission interleaved and the caller must re-read and retry.
func (r *QuestionRepository) CompareAndSwapSolveState(
	ctx context.Context,
	id string,
	expectedVersion int64,
	solvedBy []string,
	currentScore int,
	solved bool,
) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE questions
		 SET solved_by = $3, current_score = $4, solved = $5, version = version + 1
		 WHERE id = $1 AND version = $2`,
		id, expectedVersion, solvedBy, currentScore, solved,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ResetSolveState returns a question to the unsolved state: empty solver
// list, full score, not solved. The version still advances so concurrent
// solve attempts against the old state fail their conditional write.
func (r *QuestionRepository) ResetSolveState(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE questions
		 SET solved_by = '{}', current_score = max_score, solved = false, version = version + 1
		 WHERE id = $1`, id)
	return err
}
