package repository

import (
	"context"

	"github.com/Ayush-Repositories/decyber-v2/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TeamRepository handles team data access.
type TeamRepository struct {
	pool *pgxpool.Pool
}

// NewTeamRepository creates a new TeamRepository.
func NewTeamRepository(pool *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{pool: pool}
}

// Create inserts a new team with a zero score.
func (r *TeamRepository) Create(ctx context.Context, t *model.Team) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO teams (team_name, passcode_hash, total_score, logged_in)
		 VALUES ($1, $2, 0, false)
		 RETURNING id, created_at`,
		t.Name, t.PasscodeHash,
	).Scan(&t.ID, &t.CreatedAt)
}

// GetByID retrieves a team by its ID.
func (r *TeamRepository) GetByID(ctx context.Context, id string) (*model.Team, error) {
	t := &model.Team{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, team_name, passcode_hash, total_score, logged_in, created_at
		 FROM teams WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.PasscodeHash, &t.TotalScore, &t.LoggedIn, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetByName retrieves a team by its display name, case-insensitively.
func (r *TeamRepository) GetByName(ctx context.Context, name string) (*model.Team, error) {
	t := &model.Team{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, team_name, passcode_hash, total_score, logged_in, created_at
		 FROM teams WHERE LOWER(team_name) = LOWER($1)`, name,
	).Scan(&t.ID, &t.Name, &t.PasscodeHash, &t.TotalScore, &t.LoggedIn, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List retrieves all teams ordered by creation time.
func (r *TeamRepository) List(ctx context.Context) ([]model.Team, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, team_name, passcode_hash, total_score, logged_in, created_at
		 FROM teams ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []model.Team
	for rows.Next() {
		var t model.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.PasscodeHash, &t.TotalScore, &t.LoggedIn, &t.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// Delete removes a team.
func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	return err
}

// SetLoggedIn updates the team's login occupancy flag.
func (r *TeamRepository) SetLoggedIn(ctx context.Context, id string, loggedIn bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE teams SET logged_in = $2 WHERE id = $1`, id, loggedIn)
	return err
}

// SetScore overwrites a team's total score (admin override).
func (r *TeamRepository) SetScore(ctx context.Context, id string, score int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE teams SET total_score = $2 WHERE id = $1`, id, score)
	return err
}

// AdjustScore adds delta to a team's total score, clamping the result at
// zero. Rewards pass positive deltas, penalties and reset reversals pass
// negative ones; the clamp keeps totals non-negative on every path.
func (r *TeamRepository) AdjustScore(ctx context.Context, id string, delta int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE teams SET total_score = GREATEST(total_score + $2, 0) WHERE id = $1`,
		id, delta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
