package repository

import (
	"context"
	"time"

	"github.com/Ayush-Repositories/decyber-v2/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GameRepository handles the single shared game clock record.
type GameRepository struct {
	pool *pgxpool.Pool
}

// NewGameRepository creates a new GameRepository.
func NewGameRepository(pool *pgxpool.Pool) *GameRepository {
	return &GameRepository{pool: pool}
}

// Get retrieves the game clock record.
func (r *GameRepository) Get(ctx context.Context) (*model.GameSettings, error) {
	s := &model.GameSettings{}
	err := r.pool.QueryRow(ctx,
		`SELECT timer_running, timer_ends_at, timer_duration_minutes
		 FROM game_settings WHERE id = 'default'`,
	).Scan(&s.TimerRunning, &s.TimerEndsAt, &s.TimerDurationMinutes)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Start sets the clock running with an end timestamp relative to now.
func (r *GameRepository) Start(ctx context.Context, endsAt time.Time, durationMinutes int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE game_settings
		 SET timer_running = true, timer_ends_at = $1, timer_duration_minutes = $2
		 WHERE id = 'default'`,
		endsAt, durationMinutes)
	return err
}

// Stop halts the clock and clears the end timestamp.
func (r *GameRepository) Stop(ctx context.Context) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE game_settings
		 SET timer_running = false, timer_ends_at = NULL
		 WHERE id = 'default'`)
	return err
}
