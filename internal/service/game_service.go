package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Ayush-Repositories/decyber-v2/internal/model"
	"github.com/rs/zerolog"
)

// GameService owns the server-authoritative game clock.
type GameService struct {
	games    GameStore
	snapshot Broadcaster
	log      zerolog.Logger
	now      func() time.Time
}

// NewGameService creates a new GameService.
func NewGameService(games GameStore, snapshot Broadcaster, log zerolog.Logger) *GameService {
	return &GameService{
		games:    games,
		snapshot: snapshot,
		log:      log.With().Str("component", "game").Logger(),
		now:      time.Now,
	}
}

// NewGameServiceWithClock is test-only for deterministic time.
func NewGameServiceWithClock(games GameStore, snapshot Broadcaster, log zerolog.Logger, now func() time.Time) *GameService {
	s := NewGameService(games, snapshot, log)
	s.now = now
	return s
}

// IsActive reports whether submissions are currently accepted: the clock is
// running, has an end timestamp, and the server's own now is before it.
func (s *GameService) IsActive(ctx context.Context) (bool, error) {
	settings, err := s.games.Get(ctx)
	if err != nil {
		return false, fmt.Errorf("load game settings: %w", err)
	}
	return settings.TimerRunning &&
		settings.TimerEndsAt != nil &&
		s.now().Before(*settings.TimerEndsAt), nil
}

// Settings returns the clock record plus the server's current unix-millis
// timestamp, letting viewers compute and cache a local clock offset.
func (s *GameService) Settings(ctx context.Context) (*model.GameSettingsResponse, error) {
	settings, err := s.games.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load game settings: %w", err)
	}
	return &model.GameSettingsResponse{
		GameSettings: *settings,
		ServerNow:    s.now().UnixMilli(),
	}, nil
}

// ServerNow returns the server's current unix-millis timestamp.
func (s *GameService) ServerNow() int64 {
	return s.now().UnixMilli()
}

// Start runs the clock for the given duration from now.
func (s *GameService) Start(ctx context.Context, durationMinutes int) error {
	endsAt := s.now().Add(time.Duration(durationMinutes) * time.Minute)
	if err := s.games.Start(ctx, endsAt, durationMinutes); err != nil {
		return fmt.Errorf("start clock: %w", err)
	}

	s.log.Info().Int("duration_minutes", durationMinutes).Time("ends_at", endsAt).Msg("Game started")
	s.snapshot.Broadcast(ctx)
	return nil
}

// Stop halts the clock and clears the end timestamp.
func (s *GameService) Stop(ctx context.Context) error {
	if err := s.games.Stop(ctx); err != nil {
		return fmt.Errorf("stop clock: %w", err)
	}

	s.log.Info().Msg("Game stopped")
	s.snapshot.Broadcast(ctx)
	return nil
}
