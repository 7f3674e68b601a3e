package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ayush-Repositories/decyber-v2/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// TeamService handles team lifecycle, login, and admin score overrides.
type TeamService struct {
	teams    TeamStore
	auth     *AuthService
	snapshot Broadcaster
	log      zerolog.Logger
}

// NewTeamService creates a new TeamService.
func NewTeamService(teams TeamStore, auth *AuthService, snapshot Broadcaster, log zerolog.Logger) *TeamService {
	return &TeamService{
		teams:    teams,
		auth:     auth,
		snapshot: snapshot,
		log:      log.With().Str("component", "team").Logger(),
	}
}

// Login authenticates a team by name and passcode and issues a session
// token. A team already holding an active session is rejected with
// ErrSessionAlreadyActive until an admin resets the login.
func (s *TeamService) Login(ctx context.Context, name, passcode string) (*model.TeamLoginResponse, error) {
	team, err := s.teams.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load team: %w", err)
	}

	if err := s.auth.CheckPasscode(team.PasscodeHash, passcode); err != nil {
		return nil, err
	}

	token, err := s.auth.GenerateTeamToken(ctx, team.ID.String())
	if err != nil {
		return nil, err
	}

	if err := s.teams.SetLoggedIn(ctx, team.ID.String(), true); err != nil {
		return nil, fmt.Errorf("mark logged in: %w", err)
	}
	team.LoggedIn = true

	s.log.Info().Str("team_id", team.ID.String()).Str("name", team.Name).Msg("Team logged in")
	s.snapshot.Broadcast(ctx)

	return &model.TeamLoginResponse{Token: token, Team: *team}, nil
}

// Create registers a new team with a hashed passcode and a zero score.
func (s *TeamService) Create(ctx context.Context, name, passcode string) (*model.Team, error) {
	hash, err := s.auth.HashPasscode(passcode)
	if err != nil {
		return nil, fmt.Errorf("hash passcode: %w", err)
	}

	team := &model.Team{Name: name, PasscodeHash: hash}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}

	s.log.Info().Str("team_id", team.ID.String()).Str("name", name).Msg("Team created")
	s.snapshot.Broadcast(ctx)
	return team, nil
}

// Get retrieves a single team.
func (s *TeamService) Get(ctx context.Context, id string) (*model.Team, error) {
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("load team: %w", err)
	}
	return team, nil
}

// List retrieves all teams.
func (s *TeamService) List(ctx context.Context) ([]model.Team, error) {
	return s.teams.List(ctx)
}

// Delete removes a team and invalidates any active session it held.
func (s *TeamService) Delete(ctx context.Context, id string) error {
	if err := s.auth.ResetTeamSession(ctx, id); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	if err := s.teams.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}

	s.log.Info().Str("team_id", id).Msg("Team deleted")
	s.snapshot.Broadcast(ctx)
	return nil
}

// SetScore overwrites a team's total score (admin override).
func (s *TeamService) SetScore(ctx context.Context, id string, score int) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.teams.SetScore(ctx, id, score); err != nil {
		return fmt.Errorf("set score: %w", err)
	}

	s.log.Info().Str("team_id", id).Int("score", score).Msg("Score overridden")
	s.snapshot.Broadcast(ctx)
	return nil
}

// ResetLogin clears a team's session so it can log in again elsewhere.
func (s *TeamService) ResetLogin(ctx context.Context, id string) error {
	if err := s.auth.ResetTeamSession(ctx, id); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	if err := s.teams.SetLoggedIn(ctx, id, false); err != nil {
		return fmt.Errorf("mark logged out: %w", err)
	}

	s.log.Info().Str("team_id", id).Msg("Login reset")
	s.snapshot.Broadcast(ctx)
	return nil
}

// Status reports whether a team exists and holds an active login. Used by
// clients to detect an admin-issued reset without a surprise 401.
func (s *TeamService) Status(ctx context.Context, id string) (*model.TeamStatus, error) {
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &model.TeamStatus{Exists: false, LoggedIn: false}, nil
		}
		return nil, fmt.Errorf("load team: %w", err)
	}
	return &model.TeamStatus{Exists: true, LoggedIn: team.LoggedIn}, nil
}
