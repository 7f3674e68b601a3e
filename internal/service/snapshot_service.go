package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Ayush-Repositories/decyber-v2/internal/model"
	ws "github.com/Ayush-Repositories/decyber-v2/internal/websocket"
	"github.com/rs/zerolog"
)

// SnapshotHub is the subset of the websocket hub the snapshot service uses.
type SnapshotHub interface {
	ClientCount() int
	Broadcast(payload []byte)
}

// SnapshotService assembles the authoritative full-state snapshot and pushes
// it to every connected viewer. Mutating services call Broadcast after each
// state change; delivery is at-least-once and never blocks the caller.
type SnapshotService struct {
	teams     TeamStore
	questions QuestionStore
	game      GameStore
	hub       SnapshotHub
	log       zerolog.Logger
	now       func() time.Time
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(teams TeamStore, questions QuestionStore, game GameStore, hub SnapshotHub, log zerolog.Logger) *SnapshotService {
	return &SnapshotService{
		teams:     teams,
		questions: questions,
		game:      game,
		hub:       hub,
		log:       log.With().Str("component", "snapshot").Logger(),
		now:       time.Now,
	}
}

// Broadcast pushes the current snapshot to all viewers. With no viewers
// connected the snapshot query is skipped entirely. Failures are logged,
// never propagated: a lost broadcast heals on the next mutation.
func (s *SnapshotService) Broadcast(ctx context.Context) {
	if s.hub.ClientCount() == 0 {
		return
	}

	payload, err := s.buildPayload(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Snapshot build failed")
		return
	}

	s.hub.Broadcast(payload)
}

// Payload builds the snapshot for a single viewer, e.g. right after connect.
func (s *SnapshotService) Payload(ctx context.Context) ([]byte, error) {
	return s.buildPayload(ctx)
}

func (s *SnapshotService) buildPayload(ctx context.Context) ([]byte, error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, err
	}
	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.game.Get(ctx)
	if err != nil {
		return nil, err
	}

	if teams == nil {
		teams = []model.Team{}
	}
	if questions == nil {
		questions = []model.Question{}
	}

	return json.Marshal(ws.StatePayload{
		Event:     ws.EventState,
		Teams:     teams,
		Questions: questions,
		Game:      *settings,
		ServerNow: s.now().UnixMilli(),
	})
}
