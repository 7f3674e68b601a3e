package service_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Ayush-Repositories/decyber-v2/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// In-memory store fakes. They mirror the semantics of the pgx repositories,
// including the zero clamp on AdjustScore and the version check on
// CompareAndSwapSolveState.

type fakeTeamStore struct {
	mu        sync.Mutex
	teams     map[string]*model.Team
	adjustErr error
}

func newFakeTeamStore() *fakeTeamStore {
	return &fakeTeamStore{teams: make(map[string]*model.Team)}
}

func (s *fakeTeamStore) Create(_ context.Context, t *model.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = time.Now()
	s.teams[t.ID.String()] = t
	return nil
}

func (s *fakeTeamStore) GetByID(_ context.Context, id string) (*model.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.teams[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *t
	return &cp, nil
}

func (s *fakeTeamStore) GetByName(_ context.Context, name string) (*model.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.teams {
		if strings.EqualFold(t.Name, name) {
			cp := *t
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeTeamStore) List(_ context.Context) ([]model.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Team, 0, len(s.teams))
	for _, t := range s.teams {
		out = append(out, *t)
	}
	return out, nil
}

func (s *fakeTeamStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.teams, id)
	return nil
}

func (s *fakeTeamStore) SetLoggedIn(_ context.Context, id string, loggedIn bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.teams[id]; ok {
		t.LoggedIn = loggedIn
	}
	return nil
}

func (s *fakeTeamStore) SetScore(_ context.Context, id string, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.teams[id]; ok {
		t.TotalScore = score
	}
	return nil
}

func (s *fakeTeamStore) AdjustScore(_ context.Context, id string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.adjustErr != nil {
		return s.adjustErr
	}
	t, ok := s.teams[id]
	if !ok {
		return pgx.ErrNoRows
	}
	t.TotalScore += delta
	if t.TotalScore < 0 {
		t.TotalScore = 0
	}
	return nil
}

func (s *fakeTeamStore) setAdjustErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adjustErr = err
}

func (s *fakeTeamStore) score(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.teams[id].TotalScore
}

type fakeQuestionStore struct {
	mu        sync.Mutex
	questions map[string]*model.Question
}

func newFakeQuestionStore() *fakeQuestionStore {
	return &fakeQuestionStore{questions: make(map[string]*model.Question)}
}

func (s *fakeQuestionStore) Create(_ context.Context, q *model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	q.CurrentScore = q.MaxScore
	if q.SolvedBy == nil {
		q.SolvedBy = []string{}
	}
	cp := *q
	s.questions[q.ID] = &cp
	return nil
}

func (s *fakeQuestionStore) GetByID(_ context.Context, id string) (*model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *q
	cp.SolvedBy = append([]string(nil), q.SolvedBy...)
	return &cp, nil
}

func (s *fakeQuestionStore) List(_ context.Context) ([]model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Question, 0, len(s.questions))
	for _, q := range s.questions {
		out = append(out, *q)
	}
	return out, nil
}

func (s *fakeQuestionStore) ListByRound(_ context.Context, round int) ([]model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Question
	for _, q := range s.questions {
		if q.RoundNumber == round {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (s *fakeQuestionStore) Update(_ context.Context, id string, req *model.UpdateQuestionRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if req.Title != nil {
		q.Title = *req.Title
	}
	if req.Image != nil {
		q.Image = *req.Image
	}
	if req.Answer != nil {
		q.Answer = *req.Answer
	}
	if req.Hint != nil {
		q.Hint = *req.Hint
	}
	if req.MaxScore != nil {
		q.MaxScore = *req.MaxScore
		q.CurrentScore = *req.MaxScore
	}
	return nil
}

func (s *fakeQuestionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.questions, id)
	return nil
}

func (s *fakeQuestionStore) CompareAndSwapSolveState(_ context.Context, id string, expectedVersion int64,
	solvedBy []string, currentScore int, solved bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[id]
	if !ok || q.Version != expectedVersion {
		return false, nil
	}
	q.SolvedBy = append([]string(nil), solvedBy...)
	q.CurrentScore = currentScore
	q.Solved = solved
	q.Version++
	return true, nil
}

func (s *fakeQuestionStore) ResetSolveState(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[id]
	if !ok {
		return pgx.ErrNoRows
	}
	q.SolvedBy = []string{}
	q.CurrentScore = q.MaxScore
	q.Solved = false
	q.Version++
	return nil
}

type fakeGameStore struct {
	mu       sync.Mutex
	settings model.GameSettings
}

func (s *fakeGameStore) Get(_ context.Context) (*model.GameSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.settings
	return &cp, nil
}

func (s *fakeGameStore) Start(_ context.Context, endsAt time.Time, durationMinutes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.TimerRunning = true
	s.settings.TimerEndsAt = &endsAt
	s.settings.TimerDurationMinutes = durationMinutes
	return nil
}

func (s *fakeGameStore) Stop(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.TimerRunning = false
	s.settings.TimerEndsAt = nil
	return nil
}

type fakeSubmissionStore struct {
	mu   sync.Mutex
	rows []model.Submission
}

func (s *fakeSubmissionStore) Insert(_ context.Context, sub *model.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, *sub)
	return nil
}

func (s *fakeSubmissionStore) ExistsForRound(_ context.Context, teamID string, round int) (bool, error) {
	return false, nil
}

type countingBroadcaster struct {
	mu    sync.Mutex
	count int
}

func (b *countingBroadcaster) Broadcast(context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.count++
}

func (b *countingBroadcaster) calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}
