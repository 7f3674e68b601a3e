package service

import (
	"context"
	"time"

	"github.com/Ayush-Repositories/decyber-v2/internal/model"
)

// Store interfaces abstract the persistence layer so the engine can be
// exercised in tests without a database. The pgx repositories in
// internal/repository satisfy them.

// TeamStore handles team records and the score ledger.
type TeamStore interface {
	Create(ctx context.Context, t *model.Team) error
	GetByID(ctx context.Context, id string) (*model.Team, error)
	GetByName(ctx context.Context, name string) (*model.Team, error)
	List(ctx context.Context) ([]model.Team, error)
	Delete(ctx context.Context, id string) error
	SetLoggedIn(ctx context.Context, id string, loggedIn bool) error
	SetScore(ctx context.Context, id string, score int) error
	// AdjustScore adds delta to the team total, clamping the result at zero.
	AdjustScore(ctx context.Context, id string, delta int) error
}

// QuestionStore handles question records and the conditional solve-state write.
type QuestionStore interface {
	Create(ctx context.Context, q *model.Question) error
	GetByID(ctx context.Context, id string) (*model.Question, error)
	List(ctx context.Context) ([]model.Question, error)
	ListByRound(ctx context.Context, round int) ([]model.Question, error)
	Update(ctx context.Context, id string, req *model.UpdateQuestionRequest) error
	Delete(ctx context.Context, id string) error
	// CompareAndSwapSolveState succeeds only if the question's version is
	// still expectedVersion; false means an interleaved write won.
	CompareAndSwapSolveState(ctx context.Context, id string, expectedVersion int64,
		solvedBy []string, currentScore int, solved bool) (bool, error)
	ResetSolveState(ctx context.Context, id string) error
}

// GameStore handles the single game clock record.
type GameStore interface {
	Get(ctx context.Context) (*model.GameSettings, error)
	Start(ctx context.Context, endsAt time.Time, durationMinutes int) error
	Stop(ctx context.Context) error
}

// SubmissionStore handles the append-only written-round log.
type SubmissionStore interface {
	Insert(ctx context.Context, s *model.Submission) error
	ExistsForRound(ctx context.Context, teamID string, round int) (bool, error)
}

// Broadcaster pushes the authoritative snapshot to connected viewers.
// Implemented by SnapshotService.
type Broadcaster interface {
	Broadcast(ctx context.Context)
}
