package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Ayush-Repositories/decyber-v2/internal/model"
	"github.com/Ayush-Repositories/decyber-v2/internal/service"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type writtenFixture struct {
	written *service.WrittenService
	teams   *fakeTeamStore
	rdb     *redis.Client
}

func newWrittenFixture(t *testing.T, gameActive bool) *writtenFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	teams := newFakeTeamStore()
	questions := newFakeQuestionStore()
	games := &fakeGameStore{}
	subs := &fakeSubmissionStore{}
	cast := &countingBroadcaster{}

	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	game := service.NewGameServiceWithClock(games, cast, zerolog.Nop(), func() time.Time { return now })
	if gameActive {
		if err := game.Start(context.Background(), 60); err != nil {
			t.Fatalf("start game: %v", err)
		}
	}

	ctx := context.Background()
	for _, q := range []*model.Question{
		{ID: "w-01", StateCode: "IN-KL", StateName: "Kerala", Title: "?", Answer: "Kozhikode|Calicut", MaxScore: 140, RoundNumber: 2},
		{ID: "w-02", StateCode: "IN-SK", StateName: "Sikkim", Title: "?", Answer: "1729", MaxScore: 100, RoundNumber: 2},
		{ID: "q-01", StateCode: "IN-AP", StateName: "Andhra Pradesh", Title: "?", Answer: "Nokia", MaxScore: 150, RoundNumber: 0},
	} {
		if err := questions.Create(ctx, q); err != nil {
			t.Fatalf("create question: %v", err)
		}
	}

	return &writtenFixture{
		written: service.NewWrittenService(questions, teams, subs, game, cast, rdb, zerolog.Nop()),
		teams:   teams,
		rdb:     rdb,
	}
}

func (f *writtenFixture) addTeam(t *testing.T) string {
	t.Helper()
	team := &model.Team{ID: uuid.New(), Name: uuid.NewString()}
	if err := f.teams.Create(context.Background(), team); err != nil {
		t.Fatalf("create team: %v", err)
	}
	return team.ID.String()
}

func TestWrittenSubmitGradesAndQueues(t *testing.T) {
	ctx := context.Background()
	f := newWrittenFixture(t, true)
	teamID := f.addTeam(t)

	result, err := f.written.Submit(ctx, teamID, &model.WrittenSubmitRequest{
		RoundNumber: 2,
		Answers: []model.WrittenAnswer{
			{QuestionID: "w-01", Answer: "calicut"},
			{QuestionID: "w-02", Answer: "1730"},
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if result.Graded != 2 || result.Correct != 1 || result.PointsAwarded != 140 {
		t.Errorf("result = %+v, want graded=2 correct=1 awarded=140", result)
	}
	if f.teams.score(teamID) != 140 {
		t.Errorf("team total = %d, want 140", f.teams.score(teamID))
	}

	// Both graded rows landed on the persist queue.
	n, err := f.rdb.LLen(ctx, "persist_submissions_queue").Result()
	if err != nil {
		t.Fatalf("llen: %v", err)
	}
	if n != 2 {
		t.Fatalf("queued rows = %d, want 2", n)
	}
	raw, err := f.rdb.LIndex(ctx, "persist_submissions_queue", 0).Result()
	if err != nil {
		t.Fatalf("lindex: %v", err)
	}
	var row service.SubmissionPayload
	if err := json.Unmarshal([]byte(raw), &row); err != nil {
		t.Fatalf("unmarshal row: %v", err)
	}
	if row.TeamID != teamID || row.QuestionID != "w-01" || !row.IsCorrect || row.PointsAwarded != 140 {
		t.Errorf("queued row = %+v", row)
	}
}

func TestWrittenSubmitOncePerRound(t *testing.T) {
	ctx := context.Background()
	f := newWrittenFixture(t, true)
	teamID := f.addTeam(t)

	req := &model.WrittenSubmitRequest{
		RoundNumber: 2,
		Answers:     []model.WrittenAnswer{{QuestionID: "w-02", Answer: "1729"}},
	}
	if _, err := f.written.Submit(ctx, teamID, req); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	if _, err := f.written.Submit(ctx, teamID, req); !errors.Is(err, service.ErrAlreadySubmitted) {
		t.Errorf("second submit err = %v, want ErrAlreadySubmitted", err)
	}
	if f.teams.score(teamID) != 100 {
		t.Errorf("team total = %d, want 100 (no double award)", f.teams.score(teamID))
	}

	submitted, err := f.written.HasSubmitted(ctx, teamID, 2)
	if err != nil {
		t.Fatalf("HasSubmitted: %v", err)
	}
	if !submitted {
		t.Error("HasSubmitted = false after submit")
	}

	// Other teams and other rounds are unaffected.
	other := f.addTeam(t)
	if submitted, _ := f.written.HasSubmitted(ctx, other, 2); submitted {
		t.Error("other team marked as submitted")
	}
	if submitted, _ := f.written.HasSubmitted(ctx, teamID, 3); submitted {
		t.Error("other round marked as submitted")
	}
}

func TestWrittenSubmitDeduplicatesBatch(t *testing.T) {
	ctx := context.Background()
	f := newWrittenFixture(t, true)
	teamID := f.addTeam(t)

	result, err := f.written.Submit(ctx, teamID, &model.WrittenSubmitRequest{
		RoundNumber: 2,
		Answers: []model.WrittenAnswer{
			{QuestionID: "w-02", Answer: "1729"},
			{QuestionID: "w-02", Answer: "1729"},
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Graded != 1 || result.PointsAwarded != 100 {
		t.Errorf("result = %+v, want graded=1 awarded=100", result)
	}
}

func TestWrittenSubmitRejectsForeignQuestion(t *testing.T) {
	ctx := context.Background()
	f := newWrittenFixture(t, true)
	teamID := f.addTeam(t)

	// q-01 belongs to the map round, not round 2.
	_, err := f.written.Submit(ctx, teamID, &model.WrittenSubmitRequest{
		RoundNumber: 2,
		Answers:     []model.WrittenAnswer{{QuestionID: "q-01", Answer: "Nokia"}},
	})
	if !errors.Is(err, service.ErrUnknownQuestion) {
		t.Errorf("err = %v, want ErrUnknownQuestion", err)
	}

	// A failed validation must not consume the one-shot mark.
	if submitted, _ := f.written.HasSubmitted(ctx, teamID, 2); submitted {
		t.Error("round marked submitted after rejected batch")
	}
}

func TestWrittenSubmitReleasesMarkOnAwardFailure(t *testing.T) {
	ctx := context.Background()
	f := newWrittenFixture(t, true)
	teamID := f.addTeam(t)

	req := &model.WrittenSubmitRequest{
		RoundNumber: 2,
		Answers:     []model.WrittenAnswer{{QuestionID: "w-02", Answer: "1729"}},
	}

	f.teams.setAdjustErr(errors.New("store down"))
	if _, err := f.written.Submit(ctx, teamID, req); err == nil {
		t.Fatal("submit succeeded with a failing score store")
	}
	if f.teams.score(teamID) != 0 {
		t.Fatalf("team total = %d after failed award, want 0", f.teams.score(teamID))
	}

	// The failed award must not leave the round marked submitted, and no
	// rows may reach the persist queue for the aborted attempt.
	if submitted, _ := f.written.HasSubmitted(ctx, teamID, 2); submitted {
		t.Fatal("failed award left the round marked submitted")
	}
	if n, _ := f.rdb.LLen(ctx, "persist_submissions_queue").Result(); n != 0 {
		t.Fatalf("queued rows = %d after failed award, want 0", n)
	}

	// Once the store recovers the same round can be submitted and credited.
	f.teams.setAdjustErr(nil)
	result, err := f.written.Submit(ctx, teamID, req)
	if err != nil {
		t.Fatalf("retry submit: %v", err)
	}
	if result.PointsAwarded != 100 {
		t.Errorf("awarded = %d, want 100", result.PointsAwarded)
	}
	if f.teams.score(teamID) != 100 {
		t.Errorf("team total = %d, want 100", f.teams.score(teamID))
	}
	if n, _ := f.rdb.LLen(ctx, "persist_submissions_queue").Result(); n != 1 {
		t.Errorf("queued rows = %d after retry, want 1", n)
	}
}

func TestWrittenSubmitInactiveGame(t *testing.T) {
	ctx := context.Background()
	f := newWrittenFixture(t, false)
	teamID := f.addTeam(t)

	_, err := f.written.Submit(ctx, teamID, &model.WrittenSubmitRequest{
		RoundNumber: 2,
		Answers:     []model.WrittenAnswer{{QuestionID: "w-02", Answer: "1729"}},
	})
	if !errors.Is(err, service.ErrGameInactive) {
		t.Errorf("err = %v, want ErrGameInactive", err)
	}
}
