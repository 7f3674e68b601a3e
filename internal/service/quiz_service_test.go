package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Ayush-Repositories/decyber-v2/internal/model"
	"github.com/Ayush-Repositories/decyber-v2/internal/service"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type quizFixture struct {
	quiz      *service.QuizService
	teams     *fakeTeamStore
	questions *fakeQuestionStore
	games     *fakeGameStore
	cast      *countingBroadcaster
}

func newQuizFixture(t *testing.T, gameActive bool) *quizFixture {
	t.Helper()

	teams := newFakeTeamStore()
	questions := newFakeQuestionStore()
	games := &fakeGameStore{}
	cast := &countingBroadcaster{}

	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	game := service.NewGameServiceWithClock(games, cast, zerolog.Nop(), func() time.Time { return now })
	if gameActive {
		if err := game.Start(context.Background(), 60); err != nil {
			t.Fatalf("start game: %v", err)
		}
	}

	return &quizFixture{
		quiz:      service.NewQuizService(questions, teams, game, cast, zerolog.Nop()),
		teams:     teams,
		questions: questions,
		games:     games,
		cast:      cast,
	}
}

func (f *quizFixture) addTeam(t *testing.T, name string) string {
	t.Helper()
	team := &model.Team{ID: uuid.New(), Name: name}
	if err := f.teams.Create(context.Background(), team); err != nil {
		t.Fatalf("create team: %v", err)
	}
	return team.ID.String()
}

func (f *quizFixture) addQuestion(t *testing.T, id, answer string, maxScore int) {
	t.Helper()
	q := &model.Question{ID: id, StateCode: "IN-AP", StateName: "Andhra Pradesh", Title: "?", Answer: answer, MaxScore: maxScore}
	if err := f.questions.Create(context.Background(), q); err != nil {
		t.Fatalf("create question: %v", err)
	}
}

func TestSubmitAnswerDecaySchedule(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t, true)
	f.addQuestion(t, "q-01", "Nokia", 180)

	teamIDs := []string{f.addTeam(t, "alpha"), f.addTeam(t, "beta"), f.addTeam(t, "gamma")}
	wantEarned := []int{180, 120, 60}

	for i, teamID := range teamIDs {
		res, err := f.quiz.SubmitAnswer(ctx, "q-01", teamID, "nokia")
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if res.Outcome != service.OutcomeCorrect {
			t.Fatalf("submit %d outcome = %s, want correct", i, res.Outcome)
		}
		if res.EarnedScore != wantEarned[i] {
			t.Errorf("solver %d earned %d, want %d", i, res.EarnedScore, wantEarned[i])
		}
		if f.teams.score(teamID) != wantEarned[i] {
			t.Errorf("solver %d total = %d, want %d", i, f.teams.score(teamID), wantEarned[i])
		}
	}

	q, err := f.questions.GetByID(ctx, "q-01")
	if err != nil {
		t.Fatalf("reload question: %v", err)
	}
	if !q.Solved {
		t.Error("question should be fully solved after three solvers")
	}
	if q.CurrentScore != 0 {
		t.Errorf("current score = %d, want 0", q.CurrentScore)
	}

	// A fourth team is locked out even with the right answer.
	late := f.addTeam(t, "delta")
	res, err := f.quiz.SubmitAnswer(ctx, "q-01", late, "Nokia")
	if err != nil {
		t.Fatalf("late submit: %v", err)
	}
	if res.Outcome != service.OutcomeSolved {
		t.Errorf("late outcome = %s, want solved", res.Outcome)
	}
	if f.teams.score(late) != 0 {
		t.Errorf("late solver earned %d, want 0", f.teams.score(late))
	}
}

func TestSubmitAnswerIdempotentPerTeam(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t, true)
	f.addQuestion(t, "q-01", "Nokia", 150)
	teamID := f.addTeam(t, "alpha")

	if _, err := f.quiz.SubmitAnswer(ctx, "q-01", teamID, "Nokia"); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	// Second submission from the same team: no reward, no penalty, even when
	// the answer is wrong this time.
	for _, answer := range []string{"Nokia", "Helsinki"} {
		res, err := f.quiz.SubmitAnswer(ctx, "q-01", teamID, answer)
		if err != nil {
			t.Fatalf("repeat submit: %v", err)
		}
		if res.Outcome != service.OutcomeAlready {
			t.Errorf("repeat outcome = %s, want already", res.Outcome)
		}
	}
	if f.teams.score(teamID) != 150 {
		t.Errorf("total = %d, want 150 after repeats", f.teams.score(teamID))
	}
}

func TestSubmitAnswerWrongPenalty(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t, true)
	f.addQuestion(t, "q-01", "Nokia", 150)
	teamID := f.addTeam(t, "alpha")
	f.teams.SetScore(ctx, teamID, 20)

	res, err := f.quiz.SubmitAnswer(ctx, "q-01", teamID, "Helsinki")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Outcome != service.OutcomeWrong {
		t.Fatalf("outcome = %s, want wrong", res.Outcome)
	}
	if res.Penalty != 15 {
		t.Errorf("penalty = %d, want 15", res.Penalty)
	}
	if f.teams.score(teamID) != 5 {
		t.Errorf("total = %d, want 5", f.teams.score(teamID))
	}

	// Totals clamp at zero: another wrong answer cannot go negative.
	if _, err := f.quiz.SubmitAnswer(ctx, "q-01", teamID, "Espoo"); err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if f.teams.score(teamID) != 0 {
		t.Errorf("total = %d, want 0 (clamped)", f.teams.score(teamID))
	}
}

func TestSubmitAnswerInactiveGame(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t, false)
	f.addQuestion(t, "q-01", "Nokia", 150)
	teamID := f.addTeam(t, "alpha")

	res, err := f.quiz.SubmitAnswer(ctx, "q-01", teamID, "Nokia")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Outcome != service.OutcomeInactive {
		t.Errorf("outcome = %s, want inactive", res.Outcome)
	}
	if f.teams.score(teamID) != 0 {
		t.Errorf("score moved while game inactive: %d", f.teams.score(teamID))
	}
}

func TestSubmitAnswerUnknownQuestion(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t, true)
	teamID := f.addTeam(t, "alpha")

	_, err := f.quiz.SubmitAnswer(ctx, "nope", teamID, "Nokia")
	if err != service.ErrQuestionNotFound {
		t.Fatalf("err = %v, want ErrQuestionNotFound", err)
	}
}

func TestResetQuestionReversesAwards(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t, true)
	f.addQuestion(t, "q-01", "Nokia", 180)

	first := f.addTeam(t, "alpha")
	second := f.addTeam(t, "beta")
	for _, teamID := range []string{first, second} {
		if _, err := f.quiz.SubmitAnswer(ctx, "q-01", teamID, "Nokia"); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	// Give beta extra points from elsewhere so the reversal is rank-scoped.
	f.teams.AdjustScore(ctx, second, 40)

	if err := f.quiz.ResetQuestion(ctx, "q-01"); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if got := f.teams.score(first); got != 0 {
		t.Errorf("first solver total = %d, want 0", got)
	}
	if got := f.teams.score(second); got != 40 {
		t.Errorf("second solver total = %d, want 40", got)
	}

	q, err := f.questions.GetByID(ctx, "q-01")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if q.Solved || len(q.SolvedBy) != 0 || q.CurrentScore != 180 {
		t.Errorf("question not fully reset: %+v", q)
	}
}

func TestResetQuestionSkipsDeletedSolver(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t, true)
	f.addQuestion(t, "q-01", "Nokia", 180)

	first := f.addTeam(t, "alpha")
	second := f.addTeam(t, "beta")
	for _, teamID := range []string{first, second} {
		if _, err := f.quiz.SubmitAnswer(ctx, "q-01", teamID, "Nokia"); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	// Deleting a prior solver must not make the reset fail.
	if err := f.teams.Delete(ctx, first); err != nil {
		t.Fatalf("delete team: %v", err)
	}
	if err := f.quiz.ResetQuestion(ctx, "q-01"); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if got := f.teams.score(second); got != 0 {
		t.Errorf("surviving solver total = %d, want 0", got)
	}
	q, err := f.questions.GetByID(ctx, "q-01")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if q.Solved || len(q.SolvedBy) != 0 {
		t.Errorf("question not reset: %+v", q)
	}
}

func TestSubmitAnswerConcurrentRanksAreExclusive(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t, true)
	f.addQuestion(t, "q-01", "Nokia", 180)

	const racers = 8
	teamIDs := make([]string, racers)
	for i := range teamIDs {
		teamIDs[i] = f.addTeam(t, uuid.NewString())
	}

	var wg sync.WaitGroup
	results := make([]*service.SubmitResult, racers)
	for i, teamID := range teamIDs {
		wg.Add(1)
		go func(i int, teamID string) {
			defer wg.Done()
			res, err := f.quiz.SubmitAnswer(ctx, "q-01", teamID, "Nokia")
			if err != nil {
				t.Errorf("racer %d: %v", i, err)
				return
			}
			results[i] = res
		}(i, teamID)
	}
	wg.Wait()

	// Exactly three solve slots get paid, once each, regardless of ordering.
	earnedSeen := map[int]int{}
	for _, res := range results {
		if res == nil {
			continue
		}
		if res.Outcome == service.OutcomeCorrect {
			earnedSeen[res.EarnedScore]++
		}
	}
	for _, earned := range []int{180, 120, 60} {
		if earnedSeen[earned] != 1 {
			t.Errorf("award %d paid %d times, want exactly once (seen: %v)", earned, earnedSeen[earned], earnedSeen)
		}
	}

	q, err := f.questions.GetByID(ctx, "q-01")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(q.SolvedBy) != 3 || !q.Solved {
		t.Errorf("solve state after race: solvedBy=%d solved=%v", len(q.SolvedBy), q.Solved)
	}
}
