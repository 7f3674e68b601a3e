package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/Ayush-Repositories/decyber-v2/internal/scoring"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Quiz errors.
var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrTeamNotFound     = errors.New("team not found")
)

// casRetryBudget bounds the read-evaluate-write loop. Contention on one
// question is brief (each interleaved solve advances the version once), so a
// handful of retries resolves every realistic race.
const casRetryBudget = 5

// SubmitOutcome tags the result of a map-round answer submission.
type SubmitOutcome string

const (
	OutcomeCorrect  SubmitOutcome = "correct"
	OutcomeWrong    SubmitOutcome = "wrong"
	OutcomeAlready  SubmitOutcome = "already"
	OutcomeSolved   SubmitOutcome = "solved"
	OutcomeInactive SubmitOutcome = "inactive"

	// OutcomeRetry surfaces only when the conditional-write retry budget ran
	// out under contention on one question; the client may simply resubmit.
	OutcomeRetry SubmitOutcome = "retry"
)

// SubmitResult is what a team gets back for a submission.
type SubmitResult struct {
	Outcome      SubmitOutcome `json:"outcome"`
	EarnedScore  int           `json:"earned_score,omitempty"`
	Penalty      int           `json:"penalty,omitempty"`
	CurrentScore int           `json:"current_score"`
}

// QuizService drives the per-question solve state machine and the
// penalty/reward ledger.
type QuizService struct {
	questions QuestionStore
	teams     TeamStore
	game      *GameService
	snapshot  Broadcaster
	log       zerolog.Logger
}

// NewQuizService creates a new QuizService.
func NewQuizService(questions QuestionStore, teams TeamStore, game *GameService, snapshot Broadcaster, log zerolog.Logger) *QuizService {
	return &QuizService{
		questions: questions,
		teams:     teams,
		game:      game,
		snapshot:  snapshot,
		log:       log.With().Str("component", "quiz").Logger(),
	}
}

// SubmitAnswer evaluates one map-round submission.
//
// The flow is: clock gate, then a read-evaluate-conditional-write loop.
// Appending the team to the solver list only succeeds if the solver list is
// unchanged since it was read (version CAS); on conflict the whole cycle is
// retried, so two teams racing on one question get strictly ordered,
// gap-free solve ranks.
func (s *QuizService) SubmitAnswer(ctx context.Context, questionID, teamID, answer string) (*SubmitResult, error) {
	active, err := s.game.IsActive(ctx)
	if err != nil {
		return nil, err
	}
	if !active {
		return &SubmitResult{Outcome: OutcomeInactive}, nil
	}

	for attempt := 0; attempt < casRetryBudget; attempt++ {
		q, err := s.questions.GetByID(ctx, questionID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrQuestionNotFound
			}
			return nil, fmt.Errorf("load question: %w", err)
		}

		if q.Solved {
			return &SubmitResult{Outcome: OutcomeSolved, CurrentScore: q.CurrentScore}, nil
		}
		if slices.Contains(q.SolvedBy, teamID) {
			// Idempotent: no second reward, no penalty.
			return &SubmitResult{Outcome: OutcomeAlready, CurrentScore: q.CurrentScore}, nil
		}

		if !scoring.IsCorrect(answer, q.Answer) {
			penalty := scoring.WrongAnswerPenalty(q.MaxScore)
			if err := s.teams.AdjustScore(ctx, teamID, -penalty); err != nil {
				return nil, fmt.Errorf("apply penalty: %w", err)
			}

			s.log.Info().
				Str("question_id", questionID).
				Str("team_id", teamID).
				Int("penalty", penalty).
				Msg("Wrong answer")

			s.snapshot.Broadcast(ctx)
			return &SubmitResult{Outcome: OutcomeWrong, Penalty: penalty, CurrentScore: q.CurrentScore}, nil
		}

		earned := scoring.ScoreForNthSolve(q.MaxScore, len(q.SolvedBy))
		solvedBy := append(slices.Clone(q.SolvedBy), teamID)
		currentScore := scoring.NextSolveScore(q.MaxScore, len(solvedBy))
		solved := scoring.IsFullySolved(len(solvedBy))

		swapped, err := s.questions.CompareAndSwapSolveState(ctx, q.ID, q.Version, solvedBy, currentScore, solved)
		if err != nil {
			return nil, fmt.Errorf("write solve state: %w", err)
		}
		if !swapped {
			// Another submission interleaved; re-read and re-evaluate.
			continue
		}

		if err := s.teams.AdjustScore(ctx, teamID, earned); err != nil {
			return nil, fmt.Errorf("award score: %w", err)
		}

		s.log.Info().
			Str("question_id", questionID).
			Str("team_id", teamID).
			Int("rank", len(solvedBy)-1).
			Int("earned", earned).
			Bool("fully_solved", solved).
			Msg("Question solved")

		s.snapshot.Broadcast(ctx)
		return &SubmitResult{Outcome: OutcomeCorrect, EarnedScore: earned, CurrentScore: currentScore}, nil
	}

	s.log.Warn().Str("question_id", questionID).Str("team_id", teamID).Msg("Conditional write retry budget exhausted")
	return &SubmitResult{Outcome: OutcomeRetry}, nil
}

// ResetQuestion reverses every award a question has produced and returns it
// to the unsolved state. Each prior solver is debited exactly what it earned
// at its original solve rank; the question's current value is irrelevant
// because ranks are fixed at solve time.
func (s *QuizService) ResetQuestion(ctx context.Context, questionID string) error {
	q, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("load question: %w", err)
	}

	for rank, teamID := range q.SolvedBy {
		awarded := scoring.ScoreForNthSolve(q.MaxScore, rank)
		err := s.teams.AdjustScore(ctx, teamID, -awarded)
		if errors.Is(err, pgx.ErrNoRows) {
			// Solver was deleted since; nothing left to debit.
			continue
		}
		if err != nil {
			return fmt.Errorf("reverse award for team %s: %w", teamID, err)
		}
	}

	if err := s.questions.ResetSolveState(ctx, q.ID); err != nil {
		return fmt.Errorf("reset solve state: %w", err)
	}

	s.log.Info().
		Str("question_id", questionID).
		Int("reversed_solves", len(q.SolvedBy)).
		Msg("Question reset")

	s.snapshot.Broadcast(ctx)
	return nil
}
