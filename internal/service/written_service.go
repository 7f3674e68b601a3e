package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Ayush-Repositories/decyber-v2/internal/config"
	"github.com/Ayush-Repositories/decyber-v2/internal/model"
	"github.com/Ayush-Repositories/decyber-v2/internal/scoring"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Written-round errors.
var (
	ErrGameInactive     = errors.New("game is not active")
	ErrAlreadySubmitted = errors.New("round already submitted")
	ErrUnknownQuestion  = errors.New("answer references a question outside this round")
)

// WrittenResult summarizes a graded written-round submission.
type WrittenResult struct {
	RoundNumber   int `json:"round_number"`
	Graded        int `json:"graded"`
	Correct       int `json:"correct"`
	PointsAwarded int `json:"points_awarded"`
}

// SubmissionPayload is the queue entry drained into the append-only log by
// the submission worker.
type SubmissionPayload struct {
	TeamID          string `json:"team_id"`
	QuestionID      string `json:"question_id"`
	SubmittedAnswer string `json:"submitted_answer"`
	IsCorrect       bool   `json:"is_correct"`
	PointsAwarded   int    `json:"points_awarded"`
}

// WrittenService grades the timed written round. Answers are checked with
// the same matcher as the map round but award the full question value; there
// is no solve decay and each team submits a round exactly once.
type WrittenService struct {
	questions QuestionStore
	teams     TeamStore
	subs      SubmissionStore
	game      *GameService
	snapshot  Broadcaster
	rdb       *redis.Client
	log       zerolog.Logger
}

// NewWrittenService creates a new WrittenService.
func NewWrittenService(
	questions QuestionStore,
	teams TeamStore,
	subs SubmissionStore,
	game *GameService,
	snapshot Broadcaster,
	rdb *redis.Client,
	log zerolog.Logger,
) *WrittenService {
	return &WrittenService{
		questions: questions,
		teams:     teams,
		subs:      subs,
		game:      game,
		snapshot:  snapshot,
		rdb:       rdb,
		log:       log.With().Str("component", "written").Logger(),
	}
}

// Submit grades a team's written-round batch server-side, credits the total
// to the team, and queues the graded rows for persistence. At most one
// submission per team per round, enforced with an atomic Redis mark.
func (s *WrittenService) Submit(ctx context.Context, teamID string, req *model.WrittenSubmitRequest) (*WrittenResult, error) {
	active, err := s.game.IsActive(ctx)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrGameInactive
	}

	roundQuestions, err := s.questions.ListByRound(ctx, req.RoundNumber)
	if err != nil {
		return nil, fmt.Errorf("load round questions: %w", err)
	}
	byID := make(map[string]*model.Question, len(roundQuestions))
	for i := range roundQuestions {
		byID[roundQuestions[i].ID] = &roundQuestions[i]
	}
	for _, a := range req.Answers {
		if _, ok := byID[a.QuestionID]; !ok {
			return nil, ErrUnknownQuestion
		}
	}

	// Atomic mark: whichever request sets it first owns the submission.
	mark := config.CacheKey.WrittenRoundMarkKey(teamID, req.RoundNumber)
	acquired, err := s.rdb.SetNX(ctx, mark, time.Now().UTC().Format(time.RFC3339), 0).Result()
	if err != nil {
		return nil, fmt.Errorf("mark submission: %w", err)
	}
	if !acquired {
		return nil, ErrAlreadySubmitted
	}

	result := &WrittenResult{RoundNumber: req.RoundNumber}
	seen := make(map[string]bool, len(req.Answers))
	rows := make([]SubmissionPayload, 0, len(req.Answers))

	for _, a := range req.Answers {
		if seen[a.QuestionID] {
			continue
		}
		seen[a.QuestionID] = true

		q := byID[a.QuestionID]
		correct := scoring.IsCorrect(a.Answer, q.Answer)
		points := 0
		if correct {
			points = q.MaxScore
			result.Correct++
		}
		result.Graded++
		result.PointsAwarded += points

		rows = append(rows, SubmissionPayload{
			TeamID:          teamID,
			QuestionID:      a.QuestionID,
			SubmittedAnswer: a.Answer,
			IsCorrect:       correct,
			PointsAwarded:   points,
		})
	}

	if result.PointsAwarded > 0 {
		if err := s.teams.AdjustScore(ctx, teamID, result.PointsAwarded); err != nil {
			// Release the mark so the team can resubmit once the store recovers.
			if delErr := s.rdb.Del(ctx, mark).Err(); delErr != nil {
				s.log.Error().Err(delErr).Str("team_id", teamID).Msg("Release submission mark failed")
			}
			return nil, fmt.Errorf("award written-round points: %w", err)
		}
	}

	// Rows hit the persist queue only after the award lands, so a retried
	// submission never duplicates log entries.
	for _, row := range rows {
		payload, _ := json.Marshal(row)
		if err := s.rdb.RPush(ctx, config.WorkerKey.PersistSubmissionsQueue, payload).Err(); err != nil {
			s.log.Error().Err(err).Str("team_id", teamID).Msg("Queue submission row failed")
		}
	}

	s.log.Info().
		Str("team_id", teamID).
		Int("round", req.RoundNumber).
		Int("correct", result.Correct).
		Int("awarded", result.PointsAwarded).
		Msg("Written round graded")

	s.snapshot.Broadcast(ctx)
	return result, nil
}

// HasSubmitted reports whether a team has already submitted a round. The
// Redis mark answers the common case; the submission log is the fallback in
// case the mark was lost.
func (s *WrittenService) HasSubmitted(ctx context.Context, teamID string, round int) (bool, error) {
	mark := config.CacheKey.WrittenRoundMarkKey(teamID, round)
	n, err := s.rdb.Exists(ctx, mark).Result()
	if err != nil {
		return false, fmt.Errorf("check mark: %w", err)
	}
	if n > 0 {
		return true, nil
	}
	return s.subs.ExistsForRound(ctx, teamID, round)
}
