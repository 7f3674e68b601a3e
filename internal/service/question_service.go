package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ayush-Repositories/decyber-v2/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// QuestionService handles admin question management. Solve-state mutation
// goes through QuizService only.
type QuestionService struct {
	questions QuestionStore
	snapshot  Broadcaster
	log       zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questions QuestionStore, snapshot Broadcaster, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		questions: questions,
		snapshot:  snapshot,
		log:       log.With().Str("component", "question").Logger(),
	}
}

// List retrieves all questions, answer specs included.
func (s *QuestionService) List(ctx context.Context) ([]model.Question, error) {
	return s.questions.List(ctx)
}

// ListByRound retrieves the questions of one round.
func (s *QuestionService) ListByRound(ctx context.Context, round int) ([]model.Question, error) {
	return s.questions.ListByRound(ctx, round)
}

// Create inserts a new question in the unsolved state at full value.
func (s *QuestionService) Create(ctx context.Context, req *model.CreateQuestionRequest) (*model.Question, error) {
	q := &model.Question{
		ID:          req.ID,
		StateCode:   req.StateCode,
		StateName:   req.StateName,
		Title:       req.Title,
		Image:       req.Image,
		Answer:      req.Answer,
		Hint:        req.Hint,
		MaxScore:    req.MaxScore,
		RoundNumber: req.RoundNumber,
	}
	if err := s.questions.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	s.log.Info().Str("question_id", q.ID).Str("state", q.StateCode).Msg("Question created")
	s.snapshot.Broadcast(ctx)
	return q, nil
}

// Update applies a partial edit to a question.
func (s *QuestionService) Update(ctx context.Context, id string, req *model.UpdateQuestionRequest) error {
	if _, err := s.questions.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("load question: %w", err)
	}
	if err := s.questions.Update(ctx, id, req); err != nil {
		return fmt.Errorf("update question: %w", err)
	}

	s.log.Info().Str("question_id", id).Msg("Question updated")
	s.snapshot.Broadcast(ctx)
	return nil
}

// Delete removes a question.
func (s *QuestionService) Delete(ctx context.Context, id string) error {
	if err := s.questions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}

	s.log.Info().Str("question_id", id).Msg("Question deleted")
	s.snapshot.Broadcast(ctx)
	return nil
}
