package handler

import (
	"errors"
	"net/http"

	"github.com/Ayush-Repositories/decyber-v2/internal/model"
	"github.com/Ayush-Repositories/decyber-v2/internal/response"
	"github.com/Ayush-Repositories/decyber-v2/internal/service"
	"github.com/Ayush-Repositories/decyber-v2/internal/validator"
	"github.com/gin-gonic/gin"
)

// QuestionHandler handles question endpoints: the public board listing and
// the admin management surface.
type QuestionHandler struct {
	questionService *service.QuestionService
	quizService     *service.QuizService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService, quizService *service.QuizService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		quizService:     quizService,
	}
}

// ListQuestions godoc
// GET /api/v1/questions
// Public board listing. Answer specs never leave the server here.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	questions, err := h.questionService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if questions == nil {
		questions = []model.Question{}
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// ListQuestionsAdmin godoc
// GET /api/v1/admin/questions
// Admin listing with answer specs included.
func (h *QuestionHandler) ListQuestionsAdmin(c *gin.Context) {
	questions, err := h.questionService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	out := make([]model.AdminQuestion, 0, len(questions))
	for _, q := range questions {
		out = append(out, model.NewAdminQuestion(q))
	}

	response.Success(c, http.StatusOK, gin.H{"questions": out})
}

// CreateQuestion godoc
// POST /api/v1/admin/questions
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	q, err := h.questionService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"question": model.NewAdminQuestion(*q)})
}

// UpdateQuestion godoc
// PUT /api/v1/admin/questions/:question_id
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	var req model.UpdateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	err := h.questionService.Update(c.Request.Context(), c.Param("question_id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// DeleteQuestion godoc
// DELETE /api/v1/admin/questions/:question_id
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	if err := h.questionService.Delete(c.Request.Context(), c.Param("question_id")); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// ResetQuestion godoc
// POST /api/v1/admin/questions/:question_id/reset
// Returns a question to the unsolved state and reverses every award it paid.
func (h *QuestionHandler) ResetQuestion(c *gin.Context) {
	err := h.quizService.ResetQuestion(c.Request.Context(), c.Param("question_id"))
	if err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
