package handler

import (
	"errors"
	"net/http"

	"github.com/Ayush-Repositories/decyber-v2/internal/middleware"
	"github.com/Ayush-Repositories/decyber-v2/internal/model"
	"github.com/Ayush-Repositories/decyber-v2/internal/response"
	"github.com/Ayush-Repositories/decyber-v2/internal/service"
	"github.com/Ayush-Repositories/decyber-v2/internal/validator"
	"github.com/gin-gonic/gin"
)

// QuizHandler handles map-round answer submissions.
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// SubmitAnswer godoc
// POST /api/v1/team/questions/:question_id/submit
// Evaluates one answer against the question's answer spec. The result body
// carries the outcome tag; correct, wrong, already, and solved are all 200s
// since they are ordinary game results.
func (h *QuizHandler) SubmitAnswer(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SubmitAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.quizService.SubmitAnswer(c.Request.Context(), c.Param("question_id"), claims.TeamID, req.Answer)
	if err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	switch result.Outcome {
	case service.OutcomeInactive:
		response.Fail(c, http.StatusForbidden, response.ErrGameInactive)
	case service.OutcomeRetry:
		response.Fail(c, http.StatusConflict, response.ErrSubmitContended)
	default:
		response.Success(c, http.StatusOK, result)
	}
}
