package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Ayush-Repositories/decyber-v2/internal/middleware"
	"github.com/Ayush-Repositories/decyber-v2/internal/model"
	"github.com/Ayush-Repositories/decyber-v2/internal/response"
	"github.com/Ayush-Repositories/decyber-v2/internal/service"
	"github.com/Ayush-Repositories/decyber-v2/internal/validator"
	"github.com/gin-gonic/gin"
)

// WrittenHandler handles written-round endpoints.
type WrittenHandler struct {
	writtenService *service.WrittenService
}

// NewWrittenHandler creates a new WrittenHandler.
func NewWrittenHandler(writtenService *service.WrittenService) *WrittenHandler {
	return &WrittenHandler{writtenService: writtenService}
}

// SubmitWritten godoc
// POST /api/v1/team/written/submit
// Grades the team's written-round batch; one submission per round.
func (h *WrittenHandler) SubmitWritten(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.WrittenSubmitRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.writtenService.Submit(c.Request.Context(), claims.TeamID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameInactive):
			response.Fail(c, http.StatusForbidden, response.ErrGameInactive)
		case errors.Is(err, service.ErrAlreadySubmitted):
			response.Fail(c, http.StatusConflict, response.ErrAlreadySubmitted)
		case errors.Is(err, service.ErrUnknownQuestion):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

// WrittenStatus godoc
// GET /api/v1/team/written/:round_number/status
// Reports whether the team has already submitted the round.
func (h *WrittenHandler) WrittenStatus(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	round, err := strconv.Atoi(c.Param("round_number"))
	if err != nil || round < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	submitted, err := h.writtenService.HasSubmitted(c.Request.Context(), claims.TeamID, round)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"round_number": round, "submitted": submitted})
}
