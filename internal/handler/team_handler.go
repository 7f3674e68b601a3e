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

// TeamHandler handles admin team management endpoints.
type TeamHandler struct {
	teamService *service.TeamService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamService *service.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// ListTeams godoc
// GET /api/v1/admin/teams
func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.teamService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if teams == nil {
		teams = []model.Team{}
	}

	response.Success(c, http.StatusOK, gin.H{"teams": teams})
}

// CreateTeam godoc
// POST /api/v1/admin/teams
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req model.CreateTeamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	team, err := h.teamService.Create(c.Request.Context(), req.Name, req.Passcode)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"team": team})
}

// DeleteTeam godoc
// DELETE /api/v1/admin/teams/:team_id
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	if err := h.teamService.Delete(c.Request.Context(), c.Param("team_id")); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// SetTeamScore godoc
// PUT /api/v1/admin/teams/:team_id/score
// Overwrites a team's total score.
func (h *TeamHandler) SetTeamScore(c *gin.Context) {
	var req model.SetTeamScoreRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	err := h.teamService.SetScore(c.Request.Context(), c.Param("team_id"), req.Score)
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// ResetTeamLogin godoc
// POST /api/v1/admin/teams/:team_id/reset-login
// Clears the team's active session so it can log in again.
func (h *TeamHandler) ResetTeamLogin(c *gin.Context) {
	if err := h.teamService.ResetLogin(c.Request.Context(), c.Param("team_id")); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
