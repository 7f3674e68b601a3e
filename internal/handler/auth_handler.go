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

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
	teamService *service.TeamService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, teamService *service.TeamService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		teamService: teamService,
	}
}

// TeamLogin godoc
// POST /api/v1/auth/team/login
// Validates name + passcode, rejects if a session is already active, returns JWT.
func (h *AuthHandler) TeamLogin(c *gin.Context) {
	var req model.TeamLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.teamService.Login(c.Request.Context(), req.Name, req.Passcode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		case errors.Is(err, service.ErrSessionAlreadyActive):
			response.Fail(c, http.StatusConflict, response.ErrSessionActive)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

// AdminLogin godoc
// POST /api/v1/auth/admin/login
// Exchanges the admin key for an admin JWT.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req model.AdminLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, err := h.authService.GenerateAdminToken(req.Key)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": token})
}

// GetTeamProfile godoc
// GET /api/v1/auth/team/me
// Returns the authenticated team's record.
func (h *AuthHandler) GetTeamProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	team, err := h.teamService.Get(c.Request.Context(), claims.TeamID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"team": team})
}

// TeamLogout godoc
// POST /api/v1/auth/team/logout
// Ends the authenticated team's session so it can log in elsewhere.
func (h *AuthHandler) TeamLogout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.teamService.ResetLogin(c.Request.Context(), claims.TeamID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// TeamStatus godoc
// GET /api/v1/teams/:team_id/status
// Public existence + login probe; clients poll it to detect an admin reset.
func (h *AuthHandler) TeamStatus(c *gin.Context) {
	status, err := h.teamService.Status(c.Request.Context(), c.Param("team_id"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, status)
}
