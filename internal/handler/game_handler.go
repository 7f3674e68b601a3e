package handler

import (
	"net/http"

	"github.com/Ayush-Repositories/decyber-v2/internal/model"
	"github.com/Ayush-Repositories/decyber-v2/internal/response"
	"github.com/Ayush-Repositories/decyber-v2/internal/service"
	"github.com/Ayush-Repositories/decyber-v2/internal/validator"
	"github.com/gin-gonic/gin"
)

// GameHandler handles game clock endpoints.
type GameHandler struct {
	gameService *service.GameService
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// GetSettings godoc
// GET /api/v1/game/settings
// Returns the clock record plus the server's current timestamp.
func (h *GameHandler) GetSettings(c *gin.Context) {
	settings, err := h.gameService.Settings(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, settings)
}

// GetServerTime godoc
// GET /api/v1/game/server-time
// Lightweight clock-offset probe for countdown displays.
func (h *GameHandler) GetServerTime(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"server_now": h.gameService.ServerNow()})
}

// StartGame godoc
// POST /api/v1/admin/game/start
func (h *GameHandler) StartGame(c *gin.Context) {
	var req model.StartGameRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.gameService.Start(c.Request.Context(), req.DurationMinutes); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// StopGame godoc
// POST /api/v1/admin/game/stop
func (h *GameHandler) StopGame(c *gin.Context) {
	if err := h.gameService.Stop(c.Request.Context()); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
