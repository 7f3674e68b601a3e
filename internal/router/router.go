package router

import (
	"net/http"
	"time"

	"github.com/Ayush-Repositories/decyber-v2/internal/config"
	"github.com/Ayush-Repositories/decyber-v2/internal/handler"
	"github.com/Ayush-Repositories/decyber-v2/internal/middleware"
	"github.com/Ayush-Repositories/decyber-v2/internal/response"
	"github.com/Ayush-Repositories/decyber-v2/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Team     *handler.TeamHandler
	Question *handler.QuestionHandler
	Game     *handler.GameHandler
	Quiz     *handler.QuizHandler
	Written  *handler.WrittenHandler
	Media    *handler.MediaHandler
	WS       *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Serve uploaded question images statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 0. Public Group (No Auth) ─────────────────────────────────────
	// The scoreboard, question board, and clock are spectator-visible.
	publicAPI := router.Group("/api/v1")
	{
		publicAPI.GET("/questions", handlers.Question.ListQuestions)
		publicAPI.GET("/game/settings", handlers.Game.GetSettings)
		publicAPI.GET("/game/server-time", handlers.Game.GetServerTime)
		publicAPI.GET("/teams/:team_id/status", handlers.Auth.TeamStatus)
	}

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/team/login", handlers.Auth.TeamLogin)
		auth.POST("/admin/login", handlers.Auth.AdminLogin)

		// Authenticated profile routes
		auth.GET("/team/me",
			middleware.RequireTeamJWT(authService),
			middleware.CheckSingleTeamSession(authService),
			handlers.Auth.GetTeamProfile,
		)
		auth.POST("/team/logout",
			middleware.RequireTeamJWT(authService),
			handlers.Auth.TeamLogout,
		)
	}

	// ─── 2. Team Group (JWT + Single Session + Submit Rate Limit) ──────
	submitLimiter := middleware.NewSubmitLimiter(cfg.SubmitRateLimit, cfg.SubmitRateWindow)

	teamAPI := router.Group("/api/v1/team")
	teamAPI.Use(
		middleware.RequireTeamJWT(authService),
		middleware.CheckSingleTeamSession(authService),
	)
	{
		teamAPI.POST("/questions/:question_id/submit",
			submitLimiter.Middleware(),
			handlers.Quiz.SubmitAnswer,
		)
		teamAPI.POST("/written/submit",
			submitLimiter.Middleware(),
			handlers.Written.SubmitWritten,
		)
		teamAPI.GET("/written/:round_number/status", handlers.Written.WrittenStatus)
	}

	// ─── 3. WebSocket Group (Public Viewer Stream) ─────────────────────
	ws := router.Group("/ws/v1")
	{
		ws.GET("/state", handlers.WS.StateStream)
	}

	// ─── 4. Admin Group (JWT) ──────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		// Team management
		adminAPI.GET("/teams", handlers.Team.ListTeams)
		adminAPI.POST("/teams", handlers.Team.CreateTeam)
		adminAPI.DELETE("/teams/:team_id", handlers.Team.DeleteTeam)
		adminAPI.PUT("/teams/:team_id/score", handlers.Team.SetTeamScore)
		adminAPI.POST("/teams/:team_id/reset-login", handlers.Team.ResetTeamLogin)

		// Question management
		adminAPI.GET("/questions", handlers.Question.ListQuestionsAdmin)
		adminAPI.POST("/questions", handlers.Question.CreateQuestion)
		adminAPI.PUT("/questions/:question_id", handlers.Question.UpdateQuestion)
		adminAPI.DELETE("/questions/:question_id", handlers.Question.DeleteQuestion)
		adminAPI.POST("/questions/:question_id/reset", handlers.Question.ResetQuestion)

		// Game clock
		adminAPI.POST("/game/start", handlers.Game.StartGame)
		adminAPI.POST("/game/stop", handlers.Game.StopGame)

		// Media upload
		adminAPI.POST("/media/upload", handlers.Media.UploadMedia)
	}

	return router
}
