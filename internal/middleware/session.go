package middleware

import (
	"net/http"

	"github.com/Ayush-Repositories/decyber-v2/internal/response"
	"github.com/Ayush-Repositories/decyber-v2/internal/service"
	"github.com/gin-gonic/gin"
)

// CheckSingleTeamSession validates the JWT's JTI against the active session in
// Redis. If the JTI doesn't match, the request is rejected (the login was
// reset by an admin).
func CheckSingleTeamSession(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		// Only enforce for team tokens.
		if claims.TokenType != service.TokenTypeTeam {
			c.Next()
			return
		}

		if err := authService.ValidateTeamSession(c.Request.Context(), claims.TeamID, claims.ID); err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
			return
		}

		c.Next()
	}
}
