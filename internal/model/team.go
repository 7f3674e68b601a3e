package model

import (
	"time"

	"github.com/google/uuid"
)

// Team represents a competing team.
type Team struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	PasscodeHash string    `json:"-"`
	TotalScore   int       `json:"total_score"`
	LoggedIn     bool      `json:"logged_in"`
	CreatedAt    time.Time `json:"created_at"`
}

// TeamLoginRequest is the payload for team authentication.
type TeamLoginRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Passcode string `json:"passcode" binding:"required,min=4,max=128"`
}

// TeamLoginResponse is returned after successful team login.
type TeamLoginResponse struct {
	Token string `json:"token"`
	Team  Team   `json:"team"`
}

// CreateTeamRequest is the payload for creating a new team.
type CreateTeamRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Passcode string `json:"passcode" binding:"required,min=4,max=128"`
}

// AdminLoginRequest is the payload for exchanging the admin key for a token.
type AdminLoginRequest struct {
	Key string `json:"key" binding:"required,min=1,max=256"`
}

// SetTeamScoreRequest is the payload for an admin score override.
type SetTeamScoreRequest struct {
	Score int `json:"score" binding:"min=0"`
}

// TeamStatus reports whether a team exists and holds an active login.
// Clients poll this to detect an admin-issued session reset.
type TeamStatus struct {
	Exists   bool `json:"exists"`
	LoggedIn bool `json:"logged_in"`
}
