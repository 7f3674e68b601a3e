package model

import "time"

// GameSettings is the single shared game clock record.
//
// Invariant: when TimerRunning is true, TimerEndsAt is set. The game is
// active only while TimerRunning && server now < TimerEndsAt.
type GameSettings struct {
	TimerRunning         bool       `json:"timer_running"`
	TimerEndsAt          *time.Time `json:"timer_ends_at"`
	TimerDurationMinutes int        `json:"timer_duration_minutes"`
}

// GameSettingsResponse augments the clock record with the server's own
// timestamp (unix millis) so viewers can compute a local clock offset.
type GameSettingsResponse struct {
	GameSettings
	ServerNow int64 `json:"server_now"`
}

// StartGameRequest is the payload for starting the game clock.
type StartGameRequest struct {
	DurationMinutes int `json:"duration_minutes" binding:"required,min=1,max=1440"`
}
