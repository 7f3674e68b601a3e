package websocket

import (
	"github.com/Ayush-Repositories/decyber-v2/internal/model"
)

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	// EventState carries the full authoritative snapshot. Viewers replace
	// their entire local state with it; no diffing.
	EventState Event = "state"
)

// StatePayload is the full-state snapshot pushed after every mutation.
// ServerNow (unix millis) lets viewers refresh their clock offset on each
// received snapshot.
type StatePayload struct {
	Event     Event              `json:"event"`
	Teams     []model.Team       `json:"teams"`
	Questions []model.Question   `json:"questions"`
	Game      model.GameSettings `json:"game_settings"`
	ServerNow int64              `json:"server_now"`
}
