package store

import "time"

// Session is the in-memory scratchpad for an active chat session. It carries
// the last pipeline outcome so follow-up requests can be answered without a
// database round trip.
type Session struct {
	ID         string    `json:"id"` // ChatSessionID
	LastQuery  string    `json:"last_query"`
	LastAction string    `json:"last_action"` // "weather" | "document"
	LastAt     time.Time `json:"last_at"`
}
