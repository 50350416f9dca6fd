package dto

import (
	"time"

	"ai-pipeline-be/pkg/weather"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetAllSessionsResponse struct {
	Id         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	LastAction string     `json:"last_action,omitempty"` // from the in-memory scratchpad, empty when expired
	LastAt     *time.Time `json:"last_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

type GetChatHistoryResponse struct {
	Id         uuid.UUID      `json:"id"`
	Role       string         `json:"role"`
	Chat       string         `json:"chat"`
	Action     string         `json:"action,omitempty"`
	Evaluation map[string]any `json:"evaluation,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

type SendQueryRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id"` // zero value starts a new session
	Query         string    `json:"query" validate:"required"`
}

type SendQueryResponseChat struct {
	Id        uuid.UUID `json:"id"`
	Chat      string    `json:"chat"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type PassageDTO struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type SendQueryResponse struct {
	ChatSessionId    uuid.UUID              `json:"chat_session_id"`
	ChatSessionTitle string                 `json:"title"`
	Sent             *SendQueryResponseChat `json:"sent"`
	Reply            *SendQueryResponseChat `json:"reply"`
	Action           string                 `json:"action"` // "weather" | "document"
	City             string                 `json:"city,omitempty"`
	Context          []PassageDTO           `json:"context,omitempty"`
	WeatherData      weather.Payload        `json:"weather_data,omitempty"`
	Evaluation       map[string]any         `json:"evaluation,omitempty"`
}

type DeleteSessionRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
}
