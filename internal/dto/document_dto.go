package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateDocumentRequest struct {
	Title   string `json:"title" validate:"required,max=500"`
	Source  string `json:"source" validate:"max=1000"`
	Content string `json:"content" validate:"required"`
}

type UpdateDocumentRequest struct {
	Id      uuid.UUID `json:"-"`
	Title   string    `json:"title" validate:"required,max=500"`
	Source  string    `json:"source" validate:"max=1000"`
	Content string    `json:"content" validate:"required"`
}

type DocumentResponse struct {
	Id         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Source     string     `json:"source,omitempty"`
	Content    string     `json:"content,omitempty"`
	ChunkCount int64      `json:"chunk_count,omitempty"` // only populated on Show
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

// PublishEmbedDocumentMessage is the payload of the ingestion topic.
type PublishEmbedDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
