package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	QueryCompletedType   = "QUERY_COMPLETED"
	DocumentIngestedType = "DOCUMENT_INGESTED"
)

// NewQueryCompletedEvent is emitted after a pipeline invocation finishes,
// carrying the evaluation summary for downstream consumers.
func NewQueryCompletedEvent(sessionId uuid.UUID, action string, evaluation map[string]interface{}) Event {
	return BaseEvent{
		Type: QueryCompletedType,
		Data: map[string]interface{}{
			"chat_session_id": sessionId.String(),
			"action":          action,
			"evaluation":      evaluation,
		},
		OccurredAt: time.Now(),
	}
}

// NewDocumentIngestedEvent is emitted once a document has been chunked and
// its embeddings stored.
func NewDocumentIngestedEvent(documentId uuid.UUID, chunkCount int) Event {
	return BaseEvent{
		Type: DocumentIngestedType,
		Data: map[string]interface{}{
			"document_id": documentId.String(),
			"chunk_count": chunkCount,
		},
		OccurredAt: time.Now(),
	}
}
