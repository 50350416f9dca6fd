package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"ai-pipeline-be/internal/dto"
	"ai-pipeline-be/internal/entity"
	"ai-pipeline-be/internal/repository/specification"
	"ai-pipeline-be/internal/repository/unitofwork"
	"ai-pipeline-be/pkg/embedding"
	"ai-pipeline-be/pkg/events"
	pktNats "ai-pipeline-be/pkg/nats"
	"ai-pipeline-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	eventPublisher    *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage chunks a document, embeds every chunk, and replaces the
// stored embeddings in one transaction. Re-ingesting a document is therefore
// idempotent.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedDocumentMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing embeddings for DocumentId: %s", payload.DocumentId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		log.Printf("[ERROR] Failed to get document %s: %v", payload.DocumentId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if document == nil {
		log.Printf("[ERROR] Document not found: %s", payload.DocumentId)
		msg.Ack() // Document deleted? Ack.
		return
	}

	documentUpdatedAt := "-"
	if document.UpdatedAt != nil {
		documentUpdatedAt = document.UpdatedAt.Format(time.RFC3339)
	}

	content := fmt.Sprintf(`Document Title: %s
Source: %s

%s

Created At: %s
Updated At: %s`,
		document.Title,
		document.Source,
		document.Content,
		document.CreatedAt.Format(time.RFC3339),
		documentUpdatedAt,
	)

	// ChunkSize 1500 chars with 200 char overlap keeps each chunk well inside
	// the embedding model's context window.
	chunks := utils.SplitText(content, 1500, 200)
	log.Printf("[INFO] Content split into %d chunks", len(chunks))

	var newChunks []*entity.DocumentChunk

	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(chunk, embedding.TaskRetrievalDocument)
		if err != nil {
			log.Printf("[ERROR] Failed to generate embedding for chunk %d of document %s: %v", i, payload.DocumentId, err)
			msg.Nack()
			return
		}

		newChunks = append(newChunks, &entity.DocumentChunk{
			Id:             uuid.New(),
			Content:        chunk,
			EmbeddingValue: res.Embedding.Values,
			DocumentId:     document.Id,
			ChunkIndex:     i,
			CreatedAt:      time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.DocumentChunkRepository().DeleteByDocumentId(ctx, document.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old chunks: %v", err)
		msg.Nack()
		return
	}

	if len(newChunks) > 0 {
		if err := uow.DocumentChunkRepository().CreateBulk(ctx, newChunks); err != nil {
			log.Printf("[ERROR] Failed to create bulk chunks: %v", err)
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	// Auxiliary event, a publish failure never blocks the ack.
	if cs.eventPublisher != nil {
		evt := events.NewDocumentIngestedEvent(document.Id, len(newChunks))
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish DOCUMENT_INGESTED event: %v", err)
		}
	}

	log.Printf("[SUCCESS] Document processed: %d chunks for DocumentId: %s", len(newChunks), payload.DocumentId)
	msg.Ack()
}
