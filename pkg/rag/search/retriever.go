package search

import (
	"context"
	"fmt"
	"log"

	"ai-pipeline-be/internal/repository/unitofwork"
	"ai-pipeline-be/pkg/embedding"
	"ai-pipeline-be/pkg/pipeline"
)

// VectorRetriever answers retrieval requests from the pgvector chunk store.
// The query is embedded with the RETRIEVAL_QUERY task so it lands in the same
// space as the RETRIEVAL_DOCUMENT chunk embeddings.
type VectorRetriever struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            *log.Logger
}

var _ pipeline.Retriever = &VectorRetriever{}

func NewVectorRetriever(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	logger *log.Logger,
) *VectorRetriever {
	return &VectorRetriever{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            logger,
	}
}

func (r *VectorRetriever) Retrieve(ctx context.Context, query string, topK int) ([]pipeline.Passage, error) {
	res, err := r.embeddingProvider.Generate(query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.DocumentChunkRepository().SearchSimilarWithScore(ctx, res.Embedding.Values, topK)
	if err != nil {
		return nil, fmt.Errorf("search chunks: %w", err)
	}

	passages := make([]pipeline.Passage, len(scored))
	for i, s := range scored {
		passages[i] = pipeline.Passage{
			Text: s.Chunk.Content,
			Metadata: map[string]any{
				"document_id": s.Chunk.DocumentId.String(),
				"chunk_index": s.Chunk.ChunkIndex,
				"score":       s.Similarity,
			},
		}
	}

	r.logger.Printf("[RETRIEVER] Retrieved %d passages (topK=%d)", len(passages), topK)
	return passages, nil
}
