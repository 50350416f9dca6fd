package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ai-pipeline-be/pkg/llm"
)

// NoContextMessage is the fixed short-circuit reply when retrieval yields
// nothing. It is produced without a model call so the system never fabricates
// an answer with no evidence behind it.
const NoContextMessage = "I couldn't find any relevant information in the documents to answer your question."

const groundedAnswerTemplate = `You are an expert research assistant helping a user understand complex topics clearly and concisely.
Use only the provided context to answer the user's question. If the context does not contain the answer, say:
"I don't have enough information to answer that question."

When answering:
- Explain technical terms simply
- Use examples if helpful
- Keep the tone friendly and helpful

Context:
%s`

// DefaultTopK is the retrieval depth when the caller does not override it.
const DefaultTopK = 4

// Retriever returns the top-k passages most similar to the query, in rank
// order. An empty result is a valid outcome, not an error.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]Passage, error)
}

// DocumentBranch answers document queries with retrieval-grounded generation.
type DocumentBranch struct {
	llmProvider llm.LLMProvider
	retriever   Retriever
	topK        int
	logger      *log.Logger
}

func NewDocumentBranch(llmProvider llm.LLMProvider, retriever Retriever, topK int, logger *log.Logger) *DocumentBranch {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &DocumentBranch{
		llmProvider: llmProvider,
		retriever:   retriever,
		topK:        topK,
		logger:      logger,
	}
}

// Run writes Context and Response into a derived state. Retrieval failures
// degrade to the no-evidence reply; only a completion transport failure
// propagates.
func (b *DocumentBranch) Run(ctx context.Context, state State) (State, error) {
	passages, err := b.retriever.Retrieve(ctx, state.Query, b.topK)
	if err != nil {
		// Retrieval never crashes the branch: a failed lookup is
		// indistinguishable from an empty corpus.
		b.logger.Printf("[DOCUMENT] Retrieval failed, degrading to no results: %v", err)
		passages = nil
	}

	next := state
	if len(passages) == 0 {
		b.logger.Printf("[DOCUMENT] No passages retrieved, short-circuiting")
		next.Response = NoContextMessage
		return next, nil
	}

	response, err := b.generate(ctx, state.Query, passages)
	if err != nil {
		return state, err
	}

	next.Context = passages
	next.Response = response
	return next, nil
}

func (b *DocumentBranch) generate(ctx context.Context, query string, passages []Passage) (string, error) {
	contextBlock := buildContextBlock(passages)

	response, err := b.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: fmt.Sprintf(groundedAnswerTemplate, contextBlock)},
		{Role: "user", Content: query},
	})
	if err != nil {
		return "", fmt.Errorf("generate grounded answer: %w", err)
	}

	b.logger.Printf("[DOCUMENT] Answer generated from %d passages", len(passages))
	return response, nil
}

// buildContextBlock joins passage texts in retrieval rank order with a
// blank-line separator.
func buildContextBlock(passages []Passage) string {
	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Text
	}
	return strings.Join(texts, "\n\n")
}
