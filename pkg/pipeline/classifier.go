package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ai-pipeline-be/pkg/llm"
)

const classifierPrompt = `You are a router that decides whether a user query is about:
1. Weather information (requiring a weather API call)
2. Information from documents (requiring document retrieval)

If the query mentions weather, forecast, temperature, rain, sun, climate, or other weather-related terms for a specific location, classify it as 'weather'.

Otherwise, classify it as 'document' for document retrieval.

Return only 'weather' or 'document' as your classification.`

// Classifier assigns exactly one action to a query via a single completion
// call. The raw model output is normalized and matched by substring; anything
// that does not contain "weather" falls through to the document branch, so an
// ambiguous or malformed reply never triggers a live weather call.
type Classifier struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewClassifier(llmProvider llm.LLMProvider, logger *log.Logger) *Classifier {
	return &Classifier{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Classify writes Action into a derived state. A completion transport error
// propagates; there is no retry and no silent default on failure.
func (c *Classifier) Classify(ctx context.Context, state State) (State, error) {
	raw, err := c.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: classifierPrompt},
		{Role: "user", Content: state.Query},
	}, llm.WithTemperature(0.0))
	if err != nil {
		return state, fmt.Errorf("classify query: %w", err)
	}

	decision := strings.ToLower(strings.TrimSpace(raw))

	next := state
	if strings.Contains(decision, "weather") {
		next.Action = ActionWeather
	} else {
		next.Action = ActionDocument
	}

	c.logger.Printf("[CLASSIFIER] Decision: %s (raw: %s)", next.Action, truncate(decision, 40))

	return next, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
