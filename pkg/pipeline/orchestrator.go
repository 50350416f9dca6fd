package pipeline

import (
	"context"
	"fmt"
	"log"

	"ai-pipeline-be/pkg/llm"
)

// Orchestrator runs the query pipeline: classify, dispatch to exactly one
// branch, evaluate. The transition graph is fixed and linear with a single
// fork after classification; no stage runs more than once per invocation and
// nothing is shared between invocations, so concurrent calls are safe.
type Orchestrator struct {
	classifier     *Classifier
	weatherBranch  *WeatherBranch
	documentBranch *DocumentBranch
	evaluator      *Evaluator
	logger         *log.Logger
}

// Config carries the tunables of the pipeline core.
type Config struct {
	DefaultCity string
	TopK        int
}

func NewOrchestrator(
	llmProvider llm.LLMProvider,
	retriever Retriever,
	fetcher WeatherFetcher,
	cfg Config,
	logger *log.Logger,
) *Orchestrator {
	return &Orchestrator{
		classifier:     NewClassifier(llmProvider, logger),
		weatherBranch:  NewWeatherBranch(llmProvider, fetcher, cfg.DefaultCity, logger),
		documentBranch: NewDocumentBranch(llmProvider, retriever, cfg.TopK, logger),
		evaluator:      NewEvaluator(logger),
		logger:         logger,
	}
}

// Invoke processes a single query end to end and returns the final state.
// Provider-originated failures are absorbed inside the branches and surface
// as response content; anything else aborts the invocation.
func (o *Orchestrator) Invoke(ctx context.Context, query string) (State, error) {
	if query == "" {
		return State{}, fmt.Errorf("query must not be empty")
	}

	state := NewState(query)

	state, err := o.classifier.Classify(ctx, state)
	if err != nil {
		return State{}, err
	}

	switch state.Action {
	case ActionWeather:
		state, err = o.weatherBranch.Run(ctx, state)
	case ActionDocument:
		state, err = o.documentBranch.Run(ctx, state)
	default:
		err = fmt.Errorf("unknown action %q", state.Action)
	}
	if err != nil {
		return State{}, err
	}

	state = o.evaluator.Evaluate(state)

	o.logger.Printf("[PIPELINE] Completed: action=%s response_len=%d", state.Action, len(state.Response))

	return state, nil
}
