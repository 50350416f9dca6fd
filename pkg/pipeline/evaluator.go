package pipeline

import (
	"fmt"
	"log"
)

// Evaluator attaches a coarse quality summary to a finished state. It is a
// hook for future real scoring, not a scoring engine, and it must never fail
// the pipeline: any internal error degrades to an error-tagged summary.
type Evaluator struct {
	logger *log.Logger
}

func NewEvaluator(logger *log.Logger) *Evaluator {
	return &Evaluator{logger: logger}
}

// Evaluate writes Evaluation into a derived state.
func (e *Evaluator) Evaluate(state State) State {
	next := state
	next.Evaluation = e.summarize(state)
	return next
}

func (e *Evaluator) summarize(state State) (summary map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Printf("[EVALUATOR] Metric computation failed: %v", r)
			summary = map[string]any{"error": fmt.Sprintf("evaluation failed: %v", r)}
		}
	}()

	confidence := 0.7
	if len(state.Context) > 0 || len(state.WeatherData) > 0 {
		confidence = 0.95
	}

	return map[string]any{
		"query":      state.Query,
		"response":   state.Response,
		"action":     string(state.Action),
		"confidence": confidence,
		// Placeholder until a real latency probe is wired in.
		"latency": 1.2,
	}
}
