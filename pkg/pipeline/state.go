package pipeline

import (
	"ai-pipeline-be/pkg/weather"
)

// Action is the branch chosen by the classifier for a single invocation.
type Action string

const (
	ActionWeather  Action = "weather"
	ActionDocument Action = "document"
)

// Passage is one retrieved chunk of document text plus its source metadata.
// Passages are produced by the retriever and never mutated afterwards.
type Passage struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata"`
}

// State is the single record threaded through the pipeline stages.
// Each stage receives a State by value and returns a derived copy with only
// the fields it owns filled in; a stage never mutates a state it did not
// produce. Exactly one of {WeatherData, Context} is populated per run.
type State struct {
	Query       string          `json:"query"`
	Action      Action          `json:"action"`
	Context     []Passage       `json:"context"`
	WeatherData weather.Payload `json:"weather_data"`
	City        string          `json:"city"`
	Response    string          `json:"response"`
	Evaluation  map[string]any  `json:"evaluation"`
}

// NewState constructs the initial state for a query.
func NewState(query string) State {
	return State{Query: query}
}
