package pipeline

import (
	"context"
	"testing"
)

func TestClassifyDecisions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Action
	}{
		{
			name: "plain weather",
			raw:  "weather",
			want: ActionWeather,
		},
		{
			name: "weather with punctuation and case",
			raw:  "  Weather.\n",
			want: ActionWeather,
		},
		{
			name: "weather embedded in a sentence",
			raw:  "The classification is 'weather'",
			want: ActionWeather,
		},
		{
			name: "plain document",
			raw:  "document",
			want: ActionDocument,
		},
		{
			name: "unrecognized output falls back to document",
			raw:  "banana",
			want: ActionDocument,
		},
		{
			name: "empty output falls back to document",
			raw:  "",
			want: ActionDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llmStub := &scriptedLLM{responses: []string{tt.raw}}
			c := NewClassifier(llmStub, quietLogger())

			state, err := c.Classify(context.Background(), NewState("some query"))
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if state.Action != tt.want {
				t.Errorf("Action = %q, want %q", state.Action, tt.want)
			}
		})
	}
}

func TestClassifyDoesNotMutateInput(t *testing.T) {
	llmStub := &scriptedLLM{responses: []string{"weather"}}
	c := NewClassifier(llmStub, quietLogger())

	in := NewState("query")
	out, err := c.Classify(context.Background(), in)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	if in.Action != "" {
		t.Errorf("input state mutated: Action = %q", in.Action)
	}
	if out.Action != ActionWeather {
		t.Errorf("derived state Action = %q, want %q", out.Action, ActionWeather)
	}
}
