package pipeline

import (
	"testing"

	"ai-pipeline-be/pkg/weather"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateConfidence(t *testing.T) {
	e := NewEvaluator(quietLogger())

	tests := []struct {
		name  string
		state State
		want  float64
	}{
		{
			name: "context populated",
			state: State{
				Query:    "q",
				Response: "r",
				Action:   ActionDocument,
				Context:  []Passage{{Text: "evidence"}},
			},
			want: 0.95,
		},
		{
			name: "weather data populated",
			state: State{
				Query:       "q",
				Response:    "r",
				Action:      ActionWeather,
				WeatherData: weather.Payload{"name": "Paris"},
			},
			want: 0.95,
		},
		{
			name: "nothing populated",
			state: State{
				Query:    "q",
				Response: NoContextMessage,
				Action:   ActionDocument,
			},
			want: 0.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := e.Evaluate(tt.state)
			require.NotNil(t, out.Evaluation)
			assert.Equal(t, tt.want, out.Evaluation["confidence"])
			assert.Equal(t, tt.state.Query, out.Evaluation["query"])
			assert.Equal(t, string(tt.state.Action), out.Evaluation["action"])
		})
	}
}

func TestEvaluateLeavesResponseUntouched(t *testing.T) {
	e := NewEvaluator(quietLogger())

	in := State{Query: "q", Response: "final answer", Action: ActionDocument}
	out := e.Evaluate(in)

	require.NotNil(t, out.Evaluation)
	assert.Equal(t, "final answer", out.Response)
	assert.Nil(t, in.Evaluation, "input state must not be mutated")
}
