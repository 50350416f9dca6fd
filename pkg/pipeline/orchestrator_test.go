package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"testing"

	"ai-pipeline-be/pkg/llm"
	"ai-pipeline-be/pkg/weather"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedLLM replies with its responses in call order and records every call.
type scriptedLLM struct {
	responses []string
	calls     [][]llm.Message
	err       error
}

func (f *scriptedLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.calls = append(f.calls, history)
	idx := len(f.calls) - 1
	if idx >= len(f.responses) {
		return "", fmt.Errorf("unexpected llm call %d", idx)
	}
	return f.responses[idx], nil
}

func (f *scriptedLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

type stubRetriever struct {
	passages []Passage
	err      error
	lastTopK int
}

func (r *stubRetriever) Retrieve(ctx context.Context, query string, topK int) ([]Passage, error) {
	r.lastTopK = topK
	if r.err != nil {
		return nil, r.err
	}
	return r.passages, nil
}

type stubFetcher struct {
	payload  weather.Payload
	lastCity string
	calls    int
}

func (f *stubFetcher) Current(ctx context.Context, city string) weather.Payload {
	f.calls++
	f.lastCity = city
	return f.payload
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func successPayload() weather.Payload {
	return weather.Payload{
		"name": "Paris",
		"sys":  map[string]any{"country": "FR"},
		"main": map[string]any{
			"temp":       18.2,
			"feels_like": 17.5,
			"humidity":   float64(60),
		},
		"weather": []any{
			map[string]any{"description": "clear sky"},
		},
		"wind": map[string]any{"speed": 3.1},
	}
}

func TestInvokeWeatherPath(t *testing.T) {
	llmStub := &scriptedLLM{responses: []string{
		"weather",
		"Paris",
		"It's a lovely 18.2°C in Paris with clear skies.",
	}}
	fetcher := &stubFetcher{payload: successPayload()}
	retriever := &stubRetriever{}

	orch := NewOrchestrator(llmStub, retriever, fetcher, Config{}, quietLogger())

	state, err := orch.Invoke(context.Background(), "What's the weather in Paris?")
	require.NoError(t, err)

	assert.Equal(t, ActionWeather, state.Action)
	assert.Equal(t, "Paris", state.City)
	assert.Equal(t, "Paris", fetcher.lastCity)
	assert.Equal(t, "It's a lovely 18.2°C in Paris with clear skies.", state.Response)
	assert.NotEmpty(t, state.WeatherData)
	assert.Empty(t, state.Context, "weather path must not populate retrieval context")

	// The synthesis prompt carries the formatted report, not raw JSON.
	require.Len(t, llmStub.calls, 3)
	synthesisInput := llmStub.calls[2][1].Content
	assert.Contains(t, synthesisInput, "18.2")
	assert.Contains(t, synthesisInput, "Clear sky")
}

func TestInvokeWeatherProviderError(t *testing.T) {
	llmStub := &scriptedLLM{responses: []string{
		"weather",
		"Atlantis42",
	}}
	fetcher := &stubFetcher{payload: weather.Payload{"error": "City Atlantis42 not found"}}

	orch := NewOrchestrator(llmStub, &stubRetriever{}, fetcher, Config{}, quietLogger())

	state, err := orch.Invoke(context.Background(), "What's the weather in Atlantis42?")
	require.NoError(t, err)

	assert.Equal(t, ActionWeather, state.Action)
	assert.Equal(t, "City Atlantis42 not found", state.Response)
	// classify + extract city only, no synthesis for an error payload
	assert.Len(t, llmStub.calls, 2)
}

func TestInvokeWeatherIncompletePayload(t *testing.T) {
	llmStub := &scriptedLLM{responses: []string{
		"weather",
		"Paris",
	}}
	fetcher := &stubFetcher{payload: weather.Payload{"name": "Paris"}}

	orch := NewOrchestrator(llmStub, &stubRetriever{}, fetcher, Config{}, quietLogger())

	state, err := orch.Invoke(context.Background(), "weather in Paris")
	require.NoError(t, err)

	assert.Equal(t, IncompleteDataMessage, state.Response)
	assert.Len(t, llmStub.calls, 2)
}

func TestInvokeWeatherDefaultCity(t *testing.T) {
	llmStub := &scriptedLLM{responses: []string{
		"weather",
		"Not specified",
		"Here is the London weather.",
	}}
	fetcher := &stubFetcher{payload: successPayload()}

	orch := NewOrchestrator(llmStub, &stubRetriever{}, fetcher, Config{}, quietLogger())

	state, err := orch.Invoke(context.Background(), "Is it raining?")
	require.NoError(t, err)

	assert.Equal(t, "London", state.City)
	assert.Equal(t, "London", fetcher.lastCity)
}

func TestInvokeDocumentPath(t *testing.T) {
	llmStub := &scriptedLLM{responses: []string{
		"document",
		"Transformers use self-attention.",
	}}
	retriever := &stubRetriever{passages: []Passage{
		{Text: "first passage", Metadata: map[string]any{"chunk_index": 0}},
		{Text: "second passage", Metadata: map[string]any{"chunk_index": 1}},
	}}

	orch := NewOrchestrator(llmStub, retriever, &stubFetcher{}, Config{}, quietLogger())

	state, err := orch.Invoke(context.Background(), "How do transformers work?")
	require.NoError(t, err)

	assert.Equal(t, ActionDocument, state.Action)
	assert.Equal(t, "Transformers use self-attention.", state.Response)
	assert.Empty(t, state.WeatherData, "document path must not populate weather data")
	assert.Equal(t, DefaultTopK, retriever.lastTopK)

	// Retrieval rank order is preserved through the state.
	require.Len(t, state.Context, 2)
	assert.Equal(t, "first passage", state.Context[0].Text)
	assert.Equal(t, "second passage", state.Context[1].Text)

	// The grounding prompt joins passages in order.
	require.Len(t, llmStub.calls, 2)
	systemPrompt := llmStub.calls[1][0].Content
	assert.Contains(t, systemPrompt, "first passage\n\nsecond passage")
}

func TestInvokeDocumentNoPassages(t *testing.T) {
	llmStub := &scriptedLLM{responses: []string{"document"}}
	retriever := &stubRetriever{passages: nil}

	orch := NewOrchestrator(llmStub, retriever, &stubFetcher{}, Config{}, quietLogger())

	state, err := orch.Invoke(context.Background(), "Tell me about the handbook")
	require.NoError(t, err)

	assert.Equal(t, NoContextMessage, state.Response)
	assert.Empty(t, state.Context)
	// only the classifier ran, the short-circuit makes no generation call
	assert.Len(t, llmStub.calls, 1)
}

func TestInvokeDocumentRetrievalErrorDegrades(t *testing.T) {
	llmStub := &scriptedLLM{responses: []string{"document"}}
	retriever := &stubRetriever{err: fmt.Errorf("vector store down")}

	orch := NewOrchestrator(llmStub, retriever, &stubFetcher{}, Config{}, quietLogger())

	state, err := orch.Invoke(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, NoContextMessage, state.Response)
}

func TestInvokeEmptyQuery(t *testing.T) {
	orch := NewOrchestrator(&scriptedLLM{}, &stubRetriever{}, &stubFetcher{}, Config{}, quietLogger())

	_, err := orch.Invoke(context.Background(), "")
	assert.Error(t, err)
}

func TestInvokeClassifierErrorPropagates(t *testing.T) {
	llmStub := &scriptedLLM{err: fmt.Errorf("connection refused")}
	orch := NewOrchestrator(llmStub, &stubRetriever{}, &stubFetcher{}, Config{}, quietLogger())

	_, err := orch.Invoke(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "classify query")
}

func TestInvokeAttachesEvaluation(t *testing.T) {
	llmStub := &scriptedLLM{responses: []string{
		"document",
		"grounded answer",
	}}
	retriever := &stubRetriever{passages: []Passage{{Text: "evidence"}}}

	orch := NewOrchestrator(llmStub, retriever, &stubFetcher{}, Config{}, quietLogger())

	state, err := orch.Invoke(context.Background(), "question")
	require.NoError(t, err)

	require.NotNil(t, state.Evaluation)
	assert.Equal(t, "question", state.Evaluation["query"])
	assert.Equal(t, "grounded answer", state.Evaluation["response"])
	assert.Equal(t, "document", state.Evaluation["action"])
	assert.Equal(t, 0.95, state.Evaluation["confidence"])
}
