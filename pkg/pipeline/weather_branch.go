package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ai-pipeline-be/pkg/llm"
	"ai-pipeline-be/pkg/weather"
)

const extractCityPrompt = `Extract the city name from the user's weather query.
Return ONLY the city name, nothing else.
If no city is mentioned, return "Not specified".`

const weatherResponsePrompt = `You are a helpful weather assistant.
Format the weather information in a friendly, conversational way.
Include all relevant weather details from the provided data.`

// IncompleteDataMessage is the fixed reply when the provider returns a
// success payload that cannot be formatted.
const IncompleteDataMessage = "Error formatting weather data: incomplete or invalid data received"

// WeatherFetcher is the single outbound call of the weather branch.
// Implementations fold their own failures into the payload.
type WeatherFetcher interface {
	Current(ctx context.Context, city string) weather.Payload
}

// WeatherBranch answers weather queries: extract a city, fetch conditions
// once, and synthesize a conversational reply from the structured data.
type WeatherBranch struct {
	llmProvider llm.LLMProvider
	fetcher     WeatherFetcher
	defaultCity string
	logger      *log.Logger
}

func NewWeatherBranch(llmProvider llm.LLMProvider, fetcher WeatherFetcher, defaultCity string, logger *log.Logger) *WeatherBranch {
	if defaultCity == "" {
		defaultCity = "London"
	}
	return &WeatherBranch{
		llmProvider: llmProvider,
		fetcher:     fetcher,
		defaultCity: defaultCity,
		logger:      logger,
	}
}

// Run writes City, WeatherData and Response into a derived state.
// Provider-side failures surface as response content, not as errors; only a
// completion transport failure propagates.
func (b *WeatherBranch) Run(ctx context.Context, state State) (State, error) {
	city, err := b.extractCity(ctx, state.Query)
	if err != nil {
		return state, err
	}

	// The extracted string is passed through unvalidated; a nonexistent
	// city comes back from the provider as an error-shaped payload.
	payload := b.fetcher.Current(ctx, city)

	response, err := b.synthesize(ctx, state.Query, payload)
	if err != nil {
		return state, err
	}

	next := state
	next.City = city
	next.WeatherData = payload
	next.Response = response
	return next, nil
}

func (b *WeatherBranch) extractCity(ctx context.Context, query string) (string, error) {
	raw, err := b.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: extractCityPrompt},
		{Role: "user", Content: query},
	}, llm.WithTemperature(0.0))
	if err != nil {
		return "", fmt.Errorf("extract city: %w", err)
	}

	city := strings.TrimSpace(raw)
	if strings.EqualFold(city, "not specified") {
		b.logger.Printf("[WEATHER] No city in query, defaulting to %s", b.defaultCity)
		return b.defaultCity, nil
	}
	return city, nil
}

func (b *WeatherBranch) synthesize(ctx context.Context, query string, payload weather.Payload) (string, error) {
	// Error-shaped payloads skip synthesis entirely: the reply is the
	// provider's error message, verbatim.
	if payload.IsError() {
		b.logger.Printf("[WEATHER] Provider error: %s", payload.ErrorMessage())
		return payload.ErrorMessage(), nil
	}

	report, err := weather.FormatReport(payload)
	if err != nil {
		b.logger.Printf("[WEATHER] Formatting failed: %v", err)
		return IncompleteDataMessage, nil
	}

	response, err := b.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: weatherResponsePrompt},
		{Role: "user", Content: fmt.Sprintf("Query: %s\nWeather Data: %s", query, report)},
	})
	if err != nil {
		return "", fmt.Errorf("synthesize weather response: %w", err)
	}
	return response, nil
}
