package weather

import (
	"fmt"
	"strings"
)

// ErrIncompleteData is returned by FormatReport when an ostensibly successful
// payload is missing fields the report needs.
var ErrIncompleteData = fmt.Errorf("incomplete or invalid weather data")

// FormatReport renders a payload into a deterministic multi-line summary.
// Error-shaped payloads render as their error message verbatim. A success
// payload missing any required field yields ErrIncompleteData instead of a
// partial report.
func FormatReport(p Payload) (string, error) {
	if p.IsError() {
		return p.ErrorMessage(), nil
	}

	city, ok := stringField(p, "name")
	if !ok {
		return "", ErrIncompleteData
	}
	country, ok := stringField(nestedMap(p, "sys"), "country")
	if !ok {
		return "", ErrIncompleteData
	}

	main := nestedMap(p, "main")
	temp, ok1 := numberField(main, "temp")
	feelsLike, ok2 := numberField(main, "feels_like")
	humidity, ok3 := numberField(main, "humidity")
	if !ok1 || !ok2 || !ok3 {
		return "", ErrIncompleteData
	}

	desc, ok := conditionDescription(p)
	if !ok {
		return "", ErrIncompleteData
	}

	windSpeed, ok := numberField(nestedMap(p, "wind"), "speed")
	if !ok {
		return "", ErrIncompleteData
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Weather in %s, %s:\n", city, country)
	fmt.Fprintf(&b, "- Temperature: %v°C (Feels like: %v°C)\n", temp, feelsLike)
	fmt.Fprintf(&b, "- Conditions: %s\n", capitalize(desc))
	fmt.Fprintf(&b, "- Humidity: %v%%\n", humidity)
	fmt.Fprintf(&b, "- Wind Speed: %v m/s", windSpeed)

	return b.String(), nil
}

// conditionDescription digs weather[0].description out of the payload.
func conditionDescription(p Payload) (string, bool) {
	list, ok := p["weather"].([]any)
	if !ok || len(list) == 0 {
		return "", false
	}
	first, ok := list[0].(map[string]any)
	if !ok {
		return "", false
	}
	return stringField(first, "description")
}

func nestedMap(p map[string]any, key string) map[string]any {
	if p == nil {
		return nil
	}
	m, _ := p[key].(map[string]any)
	return m
}

func stringField(m map[string]any, key string) (string, bool) {
	if m == nil {
		return "", false
	}
	s, ok := m[key].(string)
	return s, ok
}

// numberField accepts float64 (JSON numbers) and int for convenience in tests.
func numberField(m map[string]any, key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	switch v := m[key].(type) {
	case float64, int:
		return v, true
	default:
		return nil, false
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
