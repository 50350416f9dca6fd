package weather

import (
	"errors"
	"testing"
)

func validPayload() Payload {
	return Payload{
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

func TestFormatReport(t *testing.T) {
	report, err := FormatReport(validPayload())
	if err != nil {
		t.Fatalf("FormatReport() error = %v", err)
	}

	want := "Weather in Paris, FR:\n" +
		"- Temperature: 18.2°C (Feels like: 17.5°C)\n" +
		"- Conditions: Clear sky\n" +
		"- Humidity: 60%\n" +
		"- Wind Speed: 3.1 m/s"
	if report != want {
		t.Errorf("report = %q, want %q", report, want)
	}
}

func TestFormatReportErrorPayload(t *testing.T) {
	report, err := FormatReport(Payload{"error": "City Gotham not found"})
	if err != nil {
		t.Fatalf("FormatReport() error = %v", err)
	}
	if report != "City Gotham not found" {
		t.Errorf("report = %q, want the error message verbatim", report)
	}
}

func TestFormatReportIncomplete(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(Payload)
	}{
		{"missing name", func(p Payload) { delete(p, "name") }},
		{"missing sys", func(p Payload) { delete(p, "sys") }},
		{"missing main", func(p Payload) { delete(p, "main") }},
		{"missing temp", func(p Payload) { delete(p["main"].(map[string]any), "temp") }},
		{"missing conditions", func(p Payload) { delete(p, "weather") }},
		{"empty conditions list", func(p Payload) { p["weather"] = []any{} }},
		{"missing wind", func(p Payload) { delete(p, "wind") }},
		{"temp wrong type", func(p Payload) { p["main"].(map[string]any)["temp"] = "warm" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			tt.mutate(p)

			_, err := FormatReport(p)
			if !errors.Is(err, ErrIncompleteData) {
				t.Errorf("error = %v, want ErrIncompleteData", err)
			}
		})
	}
}
