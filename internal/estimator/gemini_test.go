package estimator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cab/internal/domain"
)

func testDetails() domain.BookingDetails {
	return domain.BookingDetails{
		Pickup:  "Mall Road, Mussoorie",
		Dropoff: "Jolly Grant Airport",
		Date:    "2026-10-01",
		Time:    "09:30",
	}
}

func testVehicle() domain.VehicleOption {
	return domain.VehicleOption{
		Type:     domain.VehicleTypeSedan,
		Name:     "Sedan",
		BaseFare: 150,
		PerKm:    18,
	}
}

func modelResponse(text string) string {
	body, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	})
	return string(body)
}

func TestGeminiEstimate_ValidResponse_Parsed(t *testing.T) {
	t.Parallel()

	var gotPath, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.GenerationConfig.ResponseMimeType != "application/json" {
			t.Errorf("expected JSON response mime type, got %s", req.GenerationConfig.ResponseMimeType)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(modelResponse(`{"fare": 1230, "distance": "60 km", "duration": "2 hours", "description": "Downhill run to the airport via Dehradun."}`)))
	}))
	defer server.Close()

	est := NewGeminiEstimator("test-key", "gemini-2.5-flash", server.URL, 5*time.Second)

	estimate, err := est.Estimate(context.Background(), testDetails(), testVehicle())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if estimate.Fare != 1230 {
		t.Errorf("expected fare 1230, got %v", estimate.Fare)
	}
	if estimate.Distance != "60 km" {
		t.Errorf("expected distance 60 km, got %s", estimate.Distance)
	}
	if gotPath != "/v1beta/models/gemini-2.5-flash:generateContent" {
		t.Errorf("unexpected request path: %s", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("expected api key header, got %q", gotKey)
	}
}

func TestGeminiEstimate_BadResponses_CollapseToUnavailable(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{}`},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{}`},
		{name: "no candidates", status: http.StatusOK, body: `{"candidates": []}`},
		{name: "malformed json text", status: http.StatusOK, body: modelResponse(`this is not json`)},
		{name: "missing fare", status: http.StatusOK, body: modelResponse(`{"distance": "10 km", "duration": "20 minutes", "description": "Short hop."}`)},
		{name: "negative fare", status: http.StatusOK, body: modelResponse(`{"fare": -5, "distance": "10 km", "duration": "20 minutes", "description": "Short hop."}`)},
		{name: "empty distance", status: http.StatusOK, body: modelResponse(`{"fare": 500, "distance": "", "duration": "20 minutes", "description": "Short hop."}`)},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			est := NewGeminiEstimator("test-key", "gemini-2.5-flash", server.URL, 5*time.Second)

			_, err := est.Estimate(context.Background(), testDetails(), testVehicle())
			if !errors.Is(err, ErrEstimateUnavailable) {
				t.Fatalf("expected ErrEstimateUnavailable, got: %v", err)
			}
		})
	}
}

func TestGeminiEstimate_UnreachableHost_Unavailable(t *testing.T) {
	t.Parallel()

	est := NewGeminiEstimator("test-key", "gemini-2.5-flash", "http://127.0.0.1:1", 500*time.Millisecond)

	_, err := est.Estimate(context.Background(), testDetails(), testVehicle())
	if !errors.Is(err, ErrEstimateUnavailable) {
		t.Fatalf("expected ErrEstimateUnavailable, got: %v", err)
	}
}

func TestBuildPrompt_CarriesRatesAndTrip(t *testing.T) {
	t.Parallel()

	prompt := buildPrompt(testDetails(), testVehicle())

	for _, want := range []string{
		"Base Fare: Rs 150",
		"Per Kilometer Rate: Rs 18 per km",
		"Mall Road, Mussoorie",
		"Jolly Grant Airport",
		"Fare = Base Fare + (Estimated Distance * Per Kilometer Rate)",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
