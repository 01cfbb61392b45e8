package estimator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"cab/internal/domain"
)

// DefaultBaseURL is the generative language API endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// GeminiEstimator calls the generative language API with a prompt that
// states the pricing formula and a response schema matching FareEstimate.
type GeminiEstimator struct {
	client  *http.Client
	baseURL string
	model   string
	apiKey  string
}

// Ensure GeminiEstimator implements Estimator.
var _ Estimator = (*GeminiEstimator)(nil)

// NewGeminiEstimator creates an estimator client.
func NewGeminiEstimator(apiKey, model, baseURL string, timeout time.Duration) *GeminiEstimator {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &GeminiEstimator{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		apiKey:  apiKey,
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType"`
	ResponseSchema   json.RawMessage `json:"responseSchema"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// fareSchema constrains the model output to the FareEstimate shape.
var fareSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"fare": {"type": "NUMBER", "description": "The estimated fare in Indian Rupees (INR), a whole number."},
		"distance": {"type": "STRING", "description": "The estimated travel distance in kilometers, e.g. '25 km'."},
		"duration": {"type": "STRING", "description": "The estimated travel duration, e.g. '45 minutes'."},
		"description": {"type": "STRING", "description": "A brief one-sentence description of the route."}
	},
	"required": ["fare", "distance", "duration", "description"]
}`)

// estimatePayload mirrors the JSON the model is asked to return. Fare is a
// pointer so a missing field is distinguishable from zero.
type estimatePayload struct {
	Fare        *float64 `json:"fare"`
	Distance    string   `json:"distance"`
	Duration    string   `json:"duration"`
	Description string   `json:"description"`
}

// Estimate asks the model for a fare, distance, duration, and description.
func (g *GeminiEstimator) Estimate(ctx context.Context, details domain.BookingDetails, vehicle domain.VehicleOption) (*domain.FareEstimate, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(details, vehicle)}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   fareSchema,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEstimateUnavailable, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEstimateUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		log.Printf("estimator: request failed: %v", err)
		return nil, ErrEstimateUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("estimator: unexpected status %d", resp.StatusCode)
		return nil, ErrEstimateUnavailable
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		log.Printf("estimator: decode failed: %v", err)
		return nil, ErrEstimateUnavailable
	}

	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, ErrEstimateUnavailable
	}

	var payload estimatePayload
	text := strings.TrimSpace(gr.Candidates[0].Content.Parts[0].Text)
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		log.Printf("estimator: malformed estimate: %v", err)
		return nil, ErrEstimateUnavailable
	}

	if payload.Fare == nil || *payload.Fare < 0 ||
		payload.Distance == "" || payload.Duration == "" || payload.Description == "" {
		return nil, ErrEstimateUnavailable
	}

	return &domain.FareEstimate{
		Fare:        *payload.Fare,
		Distance:    payload.Distance,
		Duration:    payload.Duration,
		Description: payload.Description,
	}, nil
}

// buildPrompt states the pricing model and asks the model to apply the
// formula fare = baseFare + distance * perKm, rounded to a whole rupee.
func buildPrompt(details domain.BookingDetails, vehicle domain.VehicleOption) string {
	return fmt.Sprintf(`You are a fare estimation system for "Mussoorie Cab", a premium taxi service in the hill station of Mussoorie, India.
Your task is to calculate a fare estimate based on a SPECIFIC pricing model and trip details.

Pricing Model for %s:
- Base Fare: Rs %.0f
- Per Kilometer Rate: Rs %.0f per km

Trip Details:
- Pickup Location: %s
- Drop-off Location: %s
- Date: %s
- Time: %s

Your Calculation Steps:
1. First, estimate the travel distance in kilometers between the pickup and drop-off locations. Consider the winding, mountainous roads of Mussoorie.
2. Calculate the total fare using this formula: Fare = Base Fare + (Estimated Distance * Per Kilometer Rate). The final fare should be a whole number (rounded).
3. Estimate the travel duration.
4. Provide a brief, one-sentence description of the route.

Return the result in the specified JSON format. The 'fare' property in the JSON must be the result of your calculation using the provided formula.`,
		vehicle.Name, vehicle.BaseFare, vehicle.PerKm,
		details.Pickup, details.Dropoff, details.Date, details.Time)
}
