package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ChatTurn is one message of an OpenAI-style chat completion request. Clients
// may only send user and assistant turns; the system turn is fixed server side.
type ChatTurn struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content"`
}

const travelAssistantPrompt = `You are TripSphere's travel assistant. You help travelers discover trips, ` +
	`compare destinations, plan budgets and understand the booking process on TripSphere. ` +
	`Keep answers short, friendly and practical. Prices are in Indian Rupees (INR). ` +
	`If you are unsure about a specific trip's details, suggest the traveler check the trip page ` +
	`or contact the organizer. Never ask for card or payment details.`

const educationalAssistantPrompt = `You are TripSphere's educational trip advisor. You help schools, ` +
	`colleges and teachers plan safe, curriculum-aligned group trips. Ask about student count, ` +
	`age group, learning goals, dates and budget, and suggest suitable destinations and activities. ` +
	`Encourage the institution to submit an educational trip request so an organizer can follow up. ` +
	`Prices are in Indian Rupees (INR).`

// SystemPrompt returns the fixed system message for a conversation type
func SystemPrompt(conversationType string) string {
	if conversationType == "educational" {
		return educationalAssistantPrompt
	}
	return travelAssistantPrompt
}

// AIGatewayClient posts streaming chat completions to the hosted LLM gateway
type AIGatewayClient struct {
	URL        string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

type chatCompletionRequest struct {
	Model    string     `json:"model"`
	Messages []ChatTurn `json:"messages"`
	Stream   bool       `json:"stream"`
}

// UpstreamError is a non-2xx answer from the gateway
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("ai gateway returned %d: %s", e.StatusCode, e.Body)
}

// StreamChat prepends the system prompt and opens a streaming completion.
// On success the caller owns the returned body and must close it.
func (g *AIGatewayClient) StreamChat(ctx context.Context, conversationType string, turns []ChatTurn) (io.ReadCloser, error) {
	messages := make([]ChatTurn, 0, len(turns)+1)
	messages = append(messages, ChatTurn{Role: "system", Content: SystemPrompt(conversationType)})
	messages = append(messages, turns...)

	payload, err := json.Marshal(chatCompletionRequest{
		Model:    g.Model,
		Messages: messages,
		Stream:   true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.APIKey)
	req.Header.Set("Content-Type", "application/json")

	client := g.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return resp.Body, nil
}
