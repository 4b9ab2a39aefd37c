// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai is the generation side of the pipeline: it talks to an
// OpenAI-compatible chat completions service to produce and edit landing
// page markup, behind a process-wide rate gate and a bounded retry loop.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Request is one completion call: a model, a system message, a user message,
// and an optional image reference attached as high-detail visual input.
type Request struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	ImageURL     string
}

// Provider executes completion requests. The production implementation is
// the OpenAI-compatible HTTP provider; tests substitute doubles.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
	Name() string
}

// Fixed sampling parameters, identical for generation and edit calls.
const (
	temperature      = 0.7
	maxOutputTokens  = 4000
	topP             = 1.0
	frequencyPenalty = 0.0
	presencePenalty  = 0.0
)

// openAIProvider implements Provider using the OpenAI chat completions API
// (POST /v1/chat/completions).
type openAIProvider struct {
	config ProviderConfig
	client *http.Client
}

// ProviderConfig holds credentials and endpoint settings for the provider.
type ProviderConfig struct {
	APIKey  string
	BaseURL string
}

// NewOpenAI creates a new OpenAI-compatible provider.
func NewOpenAI(cfg ProviderConfig) Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	return &openAIProvider{
		config: cfg,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *openAIProvider) Name() string { return "openai" }

// Complete sends a chat completion request and returns the assistant's
// response text.
func (p *openAIProvider) Complete(ctx context.Context, req Request) (string, error) {
	userContent := []contentPart{{Type: "text", Text: req.UserPrompt}}
	if req.ImageURL != "" {
		userContent = append(userContent, contentPart{
			Type:     "image_url",
			ImageURL: &imageRef{URL: req.ImageURL, Detail: "high"},
		})
	}

	body := chatRequest{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: userContent},
		},
		Temperature:      temperature,
		MaxTokens:        maxOutputTokens,
		TopP:             topP,
		FrequencyPenalty: frequencyPenalty,
		PresencePenalty:  presencePenalty,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("openai marshal: %w", err)
	}

	url := p.config.BaseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("openai http: network: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("openai read body: network: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("openai unmarshal: %w", err)
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai: no completion content returned")
	}

	return result.Choices[0].Message.Content, nil
}

// --- OpenAI chat completions wire types ---

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageRef `json:"image_url,omitempty"`
}

type imageRef struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

type chatRequest struct {
	Model            string        `json:"model"`
	Messages         []chatMessage `json:"messages"`
	Temperature      float64       `json:"temperature"`
	MaxTokens        int           `json:"max_tokens"`
	TopP             float64       `json:"top_p"`
	FrequencyPenalty float64       `json:"frequency_penalty"`
	PresencePenalty  float64       `json:"presence_penalty"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
}
