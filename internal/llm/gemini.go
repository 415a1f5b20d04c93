package llm

import (
	openai "github.com/sashabaranov/go-openai"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// NewGeminiProvider talks to Google's Gemini models through their
// OpenAI-compatible endpoint, so it reuses the OpenAI provider wholesale.
func NewGeminiProvider(apiKey string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = geminiBaseURL
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		name:   "gemini",
		models: []string{
			"gemini-2.5-flash",
			"gemini-2.5-pro",
			"gemini-1.5-flash",
			"gemini-1.5-pro",
			"gemini-pro",
		},
	}
}
