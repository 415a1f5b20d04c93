package minutes

import (
	"context"
	"fmt"
	"time"

	"github.com/minutia-ai/minutia/internal/llm"
)

// Service turns a transcript into formatted minutes with a single templated
// chat call. Provider errors are surfaced to the caller verbatim.
type Service struct {
	gateway   llm.Gateway
	templates *Registry
	now       func() time.Time
}

func NewService(gateway llm.Gateway, templates *Registry) *Service {
	return &Service{
		gateway:   gateway,
		templates: templates,
		now:       time.Now,
	}
}

// Templates exposes the registry backing this service.
func (s *Service) Templates() *Registry { return s.templates }

// GenerateRequest selects the transcript, template and model for one
// generation. TemplateBody, when set, is used directly instead of resolving
// TemplateName in the registry; job payloads carry the body this way so a
// worker without the caller's custom templates still renders the right one.
type GenerateRequest struct {
	Transcript   string `json:"transcript"`
	TemplateName string `json:"template_name,omitempty"` // default: standard-business
	TemplateBody string `json:"template_body,omitempty"`
	Provider     string `json:"provider,omitempty"`
	Model        string `json:"model"`
}

// GenerateResponse is the produced minutes document.
type GenerateResponse struct {
	Content      string `json:"content"`
	TemplateName string `json:"template_name"`
	Provider     string `json:"provider"`
	Model        string `json:"model"`
	TotalTokens  int    `json:"total_tokens"`
	LatencyMs    int64  `json:"latency_ms"`
}

// Generate renders the template with the transcript and the current calendar
// date, then makes one chat call through the gateway.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if req.Transcript == "" {
		return nil, fmt.Errorf("transcript required")
	}

	name := req.TemplateName
	if name == "" {
		name = DefaultTemplateName
	}
	body := req.TemplateBody
	if body == "" {
		tmpl, ok := s.templates.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %q not found", name)
		}
		body = tmpl.Body
	}

	prompt, err := Render(body, map[string]string{
		"transcript": req.Transcript,
		"date":       s.now().Format("January 2, 2006"),
	})
	if err != nil {
		return nil, err
	}

	resp, err := s.gateway.Chat(ctx, llm.ChatRequest{
		Provider: req.Provider,
		Model:    req.Model,
		Messages: []llm.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("generate minutes: %w", err)
	}

	return &GenerateResponse{
		Content:      resp.Content,
		TemplateName: name,
		Provider:     resp.Provider,
		Model:        resp.Model,
		TotalTokens:  resp.TotalTokens,
		LatencyMs:    resp.LatencyMs,
	}, nil
}
