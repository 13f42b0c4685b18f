package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"studykit-backend/internal/generator"
	"studykit-backend/internal/logger"
)

// GeminiService is the Gemini-backed generator.Invoker.
type GeminiService struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
	rateChan  chan struct{} // Token bucket
	log       *logger.Logger
}

func NewGeminiService(
	ctx context.Context,
	apiKey string,
	modelName string,
	concurrentReqs int,
	timeout time.Duration,
	log *logger.Logger,
) (*GeminiService, error) {
	if log == nil {
		log = logger.NewNop()
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	concurrentReqs = max(concurrentReqs, 1)
	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &GeminiService{
		client:    client,
		modelName: modelName,
		timeout:   timeout,
		rateChan:  rateChan,
		log:       log,
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

// acquireRate blocks until a rate slot is available or ctx ends.
func (s *GeminiService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *GeminiService) releaseRate() {
	s.rateChan <- struct{}{}
}

// Invoke sends one prompt to Gemini. It never returns an error; failures are
// reported as a failed outcome with a reason.
func (s *GeminiService) Invoke(ctx context.Context, p generator.Prompt) generator.ModelOutcome {
	if err := s.acquireRate(ctx); err != nil {
		return generator.Failed(classifyModelErr(err), fmt.Errorf("waiting for Gemini rate slot: %w", err))
	}
	defer s.releaseRate()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// Per-call model handle; settings differ by variant.
	m := s.client.GenerativeModel(s.modelName)
	m.SetTemperature(p.Temperature)
	m.SetMaxOutputTokens(p.MaxTokens)
	m.ResponseMIMEType = "application/json"
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(p.System)},
	}

	start := time.Now()
	resp, err := m.GenerateContent(ctx, genai.Text(p.User))
	if err != nil {
		return generator.Failed(classifyModelErr(err), fmt.Errorf("Gemini API error: %w", err))
	}

	for i, cand := range resp.Candidates {
		if cand.FinishReason != genai.FinishReasonStop {
			s.log.Warn("Gemini candidate stopped early", "candidate", i, "finish_reason", cand.FinishReason.String())
		}
	}

	text := strings.TrimSpace(extractText(resp))
	s.log.Debug("Gemini call finished", "model", s.modelName, "duration", time.Since(start), "chars", len(text))
	if text == "" {
		return generator.Failed(generator.ReasonEmptyResponse, errors.New("Gemini returned empty text"))
	}
	return generator.Succeeded(text)
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}

func classifyModelErr(err error) generator.FailureReason {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return generator.ReasonTimeout
	}

	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return generator.ReasonEmptyResponse
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return generator.ReasonAuth
		case http.StatusTooManyRequests:
			return generator.ReasonRateLimit
		case http.StatusGatewayTimeout, http.StatusRequestTimeout:
			return generator.ReasonTimeout
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key"), strings.Contains(msg, "permission_denied"), strings.Contains(msg, "unauthenticated"):
		return generator.ReasonAuth
	case strings.Contains(msg, "resource_exhausted"), strings.Contains(msg, "quota"), strings.Contains(msg, "rate limit"):
		return generator.ReasonRateLimit
	case strings.Contains(msg, "deadline exceeded"):
		return generator.ReasonTimeout
	}
	return generator.ReasonNetwork
}
