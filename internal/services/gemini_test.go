package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"

	"studykit-backend/internal/generator"
)

func TestClassifyModelErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want generator.FailureReason
	}{
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), generator.ReasonTimeout},
		{"canceled", context.Canceled, generator.ReasonTimeout},
		{"unauthorized", &googleapi.Error{Code: http.StatusUnauthorized}, generator.ReasonAuth},
		{"forbidden", fmt.Errorf("wrapped: %w", &googleapi.Error{Code: http.StatusForbidden}), generator.ReasonAuth},
		{"too many requests", &googleapi.Error{Code: http.StatusTooManyRequests}, generator.ReasonRateLimit},
		{"blocked", &genai.BlockedError{}, generator.ReasonEmptyResponse},
		{"bad key message", errors.New("googleapi: Error 400: API key not valid"), generator.ReasonAuth},
		{"quota message", errors.New("RESOURCE_EXHAUSTED: quota exceeded"), generator.ReasonRateLimit},
		{"connection", errors.New("dial tcp: connection refused"), generator.ReasonNetwork},
		{"server error", &googleapi.Error{Code: http.StatusInternalServerError}, generator.ReasonNetwork},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyModelErr(tc.err); got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestExtractText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"overview":`), genai.Text(`"x"}`)}}},
			{Content: nil},
		},
	}

	if got := extractText(resp); got != `{"overview":"x"}` {
		t.Errorf("Unexpected text %q", got)
	}
	if got := extractText(nil); got != "" {
		t.Errorf("Expected empty text for nil response, got %q", got)
	}
}

func TestAcquireRate_HonoursContext(t *testing.T) {
	s := &GeminiService{rateChan: make(chan struct{}, 1)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.acquireRate(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected canceled while no slot is free, got %v", err)
	}

	s.releaseRate()
	if err := s.acquireRate(context.Background()); err != nil {
		t.Errorf("Expected slot after release, got %v", err)
	}
}

var _ generator.Invoker = (*GeminiService)(nil)
