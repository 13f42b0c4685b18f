package generator

import (
	"context"
	"fmt"
)

// Prompt is a role-structured model request.
type Prompt struct {
	System      string
	User        string
	MaxTokens   int32
	Temperature float32
}

type OutcomeStatus int

const (
	OutcomeSuccess OutcomeStatus = iota
	OutcomeUnavailable
	OutcomeFailed
)

func (s OutcomeStatus) String() string {
	switch s {
	case OutcomeSuccess:
		return "success"
	case OutcomeUnavailable:
		return "unavailable"
	case OutcomeFailed:
		return "failed"
	}
	return fmt.Sprintf("OutcomeStatus(%d)", int(s))
}

type FailureReason string

const (
	ReasonNetwork       FailureReason = "network"
	ReasonAuth          FailureReason = "auth"
	ReasonRateLimit     FailureReason = "rate_limit"
	ReasonTimeout       FailureReason = "timeout"
	ReasonEmptyResponse FailureReason = "empty_response"
)

// ModelOutcome is what an Invoker returns instead of an error. Text is only
// set on success.
type ModelOutcome struct {
	Status OutcomeStatus
	Text   string
	Reason FailureReason
	Err    error
}

func Succeeded(text string) ModelOutcome {
	return ModelOutcome{Status: OutcomeSuccess, Text: text}
}

func Unavailable() ModelOutcome {
	return ModelOutcome{Status: OutcomeUnavailable}
}

func Failed(reason FailureReason, err error) ModelOutcome {
	return ModelOutcome{Status: OutcomeFailed, Reason: reason, Err: err}
}

// Invoker calls a text-completion model. Implementations must not panic or
// return errors across this boundary; every failure is a ModelOutcome.
type Invoker interface {
	Invoke(ctx context.Context, p Prompt) ModelOutcome
}
