// Package genai calls a text-generation backend to turn a rendered channel
// prompt into structured recommendations. Two backends are supported: the
// OpenAI chat completions API and AWS Bedrock (Claude). Both return the
// same wire shape, decoded by this package.
package genai

import (
	"context"
	"errors"
	"fmt"

	"github.com/ignite/optimizer/internal/domain"
)

// ErrNoCredential is returned when a client is constructed without the
// credential its backend needs. The engine treats it like any other
// generation failure and falls back to rule-based recommendations.
var ErrNoCredential = errors.New("generation credential not configured")

// ErrEmptyResponse is returned when the backend answers but produces no
// content to decode.
var ErrEmptyResponse = errors.New("empty generation response")

// MalformedResponseError reports content that could not be decoded into
// recommendations. Raw is truncated for logging.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed generation response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// TransportError reports a failed backend call: a non-2xx status or a
// network-level failure (StatusCode 0).
type TransportError struct {
	Backend    string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d", e.Backend, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Backend, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Request is one generation call: a rendered prompt plus the model
// parameters that came from the prompt configuration.
type Request struct {
	SystemMessage string
	Prompt        string
	Model         string
	Temperature   float64
	MaxTokens     int
}

// Client generates recommendations from a rendered prompt.
type Client interface {
	Generate(ctx context.Context, req Request) ([]domain.RawRecommendation, error)
}
