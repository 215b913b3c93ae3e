package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/ignite/optimizer/internal/domain"
	"github.com/ignite/optimizer/internal/pkg/httpretry"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIClient generates recommendations through the chat completions API.
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	httpClient httpretry.HTTPDoer
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message      openAIMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewOpenAIClient builds a client for the chat completions API. baseURL
// overrides the production endpoint when non-empty.
func NewOpenAIClient(apiKey, baseURL string, timeout time.Duration) *OpenAIClient {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &OpenAIClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		// Rate limits (429) and transient 5xx from the completions API get
		// retried with backoff before surfacing as a transport error.
		httpClient: httpretry.NewRetryClient(&http.Client{Timeout: timeout}),
	}
}

// Generate renders one chat completion and decodes its content.
func (c *OpenAIClient) Generate(ctx context.Context, req Request) ([]domain.RawRecommendation, error) {
	if c.apiKey == "" {
		return nil, ErrNoCredential
	}

	body, err := json.Marshal(openAIRequest{
		Model: req.Model,
		Messages: []openAIMessage{
			{Role: "system", Content: req.SystemMessage},
			{Role: "user", Content: req.Prompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Backend: "openai", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Backend: "openai", Err: err}
	}

	var parsed openAIResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		// A gateway can answer with an HTML error page. That is a
		// transport failure, not a malformed model payload.
		if resp.StatusCode != http.StatusOK {
			return nil, &TransportError{Backend: "openai", StatusCode: resp.StatusCode, Err: err}
		}
		return nil, &MalformedResponseError{Raw: truncate(string(raw), 500), Err: err}
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("openai api error (%s): %s", parsed.Error.Type, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Backend: "openai", StatusCode: resp.StatusCode}
	}
	if len(parsed.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	log.Printf("[genai] openai model=%s tokens=%d", req.Model, parsed.Usage.TotalTokens)

	return decodeRecommendations(parsed.Choices[0].Message.Content)
}
