package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/ignite/optimizer/internal/domain"
)

// bedrockInvoker is the slice of the Bedrock runtime client this package
// uses; tests substitute it.
type bedrockInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockClient generates recommendations through AWS Bedrock (Claude).
// All traffic stays inside AWS; the request model id overrides the
// configured default when set.
type BedrockClient struct {
	client  bedrockInvoker
	modelID string
}

type bedrockMessage struct {
	Role    string                `json:"role"`
	Content []bedrockContentBlock `json:"content"`
}

type bedrockContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type bedrockRequest struct {
	AnthropicVersion string           `json:"anthropic_version"`
	MaxTokens        int              `json:"max_tokens"`
	System           string           `json:"system,omitempty"`
	Messages         []bedrockMessage `json:"messages"`
	Temperature      float64          `json:"temperature,omitempty"`
}

type bedrockResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// NewBedrockClient builds a Bedrock-backed client using the default AWS
// credential chain.
func NewBedrockClient(ctx context.Context, region, modelID string) (*BedrockClient, error) {
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		region = "us-east-1"
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	if modelID == "" {
		modelID = "anthropic.claude-3-sonnet-20240229-v1:0"
	}

	log.Printf("[genai] bedrock initialized model=%s region=%s", modelID, region)
	return &BedrockClient{
		client:  bedrockruntime.NewFromConfig(cfg),
		modelID: modelID,
	}, nil
}

// Generate invokes the model once and decodes the text blocks it returns.
func (c *BedrockClient) Generate(ctx context.Context, req Request) ([]domain.RawRecommendation, error) {
	modelID := c.modelID
	// Prompt configs store OpenAI model names; only explicit Bedrock ids
	// override the configured model here.
	if isBedrockModelID(req.Model) {
		modelID = req.Model
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2000
	}

	body, err := json.Marshal(bedrockRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        maxTokens,
		System:           req.SystemMessage,
		Messages: []bedrockMessage{
			{Role: "user", Content: []bedrockContentBlock{{Type: "text", Text: req.Prompt}}},
		},
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, err
	}

	output, err := c.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, &TransportError{Backend: "bedrock", Err: err}
	}

	var parsed bedrockResponse
	if err := json.Unmarshal(output.Body, &parsed); err != nil {
		return nil, &MalformedResponseError{Raw: truncate(string(output.Body), 500), Err: err}
	}

	var text string
	for _, block := range parsed.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return nil, ErrEmptyResponse
	}

	log.Printf("[genai] bedrock model=%s in=%d out=%d", modelID, parsed.Usage.InputTokens, parsed.Usage.OutputTokens)

	return decodeRecommendations(text)
}

func isBedrockModelID(model string) bool {
	vendor, _, ok := strings.Cut(model, ".")
	if !ok {
		return false
	}
	switch vendor {
	case "anthropic", "amazon", "meta", "mistral":
		return true
	}
	return false
}
