package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/paperdesk/research-backend/internal/entity"
	pkghttp "github.com/paperdesk/research-backend/pkg/http"
	"go.uber.org/zap"
)

// OpenAIClient completes prompts through the OpenAI chat completions endpoint.
type OpenAIClient struct {
	connector *pkghttp.Connector
	model     string
	apiKey    string
}

func NewOpenAIClient(connector *pkghttp.Connector, model, apiKey string) *OpenAIClient {
	return &OpenAIClient{
		connector: connector,
		model:     model,
		apiKey:    apiKey,
	}
}

type openAIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatRequest struct {
	Model       string              `json:"model"`
	Messages    []openAIChatMessage `json:"messages"`
	Temperature float64             `json:"temperature"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message openAIChatMessage `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClient) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	model := c.model
	if req.Model != "" {
		model = req.Model
	}

	messages := make([]openAIChatMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openAIChatMessage{Role: RoleSystem, Content: req.System})
	}
	for _, msg := range req.Messages {
		messages = append(messages, openAIChatMessage{Role: msg.Role, Content: msg.Content})
	}

	body := openAIChatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	var resp openAIChatResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, "/v1/chat/completions", body, &resp,
		pkghttp.WithHeader("Authorization", "Bearer "+c.apiKey),
	)
	if err != nil {
		return "", &entity.AnswerGenerationError{Provider: entity.ProviderOpenAI, Err: err}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &entity.AnswerGenerationError{
			Provider: entity.ProviderOpenAI,
			Err:      fmt.Errorf("empty completion in response"),
		}
	}

	ctxzap.Debug(ctx, "completion generated", zap.String("model", model))
	return resp.Choices[0].Message.Content, nil
}
