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

// GeminiClient completes prompts through the Gemini generateContent endpoint.
type GeminiClient struct {
	connector *pkghttp.Connector
	model     string
	apiKey    string
}

func NewGeminiClient(connector *pkghttp.Connector, model, apiKey string) *GeminiClient {
	return &GeminiClient{
		connector: connector,
		model:     model,
		apiKey:    apiKey,
	}
}

type geminiChatPart struct {
	Text string `json:"text"`
}

type geminiChatContent struct {
	Role  string           `json:"role,omitempty"`
	Parts []geminiChatPart `json:"parts"`
}

type geminiChatRequest struct {
	SystemInstruction *geminiChatContent  `json:"system_instruction,omitempty"`
	Contents          []geminiChatContent `json:"contents"`
	GenerationConfig  struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	} `json:"generationConfig"`
}

type geminiChatResponse struct {
	Candidates []struct {
		Content geminiChatContent `json:"content"`
	} `json:"candidates"`
}

func (c *GeminiClient) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	model := c.model
	if req.Model != "" {
		model = req.Model
	}

	body := geminiChatRequest{
		Contents: make([]geminiChatContent, 0, len(req.Messages)),
	}
	if req.System != "" {
		body.SystemInstruction = &geminiChatContent{
			Parts: []geminiChatPart{{Text: req.System}},
		}
	}
	for _, msg := range req.Messages {
		role := "user"
		if msg.Role == RoleAssistant {
			role = "model"
		}
		body.Contents = append(body.Contents, geminiChatContent{
			Role:  role,
			Parts: []geminiChatPart{{Text: msg.Content}},
		})
	}
	body.GenerationConfig.Temperature = req.Temperature
	body.GenerationConfig.MaxOutputTokens = req.MaxTokens

	endpoint := fmt.Sprintf("/v1beta/models/%s:generateContent", model)

	var resp geminiChatResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, endpoint, body, &resp,
		pkghttp.WithHeader("x-goog-api-key", c.apiKey),
	)
	if err != nil {
		return "", &entity.AnswerGenerationError{Provider: entity.ProviderGemini, Err: err}
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &entity.AnswerGenerationError{
			Provider: entity.ProviderGemini,
			Err:      fmt.Errorf("empty candidate in response"),
		}
	}

	ctxzap.Debug(ctx, "completion generated", zap.String("model", model))
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
