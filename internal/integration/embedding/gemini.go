package embedding

import (
	"context"
	"fmt"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/paperdesk/research-backend/internal/entity"
	pkghttp "github.com/paperdesk/research-backend/pkg/http"
	"go.uber.org/zap"
)

// GeminiProvider embeds text through the Gemini embedContent endpoint.
type GeminiProvider struct {
	connector *pkghttp.Connector
	model     string
	apiKey    string
}

func NewGeminiProvider(connector *pkghttp.Connector, model, apiKey string) *GeminiProvider {
	return &GeminiProvider{
		connector: connector,
		model:     model,
		apiKey:    apiKey,
	}
}

type geminiEmbedRequest struct {
	Content geminiContent `json:"content"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiEmbedResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

func (p *GeminiProvider) embed(ctx context.Context, text string) ([]float32, error) {
	endpoint := fmt.Sprintf("/v1beta/models/%s:embedContent", p.model)
	req := geminiEmbedRequest{
		Content: geminiContent{Parts: []geminiPart{{Text: text}}},
	}

	var resp geminiEmbedResponse
	err := p.connector.DoRequest(ctx, http.MethodPost, endpoint, req, &resp,
		pkghttp.WithHeader("x-goog-api-key", p.apiKey),
	)
	if err != nil {
		return nil, &entity.EmbeddingProviderError{Provider: entity.ProviderGemini, Err: err}
	}

	if len(resp.Embedding.Values) == 0 {
		return nil, &entity.EmbeddingProviderError{
			Provider: entity.ProviderGemini,
			Err:      fmt.Errorf("empty embedding in response"),
		}
	}

	return resp.Embedding.Values, nil
}

func (p *GeminiProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := p.embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed batch item %d: %w", i, err)
		}
		vectors[i] = vec
	}

	ctxzap.Debug(ctx, "batch embedded", zap.Int("count", len(vectors)), zap.String("model", p.model))
	return vectors, nil
}

func (p *GeminiProvider) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return p.embed(ctx, text)
}
