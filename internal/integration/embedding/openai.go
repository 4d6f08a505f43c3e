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

// OpenAIProvider embeds text through the OpenAI embeddings endpoint.
type OpenAIProvider struct {
	connector *pkghttp.Connector
	model     string
	apiKey    string
}

func NewOpenAIProvider(connector *pkghttp.Connector, model, apiKey string) *OpenAIProvider {
	return &OpenAIProvider{
		connector: connector,
		model:     model,
		apiKey:    apiKey,
	}
}

type openAIEmbedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type openAIEmbedResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (p *OpenAIProvider) embed(ctx context.Context, text string) ([]float32, error) {
	req := openAIEmbedRequest{
		Model: p.model,
		Input: []string{text},
	}

	var resp openAIEmbedResponse
	err := p.connector.DoRequest(ctx, http.MethodPost, "/v1/embeddings", req, &resp,
		pkghttp.WithHeader("Authorization", "Bearer "+p.apiKey),
	)
	if err != nil {
		return nil, &entity.EmbeddingProviderError{Provider: entity.ProviderOpenAI, Err: err}
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, &entity.EmbeddingProviderError{
			Provider: entity.ProviderOpenAI,
			Err:      fmt.Errorf("empty embedding in response"),
		}
	}

	return resp.Data[0].Embedding, nil
}

func (p *OpenAIProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
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

func (p *OpenAIProvider) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return p.embed(ctx, text)
}
