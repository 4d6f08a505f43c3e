package llm

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
)

// MockClient returns a canned completion, for local runs without a provider.
type MockClient struct {
	Response string
	Err      error
	Requests []*CompletionRequest
}

func NewMockClient(response string) *MockClient {
	return &MockClient{Response: response}
}

func (m *MockClient) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	ctxzap.Debug(ctx, "[MOCK] generating completion")

	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
