package llm

import (
	"github.com/paperdesk/research-backend/internal/config"
	"github.com/paperdesk/research-backend/internal/entity"
	"github.com/paperdesk/research-backend/internal/integration/common"
	pkghttp "github.com/paperdesk/research-backend/pkg/http"
	"go.uber.org/zap"
)

// Factory hands out a chat Client for a stored credential. A model override
// stored alongside the credential replaces the configured default.
type Factory struct {
	openAIConn *pkghttp.Connector
	geminiConn *pkghttp.Connector
	openAICfg  config.ProviderConfig
	geminiCfg  config.ProviderConfig
}

func NewFactory(openAICfg, geminiCfg config.ProviderConfig, logger *zap.Logger) *Factory {
	return &Factory{
		openAIConn: common.NewBaseConnector(openAICfg.HTTPClientConfig, logger),
		geminiConn: common.NewBaseConnector(geminiCfg.HTTPClientConfig, logger),
		openAICfg:  openAICfg,
		geminiCfg:  geminiCfg,
	}
}

func (f *Factory) ForCredential(cred *entity.Credential) Client {
	switch cred.Provider {
	case entity.ProviderGemini:
		return NewGeminiClient(f.geminiConn, f.chatModel(f.geminiCfg, cred), cred.APIKey)
	default:
		return NewOpenAIClient(f.openAIConn, f.chatModel(f.openAICfg, cred), cred.APIKey)
	}
}

func (f *Factory) chatModel(cfg config.ProviderConfig, cred *entity.Credential) string {
	if cred.ModelOverride != nil && *cred.ModelOverride != "" {
		return *cred.ModelOverride
	}
	return cfg.ChatModel
}
