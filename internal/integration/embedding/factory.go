package embedding

import (
	"github.com/paperdesk/research-backend/internal/config"
	"github.com/paperdesk/research-backend/internal/entity"
	"github.com/paperdesk/research-backend/internal/integration/common"
	pkghttp "github.com/paperdesk/research-backend/pkg/http"
	"go.uber.org/zap"
)

// Factory hands out a Provider for a stored credential. The backend is
// chosen by the credential's explicit provider tag, never inferred from the
// key's format.
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

// ForCredential returns the provider matching cred, or Noop when cred is
// nil so ingestion can proceed without embeddings.
func (f *Factory) ForCredential(cred *entity.Credential) Provider {
	if cred == nil {
		return Noop{}
	}

	switch cred.Provider {
	case entity.ProviderGemini:
		return NewGeminiProvider(f.geminiConn, f.geminiCfg.EmbedModel, cred.APIKey)
	default:
		return NewOpenAIProvider(f.openAIConn, f.openAICfg.EmbedModel, cred.APIKey)
	}
}
