package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/paperdesk/research-backend/internal/api"
	chatapi "github.com/paperdesk/research-backend/internal/api/chat"
	credentialapi "github.com/paperdesk/research-backend/internal/api/credential"
	documentapi "github.com/paperdesk/research-backend/internal/api/document"
	projectapi "github.com/paperdesk/research-backend/internal/api/project"
	"github.com/paperdesk/research-backend/internal/config"
	"github.com/paperdesk/research-backend/internal/integration/common"
	"github.com/paperdesk/research-backend/internal/integration/embedding"
	"github.com/paperdesk/research-backend/internal/integration/llm"
	"github.com/paperdesk/research-backend/internal/pkg/storage"
	"github.com/paperdesk/research-backend/internal/pkg/validator"
	"github.com/paperdesk/research-backend/internal/repository"
	"github.com/paperdesk/research-backend/internal/usecase/chat"
	"github.com/paperdesk/research-backend/internal/usecase/credential"
	"github.com/paperdesk/research-backend/internal/usecase/document"
	"github.com/paperdesk/research-backend/internal/usecase/project"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	projectRepo := repository.NewProjectPostgres(db)
	documentRepo := repository.NewDocumentPostgres(db)
	chunkRepo := repository.NewChunkPostgres(db, cfg.IngestCfg.EmbedBatch)
	chatRepo := repository.NewChatPostgres(db)
	credentialRepo := repository.NewCredentialPostgres(db)
	logger.Info("Repositories initialized")

	// Initialize provider factories and the download client
	embeddingFactory := embedding.NewFactory(cfg.OpenAICfg, cfg.GeminiCfg, logger)
	llmFactory := llm.NewFactory(cfg.OpenAICfg, cfg.GeminiCfg, logger)
	downloadConnector := common.NewBaseConnector(cfg.IngestCfg.HTTPClientConfig, logger)

	// Initialize local file storage
	fileStore, err := storage.NewLocalStore(cfg.IngestCfg.StorageDir)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("setup file storage: %w", err)
	}

	// Initialize validators
	uploadValidator := validator.NewUploadValidator(cfg.IngestCfg)
	logger.Info("Validators initialized")

	// Initialize use cases
	credentialUC := credential.NewUsecase(credentialRepo, projectRepo, cfg.CredentialCacheTTL, logger)

	projectUC := project.NewUsecase(projectRepo, documentRepo, fileStore, logger)

	documentUC := document.NewUsecase(
		projectRepo,
		documentRepo,
		chunkRepo,
		credentialUC,
		embeddingFactory,
		fileStore,
		downloadConnector,
		uploadValidator,
		cfg.IngestCfg,
		logger,
	)

	chatUC := chat.NewUsecase(
		projectRepo,
		documentRepo,
		chunkRepo,
		chatRepo,
		credentialUC,
		embeddingFactory,
		llmFactory,
		cfg.RetrievalCfg,
		logger,
	)
	logger.Info("Use cases initialized")

	// Setup API handlers
	handlers := &api.Handlers{
		Project:    projectapi.NewHandler(projectUC),
		Document:   documentapi.NewHandler(documentUC, cfg.IngestCfg),
		Chat:       chatapi.NewHandler(chatUC),
		Credential: credentialapi.NewHandler(credentialUC),
	}
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(handlers, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}
