package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// Provider backends
	OpenAICfg ProviderConfig `envPrefix:"OPENAI_"`
	GeminiCfg ProviderConfig `envPrefix:"GEMINI_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Ingestion configuration
	IngestCfg IngestConfig `envPrefix:"INGEST_"`

	// Retrieval configuration
	RetrievalCfg RetrievalConfig `envPrefix:"RETRIEVAL_"`

	// Credential cache
	CredentialCacheTTL time.Duration `env:"CREDENTIAL_CACHE_TTL" envDefault:"5m"`

	// Environment (set from flag, not from env var)
	Environment string
}

// ProviderConfig holds one embedding/chat backend's endpoint settings. The
// API key itself is stored per project, not here; Token is only for
// deployments that front the backend with a fixed-key proxy.
type ProviderConfig struct {
	HTTPClientConfig
	EmbedModel string `env:"EMBED_MODEL"`
	ChatModel  string `env:"CHAT_MODEL"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

// IngestConfig holds upload limits, chunking parameters, and the HTTP
// client settings used to fetch external documents.
type IngestConfig struct {
	HTTPClientConfig
	MaxFileSize   int64  `env:"MAX_FILE_SIZE" envDefault:"52428800"`  // 50 MiB per PDF
	MaxUploadSize int64  `env:"MAX_UPLOAD_SIZE" envDefault:"67108864"` // multipart form cap
	StorageDir    string `env:"STORAGE_DIR" envDefault:"./data/uploads"`
	ChunkSize     int    `env:"CHUNK_SIZE" envDefault:"1000"`
	ChunkOverlap  int    `env:"CHUNK_OVERLAP" envDefault:"200"`
	EmbedBatch    int    `env:"EMBED_BATCH" envDefault:"100"` // persist sub-batch size
}

// RetrievalConfig holds query-path tunables.
type RetrievalConfig struct {
	TopK int `env:"TOP_K" envDefault:"5"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	setProviderDefaults(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setProviderDefaults(cfg *Config) {
	if cfg.OpenAICfg.Url == "" {
		cfg.OpenAICfg.Url = "https://api.openai.com"
	}
	if cfg.OpenAICfg.EmbedModel == "" {
		cfg.OpenAICfg.EmbedModel = "text-embedding-3-small"
	}
	if cfg.OpenAICfg.ChatModel == "" {
		cfg.OpenAICfg.ChatModel = "gpt-4o-mini"
	}
	if cfg.GeminiCfg.Url == "" {
		cfg.GeminiCfg.Url = "https://generativelanguage.googleapis.com"
	}
	if cfg.GeminiCfg.EmbedModel == "" {
		cfg.GeminiCfg.EmbedModel = "text-embedding-004"
	}
	if cfg.GeminiCfg.ChatModel == "" {
		cfg.GeminiCfg.ChatModel = "gemini-1.5-flash"
	}
}

func validateConfig(cfg *Config) error {
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		return fmt.Errorf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns)
	}
	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns)
	}
	if cfg.IngestCfg.ChunkSize < 100 {
		return fmt.Errorf("INGEST_CHUNK_SIZE must be at least 100, got %d", cfg.IngestCfg.ChunkSize)
	}
	if cfg.IngestCfg.ChunkOverlap < 0 || cfg.IngestCfg.ChunkOverlap >= cfg.IngestCfg.ChunkSize {
		return fmt.Errorf("INGEST_CHUNK_OVERLAP must be in [0, chunk size), got %d", cfg.IngestCfg.ChunkOverlap)
	}
	if cfg.IngestCfg.EmbedBatch < 1 {
		return fmt.Errorf("INGEST_EMBED_BATCH must be positive, got %d", cfg.IngestCfg.EmbedBatch)
	}
	if cfg.RetrievalCfg.TopK < 1 || cfg.RetrievalCfg.TopK > 50 {
		return fmt.Errorf("RETRIEVAL_TOP_K must be between 1 and 50, got %d", cfg.RetrievalCfg.TopK)
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
