package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"proposal-analyzer/internal/analyses"
	"proposal-analyzer/internal/cache"
	"proposal-analyzer/internal/chat"
	"proposal-analyzer/internal/llm"
	anthropicllm "proposal-analyzer/internal/llm/anthropic"
	openaillm "proposal-analyzer/internal/llm/openai"
	"proposal-analyzer/internal/queue"
	"proposal-analyzer/internal/scoring"
	"proposal-analyzer/internal/services/health"
	"proposal-analyzer/internal/shared/config"
	"proposal-analyzer/internal/shared/server"
	"proposal-analyzer/internal/shared/storage/db"
	"proposal-analyzer/internal/shared/storage/object"
	localstore "proposal-analyzer/internal/shared/storage/object/local"
	s3store "proposal-analyzer/internal/shared/storage/object/s3"
	"proposal-analyzer/internal/webhook"
)

// App holds shared dependencies for the API server and the queue worker.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Queue  queue.Client
	Cache  *cache.ContentCache
	LLM    llm.Client

	Notifier *webhook.Notifier
	Engine   *scoring.Engine

	AnalysisService *analyses.Service
	ChatService     *chat.Service

	AnalysisHandler *analyses.Handler
	ChatHandler     *chat.Handler
	Health          *health.Service
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx)
	if err != nil {
		return nil, err
	}

	llmClient, llmConfigured := buildLLM(cfg)

	engine, err := scoring.NewEngine()
	if err != nil {
		return nil, fmt.Errorf("build scoring engine: %w", err)
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Store:    store,
		Queue:    queueClient,
		Cache:    buildCache(cfg, sqlDB),
		LLM:      llmClient,
		Notifier: webhook.New(cfg.WebhookSecret),
		Engine:   engine,
	}

	dispatcher := analyses.NewDispatcher(app.LLM, cfg.ConcurrentCalls)
	app.AnalysisService = analyses.NewService(dispatcher, app.Cache, app.Notifier, app.Engine, cfg.MaxContentLength)
	app.AnalysisService.Stager = app.Store
	app.ChatService = chat.NewService(app.LLM)

	app.AnalysisHandler = analyses.NewHandler(app.AnalysisService, app.Store, app.Queue, cfg.MaxUploadBytes)
	app.ChatHandler = chat.NewHandler(app.ChatService)
	app.Health = health.NewService(llmConfigured, app.Cache != nil, app.Queue != nil)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		AnalysisHandler: app.AnalysisHandler,
		ChatHandler:     app.ChatHandler,
		Health:          app.Health,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; result cache falls back to memory")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; result cache falls back to memory: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.S3SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context) (queue.Client, error) {
	if strings.TrimSpace(os.Getenv("PA_SQS_QUEUE_URL")) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx)
}

func buildLLM(cfg config.Config) (llm.Client, bool) {
	switch cfg.LLMProvider {
	case "openai":
		client, err := openaillm.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
		if err != nil {
			log.Printf("bootstrap: openai client unavailable: %v", err)
			return llm.PlaceholderClient{}, false
		}
		return client, true
	default:
		client, err := anthropicllm.NewClient(cfg.AnthropicAPIKey, cfg.LLMModel)
		if err != nil {
			log.Printf("bootstrap: anthropic client unavailable: %v", err)
			return llm.PlaceholderClient{}, false
		}
		return client, true
	}
}

func buildCache(cfg config.Config, sqlDB *sql.DB) *cache.ContentCache {
	if sqlDB != nil {
		return cache.New(cache.NewPGStore(sqlDB), cfg.CacheTTL)
	}
	return cache.New(cache.NewMemoryStore(), cfg.CacheTTL)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
