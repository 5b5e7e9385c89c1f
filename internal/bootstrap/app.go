// Package bootstrap wires configuration, storage and the feature handlers
// into a runnable application. The same wiring backs the api binary and the
// HTTP tests.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"

	googleauth "smartcv-backend/internal/auth"
	"smartcv-backend/internal/autosave"
	"smartcv-backend/internal/generate"
	"smartcv-backend/internal/llm"
	"smartcv-backend/internal/llm/openai"
	"smartcv-backend/internal/render"
	"smartcv-backend/internal/resumes"
	"smartcv-backend/internal/shared/config"
	"smartcv-backend/internal/shared/server"
	"smartcv-backend/internal/shared/server/middleware"
	"smartcv-backend/internal/shared/storage/db"
	"smartcv-backend/internal/shared/storage/object"
	localstore "smartcv-backend/internal/shared/storage/object/local"
	s3store "smartcv-backend/internal/shared/storage/object/s3"
	"smartcv-backend/internal/shared/telemetry"
)

// App is the assembled application.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	DB       *sql.DB
	Autosave *autosave.Engine
	Resumes  *resumes.Service
}

// New builds the app from configuration. A missing database falls back to
// in-memory persistence so the editor still works in local development.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	store, err := newObjectStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		conn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			telemetry.Warn("database connect failed, using memory persistence", map[string]any{"error": err.Error()})
		} else if err := db.RunMigrations(ctx, conn); err != nil {
			telemetry.Warn("migrations failed, using memory persistence", map[string]any{"error": err.Error()})
			conn.Close()
		} else {
			sqlDB = conn
		}
	}

	var repo resumes.Repo
	if sqlDB != nil {
		repo = &resumes.PGRepo{DB: sqlDB}
	} else {
		repo = resumes.NewMemoryRepo()
	}

	resumeSvc := resumes.NewService(repo, store)
	engine := autosave.NewEngine(resumeSvc, cfg.AutosaveDebounce)
	generateSvc := generate.NewService(newLLMClient(cfg))
	googleSvc := googleauth.NewGoogleService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.UIRedirectURL)

	router, api := server.NewEngine(cfg)
	googleSvc.Register(api)
	resumes.NewHandler(resumeSvc).Register(api)
	render.NewHandler(resumeSvc).Register(api)
	autosave.NewHandler(engine, resumeSvc, cfg.MaxPhotoBytes).Register(api)

	// Drafting calls fan out to a paid provider; keep them behind a
	// per-user budget.
	generated := api.Group("/", middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"GENERATE": {Rate: 0.2, Burst: 5},
		},
		DefaultGroup: "GENERATE",
	}))
	generate.NewHandler(generateSvc).Register(generated)

	return &App{
		Config:   cfg,
		Router:   router,
		DB:       sqlDB,
		Autosave: engine,
		Resumes:  resumeSvc,
	}, nil
}

// Close stops the autosave sessions and releases the database.
func (a *App) Close() {
	if a.Autosave != nil {
		a.Autosave.Shutdown()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

func newObjectStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return nil, fmt.Errorf("s3 store: %w", err)
		}
		return store, nil
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func newLLMClient(cfg config.Config) llm.Client {
	switch cfg.LLMProvider {
	case "openai":
		client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
		if err != nil {
			telemetry.Warn("llm client unavailable", map[string]any{"error": err.Error()})
			return llm.PlaceholderClient{}
		}
		return llm.WithRetry(client)
	default:
		return llm.PlaceholderClient{}
	}
}
