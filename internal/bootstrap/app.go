package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"resume-reviewer/internal/analyses"
	"resume-reviewer/internal/documents"
	"resume-reviewer/internal/extract"
	"resume-reviewer/internal/insights"
	"resume-reviewer/internal/llm"
	openai "resume-reviewer/internal/llm/openai"
	"resume-reviewer/internal/recommend"
	"resume-reviewer/internal/resume"
	"resume-reviewer/internal/roles"
	"resume-reviewer/internal/scoring"
	"resume-reviewer/internal/services/health"
	"resume-reviewer/internal/shared/config"
	"resume-reviewer/internal/shared/metrics"
	"resume-reviewer/internal/shared/server"
	"resume-reviewer/internal/shared/storage/db"
	"resume-reviewer/internal/shared/storage/object"
	localstore "resume-reviewer/internal/shared/storage/object/local"
	s3store "resume-reviewer/internal/shared/storage/object/s3"
	"resume-reviewer/internal/shared/telemetry"
	"resume-reviewer/internal/skillgap"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Redis            *redis.Client
	Store            object.ObjectStore
	LLM              llm.Client
	Retriever        *roles.Retriever
	DocumentsService *documents.Service
	AnalysesService  *analyses.Service
	Insights         *insights.Service
	Mentor           *insights.Mentor
	Health           *health.Service
}

// Build prepares dependencies and the HTTP router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	app, err := BuildCore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	seedRoles(ctx, app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		DocumentHandler: documents.NewHandler(app.DocumentsService),
		AnalysisHandler: analyses.NewHandler(app.AnalysesService),
		RolesHandler:    roles.NewHandler(app.Retriever),
		ChatHandler:     insights.NewHandler(app.Mentor),
		Health:          app.Health,
	})
	return app, nil
}

// BuildCore wires storage and services without the router or role seeding.
// The CLIs use it directly.
func BuildCore(ctx context.Context, cfg config.Config) (*App, error) {
	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := BuildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if err := buildServices(ctx, app); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

// Close releases the database and Redis connections.
func (a *App) Close() error {
	var errs []error
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_repositories", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{
				"reason": "database connect failed",
				"error":  err.Error(),
			})
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

// BuildStore returns the configured object store.
func BuildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(ctx context.Context, app *App) error {
	cfg := app.Config

	var docRepo documents.Repo
	var analysisRepo analyses.Repo
	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
		analysisRepo = &analyses.PGRepo{DB: app.DB}
	} else {
		docRepo = documents.NewMemoryRepo()
		analysisRepo = analyses.NewMemoryRepo()
	}

	scorer, err := scoring.New(scoring.Config{StopWords: scoring.StopWordsByName(cfg.ScoringStopWords)})
	if err != nil {
		return err
	}

	if strings.TrimSpace(cfg.OpenAIAPIKey) != "" {
		client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
		if err != nil {
			return err
		}
		app.LLM = client
	}

	insightOpts := insights.Options{
		Model:    cfg.LLMModel,
		CacheTTL: cfg.InsightsCacheTTL,
		Timeout:  cfg.InsightsTimeout,
	}
	if app.LLM != nil {
		insightOpts.Generator = insights.NewLLMGenerator(app.LLM)
		if cache := buildCache(ctx, app); cache != nil {
			insightOpts.Cache = cache
		}
	}
	app.Insights = insights.NewService(insightOpts)
	app.Mentor = insights.NewMentor(app.LLM, cfg.InsightsTimeout)

	app.Retriever = roles.New(ctx, roles.Options{
		Embedder: roles.EmbedderByName(cfg.RolesEmbedder),
		Store:    app.Store,
		Prefix:   cfg.RolesSnapshotPrefix,
	})
	metrics.SetRolesIndexed(app.Retriever.Len())

	app.DocumentsService = &documents.Service{
		Store:  app.Store,
		Repo:   docRepo,
		Parser: resume.NewParser(extract.New()),
	}
	app.AnalysesService = &analyses.Service{
		Repo:        analysisRepo,
		Documents:   app.DocumentsService,
		Roles:       app.Retriever,
		Scorer:      scorer,
		Matcher:     skillgap.New(skillgap.EngineByName(cfg.SkillGapEngine, cfg.SkillGapWeakThreshold)),
		Recommender: recommend.NewEngine(),
		Insights:    app.Insights,
	}

	app.Health = health.NewService()
	if app.DB != nil {
		app.Health.Register("database", db.HealthCheck(app.DB, 0))
	}
	if app.Redis != nil {
		app.Health.Register("redis", func(ctx context.Context) error {
			return app.Redis.Ping(ctx).Err()
		})
	}

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":             cfg.Env,
		"object_store":    cfg.ObjectStoreType,
		"database":        app.DB != nil,
		"llm":             app.LLM != nil,
		"insights_cache":  insightOpts.Cache != nil,
		"roles_indexed":   app.Retriever.Len(),
		"roles_embedder":  app.Retriever.Embedder(),
		"skillgap_engine": app.AnalysesService.Matcher.Engine(),
	})
	return nil
}

// buildCache connects to Redis when configured. A failed connection disables
// the cache instead of failing startup.
func buildCache(ctx context.Context, app *App) insights.Cache {
	cfg := app.Config
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	client, err := insights.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		telemetry.Warn("bootstrap.redis_unavailable", map[string]any{"addr": cfg.RedisAddr, "error": err.Error()})
		return nil
	}
	cache, err := insights.NewRedisCache(client, "")
	if err != nil {
		_ = client.Close()
		telemetry.Warn("bootstrap.redis_unavailable", map[string]any{"addr": cfg.RedisAddr, "error": err.Error()})
		return nil
	}
	app.Redis = client
	return cache
}

func seedRoles(ctx context.Context, app *App) {
	if !app.Config.RolesSeedOnStart {
		return
	}
	added, err := app.Retriever.SeedIfEmpty(ctx)
	if err != nil {
		telemetry.Error("bootstrap.roles_seed_failed", map[string]any{"error": err.Error()})
		return
	}
	if added > 0 {
		telemetry.Info("bootstrap.roles_seeded", map[string]any{"added": added})
	}
	metrics.SetRolesIndexed(app.Retriever.Len())
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
