package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CharukaVithana/ServeXa/db"
	"github.com/CharukaVithana/ServeXa/internal/api"
	"github.com/CharukaVithana/ServeXa/internal/config"
	"github.com/CharukaVithana/ServeXa/internal/dispatch"
	"github.com/CharukaVithana/ServeXa/internal/gateway"
	"github.com/CharukaVithana/ServeXa/internal/knowledge"
	"github.com/CharukaVithana/ServeXa/internal/log"
	"github.com/CharukaVithana/ServeXa/internal/observability"
	"github.com/CharukaVithana/ServeXa/internal/rag"
	"github.com/CharukaVithana/ServeXa/internal/router"
)

// retrieverName identifies the knowledge-base retriever in Genkit's registry.
const retrieverName = "knowledge"

// Setup creates and initializes the application.
// Returns an App with embedded cleanup; call Close() to release.
func Setup(ctx context.Context, cfg *config.Config, logger log.Logger) (_ *App, retErr error) {
	if logger == nil {
		logger = log.NewNop()
	}
	a := &App{Config: cfg, Logger: logger}

	// On error, release everything already initialized.
	defer func() {
		if retErr != nil {
			if err := a.Close(); err != nil {
				logger.Warn("cleanup during setup failure", "error", err)
			}
		}
	}()

	otelShutdown, err := provideOtelShutdown(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.otelShutdown = otelShutdown

	pool, err := provideDBPool(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.DBPool = pool

	g, err := provideGenkit(ctx, logger)
	if err != nil {
		return nil, err
	}
	a.Genkit = g

	embedder := googlegenai.GoogleAIEmbedder(g, cfg.EmbedderModel)
	if embedder == nil {
		return nil, fmt.Errorf("embedder %q not found", cfg.EmbedderModel)
	}
	a.Embedder = embedder

	a.Knowledge = knowledge.New(pool, embedder, logger)
	a.Retriever = rag.DefineRetriever(g, retrieverName, a.Knowledge)
	a.Indexer = rag.NewIndexer(a.Knowledge, logger)

	answerer, err := rag.NewAnswerer(rag.AnswererConfig{
		Genkit:    g,
		Retriever: a.Retriever,
		ModelName: cfg.ModelName,
		TopK:      cfg.RAGTopK,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}
	a.Answerer = answerer

	gw, err := gateway.New(gateway.Config{
		AuthURL:         cfg.AuthServiceURL,
		AppointmentURL:  cfg.AppointmentServiceURL,
		VehicleURL:      cfg.VehicleServiceURL,
		NotificationURL: cfg.NotificationServiceURL,
		Timeout:         time.Duration(cfg.ServiceTimeoutSeconds) * time.Second,
		Logger:          logger,
	})
	if err != nil {
		return nil, err
	}
	a.Gateway = gw

	dispatcher, err := dispatch.New(dispatch.Config{
		Genkit:    g,
		ModelName: cfg.ModelName,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}
	a.Dispatcher = dispatcher

	a.Router = router.New(gw, answerer, dispatcher, logger)

	server, err := api.NewServer(api.ServerConfig{
		Answerer:    a.Router,
		Pool:        pool,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}
	a.Server = server

	// An empty knowledge base degrades answers but the live-service paths
	// still work, so indexing failures do not abort startup.
	if cfg.KnowledgePath != "" {
		if err := a.Indexer.Bootstrap(ctx, cfg.KnowledgePath); err != nil {
			logger.Warn("knowledge base bootstrap failed",
				"path", cfg.KnowledgePath, "error", err)
		}
	}

	return a, nil
}

// provideOtelShutdown sets up trace export before Genkit initialization,
// so the TracerProvider is ready when flows start emitting spans.
func provideOtelShutdown(ctx context.Context, cfg *config.Config, logger log.Logger) (func(context.Context) error, error) {
	return observability.Setup(ctx, observability.Config{
		Endpoint:    cfg.OTLPEndpoint,
		Environment: cfg.Environment,
		ServiceName: cfg.ServiceName,
		Logger:      logger,
	})
}

// provideDBPool runs migrations and creates the PostgreSQL connection pool.
func provideDBPool(ctx context.Context, cfg *config.Config, logger log.Logger) (*pgxpool.Pool, error) {
	if err := db.Migrate(cfg.PostgresURL(), logger); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresURL())
	if err != nil {
		return nil, fmt.Errorf("parsing connection config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}

// provideGenkit initializes Genkit with the Google AI plugin.
// Requires GEMINI_API_KEY (or GOOGLE_API_KEY) in the environment.
func provideGenkit(ctx context.Context, logger log.Logger) (*genkit.Genkit, error) {
	g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
	if g == nil {
		return nil, errors.New("initializing genkit with googleai plugin")
	}
	logger.Debug("genkit initialized", "plugin", "googleai")
	return g, nil
}

// interface checks
var (
	_ router.Services  = (*gateway.Client)(nil)
	_ router.Knowledge = (*rag.Answerer)(nil)
	_ api.Answerer     = (*router.Router)(nil)
)
