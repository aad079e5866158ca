// Package app wires configuration, storage, AI components, and the HTTP
// server into a running application.
package app

import (
	"context"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CharukaVithana/ServeXa/internal/api"
	"github.com/CharukaVithana/ServeXa/internal/config"
	"github.com/CharukaVithana/ServeXa/internal/dispatch"
	"github.com/CharukaVithana/ServeXa/internal/gateway"
	"github.com/CharukaVithana/ServeXa/internal/knowledge"
	"github.com/CharukaVithana/ServeXa/internal/log"
	"github.com/CharukaVithana/ServeXa/internal/rag"
	"github.com/CharukaVithana/ServeXa/internal/router"
)

// shutdownTimeout bounds trace flushing during Close.
const shutdownTimeout = 5 * time.Second

// App holds all initialized application components.
type App struct {
	Config *config.Config
	Logger log.Logger

	DBPool    *pgxpool.Pool
	Genkit    *genkit.Genkit
	Embedder  ai.Embedder
	Knowledge *knowledge.Store
	Retriever ai.Retriever
	Answerer  *rag.Answerer
	Indexer   *rag.Indexer

	Gateway    *gateway.Client
	Dispatcher *dispatch.Dispatcher
	Router     *router.Router

	Server *api.Server

	otelShutdown func(context.Context) error
}

// Close releases application resources in reverse initialization order.
// Safe to call on a partially initialized App.
func (a *App) Close() error {
	if a.Gateway != nil {
		a.Gateway.Close()
	}
	if a.DBPool != nil {
		a.DBPool.Close()
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.otelShutdown(ctx); err != nil && a.Logger != nil {
			a.Logger.Warn("shutting down tracer provider", "error", err)
		}
	}
	return nil
}
