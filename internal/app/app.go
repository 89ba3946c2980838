package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/docugraph/docugraph-backend/internal/data/graph"
	"github.com/docugraph/docugraph-backend/internal/handlers"
	"github.com/docugraph/docugraph-backend/internal/modules/ingest"
	"github.com/docugraph/docugraph-backend/internal/modules/qa"
	"github.com/docugraph/docugraph-backend/internal/observability"
	"github.com/docugraph/docugraph-backend/internal/platform/llm"
	"github.com/docugraph/docugraph-backend/internal/platform/logger"
	"github.com/docugraph/docugraph-backend/internal/platform/neo4jdb"
	"github.com/docugraph/docugraph-backend/internal/server"
)

type App struct {
	Log    *logger.Logger
	Neo4j  *neo4jdb.Client
	LLM    llm.Client
	Router *gin.Engine
	Cfg    Config

	traceShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading configuration...")
	cfg := LoadConfig(log)

	traceShutdown := observability.InitTracing(ctx, log, "docugraph")

	neo, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init neo4j: %w", err)
	}

	llmClient, err := llm.New(ctx, log, cfg.LLMProvider)
	if err != nil {
		neo.Close(ctx)
		log.Sync()
		return nil, fmt.Errorf("init llm client: %w", err)
	}

	store := graph.NewStore(neo, log)
	ingestSvc := ingest.NewService(store, llmClient, log)
	qaSvc := qa.NewService(store, llmClient, log)

	router := server.NewRouter(server.RouterConfig{
		AllowOrigins:  cfg.AllowOrigins,
		IngestHandler: handlers.NewIngestHandler(ingestSvc, log),
		QAHandler:     handlers.NewQAHandler(qaSvc, cfg.Questions, log),
		GraphHandler:  handlers.NewGraphHandler(store, qaSvc, log),
	})

	return &App{
		Log:           log,
		Neo4j:         neo,
		LLM:           llmClient,
		Router:        router,
		Cfg:           cfg,
		traceShutdown: traceShutdown,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(":" + a.Cfg.Port)
}

func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if a.LLM != nil {
		if err := a.LLM.Close(); err != nil {
			a.Log.Warn("llm client close failed", "error", err)
		}
	}
	if a.Neo4j != nil {
		if err := a.Neo4j.Close(ctx); err != nil {
			a.Log.Warn("neo4j close failed", "error", err)
		}
	}
	if a.traceShutdown != nil {
		if err := a.traceShutdown(ctx); err != nil {
			a.Log.Warn("trace shutdown failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
