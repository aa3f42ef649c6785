package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator"
	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	mid "github.com/parallax-vis/parallax/internal/server/middleware"
	"github.com/parallax-vis/parallax/internal/util"
	"github.com/parallax-vis/parallax/internal/view"
	"github.com/parallax-vis/parallax/pkg/ai"
	"github.com/parallax-vis/parallax/pkg/ai/ollama"
	"github.com/parallax-vis/parallax/pkg/ai/openai"
	"github.com/parallax-vis/parallax/pkg/common"
	"github.com/parallax-vis/parallax/pkg/graph"
	"github.com/parallax-vis/parallax/pkg/logger"
	"github.com/parallax-vis/parallax/pkg/query"
	storepgx "github.com/parallax-vis/parallax/pkg/store/pgx"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}

// Init wires the collaborators and runs the HTTP server until SIGINT or
// SIGTERM.
func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := pgxpool.New(ctx, util.GetEnv("DATABASE_URL"))
	if err != nil {
		logger.Fatal("Failed to connect to database", "err", err)
	}
	defer conn.Close()

	runMigrations()

	storage := storepgx.NewDatasetDBStorage(storepgx.NewDatasetDBStorageParams{
		Conn: conn,
	})

	gazetteer := graph.DefaultGazetteer()
	if path := util.GetEnv("PLACES_FILE"); path != "" {
		gazetteer, err = graph.LoadGazetteer(path)
		if err != nil {
			logger.Fatal("Failed to load places table", "err", err)
		}
	}

	clusters, err := storage.ListTagClusters(ctx)
	if err != nil {
		logger.Fatal("Failed to load tag clusters", "err", err)
	}
	categories, err := storage.ListCategories(ctx)
	if err != nil {
		logger.Fatal("Failed to load categories", "err", err)
	}
	clusterIDs := make([]int64, 0, len(clusters))
	for id := range clusters {
		clusterIDs = append(clusterIDs, id)
	}

	controller := view.NewController(view.NewControllerParams{
		Storage:   storage,
		Gazetteer: gazetteer,
		Seed:      time.Now().UnixNano(),
		InitialFilters: common.FilterState{
			YearMin:        util.GetEnvInt("YEAR_MIN", 1970),
			YearMax:        util.GetEnvInt("YEAR_MAX", 2025),
			ClusterIDs:     clusterIDs,
			Categories:     categories,
			IncludeUndated: true,
			Limit:          util.GetEnvInt("FETCH_LIMIT", 5000),
		},
	})
	defer controller.Close()

	interrogate := query.NewInterrogateClient(query.NewInterrogateClientParams{
		Storage:             storage,
		AIClient:            newAIClient(),
		UseIntentExtraction: util.GetEnvBool("AI_INTENT_EXTRACTION", false),
	})

	app := &mid.App{
		DBConn:      conn,
		Storage:     storage,
		Controller:  controller,
		Interrogate: interrogate,
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())

	RegisterRoutes(e)

	go func() {
		port := util.GetEnvString("PORT", "8080")
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}

func runMigrations() {
	m, err := migrate.New("file://migrations", util.GetEnv("DATABASE_URL"))
	if err != nil {
		logger.Fatal("Failed to init migrations", "err", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal("Failed to run migrations", "err", err)
	}
}

// newAIClient picks the chat backend from the environment. Without a
// configured adapter the interrogation feature degrades to the fixed
// fallback answer instead of failing.
func newAIClient() ai.ChatClient {
	switch util.GetEnv("AI_ADAPTER") {
	case "ollama":
		client, err := ollama.NewChatOllamaClient(ollama.NewChatOllamaClientParams{
			ChatModel:             util.GetEnvString("AI_CHAT_MODEL", "llama3.1"),
			BaseURL:               util.GetEnv("AI_CHAT_URL"),
			MaxConcurrentRequests: int64(util.GetEnvInt("AI_PARALLEL_REQ", 2)),
		})
		if err != nil {
			logger.Fatal("Failed to create Ollama client", "err", err)
		}
		return client
	default:
		return openai.NewChatOpenAIClient(openai.NewChatOpenAIClientParams{
			ChatModel: util.GetEnvString("AI_CHAT_MODEL", "gpt-4o-mini"),
			BaseURL:   util.GetEnv("AI_CHAT_URL"),
			APIKey:    util.GetEnv("AI_CHAT_KEY"),
		})
	}
}
