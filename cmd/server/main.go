package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/benbeisheim/chess-backend/internal/config"
	"github.com/benbeisheim/chess-backend/internal/controller"
	"github.com/benbeisheim/chess-backend/internal/db"
	"github.com/benbeisheim/chess-backend/internal/middleware"
	"github.com/benbeisheim/chess-backend/internal/render"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(cfg *config.Configuration) (*zap.Logger, error) {
	if cfg.Log.Development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var gameStore store.GameStore
	switch cfg.Store.Driver {
	case config.StoreMongo:
		client, err := db.NewDbClient(ctx, cfg)
		if err != nil {
			logger.Fatal("connect to mongo", zap.Error(err))
		}
		defer client.Close(context.Background())
		gameStore = store.NewMongoStore(client, cfg.Database.Timeout)
	case config.StoreMemory:
		gameStore = store.NewMemoryStore()
	default:
		logger.Fatal("unknown store driver", zap.String("driver", cfg.Store.Driver))
	}
	logger.Info("store ready", zap.String("driver", cfg.Store.Driver))

	var sink render.LineSink = render.Discard
	if cfg.Log.RenderBoards {
		sink = render.LogSink{Logger: logger.Named("board"), Level: zapcore.InfoLevel}
	}

	// Initialize services
	gameService := service.NewGameService(gameStore, service.NewGameConnections(logger), sink, logger)

	// Initialize controllers
	gameController := controller.NewGameController(gameService, logger)
	wsController := controller.NewWebSocketController(gameService, logger)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.Server.CORSOrigins, ", "),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(middleware.RequestLogger(logger))

	wsController.RegisterRoutes(app, cfg.Server.CORSOrigins)
	gameController.RegisterRoutes(app)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("addr", cfg.ListenAddr()))
	if err := app.Listen(cfg.ListenAddr()); err != nil {
		logger.Fatal("listen", zap.Error(err))
	}
}
