package app

import (
	"context"
	"fmt"
	"os"

	"gorm.io/gorm"

	goredis "github.com/sarun2104/training-app/internal/clients/redis"
	"github.com/sarun2104/training-app/internal/data/db"
	"github.com/sarun2104/training-app/internal/data/graph"
	apphttp "github.com/sarun2104/training-app/internal/http"
	"github.com/sarun2104/training-app/internal/pkg/logger"
	"github.com/sarun2104/training-app/internal/platform/neo4jdb"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Graph    *neo4jdb.Client
	Server   *apphttp.Server
	Cfg      Config
	Repos    Repos
	Services Services

	bus goredis.NotifyBus
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig()

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	graphClient, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init graph store: %w", err)
	}
	store := graph.NewCatalogStore(graphClient, log)
	if err := store.EnsureSchema(context.Background()); err != nil {
		log.Sync()
		return nil, fmt.Errorf("graph schema init: %w", err)
	}

	// The notify bus is optional; without REDIS_ADDR notifications are
	// rows only.
	var bus goredis.NotifyBus
	if os.Getenv("REDIS_ADDR") != "" {
		bus, err = goredis.NewNotifyBus(log)
		if err != nil {
			log.Warn("Redis notify bus init failed, continuing without fan-out", "error", err)
			bus = nil
		}
	}
	if bus != nil {
		// Push transports (SSE, websockets) subscribe here; until one is
		// attached the forwarder gives cross-instance delivery visibility.
		err := bus.StartForwarder(context.Background(), func(e goredis.NotifyEvent) {
			log.Info("Notification delivered", "employee_id", e.EmployeeID, "type", e.NotificationType)
		})
		if err != nil {
			log.Warn("Notify forwarder start failed", "error", err)
		}
	}

	reposet := wireRepos(theDB, log)
	serviceset, err := wireServices(theDB, log, cfg, reposet, store, bus)
	if err != nil {
		log.Sync()
		return nil, err
	}
	server := wireServer(log, serviceset)

	return &App{
		Log:      log,
		DB:       theDB,
		Graph:    graphClient,
		Server:   server,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		bus:      bus,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Server.Run(a.Cfg.HTTPAddr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.bus != nil {
		_ = a.bus.Close()
	}
	if a.Graph != nil {
		_ = a.Graph.Close(context.Background())
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
