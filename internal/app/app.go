package app

import (
	"fmt"
	"net/http"

	"mooney-app-go/internal/config"
	"mooney-app-go/internal/db"
	subsdomain "mooney-app-go/internal/domain/subscriptions"
	"mooney-app-go/internal/repository/inmemory"
	subsrepo "mooney-app-go/internal/repository/postgres/subscriptions"
	"mooney-app-go/internal/transport/httpserver"
	"mooney-app-go/internal/transport/httpserver/handler"
	"mooney-app-go/pkg/logger"

	"golang.org/x/text/language"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	var gormDB *gorm.DB
	var repo subsdomain.Repository

	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		log.Info("app: using in-memory store with fixtures")
		memRepo := inmemory.NewSubscriptionsRepository()
		memRepo.Seed(cfg.Auth.MockUserID)
		repo = memRepo
	default:
		log.Info("app: initializing database")
		gormDB, err = db.NewPostgres(cfg.DB, log)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(gormDB); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		repo = subsrepo.NewPostgres(gormDB)
	}

	locale, err := language.Parse(cfg.Subscriptions.SortLocale)
	if err != nil {
		return nil, fmt.Errorf("parse SORT_LOCALE: %w", err)
	}

	service := subsdomain.NewServiceWithOptions(repo, subsdomain.Options{
		Locale:             locale,
		Cache:              inmemory.NewCategoriesCache(),
		CategoriesCacheTTL: cfg.Subscriptions.CategoriesCacheTTL,
	})

	log.Info("app: initializing router")
	handlers := handler.New(service, log)
	router := httpserver.NewRouter(cfg, handlers, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         gormDB,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
