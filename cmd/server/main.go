package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/alexmontanha/MeuProjetoAPI/internal/config"
	"github.com/alexmontanha/MeuProjetoAPI/internal/es"
	"github.com/alexmontanha/MeuProjetoAPI/internal/handlers"
	"github.com/alexmontanha/MeuProjetoAPI/internal/logging"
	loggingmw "github.com/alexmontanha/MeuProjetoAPI/internal/middleware/logging"
	"github.com/alexmontanha/MeuProjetoAPI/internal/models"
	"github.com/alexmontanha/MeuProjetoAPI/internal/mykafka"
	"github.com/alexmontanha/MeuProjetoAPI/internal/repo"
	httpserver "github.com/alexmontanha/MeuProjetoAPI/internal/transport/http"
	"github.com/alexmontanha/MeuProjetoAPI/pkg/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx := context.Background()

	var gormDB *gorm.DB
	var productRepo repo.ProductRepository
	switch cfg.Store {
	case config.StoreMemory:
		productRepo = repo.NewMemoryRepo()
	case config.StorePostgres:
		gormDB, err = db.OpenPostgres(ctx, cfg.DatabaseURL)
	case config.StoreSQLite:
		gormDB, err = db.OpenSQLite(ctx, cfg.SQLitePath)
	}
	if err != nil {
		log.Fatalf("database error: %v", err)
	}
	if gormDB != nil {
		if err := gormDB.AutoMigrate(&models.Product{}); err != nil {
			log.Fatalf("migration error: %v", err)
		}
		productRepo = repo.NewGormRepo(gormDB)
	}
	logger.Info("store ready", "store", cfg.Store)

	var producer mykafka.Publisher = mykafka.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		producer = mykafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		logger.Info("kafka producer ready", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	var indexer es.Indexer = es.NopIndexer{}
	var searchHandler *handlers.SearchHandler
	if cfg.ES_URL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch error: %v", err)
		}
		indexer = es.NewProductIndex(esClient, cfg.ESIndex)
		searchHandler = handlers.NewSearchHandler(esClient, cfg.ESIndex)
		logger.Info("search ready", "index", cfg.ESIndex)
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		ProductHandler: &handlers.ProductHandler{Repo: productRepo, Producer: producer, Indexer: indexer},
		SearchHandler:  searchHandler,
		AdminJWTSecret: cfg.AdminJWTSecret,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if gormDB != nil {
		if sqlDB, err := gormDB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("db close error: %v", err)
			}
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	logger.Info("shutdown complete")
}
