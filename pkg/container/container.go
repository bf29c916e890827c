package container

import (
	"context"
	"fmt"
	"time"

	"bookmanager-backend/internal/config"
	"bookmanager-backend/internal/domains/book/handler"
	"bookmanager-backend/internal/domains/book/repository"
	"bookmanager-backend/internal/domains/book/service"
	"bookmanager-backend/internal/infrastructure/cache"
	"bookmanager-backend/internal/infrastructure/database"
	"bookmanager-backend/internal/infrastructure/storage"
	pkgcache "bookmanager-backend/pkg/cache"
	"bookmanager-backend/pkg/logger"
)

// Container wires configuration, infrastructure and the catalog domain
// together. Everything is constructed once at startup and shared.
type Container struct {
	Config *config.Config

	DB         *database.PostgresDB
	Cache      pkgcache.Cache
	CoverStore storage.CoverStore

	BookRepo    repository.RepositoryInterface
	BookService service.ServiceInterface
	BookHandler *handler.Handler

	redisCache *cache.RedisCache
}

func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	db := database.NewPostgresDB(cfg.Database)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	redisCache := cache.NewRedisCache(cfg.Redis)
	if err := redisCache.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	coverStore, err := newCoverStore(cfg)
	if err != nil {
		redisCache.Close()
		db.Close()
		return nil, fmt.Errorf("init cover store: %w", err)
	}

	bookRepo := repository.NewPostgresRepository(db.Pool)
	bookService := service.NewService(bookRepo, coverStore, redisCache)
	bookHandler := handler.NewHandler(bookService)

	logger.Info("container initialized", map[string]interface{}{
		"storage_driver": cfg.Storage.Driver,
	})

	return &Container{
		Config:      cfg,
		DB:          db,
		Cache:       redisCache,
		CoverStore:  coverStore,
		BookRepo:    bookRepo,
		BookService: bookService,
		BookHandler: bookHandler,
		redisCache:  redisCache,
	}, nil
}

func newCoverStore(cfg *config.Config) (storage.CoverStore, error) {
	switch cfg.Storage.Driver {
	case "minio":
		return storage.NewMinIOStore(cfg.MinIO)
	default:
		return storage.NewLocalStore(cfg.Storage.Root), nil
	}
}

// Cleanup releases the container's external connections. Safe to call once
// during shutdown.
func (c *Container) Cleanup() {
	if c.redisCache != nil {
		if err := c.redisCache.Close(); err != nil {
			logger.Warn("failed to close redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
