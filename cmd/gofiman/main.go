// Точка входа Files Manager — сервис управления метаданными файлов.
// Загружает конфигурацию, применяет миграции, подключается к PostgreSQL
// и Redis, создаёт blobstore, репозитории, сервисный слой и API handlers,
// запускает мониторинг зависимостей (topologymetrics) и HTTP-сервер
// с graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/bigkaa/gofiman/internal/api/handlers"
	"github.com/bigkaa/gofiman/internal/api/middleware"
	"github.com/bigkaa/gofiman/internal/config"
	"github.com/bigkaa/gofiman/internal/database"
	"github.com/bigkaa/gofiman/internal/repository"
	"github.com/bigkaa/gofiman/internal/server"
	"github.com/bigkaa/gofiman/internal/service"
	"github.com/bigkaa/gofiman/internal/storage/blobstore"
	"github.com/bigkaa/gofiman/internal/tokenstore"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("Files Manager запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	// 3. Применение миграций БД
	logger.Info("Применение миграций БД...")
	if err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Подключение к PostgreSQL (pgxpool)
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// 4.1 Адаптер pgxpool → *sql.DB для topologymetrics (connection pool mode).
	// Проверка здоровья PostgreSQL идёт через существующий пул соединений,
	// что позволяет обнаружить его исчерпание.
	pgDB := stdlib.OpenDBFromPool(pool)
	defer pgDB.Close()

	// 5. Хранилище токенов (Redis)
	tokens := tokenstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.TokenTTL, logger)
	defer tokens.Close()
	logger.Info("Клиент Redis создан", slog.String("addr", cfg.RedisAddr))

	// 6. Хранилище содержимого файлов
	blobs, err := blobstore.New(cfg.FolderPath)
	if err != nil {
		logger.Error("Ошибка инициализации blobstore", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Директория содержимого готова", slog.String("path", cfg.FolderPath))

	// 7. Repositories
	fileRepo := repository.NewFileRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	// 8. Services
	pgChecker := database.NewReadinessChecker(pool)
	folderCache := service.NewFolderCache(cfg.FolderCacheSize, cfg.FolderCacheTTL)
	fileSvc := service.NewFileService(fileRepo, blobs, folderCache, logger)
	authSvc := service.NewAuthService(userRepo, tokens, logger)
	appSvc := service.NewAppService(pgChecker, tokens, userRepo, fileRepo, logger)

	// 9. Мониторинг зависимостей (topologymetrics)
	dephealthSvc, err := service.NewDephealthService(
		"files-manager",
		cfg.DephealthGroup,
		pgDB,
		cfg.DatabaseDSN(),
		cfg.DephealthCheckInterval,
		cfg.DephealthIsEntry,
		logger,
	)
	if err != nil {
		logger.Error("Ошибка инициализации dephealth", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dephealthCtx, cancelDephealth := context.WithCancel(ctx)
	defer cancelDephealth()
	if err := dephealthSvc.Start(dephealthCtx); err != nil {
		logger.Error("Ошибка запуска dephealth", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dephealthSvc.Stop()

	// 10. API handlers и middleware
	healthHandler := handlers.NewHealthHandler(pgChecker, tokens)
	apiHandler := handlers.NewAPIHandler(healthHandler, appSvc, fileSvc, authSvc, logger)
	tokenAuth := middleware.NewTokenAuth(tokens, userRepo, logger)

	// 11. HTTP-сервер (блокирующий вызов с graceful shutdown)
	srv := server.New(cfg, logger, apiHandler,
		tokenAuth.Middleware(),
		middleware.MetricsMiddleware(),
		middleware.RequestLogger(logger),
	)

	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Files Manager остановлен")
}
