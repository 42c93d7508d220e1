// app.go — сервис статуса и статистики хранилищ.
// GET /status — живость Redis и PostgreSQL, GET /stats — счётчики
// пользователей и файлов.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bigkaa/gofiman/internal/repository"
)

// AlivenessChecker — проверка живости внешнего хранилища.
// Реализуется database.ReadinessChecker и tokenstore.Store.
type AlivenessChecker interface {
	Alive(ctx context.Context) bool
}

// Status — состояние внешних хранилищ для GET /status.
type Status struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

// Stats — счётчики коллекций для GET /stats.
type Stats struct {
	Users int `json:"users"`
	Files int `json:"files"`
}

// AppService — статус и статистика сервиса.
type AppService struct {
	db     AlivenessChecker
	redis  AlivenessChecker
	users  repository.UserRepository
	files  repository.FileRepository
	logger *slog.Logger
}

// NewAppService создаёт сервис статуса и статистики.
func NewAppService(
	db, redis AlivenessChecker,
	users repository.UserRepository,
	files repository.FileRepository,
	logger *slog.Logger,
) *AppService {
	return &AppService{
		db:     db,
		redis:  redis,
		users:  users,
		files:  files,
		logger: logger.With(slog.String("component", "app_service")),
	}
}

// Status возвращает живость Redis и PostgreSQL.
// Операция не может завершиться ошибкой: недоступное хранилище — false.
func (s *AppService) Status(ctx context.Context) Status {
	return Status{
		Redis: s.redis.Alive(ctx),
		DB:    s.db.Alive(ctx),
	}
}

// Stats возвращает количество пользователей и файлов.
func (s *AppService) Stats(ctx context.Context) (Stats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("подсчёт пользователей: %w", err)
	}

	files, err := s.files.Count(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("подсчёт файлов: %w", err)
	}

	return Stats{Users: users, Files: files}, nil
}
