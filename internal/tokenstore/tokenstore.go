// Пакет tokenstore — клиент Redis для хранения токенов аутентификации.
// Токен хранится под ключом auth_<token> со значением UUID пользователя
// и TTL из конфигурации. Истечение TTL — единственный механизм
// инвалидации помимо явного Delete (GET /disconnect).
package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix — префикс ключей токенов в Redis.
const keyPrefix = "auth_"

// ErrTokenNotFound — токен отсутствует или истёк.
var ErrTokenNotFound = errors.New("токен не найден")

// Store — хранилище токенов аутентификации поверх Redis.
type Store struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New создаёт клиент хранилища токенов.
// addr — адрес Redis (host:port), ttl — время жизни токена.
func New(addr, password string, db int, ttl time.Duration, logger *slog.Logger) *Store {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &Store{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "token_store")),
	}
}

// Put сохраняет связку токен → пользователь с TTL.
func (s *Store) Put(ctx context.Context, token, userID string) error {
	if err := s.rdb.Set(ctx, keyPrefix+token, userID, s.ttl).Err(); err != nil {
		return fmt.Errorf("ошибка сохранения токена: %w", err)
	}
	return nil
}

// Resolve возвращает UUID пользователя по токену.
// Отсутствующий или истёкший токен даёт ErrTokenNotFound.
func (s *Store) Resolve(ctx context.Context, token string) (string, error) {
	userID, err := s.rdb.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrTokenNotFound
		}
		return "", fmt.Errorf("ошибка чтения токена: %w", err)
	}
	return userID, nil
}

// Delete удаляет токен. Уже отсутствующий токен даёт ErrTokenNotFound.
func (s *Store) Delete(ctx context.Context, token string) error {
	n, err := s.rdb.Del(ctx, keyPrefix+token).Result()
	if err != nil {
		return fmt.Errorf("ошибка удаления токена: %w", err)
	}
	if n == 0 {
		return ErrTokenNotFound
	}
	return nil
}

// Alive сообщает, доступен ли Redis (для GET /status).
func (s *Store) Alive(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return s.rdb.Ping(ctx).Err() == nil
}

// CheckReady проверяет доступность Redis через ping.
// Реализует интерфейс handlers.ReadinessChecker.
func (s *Store) CheckReady() (status, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return "fail", fmt.Sprintf("Redis недоступен: %v", err)
	}
	return "ok", "подключение активно"
}

// Close закрывает соединение с Redis.
func (s *Store) Close() error {
	return s.rdb.Close()
}
