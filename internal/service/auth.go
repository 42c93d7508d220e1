// auth.go — сервис регистрации и аутентификации пользователей.
// Токены — непрозрачные uuid4, хранятся в Redis с TTL (tokenstore).
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bigkaa/gofiman/internal/domain/model"
	"github.com/bigkaa/gofiman/internal/repository"
	"github.com/bigkaa/gofiman/internal/tokenstore"
)

// TokenStore — операции с токенами, нужные сервису аутентификации.
// Реализуется tokenstore.Store.
type TokenStore interface {
	Put(ctx context.Context, token, userID string) error
	Delete(ctx context.Context, token string) error
}

// AuthService — регистрация, вход и выход пользователей.
type AuthService struct {
	users  repository.UserRepository
	tokens TokenStore
	logger *slog.Logger
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(users repository.UserRepository, tokens TokenStore, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger.With(slog.String("component", "auth_service")),
	}
}

// Register создаёт пользователя. Пароль хранится только в виде bcrypt-хэша.
func (s *AuthService) Register(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" {
		return nil, ErrMissingEmail
	}
	if password == "" {
		return nil, ErrMissingPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("хэширование пароля: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("создание пользователя: %w", err)
	}

	s.logger.Info("Пользователь зарегистрирован", slog.String("user_id", user.ID))
	return user, nil
}

// Login проверяет учётные данные и выдаёт токен с TTL.
// Несуществующий email и неверный пароль неразличимы — оба дают
// ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUnauthorized
		}
		return "", fmt.Errorf("поиск пользователя: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrUnauthorized
	}

	token := uuid.NewString()
	if err := s.tokens.Put(ctx, token, user.ID); err != nil {
		return "", fmt.Errorf("сохранение токена: %w", err)
	}

	s.logger.Debug("Токен выдан", slog.String("user_id", user.ID))
	return token, nil
}

// Logout отзывает токен. Неразрешимый токен даёт ErrUnauthorized.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.tokens.Delete(ctx, token); err != nil {
		if errors.Is(err, tokenstore.ErrTokenNotFound) {
			return ErrUnauthorized
		}
		return fmt.Errorf("удаление токена: %w", err)
	}
	return nil
}

// Me возвращает пользователя по UUID из разрешённого токена.
// Исчезнувший пользователь даёт ErrUnauthorized, как и в middleware.
func (s *AuthService) Me(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}
	return user, nil
}
