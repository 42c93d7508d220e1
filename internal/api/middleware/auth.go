// auth.go — middleware аутентификации по непрозрачному токену.
// Токен из заголовка X-Token разрешается в UUID пользователя через
// хранилище токенов (Redis); дополнительно проверяется, что пользователь
// всё ещё существует в БД. Любой сбой цепочки — 401 до бизнес-логики.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/gofiman/internal/api/errors"
	"github.com/bigkaa/gofiman/internal/tokenstore"
)

// TokenHeader — заголовок с токеном аутентификации.
const TokenHeader = "X-Token"

// contextKey — тип для ключей контекста (избегаем коллизий).
type contextKey string

const (
	// ContextKeyUserID — UUID аутентифицированного пользователя.
	ContextKeyUserID contextKey = "user_id"
	// ContextKeyToken — токен запроса (нужен GET /disconnect).
	ContextKeyToken contextKey = "auth_token"
)

// TokenResolver — разрешение токена в UUID пользователя.
// Реализуется tokenstore.Store.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// UserChecker — проверка существования пользователя.
// Реализуется repository.UserRepository.
type UserChecker interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

// TokenAuth — middleware аутентификации по X-Token.
type TokenAuth struct {
	tokens TokenResolver
	users  UserChecker
	logger *slog.Logger
}

// NewTokenAuth создаёт middleware аутентификации.
func NewTokenAuth(tokens TokenResolver, users UserChecker, logger *slog.Logger) *TokenAuth {
	return &TokenAuth{
		tokens: tokens,
		users:  users,
		logger: logger.With(slog.String("component", "token_auth")),
	}
}

// Middleware возвращает HTTP middleware аутентификации.
// Извлекает X-Token, разрешает его в UUID пользователя, проверяет
// существование пользователя и помещает идентификатор в контекст.
func (a *TokenAuth) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(TokenHeader)
			if token == "" {
				apierrors.Unauthorized(w)
				return
			}

			userID, err := a.tokens.Resolve(r.Context(), token)
			if err != nil {
				if !errors.Is(err, tokenstore.ErrTokenNotFound) {
					a.logger.Error("Ошибка разрешения токена",
						slog.String("error", err.Error()),
						slog.String("remote_addr", r.RemoteAddr),
					)
				}
				apierrors.Unauthorized(w)
				return
			}

			// Токен мог пережить пользователя — проверяем БД
			exists, err := a.users.Exists(r.Context(), userID)
			if err != nil {
				a.logger.Error("Ошибка проверки пользователя",
					slog.String("user_id", userID),
					slog.String("error", err.Error()),
				)
				apierrors.Unauthorized(w)
				return
			}
			if !exists {
				apierrors.Unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUserID, userID)
			ctx = context.WithValue(ctx, ContextKeyToken, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// --- Context helpers ---

// UserIDFromContext извлекает UUID пользователя из контекста запроса.
// Возвращает пустую строку, если аутентификация не выполнялась.
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(ContextKeyUserID).(string)
	return userID
}

// TokenFromContext извлекает токен запроса из контекста.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(ContextKeyToken).(string)
	return token
}
