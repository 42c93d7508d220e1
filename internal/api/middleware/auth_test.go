package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bigkaa/gofiman/internal/tokenstore"
)

// fakeResolver — TokenResolver с фиксированной таблицей токенов.
type fakeResolver struct {
	tokens map[string]string
	err    error
}

func (r *fakeResolver) Resolve(_ context.Context, token string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	userID, ok := r.tokens[token]
	if !ok {
		return "", tokenstore.ErrTokenNotFound
	}
	return userID, nil
}

// fakeUserChecker — UserChecker с фиксированным набором пользователей.
type fakeUserChecker struct {
	users map[string]bool
	err   error
}

func (c *fakeUserChecker) Exists(_ context.Context, userID string) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	return c.users[userID], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestTokenAuth_Middleware проверяет цепочку аутентификации.
func TestTokenAuth_Middleware(t *testing.T) {
	const (
		validToken = "b80ba7a7-9d12-4257-b3a3-7e0c87c4a8c2"
		userID     = "c8b7e1ee-7c85-4b99-b4a3-1f9f26f07ba8"
	)

	tests := []struct {
		name       string
		token      string
		resolver   *fakeResolver
		users      *fakeUserChecker
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "валидный токен",
			token:      validToken,
			resolver:   &fakeResolver{tokens: map[string]string{validToken: userID}},
			users:      &fakeUserChecker{users: map[string]bool{userID: true}},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "отсутствует заголовок",
			token:      "",
			resolver:   &fakeResolver{tokens: map[string]string{}},
			users:      &fakeUserChecker{users: map[string]bool{}},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "неразрешимый токен",
			token:      "неизвестный",
			resolver:   &fakeResolver{tokens: map[string]string{}},
			users:      &fakeUserChecker{users: map[string]bool{}},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "токен пережил пользователя",
			token:      validToken,
			resolver:   &fakeResolver{tokens: map[string]string{validToken: userID}},
			users:      &fakeUserChecker{users: map[string]bool{}},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "ошибка хранилища токенов",
			token:      validToken,
			resolver:   &fakeResolver{err: errors.New("redis недоступен")},
			users:      &fakeUserChecker{users: map[string]bool{}},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "ошибка проверки пользователя",
			token:      validToken,
			resolver:   &fakeResolver{tokens: map[string]string{validToken: userID}},
			users:      &fakeUserChecker{err: errors.New("БД недоступна")},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := NewTokenAuth(tt.resolver, tt.users, testLogger())

			nextCalled := false
			var gotUserID, gotToken string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotUserID = UserIDFromContext(r.Context())
				gotToken = TokenFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/files", nil)
			if tt.token != "" {
				req.Header.Set(TokenHeader, tt.token)
			}
			rec := httptest.NewRecorder()

			auth.Middleware()(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("статус = %d, ожидался %d", rec.Code, tt.wantStatus)
			}
			if nextCalled != tt.wantNext {
				t.Fatalf("вызов обработчика = %v, ожидалось %v", nextCalled, tt.wantNext)
			}

			if tt.wantNext {
				if gotUserID != userID {
					t.Errorf("userID из контекста = %q, ожидался %q", gotUserID, userID)
				}
				if gotToken != validToken {
					t.Errorf("токен из контекста = %q, ожидался %q", gotToken, validToken)
				}
				return
			}

			// Тело отказа — фиксированный контракт {"error":"Unauthorized"}.
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("разбор тела ответа: %v", err)
			}
			if body["error"] != "Unauthorized" {
				t.Errorf(`error = %q, ожидался "Unauthorized"`, body["error"])
			}
		})
	}
}

// TestUserIDFromContext_Empty проверяет поведение без аутентификации.
func TestUserIDFromContext_Empty(t *testing.T) {
	if got := UserIDFromContext(context.Background()); got != "" {
		t.Errorf("UserIDFromContext() = %q, ожидалась пустая строка", got)
	}
	if got := TokenFromContext(context.Background()); got != "" {
		t.Errorf("TokenFromContext() = %q, ожидалась пустая строка", got)
	}
}
